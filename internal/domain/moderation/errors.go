package moderation

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrReportNotFound  = errors.New("report not found")
)
