package comment

import "errors"

var (
	ErrNotFound        = errors.New("comment not found")
	ErrProductNotFound = errors.New("product not found")
	ErrAlreadyReported = errors.New("you have already reported this comment")
	ErrReportNotFound  = errors.New("report not found")
)
