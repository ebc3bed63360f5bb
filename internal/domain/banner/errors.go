package banner

import "errors"

var (
	ErrNotFound    = errors.New("banner ad not found")
	ErrInvalidDates = errors.New("start date must be before end date")
)
