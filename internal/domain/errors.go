package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrMissingRawText     = errors.New("raw_text is required")
	ErrMissingHousehold   = errors.New("household_id is required")
	ErrReceiptNotFound    = errors.New("receipt not found")
	ErrReviewItemNotFound = errors.New("review item not found")
)
