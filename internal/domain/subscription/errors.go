package subscription

import "errors"

// Subscription domain errors
var (
	ErrInvalidSubscriber = errors.New("subscriber id is required")
	ErrInvalidTarget     = errors.New("target id is required")
	ErrInvalidActivity   = errors.New("unknown activity kind")
)
