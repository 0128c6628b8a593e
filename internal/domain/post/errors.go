package post

import "errors"

// Post domain errors
var (
	ErrPostNotFound = errors.New("post not found")
)
