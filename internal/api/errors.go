package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrMissingURL is returned when the request body has no url field
	ErrMissingURL = errors.New(`missing "url" in request body`)
)
