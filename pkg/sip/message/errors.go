package message

import "errors"

var (
	// Parser errors
	ErrInvalidMessage       = errors.New("invalid SIP message")
	ErrInvalidStartLine     = errors.New("invalid start line")
	ErrInvalidHeader        = errors.New("invalid header format")
	ErrInvalidContentLength = errors.New("invalid Content-Length")

	// Size errors
	ErrMessageTooLarge = errors.New("message too large")
	ErrHeaderTooLarge  = errors.New("header too large")
	ErrTooManyHeaders  = errors.New("too many headers")

	// MIME errors
	ErrInvalidMimeType = errors.New("invalid MIME type")
	ErrNoBoundary      = errors.New("multipart boundary parameter not found")
)
