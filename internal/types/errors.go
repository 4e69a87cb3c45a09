package types

import "errors"

var (
	// ErrTopicNotFound is returned by lookups against a missing record id.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrInvalidFilename is returned when a filename sanitizes to nothing.
	ErrInvalidFilename = errors.New("filename contains no usable characters")

	// ErrInvalidJSON is returned by the json exporter when the caller
	// supplies content that is not valid JSON. Unlike the MCQ path this is
	// a caller error and is not recovered.
	ErrInvalidJSON = errors.New("content is not valid JSON")
)
