package aiquiz

import "errors"

var (
	ErrInvalidInputFormat      = errors.New("invalid input format")
	ErrGenerationBackend       = errors.New("generation backend error")
	ErrInvalidGenerationOutput = errors.New("invalid generation output")
)
