package session

import "errors"

var (
	ErrInvalidFileType   = errors.New("invalid file type")
	ErrNoDocument        = errors.New("no document available")
	ErrEmptyQuiz         = errors.New("generated quiz is empty")
	ErrInvalidTransition = errors.New("action not allowed in current phase")
	ErrWrongQuestion     = errors.New("question is not the current question")
	ErrUnknownOption     = errors.New("option is not one of the question options")
	ErrNotAnswered       = errors.New("current question has not been answered")
	ErrStaleEvent        = errors.New("event belongs to a superseded version")
	ErrDocumentTooLarge  = errors.New("document exceeds maximum size")
	ErrSessionNotFound   = errors.New("session not found")
)
