package session

import "github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"

// Event is anything Reduce accepts.
type Event interface {
	event()
}

type FileSelected struct {
	File SelectedFile
}

type FileRejected struct {
	File SelectedFile
}

type DocumentEncoded struct {
	Version  uint64
	Document string
}

type EncodingFailed struct {
	Version uint64
	Notice  Notice
}

type GenerationRequested struct{}

// GenerationRejected records a generate request made without a document.
type GenerationRejected struct{}

type QuizGenerated struct {
	Version uint64
	Quiz    []aiquiz.QuizQuestion
}

type GenerationFailed struct {
	Version uint64
	Err     error
}

type OptionSelected struct {
	Index  int
	Option string
}

type AnswerSubmitted struct {
	Index  int
	Option string
}

type Advanced struct{}

type ResetRequested struct{}

func (FileSelected) event()        {}
func (FileRejected) event()        {}
func (DocumentEncoded) event()     {}
func (EncodingFailed) event()      {}
func (GenerationRequested) event() {}
func (GenerationRejected) event()  {}
func (QuizGenerated) event()       {}
func (GenerationFailed) event()    {}
func (OptionSelected) event()      {}
func (AnswerSubmitted) event()     {}
func (Advanced) event()            {}
func (ResetRequested) event()      {}
