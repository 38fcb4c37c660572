package session

import (
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/samber/lo"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"
)

const PDFContentType = "application/pdf"

const (
	MessageEmptyQuiz     = "The AI could not generate a quiz from this PDF. Please try another PDF or check the PDF content."
	MessageMalformedQuiz = "The AI returned a malformed quiz. Please try again."
	MessageGenerationErr = "An error occurred while generating the quiz. Please try again."
)

var (
	NoticeInvalidFileType = Notice{Title: "Invalid File Type", Description: "Please upload a PDF file."}
	NoticeNoPDFSelected   = Notice{Title: "No PDF Selected", Description: "Please upload a PDF file to generate a quiz."}
)

// IsPDF reports whether a declared content type names a PDF. Parameters such
// as charset are ignored.
func IsPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, PDFContentType)
}

// FailureMessage is the user-facing text of the Error phase for a generation
// failure.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyQuiz):
		return MessageEmptyQuiz
	case errors.Is(err, aiquiz.ErrInvalidGenerationOutput):
		return MessageMalformedQuiz
	default:
		return MessageGenerationErr
	}
}

// Reduce applies ev to s and returns the next state. s is never modified; on
// error the returned state is s.
func Reduce(s State, ev Event) (State, error) {
	switch e := ev.(type) {
	case FileSelected:
		return selectFile(s, e)
	case FileRejected:
		return rejectFile(s)
	case DocumentEncoded:
		return documentEncoded(s, e)
	case EncodingFailed:
		return encodingFailed(s, e)
	case GenerationRequested:
		return generationRequested(s)
	case GenerationRejected:
		return generationRejected(s)
	case QuizGenerated:
		return quizGenerated(s, e)
	case GenerationFailed:
		return generationFailed(s, e)
	case OptionSelected:
		return optionSelected(s, e)
	case AnswerSubmitted:
		return answerSubmitted(s, e)
	case Advanced:
		return advanced(s)
	case ResetRequested:
		return State{Phase: PhaseUpload, Version: s.Version + 1}, nil
	default:
		return s, fmt.Errorf("unknown event %T", ev)
	}
}

func selectFile(s State, e FileSelected) (State, error) {
	if s.Phase != PhaseUpload {
		return s, fmt.Errorf("%w: select file in %s", ErrInvalidTransition, s.Phase)
	}
	if !IsPDF(e.File.ContentType) {
		return s, fmt.Errorf("%w: %q", ErrInvalidFileType, e.File.ContentType)
	}
	next := s.clone()
	file := e.File
	next.Version++
	next.File = &file
	next.Document = ""
	next.Encoding = true
	next.Notice = nil
	next.ErrorMessage = ""
	return next, nil
}

func rejectFile(s State) (State, error) {
	if s.Phase != PhaseUpload {
		return s, fmt.Errorf("%w: select file in %s", ErrInvalidTransition, s.Phase)
	}
	next := s.clone()
	notice := NoticeInvalidFileType
	next.Version++
	next.File = nil
	next.Document = ""
	next.Encoding = false
	next.Notice = &notice
	return next, nil
}

func documentEncoded(s State, e DocumentEncoded) (State, error) {
	if e.Version != s.Version || !s.Encoding {
		return s, ErrStaleEvent
	}
	next := s.clone()
	next.Document = e.Document
	next.Encoding = false
	return next, nil
}

func encodingFailed(s State, e EncodingFailed) (State, error) {
	if e.Version != s.Version || !s.Encoding {
		return s, ErrStaleEvent
	}
	next := s.clone()
	notice := e.Notice
	next.File = nil
	next.Document = ""
	next.Encoding = false
	next.Notice = &notice
	return next, nil
}

func generationRequested(s State) (State, error) {
	if s.Phase != PhaseUpload {
		return s, fmt.Errorf("%w: generate in %s", ErrInvalidTransition, s.Phase)
	}
	if s.Document == "" || s.Encoding {
		return s, ErrNoDocument
	}
	next := s.clone()
	next.Phase = PhaseGenerating
	next.ErrorMessage = ""
	next.Notice = nil
	return next, nil
}

// generationRejected drops whatever was selected so the user starts the
// upload again.
func generationRejected(s State) (State, error) {
	if s.Phase != PhaseUpload {
		return s, fmt.Errorf("%w: generate in %s", ErrInvalidTransition, s.Phase)
	}
	next := s.clone()
	notice := NoticeNoPDFSelected
	next.Version++
	next.File = nil
	next.Document = ""
	next.Encoding = false
	next.Notice = &notice
	return next, nil
}

func quizGenerated(s State, e QuizGenerated) (State, error) {
	if e.Version != s.Version || s.Phase != PhaseGenerating {
		return s, ErrStaleEvent
	}
	if len(e.Quiz) == 0 {
		return generationFailed(s, GenerationFailed{Version: e.Version, Err: ErrEmptyQuiz})
	}
	next := s.clone()
	next.Phase = PhaseInProgress
	next.Quiz = cloneQuiz(e.Quiz)
	next.CurrentIndex = 0
	next.Selection = ""
	next.Answers = map[int]AnswerRecord{}
	next.Score = 0
	return next, nil
}

func generationFailed(s State, e GenerationFailed) (State, error) {
	if e.Version != s.Version || s.Phase != PhaseGenerating {
		return s, ErrStaleEvent
	}
	next := s.clone()
	next.Phase = PhaseError
	next.ErrorMessage = FailureMessage(e.Err)
	return next, nil
}

func checkCurrent(s State, index int) (aiquiz.QuizQuestion, error) {
	if s.Phase != PhaseInProgress {
		return aiquiz.QuizQuestion{}, fmt.Errorf("%w: answer in %s", ErrInvalidTransition, s.Phase)
	}
	if index != s.CurrentIndex {
		return aiquiz.QuizQuestion{}, fmt.Errorf("%w: got %d, current is %d", ErrWrongQuestion, index, s.CurrentIndex)
	}
	return s.Quiz[index], nil
}

func optionSelected(s State, e OptionSelected) (State, error) {
	question, err := checkCurrent(s, e.Index)
	if err != nil {
		return s, err
	}
	if _, answered := s.Answers[e.Index]; answered {
		return s, fmt.Errorf("%w: question %d already answered", ErrInvalidTransition, e.Index)
	}
	if !lo.Contains(question.Options, e.Option) {
		return s, fmt.Errorf("%w: %q", ErrUnknownOption, e.Option)
	}
	next := s.clone()
	next.Selection = e.Option
	return next, nil
}

func answerSubmitted(s State, e AnswerSubmitted) (State, error) {
	question, err := checkCurrent(s, e.Index)
	if err != nil {
		return s, err
	}
	if _, answered := s.Answers[e.Index]; answered {
		return s, nil
	}
	option := e.Option
	if option == "" {
		option = s.Selection
	}
	if !lo.Contains(question.Options, option) {
		return s, fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}

	next := s.clone()
	record := AnswerRecord{
		SelectedAnswer: option,
		IsCorrect:      option == question.CorrectAnswer,
		CorrectAnswer:  question.CorrectAnswer,
	}
	if next.Answers == nil {
		next.Answers = map[int]AnswerRecord{}
	}
	next.Answers[e.Index] = record
	next.Selection = option
	if record.IsCorrect {
		next.Score++
	}
	return next, nil
}

func advanced(s State) (State, error) {
	if s.Phase != PhaseInProgress {
		return s, fmt.Errorf("%w: advance in %s", ErrInvalidTransition, s.Phase)
	}
	if _, answered := s.Answers[s.CurrentIndex]; !answered {
		return s, ErrNotAnswered
	}
	next := s.clone()
	next.Selection = ""
	if s.CurrentIndex >= len(s.Quiz)-1 {
		next.Phase = PhaseCompleted
		return next, nil
	}
	next.CurrentIndex++
	return next, nil
}
