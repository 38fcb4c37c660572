package session

import (
	"github.com/samber/lo"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"
)

type Phase string

const (
	PhaseUpload     Phase = "upload"
	PhaseGenerating Phase = "generating"
	PhaseInProgress Phase = "inProgress"
	PhaseCompleted  Phase = "completed"
	PhaseError      Phase = "error"
)

type Action string

const (
	ActionSelectFile   Action = "select_file"
	ActionGenerate     Action = "generate"
	ActionSelectOption Action = "select_option"
	ActionSubmitAnswer Action = "submit_answer"
	ActionAdvance      Action = "advance"
	ActionReset        Action = "reset"
)

const (
	LabelNextQuestion = "Next Question"
	LabelViewResults  = "View Results"
)

type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SelectedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type AnswerRecord struct {
	SelectedAnswer string `json:"selectedAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	CorrectAnswer  string `json:"correctAnswer"`
}

// State is one session's full snapshot. Values returned by Reduce share
// nothing mutable with their input.
type State struct {
	Phase        Phase
	Version      uint64
	File         *SelectedFile
	Document     string
	Encoding     bool
	Quiz         []aiquiz.QuizQuestion
	CurrentIndex int
	Selection    string
	Answers      map[int]AnswerRecord
	Score        int
	ErrorMessage string
	Notice       *Notice
}

func NewState() State {
	return State{Phase: PhaseUpload}
}

func (s State) CurrentQuestion() (aiquiz.QuizQuestion, bool) {
	if s.Phase != PhaseInProgress || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Quiz) {
		return aiquiz.QuizQuestion{}, false
	}
	return s.Quiz[s.CurrentIndex], true
}

func (s State) CurrentFeedback() (AnswerRecord, bool) {
	if s.Phase != PhaseInProgress {
		return AnswerRecord{}, false
	}
	record, ok := s.Answers[s.CurrentIndex]
	return record, ok
}

// Progress is how far through the quiz the current question is, in percent.
func (s State) Progress() float64 {
	switch s.Phase {
	case PhaseInProgress:
		return float64(s.CurrentIndex+1) / float64(len(s.Quiz)) * 100
	case PhaseCompleted:
		return 100
	default:
		return 0
	}
}

// Percentage is the share of correct answers over the whole quiz.
func (s State) Percentage() float64 {
	if len(s.Quiz) == 0 {
		return 0
	}
	return float64(s.Score) / float64(len(s.Quiz)) * 100
}

func (s State) NextLabel() string {
	if s.Phase != PhaseInProgress {
		return ""
	}
	if s.CurrentIndex < len(s.Quiz)-1 {
		return LabelNextQuestion
	}
	return LabelViewResults
}

func (s State) Actions() []Action {
	switch s.Phase {
	case PhaseUpload:
		if s.Document != "" && !s.Encoding {
			return []Action{ActionSelectFile, ActionGenerate}
		}
		return []Action{ActionSelectFile}
	case PhaseInProgress:
		if _, answered := s.CurrentFeedback(); answered {
			return []Action{ActionAdvance}
		}
		return []Action{ActionSelectOption, ActionSubmitAnswer}
	case PhaseCompleted, PhaseError:
		return []Action{ActionReset}
	default:
		return nil
	}
}

func (s State) Allows(a Action) bool {
	return a == ActionReset || lo.Contains(s.Actions(), a)
}

func (s State) clone() State {
	out := s
	if s.File != nil {
		file := *s.File
		out.File = &file
	}
	if s.Notice != nil {
		notice := *s.Notice
		out.Notice = &notice
	}
	out.Quiz = cloneQuiz(s.Quiz)
	if s.Answers != nil {
		out.Answers = lo.Assign(s.Answers)
	}
	return out
}

func cloneQuiz(quiz []aiquiz.QuizQuestion) []aiquiz.QuizQuestion {
	if quiz == nil {
		return nil
	}
	return lo.Map(quiz, func(q aiquiz.QuizQuestion, _ int) aiquiz.QuizQuestion {
		q.Options = append([]string(nil), q.Options...)
		return q
	})
}
