package session

import "github.com/google/uuid"

type QuestionView struct {
	Index         int      `json:"index"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

// View is the client-facing rendering of a State. The current question's
// correct answer is only present once it has been answered.
type View struct {
	ID             string        `json:"id"`
	Phase          Phase         `json:"phase"`
	File           *SelectedFile `json:"file,omitempty"`
	Encoding       bool          `json:"encoding"`
	DocumentReady  bool          `json:"documentReady"`
	Notice         *Notice       `json:"notice,omitempty"`
	TotalQuestions int           `json:"totalQuestions"`
	CurrentIndex   int           `json:"currentQuestionIndex"`
	Question       *QuestionView `json:"question,omitempty"`
	Selection      string        `json:"selection,omitempty"`
	Feedback       *AnswerRecord `json:"feedback,omitempty"`
	Score          int           `json:"score"`
	Progress       float64       `json:"progress"`
	Percentage     float64       `json:"percentage"`
	NextLabel      string        `json:"nextLabel,omitempty"`
	ErrorMessage   string        `json:"errorMessage,omitempty"`
	Actions        []Action      `json:"actions"`
}

func NewView(id uuid.UUID, s State) View {
	view := View{
		ID:             id.String(),
		Phase:          s.Phase,
		File:           s.File,
		Encoding:       s.Encoding,
		DocumentReady:  s.Document != "" && !s.Encoding,
		Notice:         s.Notice,
		TotalQuestions: len(s.Quiz),
		CurrentIndex:   s.CurrentIndex,
		Selection:      s.Selection,
		Score:          s.Score,
		Progress:       s.Progress(),
		Percentage:     s.Percentage(),
		NextLabel:      s.NextLabel(),
		ErrorMessage:   s.ErrorMessage,
		Actions:        s.Actions(),
	}
	if view.Actions == nil {
		view.Actions = []Action{}
	}

	if q, ok := s.CurrentQuestion(); ok {
		view.Question = &QuestionView{
			Index:    s.CurrentIndex,
			Question: q.Question,
			Options:  append([]string(nil), q.Options...),
		}
		if record, answered := s.CurrentFeedback(); answered {
			view.Question.CorrectAnswer = q.CorrectAnswer
			view.Feedback = &record
		}
	}
	return view
}
