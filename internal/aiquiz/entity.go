package aiquiz

type QuizQuestion struct {
	Question      string   `json:"question" jsonschema:"required,description=The quiz question."`
	Options       []string `json:"options" jsonschema:"required,minItems=4,maxItems=4,description=The four answer options for the question."`
	CorrectAnswer string   `json:"correctAnswer" jsonschema:"required,description=The correct answer to the question. Must be copied verbatim from options."`
}

type GenerateQuizInput struct {
	Document string `json:"document"`
}

type GenerateQuizOutput struct {
	Quiz []QuizQuestion `json:"quiz" jsonschema:"required,description=The generated quiz questions and answers."`
}

// GenerationRequest is what a Provider sends to the model: the fixed
// instruction plus the document as inline media.
type GenerationRequest struct {
	Instruction string
	MIMEType    string
	Data        []byte
}
