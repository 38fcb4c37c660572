package aiquiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
)

const instructionTemplate = `You are a quiz generator. Generate a quiz based on the content of the attached PDF document.

The quiz must consist of multiple-choice questions. Every question has exactly four answer options.
For each question provide the question text, the four answer options and the correct answer.
The correct answer must be copied character for character from one of the four options.

Make the quiz comprehensive: cover the key topics of the document.

Respond with JSON only, without markdown fences, matching this JSON schema:

%s

Example:

{
  "quiz": [
    {
      "question": "Question 1 text",
      "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
      "correctAnswer": "Option 2"
    }
  ]
}
`

var (
	instructionOnce sync.Once
	instruction     string
)

// OutputSchema reflects the JSON schema of GenerateQuizOutput. Nested
// definitions are inlined so the schema can be handed to model APIs as-is.
func OutputSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(&GenerateQuizOutput{})
}

func BuildInstruction() string {
	instructionOnce.Do(func() {
		schema, err := json.MarshalIndent(OutputSchema(), "", "  ")
		if err != nil {
			panic(fmt.Sprintf("aiquiz: failed to marshal output schema: %v", err))
		}
		instruction = fmt.Sprintf(instructionTemplate, schema)
	})
	return instruction
}
