package aiquiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const OptionsPerQuestion = 4

// DecodeOutput parses raw model text into GenerateQuizOutput. Markdown code
// fences around the JSON are tolerated; a missing quiz field is not.
func DecodeOutput(raw string) (*GenerateQuizOutput, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(strings.Trim(clean, "`"))

	if clean == "" {
		return nil, fmt.Errorf("%w: empty model response", ErrInvalidGenerationOutput)
	}

	var payload struct {
		Quiz *[]QuizQuestion `json:"quiz"`
	}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGenerationOutput, err)
	}
	if payload.Quiz == nil {
		return nil, fmt.Errorf("%w: missing quiz field", ErrInvalidGenerationOutput)
	}

	return &GenerateQuizOutput{Quiz: *payload.Quiz}, nil
}

// Validate checks the output contract independently of any network call. An
// empty quiz is valid here; callers decide what an empty quiz means.
func Validate(out *GenerateQuizOutput) error {
	if out == nil {
		return fmt.Errorf("%w: no output", ErrInvalidGenerationOutput)
	}

	var errs []error
	for i, q := range out.Quiz {
		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Errorf("question %d: empty question text", i+1))
		}
		if len(q.Options) != OptionsPerQuestion {
			errs = append(errs, fmt.Errorf("question %d: expected %d options, got %d", i+1, OptionsPerQuestion, len(q.Options)))
		}
		if q.CorrectAnswer == "" {
			errs = append(errs, fmt.Errorf("question %d: empty correct answer", i+1))
		} else if !lo.Contains(q.Options, q.CorrectAnswer) {
			errs = append(errs, fmt.Errorf("question %d: correct answer %q is not one of the options", i+1, q.CorrectAnswer))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidGenerationOutput, errors.Join(errs...))
	}
	return nil
}
