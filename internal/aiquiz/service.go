package aiquiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/datauri"
)

// Service turns a document data URI into a validated quiz. It is implemented
// both in-process and by Client over HTTP.
type Service interface {
	GenerateQuiz(ctx context.Context, in GenerateQuizInput) (*GenerateQuizOutput, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) GenerateQuiz(ctx context.Context, in GenerateQuizInput) (*GenerateQuizOutput, error) {
	log := config.WithContext(ctx)

	doc, err := datauri.Parse(in.Document)
	if err != nil {
		log.WithError(err).Warn("[AIQUIZ] Rejected document")
		return nil, fmt.Errorf("%w: %v", ErrInvalidInputFormat, err)
	}

	raw, err := s.provider.SendPrompt(ctx, GenerationRequest{
		Instruction: BuildInstruction(),
		MIMEType:    doc.MIMEType,
		Data:        doc.Data,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidGenerationOutput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrGenerationBackend, err)
	}

	out, err := DecodeOutput(raw)
	if err != nil {
		log.WithError(err).Error("[AIQUIZ] Failed to decode model output")
		return nil, err
	}
	if err := Validate(out); err != nil {
		log.WithError(err).Error("[AIQUIZ] Model output failed validation")
		return nil, err
	}

	log.WithField("questions", len(out.Quiz)).Info("[AIQUIZ] Quiz generated")
	return out, nil
}
