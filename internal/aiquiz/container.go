package aiquiz

import (
	"context"

	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
)

type AIQuizContainer struct {
	Service Service
	Handler *Handler
}

func NewAIQuizContainer(ctx context.Context, s config.Settings) (*AIQuizContainer, error) {
	provider, err := NewProvider(ctx, s)
	if err != nil {
		return nil, err
	}
	service := NewService(provider)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Service: service,
		Handler: handler,
	}, nil
}
