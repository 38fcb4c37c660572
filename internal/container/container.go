package container

import (
	"context"

	"github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/session"
)

type Container struct {
	Settings         config.Settings
	AIQuizContainer  *aiquiz.AIQuizContainer
	SessionContainer *session.SessionContainer
}

func New(ctx context.Context) (*Container, error) {
	config.Init()
	settings := config.Load()

	aiQuizContainer, err := aiquiz.NewAIQuizContainer(ctx, settings)
	if err != nil {
		return nil, err
	}
	sessionContainer := session.NewSessionContainer(aiQuizContainer.Service, settings)

	return &Container{
		Settings:         settings,
		AIQuizContainer:  aiQuizContainer,
		SessionContainer: sessionContainer,
	}, nil
}

// NewGenerator returns the quiz generator for front-ends that do not serve
// /ai-quiz themselves: a remote client when QUIZ_SERVICE_URL is set, the
// in-process service otherwise.
func NewGenerator(ctx context.Context, settings config.Settings) (session.Generator, error) {
	if settings.QuizServiceURL != "" {
		config.WithContext(ctx).WithField("url", settings.QuizServiceURL).Info("Using remote quiz service")
		return aiquiz.NewClient(settings.QuizServiceURL, nil), nil
	}
	aiQuizContainer, err := aiquiz.NewAIQuizContainer(ctx, settings)
	if err != nil {
		return nil, err
	}
	return aiQuizContainer.Service, nil
}
