package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
)

type SessionService interface {
	Create(ctx context.Context) *Controller
	Get(ctx context.Context, id uuid.UUID) (*Controller, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Prune(ctx context.Context, maxIdle time.Duration) int
}

type sessionService struct {
	repo      Repository
	generator Generator
	opts      []Option
}

func NewService(repo Repository, generator Generator, opts ...Option) SessionService {
	return &sessionService{
		repo:      repo,
		generator: generator,
		opts:      opts,
	}
}

func (s *sessionService) Create(ctx context.Context) *Controller {
	c := NewController(uuid.New(), s.generator, s.opts...)
	s.repo.Save(c)

	config.WithContext(config.WithSessionID(ctx, c.ID().String())).Info("Session created")
	return c
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*Controller, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		config.WithContext(ctx).WithField("session_id", id.String()).Warn("Session not found")
		return nil, err
	}
	return c, nil
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	config.WithContext(config.WithSessionID(ctx, id.String())).Info("Session deleted")
	return nil
}

func (s *sessionService) Prune(ctx context.Context, maxIdle time.Duration) int {
	removed := s.repo.Prune(maxIdle)
	if removed > 0 {
		config.WithContext(ctx).WithField("removed", removed).Info("Pruned idle sessions")
	}
	return removed
}
