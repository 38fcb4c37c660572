package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"
)

func TestRepositoryPrune(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	repo := newRepository(clock)

	old := NewController(uuid.New(), nil, WithClock(clock))
	now = now.Add(20 * time.Minute)
	fresh := NewController(uuid.New(), nil, WithClock(clock))

	repo.Save(old)
	repo.Save(fresh)

	if removed := repo.Prune(10 * time.Minute); removed != 1 {
		t.Fatalf("removed %d sessions, expected 1", removed)
	}
	if _, err := repo.GetByID(old.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session still present: %v", err)
	}
	if _, err := repo.GetByID(fresh.ID()); err != nil {
		t.Errorf("fresh session was pruned: %v", err)
	}
}

func TestRepositoryDelete(t *testing.T) {
	repo := newRepository(time.Now)
	c := NewController(uuid.New(), nil)
	repo.Save(c)

	if err := repo.Delete(c.ID()); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(c.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if repo.Count() != 0 {
		t.Errorf("count = %d, expected 0", repo.Count())
	}
}

type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
}

func (g *blockingGenerator) GenerateQuiz(ctx context.Context, in aiquiz.GenerateQuizInput) (*aiquiz.GenerateQuizOutput, error) {
	close(g.started)
	<-g.release
	return &aiquiz.GenerateQuizOutput{Quiz: []aiquiz.QuizQuestion{{
		Question:      "Q",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "a",
	}}}, nil
}

func TestRepositoryPruneKeepsGeneratingSessions(t *testing.T) {
	var mu sync.Mutex
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	encoder := EncoderFunc(func(context.Context, File) (string, error) {
		return "data:application/pdf;base64,JVBERg==", nil
	})
	c := NewController(uuid.New(), gen, WithClock(clock), WithEncoder(encoder))
	repo := newRepository(clock)
	repo.Save(c)

	if err := c.SelectFile(ctx, BytesFile("notes.pdf", PDFContentType, []byte("%PDF-"))); err != nil {
		t.Fatalf("SelectFile failed: %v", err)
	}
	if _, err := c.AwaitDocument(ctx); err != nil {
		t.Fatalf("AwaitDocument failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- c.StartGeneration(ctx) }()
	<-gen.started

	advance(time.Hour)
	if removed := repo.Prune(10 * time.Minute); removed != 0 {
		t.Fatalf("pruned %d sessions while generating, expected 0", removed)
	}

	close(gen.release)
	if err := <-done; err != nil {
		t.Fatalf("StartGeneration failed: %v", err)
	}
	if phase := c.State().Phase; phase != PhaseInProgress {
		t.Fatalf("phase = %s, expected inProgress", phase)
	}

	advance(time.Hour)
	if removed := repo.Prune(10 * time.Minute); removed != 1 {
		t.Errorf("pruned %d sessions after generation, expected 1", removed)
	}
}
