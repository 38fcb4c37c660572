package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/session"
)

const pdfBytes = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"

type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	out     *aiquiz.GenerateQuizOutput
	err     error
	started chan struct{}
	release chan struct{}
}

func (g *fakeGenerator) GenerateQuiz(ctx context.Context, in aiquiz.GenerateQuizInput) (*aiquiz.GenerateQuizOutput, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	if g.started != nil {
		close(g.started)
	}
	if g.release != nil {
		<-g.release
	}
	return g.out, g.err
}

func (g *fakeGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func withTimeout(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func readyController(t *testing.T, gen session.Generator) *session.Controller {
	t.Helper()
	ctx := withTimeout(t)
	c := session.NewController(uuid.New(), gen)
	if err := c.SelectFile(ctx, session.BytesFile("notes.pdf", "application/pdf", []byte(pdfBytes))); err != nil {
		t.Fatalf("SelectFile failed: %v", err)
	}
	if _, err := c.AwaitDocument(ctx); err != nil {
		t.Fatalf("AwaitDocument failed: %v", err)
	}
	return c
}

func TestControllerFullFlow(t *testing.T) {
	ctx := withTimeout(t)
	gen := &fakeGenerator{out: &aiquiz.GenerateQuizOutput{Quiz: sampleQuiz(3)}}
	c := readyController(t, gen)

	if doc := c.State().Document; doc[:28] != "data:application/pdf;base64," {
		t.Fatalf("unexpected document prefix: %q", doc)
	}
	if err := c.StartGeneration(ctx); err != nil {
		t.Fatalf("StartGeneration failed: %v", err)
	}
	if gen.Calls() != 1 {
		t.Fatalf("generator called %d times, expected 1", gen.Calls())
	}

	for i, option := range []string{"x", "w", "x"} {
		if err := c.SelectOption(ctx, i, option); err != nil {
			t.Fatalf("SelectOption(%d) failed: %v", i, err)
		}
		if err := c.SubmitAnswer(ctx, i, ""); err != nil {
			t.Fatalf("SubmitAnswer(%d) failed: %v", i, err)
		}
		if err := c.Advance(ctx); err != nil {
			t.Fatalf("Advance(%d) failed: %v", i, err)
		}
	}

	s := c.State()
	if s.Phase != session.PhaseCompleted || s.Score != 2 {
		t.Fatalf("expected completed with score 2, got %s/%d", s.Phase, s.Score)
	}

	if err := c.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s := c.State(); s.Phase != session.PhaseUpload || s.Score != 0 || s.Quiz != nil {
		t.Fatalf("unexpected state after reset: %+v", s)
	}
}

func TestControllerLastSelectionWins(t *testing.T) {
	ctx := withTimeout(t)
	releaseA := make(chan struct{})
	releaseB := make(chan struct{})

	encoder := session.EncoderFunc(func(ctx context.Context, f session.File) (string, error) {
		if f.Name == "a.pdf" {
			<-releaseA
			return "data:application/pdf;base64,QUFB", nil
		}
		<-releaseB
		return "data:application/pdf;base64,QkJC", nil
	})
	c := session.NewController(uuid.New(), &fakeGenerator{}, session.WithEncoder(encoder))

	if err := c.SelectFile(ctx, session.BytesFile("a.pdf", "application/pdf", []byte("a"))); err != nil {
		t.Fatalf("select a: %v", err)
	}
	if err := c.SelectFile(ctx, session.BytesFile("b.pdf", "application/pdf", []byte("b"))); err != nil {
		t.Fatalf("select b: %v", err)
	}
	close(releaseA)
	close(releaseB)

	doc, err := c.AwaitDocument(ctx)
	if err != nil {
		t.Fatalf("AwaitDocument failed: %v", err)
	}
	if doc != "data:application/pdf;base64,QkJC" {
		t.Fatalf("document = %q, expected the second file", doc)
	}
	if name := c.State().File.Name; name != "b.pdf" {
		t.Errorf("selected file = %q, expected b.pdf", name)
	}
}

func TestControllerResetDuringGeneration(t *testing.T) {
	ctx := withTimeout(t)
	gen := &fakeGenerator{
		out:     &aiquiz.GenerateQuizOutput{Quiz: sampleQuiz(2)},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := readyController(t, gen)

	done := make(chan error, 1)
	go func() { done <- c.StartGeneration(ctx) }()

	<-gen.started
	if s := c.State(); s.Phase != session.PhaseGenerating {
		t.Fatalf("phase = %s, expected generating", s.Phase)
	}
	if err := c.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	close(gen.release)

	if err := <-done; err != nil {
		t.Fatalf("StartGeneration failed: %v", err)
	}
	if s := c.State(); s.Phase != session.PhaseUpload || len(s.Quiz) != 0 {
		t.Fatalf("late result was applied: %s with %d questions", s.Phase, len(s.Quiz))
	}
}

func TestControllerGenerationOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		gen     *fakeGenerator
		phase   session.Phase
		message string
	}{
		{
			name:    "empty quiz",
			gen:     &fakeGenerator{out: &aiquiz.GenerateQuizOutput{Quiz: []aiquiz.QuizQuestion{}}},
			phase:   session.PhaseError,
			message: session.MessageEmptyQuiz,
		},
		{
			name:    "backend error",
			gen:     &fakeGenerator{err: aiquiz.ErrGenerationBackend},
			phase:   session.PhaseError,
			message: session.MessageGenerationErr,
		},
		{
			name:    "malformed output",
			gen:     &fakeGenerator{err: aiquiz.ErrInvalidGenerationOutput},
			phase:   session.PhaseError,
			message: session.MessageMalformedQuiz,
		},
		{
			name:  "quiz",
			gen:   &fakeGenerator{out: &aiquiz.GenerateQuizOutput{Quiz: sampleQuiz(1)}},
			phase: session.PhaseInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := readyController(t, tt.gen)
			if err := c.StartGeneration(withTimeout(t)); err != nil {
				t.Fatalf("StartGeneration failed: %v", err)
			}

			s := c.State()
			if s.Phase != tt.phase {
				t.Fatalf("phase = %s, expected %s", s.Phase, tt.phase)
			}
			if s.ErrorMessage != tt.message {
				t.Errorf("message = %q, expected %q", s.ErrorMessage, tt.message)
			}
			if tt.gen.Calls() != 1 {
				t.Errorf("generator called %d times", tt.gen.Calls())
			}
		})
	}
}

func TestControllerRejectsNonPDF(t *testing.T) {
	ctx := withTimeout(t)
	c := readyController(t, &fakeGenerator{})

	err := c.SelectFile(ctx, session.BytesFile("photo.png", "image/png", []byte("\x89PNG")))
	if !errors.Is(err, session.ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}

	s := c.State()
	if s.Notice == nil || s.Notice.Title != "Invalid File Type" {
		t.Errorf("notice = %+v", s.Notice)
	}
	if _, err := c.AwaitDocument(ctx); !errors.Is(err, session.ErrNoDocument) {
		t.Errorf("expected ErrNoDocument after rejection, got %v", err)
	}
}

func TestControllerGenerateWithoutDocument(t *testing.T) {
	gen := &fakeGenerator{}
	c := session.NewController(uuid.New(), gen)

	if err := c.StartGeneration(withTimeout(t)); !errors.Is(err, session.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	s := c.State()
	if s.Notice == nil || *s.Notice != session.NoticeNoPDFSelected {
		t.Errorf("notice = %+v", s.Notice)
	}
	if s.File != nil || s.Document != "" || s.Phase != session.PhaseUpload {
		t.Errorf("state after rejected generate = %+v", s)
	}
	if gen.Calls() != 0 {
		t.Error("generator should not be called without a document")
	}
}

func TestControllerDocumentTooLarge(t *testing.T) {
	ctx := withTimeout(t)
	c := session.NewController(uuid.New(), &fakeGenerator{}, session.WithMaxDocumentBytes(8))

	if err := c.SelectFile(ctx, session.BytesFile("big.pdf", "application/pdf", []byte(pdfBytes))); err != nil {
		t.Fatalf("SelectFile failed: %v", err)
	}
	if _, err := c.AwaitDocument(ctx); !errors.Is(err, session.ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}

	s := c.State()
	if s.File != nil {
		t.Error("failed encode should clear the selection")
	}
	if s.Notice == nil || s.Notice.Title != "File Too Large" {
		t.Errorf("notice = %+v", s.Notice)
	}
}

func TestEncoderRejectsOversizedFile(t *testing.T) {
	enc := session.NewEncoder(4)
	_, err := enc.Encode(context.Background(), session.BytesFile("big.pdf", "application/pdf", []byte(pdfBytes)))
	if !errors.Is(err, session.ErrDocumentTooLarge) {
		t.Fatalf("expected ErrDocumentTooLarge, got %v", err)
	}
}
