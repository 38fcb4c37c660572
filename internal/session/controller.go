package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"github.com/sirupsen/logrus"
)

// Generator produces a quiz from a document data URI. Both aiquiz.Service
// and aiquiz.Client satisfy it.
type Generator interface {
	GenerateQuiz(ctx context.Context, in aiquiz.GenerateQuizInput) (*aiquiz.GenerateQuizOutput, error)
}

// Controller owns one session. Events are applied one at a time under mu;
// encoding and generation run without it and report back through versioned
// events.
type Controller struct {
	id        uuid.UUID
	generator Generator
	encoder   Encoder
	maxBytes  int64
	now       func() time.Time

	mu         sync.Mutex
	state      State
	settled    chan struct{}
	lastActive time.Time
}

type Option func(*Controller)

func WithEncoder(e Encoder) Option {
	return func(c *Controller) { c.encoder = e }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithMaxDocumentBytes(n int64) Option {
	return func(c *Controller) { c.maxBytes = n }
}

func NewController(id uuid.UUID, generator Generator, opts ...Option) *Controller {
	c := &Controller{
		id:        id,
		generator: generator,
		maxBytes:  config.DefaultMaxDocumentBytes,
		now:       time.Now,
		state:     NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.encoder == nil {
		c.encoder = NewEncoder(c.maxBytes)
	}
	c.lastActive = c.now()
	return c
}

func (c *Controller) ID() uuid.UUID {
	return c.id
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Generating reports whether a generator call is in flight.
func (c *Controller) Generating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase == PhaseGenerating
}

func (c *Controller) dispatch(ctx context.Context, ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocked(ctx, ev)
}

func (c *Controller) applyLocked(ctx context.Context, ev Event) error {
	prev := c.state.Phase
	next, err := Reduce(c.state, ev)
	if err != nil {
		return err
	}
	c.state = next
	c.lastActive = c.now()

	config.WithContext(config.WithSessionID(ctx, c.id.String())).WithFields(logrus.Fields{
		"from":    prev,
		"to":      next.Phase,
		"version": next.Version,
	}).Debugf("Applied %T", ev)
	return nil
}

// SelectFile records f and starts encoding it in the background. A non-PDF
// clears the current selection and returns ErrInvalidFileType.
func (c *Controller) SelectFile(ctx context.Context, f File) error {
	selected := SelectedFile{Name: f.Name, ContentType: f.ContentType, Size: f.Size}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !IsPDF(f.ContentType) {
		if err := c.applyLocked(ctx, FileRejected{File: selected}); err != nil {
			return err
		}
		return ErrInvalidFileType
	}

	if err := c.applyLocked(ctx, FileSelected{File: selected}); err != nil {
		return err
	}

	done := make(chan struct{})
	c.settled = done
	go c.encode(context.WithoutCancel(ctx), c.state.Version, f, done)
	return nil
}

func (c *Controller) encode(ctx context.Context, version uint64, f File, done chan struct{}) {
	defer close(done)
	log := config.WithContext(config.WithSessionID(ctx, c.id.String()))

	var ev Event
	document, err := c.encoder.Encode(ctx, f)
	if err != nil {
		log.WithError(err).WithField("file", f.Name).Warn("Failed to encode file")
		ev = EncodingFailed{Version: version, Notice: encodingNotice(err, c.maxBytes)}
	} else {
		ev = DocumentEncoded{Version: version, Document: document}
	}

	if err := c.dispatch(ctx, ev); errors.Is(err, ErrStaleEvent) {
		log.WithField("version", version).Debug("Discarded superseded encoding result")
	}
}

// AwaitDocument blocks until the latest selection has been encoded and
// returns its data URI.
func (c *Controller) AwaitDocument(ctx context.Context) (string, error) {
	for {
		c.mu.Lock()
		if !c.state.Encoding {
			document := c.state.Document
			c.mu.Unlock()
			if document == "" {
				return "", ErrNoDocument
			}
			return document, nil
		}
		settled := c.settled
		c.mu.Unlock()

		select {
		case <-settled:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// StartGeneration moves to Generating and calls the generator once. Only a
// rejected transition is returned as an error; generation failures end up
// in the Error phase.
func (c *Controller) StartGeneration(ctx context.Context) error {
	c.mu.Lock()
	if err := c.applyLocked(ctx, GenerationRequested{}); err != nil {
		if errors.Is(err, ErrNoDocument) {
			if rejectErr := c.applyLocked(ctx, GenerationRejected{}); rejectErr != nil {
				err = rejectErr
			}
		}
		c.mu.Unlock()
		return err
	}
	version := c.state.Version
	document := c.state.Document
	c.mu.Unlock()

	log := config.WithContext(config.WithSessionID(ctx, c.id.String()))

	var ev Event
	out, err := c.generator.GenerateQuiz(ctx, aiquiz.GenerateQuizInput{Document: document})
	switch {
	case err != nil:
		log.WithError(err).Error("Quiz generation failed")
		ev = GenerationFailed{Version: version, Err: err}
	case out == nil:
		ev = GenerationFailed{Version: version, Err: ErrEmptyQuiz}
	default:
		ev = QuizGenerated{Version: version, Quiz: out.Quiz}
	}

	if err := c.dispatch(ctx, ev); errors.Is(err, ErrStaleEvent) {
		log.WithField("version", version).Info("Discarded generation result after reset")
	}
	return nil
}

func (c *Controller) SelectOption(ctx context.Context, index int, option string) error {
	return c.dispatch(ctx, OptionSelected{Index: index, Option: option})
}

func (c *Controller) SubmitAnswer(ctx context.Context, index int, option string) error {
	return c.dispatch(ctx, AnswerSubmitted{Index: index, Option: option})
}

func (c *Controller) Advance(ctx context.Context) error {
	return c.dispatch(ctx, Advanced{})
}

func (c *Controller) Reset(ctx context.Context) error {
	return c.dispatch(ctx, ResetRequested{})
}
