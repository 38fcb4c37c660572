package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/session"
	"github.com/sirupsen/logrus"
)

// chatNamespace derives stable session ids from Telegram chat ids.
var chatNamespace = uuid.MustParse("6f1c1f0e-3b7a-4d59-9a55-2a4c8e2f6d10")

// API is the subset of *tgbotapi.BotAPI the bot needs.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Bot struct {
	api        API
	generator  session.Generator
	repo       session.Repository
	httpClient *http.Client
	opts       []session.Option

	mu         sync.Mutex
	generating map[int64]bool
	wg         sync.WaitGroup
}

func NewBot(api API, generator session.Generator, repo session.Repository, httpClient *http.Client, opts ...session.Option) *Bot {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &Bot{
		api:        api,
		generator:  generator,
		repo:       repo,
		httpClient: httpClient,
		opts:       opts,
		generating: make(map[int64]bool),
	}
}

// Run handles updates until the channel closes or ctx is done, then waits
// for in-flight work.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer b.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.Handle(ctx, update)
		}
	}
}

// Wait blocks until background encoding and generation renders finish.
func (b *Bot) Wait() {
	b.wg.Wait()
}

func (b *Bot) Handle(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Document != nil:
		b.handleDocument(ctx, update.Message.Chat.ID, update.Message.Document)
	case update.Message != nil:
		b.handleCommand(ctx, update.Message)
	}
}

func (b *Bot) sessionID(chatID int64) uuid.UUID {
	return uuid.NewSHA1(chatNamespace, []byte(strconv.FormatInt(chatID, 10)))
}

func (b *Bot) controller(chatID int64) *session.Controller {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.sessionID(chatID)
	if c, err := b.repo.GetByID(id); err == nil {
		return c
	}
	c := session.NewController(id, b.generator, b.opts...)
	b.repo.Save(c)
	return c
}

func (b *Bot) logger(ctx context.Context, chatID int64) *logrus.Entry {
	return config.WithContext(config.WithSessionID(ctx, b.sessionID(chatID).String())).
		WithField("chat_id", chatID)
}

func (b *Bot) render(ctx context.Context, chatID int64, c *session.Controller) {
	if _, err := b.api.Send(Render(chatID, c.State())); err != nil {
		b.logger(ctx, chatID).WithError(err).Error("Error sending message")
	}
}

func (b *Bot) background(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "reset":
		c := b.controller(chatID)
		if err := c.Reset(ctx); err != nil {
			b.logger(ctx, chatID).WithError(err).Warn("Reset rejected")
		}
		b.render(ctx, chatID, c)
	default:
		b.render(ctx, chatID, b.controller(chatID))
	}
}

func (b *Bot) handleDocument(ctx context.Context, chatID int64, doc *tgbotapi.Document) {
	log := b.logger(ctx, chatID).WithField("file", doc.FileName)
	c := b.controller(chatID)

	err := c.SelectFile(ctx, b.documentFile(doc))
	switch {
	case err == nil:
		b.render(ctx, chatID, c)
		b.background(func() {
			if _, err := c.AwaitDocument(ctx); err != nil {
				log.WithError(err).Warn("Document not available")
			}
			b.render(ctx, chatID, c)
		})
	case errors.Is(err, session.ErrInvalidFileType):
		log.WithField("mime_type", doc.MimeType).Info("Rejected non-PDF document")
		b.render(ctx, chatID, c)
	default:
		log.WithError(err).Warn("File selection rejected")
		b.render(ctx, chatID, c)
	}
}

func (b *Bot) documentFile(doc *tgbotapi.Document) session.File {
	return session.File{
		Name:        doc.FileName,
		ContentType: doc.MimeType,
		Size:        int64(doc.FileSize),
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			url, err := b.api.GetFileDirectURL(doc.FileID)
			if err != nil {
				return nil, fmt.Errorf("resolve file url: %w", err)
			}
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			resp, err := b.httpClient.Do(req)
			if err != nil {
				return nil, fmt.Errorf("download file: %w", err)
			}
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
			}
			return resp.Body, nil
		},
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	log := b.logger(ctx, chatID).WithField("callback", query.Data)

	ack := func(text string) {
		if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, text)); err != nil {
			log.WithError(err).Warn("Error answering callback")
		}
	}

	cb, ok := parseCallback(query.Data)
	if !ok {
		log.Warn("Unknown callback data")
		ack("")
		return
	}

	c := b.controller(chatID)
	if version := c.State().Version; cb.version != version {
		log.WithField("version", version).Info("Ignored button from an earlier quiz")
		ack(expiredText)
		return
	}
	ack("")

	var err error
	switch cb.action {
	case callbackGenerate:
		if !b.claimGeneration(chatID) {
			log.Info("Generation already requested")
			return
		}
		b.background(func() {
			defer b.releaseGeneration(chatID)
			b.generate(ctx, chatID, c)
		})
		return
	case callbackAdvance:
		err = c.Advance(ctx)
	case callbackReset:
		err = c.Reset(ctx)
	case callbackAnswer:
		err = b.answer(ctx, c, cb.question, cb.option)
	}

	if err != nil {
		log.WithError(err).Info("Action rejected")
	}
	b.render(ctx, chatID, c)
}

// claimGeneration lets one generate press per chat run at a time.
func (b *Bot) claimGeneration(chatID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.generating[chatID] {
		return false
	}
	b.generating[chatID] = true
	return true
}

func (b *Bot) releaseGeneration(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.generating, chatID)
}

func (b *Bot) answer(ctx context.Context, c *session.Controller, question, option int) error {
	s := c.State()
	if question != s.CurrentIndex {
		return session.ErrWrongQuestion
	}
	q, ok := s.CurrentQuestion()
	if !ok {
		return session.ErrInvalidTransition
	}
	if option < 0 || option >= len(q.Options) {
		return session.ErrUnknownOption
	}
	return c.SubmitAnswer(ctx, question, q.Options[option])
}

func (b *Bot) generate(ctx context.Context, chatID int64, c *session.Controller) {
	log := b.logger(ctx, chatID)

	if _, err := c.AwaitDocument(ctx); err != nil && !errors.Is(err, session.ErrNoDocument) {
		log.WithError(err).Warn("Waiting for document failed")
		return
	}

	if c.State().Allows(session.ActionGenerate) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, generatingText)); err != nil {
			log.WithError(err).Error("Error sending message")
		}
	}

	if err := c.StartGeneration(ctx); err != nil {
		log.WithError(err).Info("Generation not started")
	}
	b.render(ctx, chatID, c)
}
