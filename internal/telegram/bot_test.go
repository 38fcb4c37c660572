package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/session"
)

type fakeAPI struct {
	mu      sync.Mutex
	fileURL string
	sent    []tgbotapi.MessageConfig
	acked   int
	notes   []string
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked++
	if cb, ok := c.(tgbotapi.CallbackConfig); ok && cb.Text != "" {
		f.notes = append(f.notes, cb.Text)
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL + "/" + fileID, nil
}

func (f *fakeAPI) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatal("no message sent")
	}
	return f.sent[len(f.sent)-1]
}

// count returns how many sent messages have exactly this text.
func (f *fakeAPI) count(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, msg := range f.sent {
		if msg.Text == text {
			n++
		}
	}
	return n
}

// press returns the callback data of the i-th button on the last message.
func (f *fakeAPI) press(t *testing.T, i int) string {
	t.Helper()
	data := callbacks(t, f.last(t))
	if i >= len(data) {
		t.Fatalf("last message has %d buttons, wanted button %d", len(data), i)
	}
	return data[i]
}

type staticGenerator struct {
	quiz []aiquiz.QuizQuestion
}

func (g staticGenerator) GenerateQuiz(ctx context.Context, in aiquiz.GenerateQuizInput) (*aiquiz.GenerateQuizOutput, error) {
	return &aiquiz.GenerateQuizOutput{Quiz: g.quiz}, nil
}

const chatID int64 = 42

func documentUpdate(name, mimeType string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat:     &tgbotapi.Chat{ID: chatID},
			Document: &tgbotapi.Document{FileID: "file-1", FileName: name, MimeType: mimeType, FileSize: 40},
		},
	}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			Data:    data,
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		},
	}
}

func TestBotQuizFlow(t *testing.T) {
	files := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4\n1 0 obj\n<< >>\nendobj\n"))
	}))
	defer files.Close()

	api := &fakeAPI{fileURL: files.URL}
	gen := staticGenerator{quiz: []aiquiz.QuizQuestion{
		{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"},
	}}
	bot := NewBot(api, gen, session.NewRepository(), files.Client())
	ctx := context.Background()

	bot.Handle(ctx, documentUpdate("notes.pdf", "application/pdf"))
	bot.Wait()
	if msg := api.last(t); !strings.Contains(msg.Text, "notes.pdf is ready") {
		t.Fatalf("after upload: %q", msg.Text)
	}

	bot.Handle(ctx, callbackUpdate(api.press(t, 0)))
	bot.Wait()
	if msg := api.last(t); !strings.Contains(msg.Text, "2+2?") || len(callbacks(t, msg)) != 4 {
		t.Fatalf("after generate: %q %v", msg.Text, callbacks(t, msg))
	}

	bot.Handle(ctx, callbackUpdate(api.press(t, 1)))
	if msg := api.last(t); !strings.Contains(msg.Text, "Correct!") {
		t.Fatalf("after answer: %q", msg.Text)
	}

	bot.Handle(ctx, callbackUpdate(api.press(t, 0)))
	if msg := api.last(t); !strings.Contains(msg.Text, "You scored 1 / 1") {
		t.Fatalf("after advance: %q", msg.Text)
	}

	bot.Handle(ctx, callbackUpdate(api.press(t, 0)))
	if msg := api.last(t); !strings.Contains(msg.Text, "Send me a PDF") {
		t.Fatalf("after reset: %q", msg.Text)
	}
	if api.acked != 4 {
		t.Errorf("answered %d callbacks, expected 4", api.acked)
	}
}

func TestBotRejectsNonPDF(t *testing.T) {
	api := &fakeAPI{}
	bot := NewBot(api, staticGenerator{}, session.NewRepository(), nil)

	bot.Handle(context.Background(), documentUpdate("photo.png", "image/png"))
	bot.Wait()

	msg := api.last(t)
	if !strings.Contains(msg.Text, "Invalid File Type") {
		t.Fatalf("text = %q", msg.Text)
	}
	if len(callbacks(t, msg)) != 0 {
		t.Errorf("rejected upload should offer no generate button")
	}
}

func TestBotSessionPerChat(t *testing.T) {
	bot := NewBot(&fakeAPI{}, staticGenerator{}, session.NewRepository(), nil)

	a := bot.controller(1)
	if bot.controller(1) != a {
		t.Error("same chat should reuse its session")
	}
	if bot.controller(2) == a {
		t.Error("different chats should not share a session")
	}
}

func pdfServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.4\n1 0 obj\n<< >>\nendobj\n"))
	}))
}

func TestBotIgnoresButtonsFromEarlierQuiz(t *testing.T) {
	files := pdfServer()
	defer files.Close()

	api := &fakeAPI{fileURL: files.URL}
	gen := staticGenerator{quiz: []aiquiz.QuizQuestion{
		{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"},
	}}
	bot := NewBot(api, gen, session.NewRepository(), files.Client())
	ctx := context.Background()

	bot.Handle(ctx, documentUpdate("notes.pdf", "application/pdf"))
	bot.Wait()
	bot.Handle(ctx, callbackUpdate(api.press(t, 0)))
	bot.Wait()
	oldAnswer := api.press(t, 1)

	if err := bot.controller(chatID).Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	bot.Handle(ctx, documentUpdate("notes.pdf", "application/pdf"))
	bot.Wait()
	bot.Handle(ctx, callbackUpdate(api.press(t, 0)))
	bot.Wait()

	sent := len(api.sent)
	bot.Handle(ctx, callbackUpdate(oldAnswer))

	s := bot.controller(chatID).State()
	if s.Phase != session.PhaseInProgress {
		t.Fatalf("phase = %s, expected inProgress", s.Phase)
	}
	if _, answered := s.CurrentFeedback(); answered {
		t.Error("a button from the earlier quiz answered the new one")
	}
	if len(api.sent) != sent {
		t.Error("an ignored button should not re-render the session")
	}
	if len(api.notes) != 1 || api.notes[0] != expiredText {
		t.Errorf("callback notes = %v, expected %q", api.notes, expiredText)
	}
}

type gatedGenerator struct {
	release chan struct{}
}

func (g gatedGenerator) GenerateQuiz(ctx context.Context, in aiquiz.GenerateQuizInput) (*aiquiz.GenerateQuizOutput, error) {
	<-g.release
	return &aiquiz.GenerateQuizOutput{Quiz: []aiquiz.QuizQuestion{
		{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4"},
	}}, nil
}

func TestBotGeneratesOncePerDoubleTap(t *testing.T) {
	files := pdfServer()
	defer files.Close()

	api := &fakeAPI{fileURL: files.URL}
	gen := gatedGenerator{release: make(chan struct{})}
	bot := NewBot(api, gen, session.NewRepository(), files.Client())
	ctx := context.Background()

	bot.Handle(ctx, documentUpdate("notes.pdf", "application/pdf"))
	bot.Wait()
	generate := api.press(t, 0)

	bot.Handle(ctx, callbackUpdate(generate))
	bot.Handle(ctx, callbackUpdate(generate))
	close(gen.release)
	bot.Wait()

	if n := api.count(generatingText); n != 1 {
		t.Errorf("sent the generating message %d times, expected 1", n)
	}
	if msg := api.last(t); !strings.Contains(msg.Text, "2+2?") {
		t.Errorf("last message = %q", msg.Text)
	}
}
