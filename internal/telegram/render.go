package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/session"
)

const (
	callbackGenerate = "generate"
	callbackAdvance  = "advance"
	callbackReset    = "reset"
	callbackAnswer   = "answer"
)

const (
	welcomeText    = "📄 Send me a PDF and I will turn it into a multiple-choice quiz."
	generatingText = "🧠 Generating your quiz. Please wait while we analyze your PDF and create your quiz..."
	expiredText    = "This button belongs to an earlier quiz."
)

// callback is a decoded button press. Version is the session version the
// button was rendered for.
type callback struct {
	action   string
	version  uint64
	question int
	option   int
}

func callbackData(action string, version uint64) string {
	return fmt.Sprintf("%s:%d", action, version)
}

func answerData(version uint64, question, option int) string {
	return fmt.Sprintf("%s:%d:%d:%d", callbackAnswer, version, question, option)
}

// parseCallback reads <action>:<version> and answer:<version>:<q>:<i>.
func parseCallback(data string) (callback, bool) {
	parts := strings.Split(data, ":")
	if len(parts) < 2 {
		return callback{}, false
	}
	version, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return callback{}, false
	}
	cb := callback{action: parts[0], version: version}

	switch cb.action {
	case callbackGenerate, callbackAdvance, callbackReset:
		return cb, len(parts) == 2
	case callbackAnswer:
		if len(parts) != 4 {
			return callback{}, false
		}
		q, err := strconv.Atoi(parts[2])
		if err != nil {
			return callback{}, false
		}
		i, err := strconv.Atoi(parts[3])
		if err != nil {
			return callback{}, false
		}
		cb.question, cb.option = q, i
		return cb, true
	default:
		return callback{}, false
	}
}

// Render builds the single message for the session's phase. Its keyboard
// only carries the actions valid in that phase.
func Render(chatID int64, s session.State) tgbotapi.MessageConfig {
	var (
		text strings.Builder
		rows [][]tgbotapi.InlineKeyboardButton
	)

	if s.Notice != nil {
		fmt.Fprintf(&text, "⚠️ %s\n%s\n\n", s.Notice.Title, s.Notice.Description)
	}

	switch s.Phase {
	case session.PhaseUpload:
		switch {
		case s.Encoding && s.File != nil:
			fmt.Fprintf(&text, "⏳ Reading %s...", s.File.Name)
		case s.Allows(session.ActionGenerate) && s.File != nil:
			fmt.Fprintf(&text, "📄 %s is ready.", s.File.Name)
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✨ Generate Quiz", callbackData(callbackGenerate, s.Version)),
			))
		default:
			text.WriteString(welcomeText)
		}

	case session.PhaseGenerating:
		text.WriteString(generatingText)

	case session.PhaseInProgress:
		q, _ := s.CurrentQuestion()
		fmt.Fprintf(&text, "❓ Question %d/%d (%.0f%%)\n\n%s",
			s.CurrentIndex+1, len(s.Quiz), s.Progress(), q.Question)

		if record, answered := s.CurrentFeedback(); answered {
			if record.IsCorrect {
				text.WriteString("\n\n✅ Correct!")
			} else {
				fmt.Fprintf(&text, "\n\n❌ Incorrect\nThe correct answer was: %s", record.CorrectAnswer)
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(s.NextLabel()+" ➡️", callbackData(callbackAdvance, s.Version)),
			))
			break
		}
		for i, option := range q.Options {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(option, answerData(s.Version, s.CurrentIndex, i)),
			))
		}

	case session.PhaseCompleted:
		fmt.Fprintf(&text, "🏆 Quiz Completed!\nYou scored %d / %d (%.0f%%)", s.Score, len(s.Quiz), s.Percentage())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Try Another Quiz", callbackData(callbackReset, s.Version)),
		))

	case session.PhaseError:
		message := s.ErrorMessage
		if message == "" {
			message = "An unknown error occurred."
		}
		fmt.Fprintf(&text, "🚫 Error\n%s", message)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Try Again", callbackData(callbackReset, s.Version)),
		))
	}

	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(text.String()))
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	return msg
}
