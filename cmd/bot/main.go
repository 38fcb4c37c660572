package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/container"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/session"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.Init()
	settings := config.Load()

	if settings.TelegramToken == "" {
		config.Logger.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	generator, err := container.NewGenerator(ctx, settings)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to build quiz generator")
	}

	api, err := tgbotapi.NewBotAPI(settings.TelegramToken)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to connect to Telegram")
	}
	config.Logger.WithField("username", api.Self.UserName).Info("Authorised on Telegram")

	repo := session.NewRepository()
	bot := telegram.NewBot(api, generator, repo, nil, session.WithMaxDocumentBytes(settings.MaxDocumentBytes))

	go func() {
		ticker := time.NewTicker(max(settings.SessionIdleTTL/2, time.Second))
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := repo.Prune(settings.SessionIdleTTL); removed > 0 {
					config.Logger.WithField("removed", removed).Info("Pruned idle chats")
				}
			}
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	bot.Run(ctx, updates)
	config.Logger.Info("Bot stopped")
}
