package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/container"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/router"
)

// @title        PDF Quiz API
// @version      1.0
// @description  Generates multiple-choice quizzes from PDF documents and runs quiz sessions over them.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := container.New(ctx)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to build container")
	}

	handler := router.New(router.RouterConfig{
		AIQuizHandler:  c.AIQuizContainer.Handler,
		SessionHandler: c.SessionContainer.Handler,
		CORSOrigins:    c.Settings.CORSOrigins,
	})

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		config.Logger.Info("Starting Lambda handler")
		lambda.Start(httpadapter.New(handler).ProxyWithContext)
		return
	}

	go pruneSessions(ctx, c)

	srv := &http.Server{
		Addr:              ":" + c.Settings.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.WithError(err).Error("Graceful shutdown failed")
	}
}

func pruneSessions(ctx context.Context, c *container.Container) {
	ttl := c.Settings.SessionIdleTTL
	ticker := time.NewTicker(max(ttl/2, time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.SessionContainer.Service.Prune(ctx, ttl)
		}
	}
}
