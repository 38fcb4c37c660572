package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/saulo-duarte/pdfquiz-lambda/docs"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/aiquiz"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/middlewares"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/session"
)

type RouterConfig struct {
	AIQuizHandler  *aiquiz.Handler
	SessionHandler *session.Handler
	CORSOrigins    []string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.CORSOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Mount("/ai-quiz", aiquiz.Routes(cfg.AIQuizHandler))
	r.Mount("/sessions", session.Routes(cfg.SessionHandler))
	return r
}
