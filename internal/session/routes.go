package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateSession)
	r.Get("/{id}", h.GetSession)
	r.Delete("/{id}", h.DeleteSession)
	r.Put("/{id}/file", h.SelectFile)
	r.Post("/{id}/generate", h.Generate)
	r.Put("/{id}/selection", h.SelectOption)
	r.Post("/{id}/answers", h.SubmitAnswer)
	r.Post("/{id}/advance", h.Advance)
	r.Post("/{id}/reset", h.Reset)
	return r
}
