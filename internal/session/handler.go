package session

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
)

const multipartOverhead = 1 << 20

type Handler struct {
	service  SessionService
	maxBytes int64
}

func NewHandler(s SessionService, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = config.DefaultMaxDocumentBytes
	}
	return &Handler{service: s, maxBytes: maxBytes}
}

type answerRequest struct {
	Index  int    `json:"index"`
	Option string `json:"option"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrDocumentTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnknownOption):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrWrongQuestion),
		errors.Is(err, ErrNotAnswered),
		errors.Is(err, ErrNoDocument):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) controller(w http.ResponseWriter, r *http.Request) (*Controller, bool) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.WithError(err).Warn("Invalid session id")
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return nil, false
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return nil, false
	}
	return c, true
}

// respond writes the session view, or the error status with the view when
// the action failed but the state still carries something to show.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, c *Controller, err error) {
	if err == nil {
		config.JSON(w, http.StatusOK, NewView(c.ID(), c.State()))
		return
	}

	status := statusFor(err)
	config.WithContext(config.WithSessionID(r.Context(), c.ID().String())).
		WithError(err).
		WithField("status", status).
		Warn("Session action rejected")

	config.JSON(w, status, struct {
		Error   string `json:"error"`
		Session View   `json:"session"`
	}{
		Error:   err.Error(),
		Session: NewView(c.ID(), c.State()),
	})
}

// CreateSession godoc
// @Summary  Start a new quiz session
// @Tags     sessions
// @Produce  json
// @Success  201  {object}  View
// @Router   /sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	c := h.service.Create(r.Context())
	config.JSON(w, http.StatusCreated, NewView(c.ID(), c.State()))
}

// GetSession godoc
// @Summary  Current view of a session
// @Tags     sessions
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  View
// @Failure  404  {string}  string  "session not found"
// @Router   /sessions/{id} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	h.respond(w, r, c, nil)
}

// DeleteSession godoc
// @Summary  Discard a session
// @Tags     sessions
// @Param    id   path  string  true  "Session ID"
// @Success  204
// @Failure  404  {string}  string  "session not found"
// @Router   /sessions/{id} [delete]
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectFile godoc
// @Summary  Select the PDF to generate a quiz from
// @Tags     sessions
// @Accept   multipart/form-data
// @Produce  json
// @Param    id    path      string  true  "Session ID"
// @Param    file  formData  file    true  "PDF document"
// @Success  200   {object}  View
// @Failure  415   {object}  View
// @Router   /sessions/{id}/file [put]
func (h *Handler) SelectFile(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respond(w, r, c, ErrDocumentTooLarge)
			return
		}
		log.WithError(err).Warn("Missing multipart file")
		http.Error(w, "multipart field \"file\" is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.WithError(err).Error("Failed to read uploaded file")
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	err = c.SelectFile(r.Context(), BytesFile(header.Filename, header.Header.Get("Content-Type"), data))
	h.respond(w, r, c, err)
}

// Generate godoc
// @Summary  Generate the quiz for the selected PDF
// @Tags     sessions
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  View
// @Failure  409  {object}  View
// @Router   /sessions/{id}/generate [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}

	if _, err := c.AwaitDocument(r.Context()); err != nil && !errors.Is(err, ErrNoDocument) {
		h.respond(w, r, c, err)
		return
	}
	h.respond(w, r, c, c.StartGeneration(r.Context()))
}

func (h *Handler) decodeAnswer(w http.ResponseWriter, r *http.Request) (answerRequest, bool) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid answer body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// SelectOption godoc
// @Summary  Mark an option as the pending choice
// @Tags     sessions
// @Accept   json
// @Produce  json
// @Param    id    path      string         true  "Session ID"
// @Param    body  body      answerRequest  true  "Question index and option"
// @Success  200   {object}  View
// @Failure  400   {object}  View
// @Failure  409   {object}  View
// @Router   /sessions/{id}/selection [put]
func (h *Handler) SelectOption(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeAnswer(w, r)
	if !ok {
		return
	}
	h.respond(w, r, c, c.SelectOption(r.Context(), req.Index, req.Option))
}

// SubmitAnswer godoc
// @Summary  Answer the current question
// @Tags     sessions
// @Accept   json
// @Produce  json
// @Param    id    path      string         true  "Session ID"
// @Param    body  body      answerRequest  true  "Question index and option; an empty option submits the pending choice"
// @Success  200   {object}  View
// @Failure  400   {object}  View
// @Failure  409   {object}  View
// @Router   /sessions/{id}/answers [post]
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeAnswer(w, r)
	if !ok {
		return
	}
	h.respond(w, r, c, c.SubmitAnswer(r.Context(), req.Index, req.Option))
}

// Advance godoc
// @Summary  Move to the next question or to the results
// @Tags     sessions
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  View
// @Failure  409  {object}  View
// @Router   /sessions/{id}/advance [post]
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	h.respond(w, r, c, c.Advance(r.Context()))
}

// Reset godoc
// @Summary  Start over with a new document
// @Tags     sessions
// @Produce  json
// @Param    id   path      string  true  "Session ID"
// @Success  200  {object}  View
// @Router   /sessions/{id}/reset [post]
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	c, ok := h.controller(w, r)
	if !ok {
		return
	}
	h.respond(w, r, c, c.Reset(r.Context()))
}
