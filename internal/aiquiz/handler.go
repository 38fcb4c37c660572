package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GenerateQuiz godoc
// @Summary      Generate a quiz from a document
// @Tags         ai-quiz
// @Accept       json
// @Produce      json
// @Param        body  body      GenerateQuizInput  true  "Base64 data URI of the document"
// @Success      200   {object}  GenerateQuizOutput
// @Failure      400   {string}  string  "invalid input format"
// @Failure      422   {string}  string  "invalid generation output"
// @Failure      502   {string}  string  "generation backend error"
// @Router       /ai-quiz [post]
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateQuizInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	out, err := h.service.GenerateQuiz(r.Context(), req)
	if err != nil {
		status := StatusFor(err)
		log.WithError(err).WithField("status", status).Error("Failed to generate quiz")
		http.Error(w, err.Error(), status)
		return
	}

	config.JSON(w, http.StatusOK, out)
}

// Schema godoc
// @Summary      JSON schema of the generation output
// @Tags         ai-quiz
// @Produce      json
// @Success      200  {object}  object
// @Router       /ai-quiz/schema [get]
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, OutputSchema())
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInputFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidGenerationOutput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
