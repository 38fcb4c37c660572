package aiquiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
	"google.golang.org/genai"
)

// Provider sends one generation request to a model and returns its raw text.
type Provider interface {
	SendPrompt(ctx context.Context, req GenerationRequest) (string, error)
}

func NewProvider(ctx context.Context, s config.Settings) (Provider, error) {
	switch s.AIProvider {
	case config.ProviderGemini, "":
		return NewGeminiProvider(ctx, s.GeminiAPIKey, s.GeminiModel)
	case config.ProviderAnthropic:
		if s.AnthropicAPIKey == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
		return NewAnthropicProvider(s.AnthropicAPIKey, s.AnthropicModel), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", s.AIProvider)
	}
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, req GenerationRequest) (string, error) {
	log := config.WithContext(ctx)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(req.Instruction),
			genai.NewPartFromBytes(req.Data, req.MIMEType),
		}, genai.RoleUser),
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiQuizSchema(),
	})
	if err != nil {
		log.WithError(err).Error("[AIQUIZ] Gemini content generation failed")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("[AIQUIZ] Raw Gemini response:\n%s", raw)
	return raw, nil
}

func geminiQuizSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"quiz": {
				Type:        genai.TypeArray,
				Description: "The generated quiz questions and answers.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {
							Type:        genai.TypeString,
							Description: "The quiz question.",
						},
						"options": {
							Type:        genai.TypeArray,
							Description: "The four answer options for the question.",
							Items:       &genai.Schema{Type: genai.TypeString},
							MinItems:    genai.Ptr[int64](OptionsPerQuestion),
							MaxItems:    genai.Ptr[int64](OptionsPerQuestion),
						},
						"correctAnswer": {
							Type:        genai.TypeString,
							Description: "The correct answer, copied verbatim from options.",
						},
					},
					Required:         []string{"question", "options", "correctAnswer"},
					PropertyOrdering: []string{"question", "options", "correctAnswer"},
				},
			},
		},
		Required: []string{"quiz"},
	}
}
