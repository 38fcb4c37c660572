package aiquiz

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/saulo-duarte/pdfquiz-lambda/internal/config"
)

const emitQuizTool = "emit_quiz"

type anthropicProvider struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewAnthropicProvider forces structured output through a single tool whose
// input schema is the quiz output schema.
func NewAnthropicProvider(apiKey, model string, opts ...option.RequestOption) Provider {
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &anthropicProvider{
		client: &client,
		model:  anthropic.Model(model),
	}
}

func (p *anthropicProvider) SendPrompt(ctx context.Context, req GenerationRequest) (string, error) {
	log := config.WithContext(ctx)

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 8192,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				documentBlock(req),
				anthropic.NewTextBlock(req.Instruction),
			),
		},
		Tools: []anthropic.ToolUnionParam{
			{
				OfTool: &anthropic.ToolParam{
					Name:        emitQuizTool,
					Description: anthropic.String("Return the generated multiple-choice quiz."),
					InputSchema: quizToolSchema(),
				},
			},
		},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: emitQuizTool},
		},
	})
	if err != nil {
		log.WithError(err).Error("[AIQUIZ] Anthropic message request failed")
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	for _, block := range message.Content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || toolUse.Name != emitQuizTool {
			continue
		}
		raw := string(toolUse.Input)
		log.Debugf("[AIQUIZ] Raw Anthropic tool input:\n%s", raw)
		return raw, nil
	}

	return "", fmt.Errorf("%w: model did not call %s", ErrInvalidGenerationOutput, emitQuizTool)
}

func documentBlock(req GenerationRequest) anthropic.ContentBlockParamUnion {
	if strings.HasPrefix(req.MIMEType, "text/") {
		return anthropic.NewDocumentBlock(anthropic.PlainTextSourceParam{Data: string(req.Data)})
	}
	return anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
		Data: base64.StdEncoding.EncodeToString(req.Data),
	})
}

func quizToolSchema() anthropic.ToolInputSchemaParam {
	schema := OutputSchema()
	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
		Required:   schema.Required,
	}
}
