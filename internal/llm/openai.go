package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kasparro/pagegen/internal/ctxlog"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// OpenAIClient implements Client against the OpenAI chat-completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a client for the given API key and model. The
// model falls back to DefaultModel when empty.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is not set")
	}
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// Generate performs a single chat-completion call and returns the raw
// message content. Errors are classified for the retry layer.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Calling chat completion API.", "model", c.model, "json_mode", req.JSONMode)

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", Classify(fmt.Errorf("chat completion: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", Fatal(errors.New("chat completion returned no choices"))
	}

	logger.Debug("Chat completion succeeded.", "finish_reason", resp.Choices[0].FinishReason)
	return resp.Choices[0].Message.Content, nil
}
