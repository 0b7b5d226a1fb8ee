package commentary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI is the provider-backed Generator. One completion request per
// invocation; streaming chunks are forwarded the moment they arrive.
type OpenAI struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
}

func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		model:       model,
		maxTokens:   120,
		temperature: 0.8,
	}
}

func (o *OpenAI) params(systemPrompt, userPrompt string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(o.maxTokens),
		Temperature: openai.Float(o.temperature),
	}
}

func (o *OpenAI) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, o.params(systemPrompt, userPrompt))
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response had no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) GenerateStream(ctx context.Context, systemPrompt, userPrompt string, emit func(chunk string)) (string, error) {
	stream := o.client.Chat.Completions.NewStreaming(ctx, o.params(systemPrompt, userPrompt))
	defer stream.Close()

	var full strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full.WriteString(delta)
		emit(delta)
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("completion stream: %w", err)
	}
	return full.String(), nil
}
