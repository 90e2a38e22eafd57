package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
)

// OpenAI asks an OpenAI-compatible vision chat model to name the emotion.
// Setting a base URL points it at Ollama, vLLM or any compatible server.
type OpenAI struct {
	client     *openai.Client
	httpClient *http.Client
	model      string
	labels     []domain.Label
}

func init() {
	Register("openai", NewOpenAI)
}

// NewOpenAI creates a vision chat client
func NewOpenAI(ctx context.Context, opts Options) (ports.Classifier, error) {
	// Local compatible servers usually run without a key
	if opts.APIKey == "" && opts.BaseURL == "" {
		return nil, errors.New("openai backend requires an API key or a base URL")
	}
	if opts.Model == "" {
		return nil, errors.New("openai backend requires a model name")
	}

	httpClient := &http.Client{Timeout: opts.Timeout}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = opts.BaseURL
	}
	clientConfig.HTTPClient = httpClient

	return &OpenAI{
		client:     openai.NewClientWithConfig(clientConfig),
		httpClient: httpClient,
		model:      opts.Model,
		labels:     labelsOr(opts.Labels, domain.HostedLabels),
	}, nil
}

// Classify sends the image as a data URL alongside the label instructions
func (o *OpenAI) Classify(ctx context.Context, img domain.PreparedImage) (domain.Label, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: classificationPrompt(o.labels),
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    img.DataURL(),
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
		MaxTokens: 10,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion with %s failed: %w", o.model, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return matchReply(resp.Choices[0].Message.Content, o.labels)
}

// Close drops pooled connections
func (o *OpenAI) Close() error {
	o.httpClient.CloseIdleConnections()
	return nil
}
