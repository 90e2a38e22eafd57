package classifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
)

// Gemini asks a Gemini vision model to name the emotion
type Gemini struct {
	client     *genai.Client
	httpClient *http.Client
	model      string
	labels     []domain.Label
}

func init() {
	Register("gemini", NewGemini)
}

// NewGemini creates a Gemini API client
func NewGemini(ctx context.Context, opts Options) (ports.Classifier, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini backend requires an API key")
	}
	if opts.Model == "" {
		return nil, errors.New("gemini backend requires a model name")
	}

	httpClient := &http.Client{Timeout: opts.Timeout}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: opts.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client:     client,
		httpClient: httpClient,
		model:      opts.Model,
		labels:     labelsOr(opts.Labels, domain.HostedLabels),
	}, nil
}

// Classify sends the image inline with the label instructions
func (g *Gemini) Classify(ctx context.Context, img domain.PreparedImage) (domain.Label, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(systemPrompt + "\n" + classificationPrompt(g.labels)),
		{
			InlineData: &genai.Blob{
				MIMEType: img.MIMEType,
				Data:     img.Data,
			},
		},
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	return matchReply(resp.Text(), g.labels)
}

// Close drops pooled connections
func (g *Gemini) Close() error {
	g.httpClient.CloseIdleConnections()
	return nil
}
