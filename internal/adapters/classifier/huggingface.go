package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
)

// HuggingFace classifies through the hosted Inference API image-classification task
type HuggingFace struct {
	client *resty.Client
	url    string
	model  string
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfParameters struct {
	TopK int `json:"top_k"`
}

type hfPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error         json.RawMessage `json:"error"`
	EstimatedTime float64         `json:"estimated_time,omitempty"`
}

func init() {
	Register("huggingface", NewHuggingFace)
}

// NewHuggingFace creates a client for opts.Model under opts.Endpoint
func NewHuggingFace(ctx context.Context, opts Options) (ports.Classifier, error) {
	if opts.Model == "" {
		return nil, errors.New("huggingface backend requires a model id")
	}
	if opts.Endpoint == "" {
		return nil, errors.New("huggingface backend requires an endpoint")
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "emobridge/1.0")
	if opts.APIKey != "" {
		client.SetAuthToken(opts.APIKey)
	}

	return &HuggingFace{
		client: client,
		url:    strings.TrimSuffix(opts.Endpoint, "/") + "/" + strings.TrimPrefix(opts.Model, "/"),
		model:  opts.Model,
	}, nil
}

// Classify posts the image and returns the highest scoring label
func (h *HuggingFace) Classify(ctx context.Context, img domain.PreparedImage) (domain.Label, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Wait-For-Model", "true").
		SetBody(hfRequest{
			Inputs:     img.Base64(),
			Parameters: hfParameters{TopK: 1},
		}).
		Post(h.url)
	if err != nil {
		return "", fmt.Errorf("inference request to %s failed: %w", h.model, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("inference endpoint returned %s: %s", resp.Status(), errorText(resp.Body()))
	}

	predictions, err := parsePredictions(resp.Body())
	if err != nil {
		return "", err
	}

	return topPrediction(predictions)
}

// Close drops pooled connections
func (h *HuggingFace) Close() error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}

// parsePredictions accepts both a flat list and a single-image batch ([[...]])
func parsePredictions(body []byte) ([]hfPrediction, error) {
	var flat []hfPrediction
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	var batch [][]hfPrediction
	if err := json.Unmarshal(body, &batch); err == nil {
		if len(batch) == 0 {
			return nil, ErrEmptyResponse
		}
		return batch[0], nil
	}

	return nil, fmt.Errorf("unexpected inference response: %s", truncate(string(body), 200))
}

func topPrediction(predictions []hfPrediction) (domain.Label, error) {
	if len(predictions) == 0 {
		return "", ErrEmptyResponse
	}

	best := predictions[0]
	for _, p := range predictions[1:] {
		if p.Score > best.Score {
			best = p
		}
	}

	if best.Label == "" {
		return "", ErrEmptyResponse
	}
	return domain.Label(best.Label), nil
}

// errorText extracts the API's error message, which is either a string or a list
func errorText(body []byte) string {
	var e hfError
	if err := json.Unmarshal(body, &e); err != nil || len(e.Error) == 0 {
		return truncate(strings.TrimSpace(string(body)), 200)
	}

	var msg string
	if err := json.Unmarshal(e.Error, &msg); err == nil {
		if e.EstimatedTime > 0 {
			return fmt.Sprintf("%s (estimated time %.0fs)", msg, e.EstimatedTime)
		}
		return msg
	}

	var msgs []string
	if err := json.Unmarshal(e.Error, &msgs); err == nil {
		return strings.Join(msgs, "; ")
	}

	return string(e.Error)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
