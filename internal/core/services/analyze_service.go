package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
	"github.com/kamal-hamza/emobridge/pkg/log"
)

// ErrNoLabel is returned when a backend answers without a label
var ErrNoLabel = errors.New("classifier returned no label")

type AnalyzeService struct {
	preprocessor *Preprocessor
	classifiers  ports.ClassifierFactory
	timeout      time.Duration
}

// NewAnalyzeService wires the preprocessing and inference steps.
// A zero timeout leaves the inference call unbounded.
func NewAnalyzeService(pre *Preprocessor, classifiers ports.ClassifierFactory, timeout time.Duration) *AnalyzeService {
	return &AnalyzeService{
		preprocessor: pre,
		classifiers:  classifiers,
		timeout:      timeout,
	}
}

// Analyze returns the detected emotion, or the fallback label on any failure.
// Failures are written to the diagnostics log.
func (s *AnalyzeService) Analyze(ctx context.Context, path string) domain.Label {
	runID := uuid.NewString()

	log.Debugf("[%s] analysing %s", runID, path)
	label, err := s.Classify(ctx, path)
	if err != nil {
		log.Printf("[%s] error analysing image: %v", runID, err)
		return domain.FallbackLabel
	}

	log.Debugf("[%s] detected %q", runID, label)
	return label
}

// Classify runs the whole analysis and reports errors to the caller.
// The classifier is acquired for this call only and released before returning.
func (s *AnalyzeService) Classify(ctx context.Context, path string) (label domain.Label, err error) {
	defer func() {
		if r := recover(); r != nil {
			label = ""
			err = fmt.Errorf("analysis panicked: %v", r)
		}
	}()

	// 1. Shape the input first so a bad file never costs a model load
	img, err := s.preprocessor.Prepare(ctx, path)
	if err != nil {
		return "", err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// 2. Acquire the model
	classifier, err := s.classifiers.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load classifier: %w", err)
	}
	defer func() {
		if cerr := classifier.Close(); cerr != nil {
			log.Debugf("failed to release classifier: %v", cerr)
		}
	}()

	// 3. Infer
	label, err = classifier.Classify(ctx, img)
	if err != nil {
		return "", fmt.Errorf("inference failed: %w", err)
	}
	if label == "" {
		return "", ErrNoLabel
	}

	return label, nil
}
