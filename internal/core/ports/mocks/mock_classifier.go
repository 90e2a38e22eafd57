package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
)

// MockClassifier is a mock implementation of the Classifier interface for testing
type MockClassifier struct {
	mu       sync.Mutex
	Label    domain.Label
	Err      error
	CloseErr error
	Panic    bool

	Calls  []domain.PreparedImage
	Closed int
}

// NewMockClassifier creates a mock classifier that always answers label
func NewMockClassifier(label domain.Label) *MockClassifier {
	return &MockClassifier{Label: label}
}

// Classify records the image and returns the configured answer
func (m *MockClassifier) Classify(ctx context.Context, img domain.PreparedImage) (domain.Label, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, img)
	m.mu.Unlock()

	if m.Panic {
		panic("mock classifier panic")
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Label, nil
}

// Close counts releases
func (m *MockClassifier) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed++
	return m.CloseErr
}

// CallCount returns how many times Classify ran
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockClassifierFactory hands out a fixed classifier
type MockClassifierFactory struct {
	Classifier *MockClassifier
	Err        error
	Opened     int
}

// NewMockClassifierFactory creates a factory around c
func NewMockClassifierFactory(c *MockClassifier) *MockClassifierFactory {
	return &MockClassifierFactory{Classifier: c}
}

// Open returns the configured classifier or error
func (f *MockClassifierFactory) Open(ctx context.Context) (ports.Classifier, error) {
	f.Opened++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Classifier, nil
}

// MockFaceDetector returns a fixed detection
type MockFaceDetector struct {
	Bounds image.Rectangle
	Found  bool
	Err    error
}

// Detect returns the configured detection
func (d *MockFaceDetector) Detect(ctx context.Context, img image.Image) (image.Rectangle, bool, error) {
	return d.Bounds, d.Found, d.Err
}
