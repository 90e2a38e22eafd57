package ports

import (
	"context"
	"image"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
)

// Classifier defines the port for emotion inference backends
type Classifier interface {
	// Classify returns the top-ranked emotion label for a prepared image
	Classify(ctx context.Context, img domain.PreparedImage) (domain.Label, error)

	// Close releases whatever the backend acquired (clients, sessions, weights)
	Close() error
}

// ClassifierFactory acquires a Classifier for the duration of one analysis
type ClassifierFactory interface {
	// Open creates a ready-to-use classifier
	Open(ctx context.Context) (Classifier, error)
}

// ClassifierFactoryFunc adapts a function to ClassifierFactory
type ClassifierFactoryFunc func(ctx context.Context) (Classifier, error)

// Open calls f(ctx)
func (f ClassifierFactoryFunc) Open(ctx context.Context) (Classifier, error) {
	return f(ctx)
}

// FaceDetector defines the port for locating a face inside an image
type FaceDetector interface {
	// Detect returns the bounds of the most confident face.
	// found is false when the image contains no face.
	Detect(ctx context.Context, img image.Image) (bounds image.Rectangle, found bool, err error)
}
