// Package classifier holds the emotion inference backends.
//
// Backends register a constructor under a name in init(), and callers obtain
// a ports.ClassifierFactory for the configured name. A factory builds a fresh
// classifier per analysis; nothing is cached across calls.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
)

var (
	// ErrUnknownBackend is returned for a backend name nothing registered
	ErrUnknownBackend = errors.New("unknown classifier backend")

	// ErrEmptyResponse is returned when a backend answers with no prediction
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrUnexpectedLabel is returned when a reply is outside the label vocabulary
	ErrUnexpectedLabel = errors.New("model replied with an unexpected label")
)

// Options carries the backend settings from configuration
type Options struct {
	Model    string
	Endpoint string
	APIKey   string
	BaseURL  string
	Labels   []domain.Label
	Timeout  time.Duration
	Seed     uint64 // random backend only; zero picks a fresh seed
}

// Constructor builds a classifier from options
type Constructor func(ctx context.Context, opts Options) (ports.Classifier, error)

var (
	mu           sync.RWMutex
	constructors = make(map[string]Constructor)
)

// Register makes a backend available under name
func Register(name string, c Constructor) {
	mu.Lock()
	defer mu.Unlock()
	constructors[name] = c
}

// Backends lists the registered backend names
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewFactory returns a factory building the named backend with opts
func NewFactory(name string, opts Options) (ports.ClassifierFactory, error) {
	mu.RLock()
	c, ok := constructors[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}

	return ports.ClassifierFactoryFunc(func(ctx context.Context) (ports.Classifier, error) {
		return c(ctx, opts)
	}), nil
}

// labelsOr returns configured labels, or fallback when none are set
func labelsOr(configured, fallback []domain.Label) []domain.Label {
	if len(configured) > 0 {
		return configured
	}
	return fallback
}
