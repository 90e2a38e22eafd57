package classifier

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
	"github.com/kamal-hamza/emobridge/internal/core/ports"
)

// Random is a placeholder backend that picks a label without looking at
// the image. It exists to exercise the classifier contract end to end.
type Random struct {
	rng    *rand.Rand
	labels []domain.Label
}

func init() {
	Register("random", NewRandom)
}

// NewRandom creates a placeholder classifier
func NewRandom(ctx context.Context, opts Options) (ports.Classifier, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Random{
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		labels: labelsOr(opts.Labels, domain.StubLabels),
	}, nil
}

// Classify returns a label drawn uniformly from the vocabulary
func (r *Random) Classify(ctx context.Context, img domain.PreparedImage) (domain.Label, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(r.labels) == 0 {
		return "", ErrEmptyResponse
	}
	return r.labels[r.rng.IntN(len(r.labels))], nil
}

// Close is a no-op
func (r *Random) Close() error {
	return nil
}
