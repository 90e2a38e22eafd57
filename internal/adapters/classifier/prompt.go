package classifier

import (
	"fmt"

	"github.com/kamal-hamza/emobridge/internal/core/domain"
)

const systemPrompt = "You are a facial expression classifier. " +
	"You look at a small grayscale photo of a face and answer with exactly one word."

// classificationPrompt asks a vision model to pick one label from the vocabulary
func classificationPrompt(labels []domain.Label) string {
	return fmt.Sprintf(
		"Which emotion does the face in this image show? "+
			"Answer with exactly one of: %s. Reply with the word only.",
		domain.JoinLabels(labels),
	)
}

// matchReply maps a free-form reply onto the vocabulary
func matchReply(reply string, labels []domain.Label) (domain.Label, error) {
	if reply == "" {
		return "", ErrEmptyResponse
	}
	label, ok := domain.MatchLabel(reply, labels)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnexpectedLabel, reply)
	}
	return label, nil
}
