package domain

import (
	"strings"
	"unicode"
)

// Label is an emotion category name produced by a classifier
type Label string

// FallbackLabel is returned whenever analysis fails
const FallbackLabel Label = "neutral"

// String implements fmt.Stringer
func (l Label) String() string {
	return string(l)
}

var (
	// HostedLabels is the vocabulary of the hosted facial emotion model
	HostedLabels = []Label{"sad", "disgust", "angry", "neutral", "fear", "surprise", "happy"}

	// LocalModelLabels is the class order of the 48x48 grayscale model
	LocalModelLabels = []Label{"Angry", "Fear", "Happy", "Neutral", "Sad", "Surprise"}

	// StubLabels is the vocabulary of the placeholder backend
	StubLabels = []Label{"happy", "sad", "neutral", "surprised", "angry"}
)

// Vocabulary returns a built-in label set by name ("hosted", "fer", "stub").
// Unknown names return nil.
func Vocabulary(name string) []Label {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hosted":
		return HostedLabels
	case "fer":
		return LocalModelLabels
	case "stub":
		return StubLabels
	default:
		return nil
	}
}

// ParseLabels converts configured strings into labels, dropping blanks
func ParseLabels(values []string) []Label {
	labels := make([]Label, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		labels = append(labels, Label(v))
	}
	return labels
}

// MatchLabel finds the vocabulary entry a free-form model reply refers to.
// Matching ignores case, surrounding whitespace and punctuation.
func MatchLabel(reply string, vocabulary []Label) (Label, bool) {
	cleaned := normalizeReply(reply)
	if cleaned == "" {
		return "", false
	}

	for _, l := range vocabulary {
		if strings.EqualFold(cleaned, string(l)) {
			return l, true
		}
	}

	// Replies like "The emotion is happy." still carry exactly one known word
	var found Label
	matches := 0
	for _, word := range strings.Fields(cleaned) {
		for _, l := range vocabulary {
			if strings.EqualFold(word, string(l)) && found != l {
				found = l
				matches++
			}
		}
	}
	if matches == 1 {
		return found, true
	}
	return "", false
}

func normalizeReply(reply string) string {
	fields := strings.FieldsFunc(reply, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(strings.Join(fields, " "))
}

// JoinLabels renders labels as a comma separated list
func JoinLabels(labels []Label) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
