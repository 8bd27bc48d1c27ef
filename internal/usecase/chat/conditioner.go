package chat

import (
	"strings"

	"github.com/medassist/medassist-backend/internal/entity"
)

// Cue terms marking a sentence as guideline-actionable. Matched
// case-insensitively as substrings.
var importantCues = []string{
	"should", "should not", "recommended", "must",
	"avoid", "limit", "prefer", "increase", "reduce",
}

// EvidenceConditioner reduces retrieved chunks to their guideline-relevant
// sentences and bounds the total context size.
type EvidenceConditioner struct {
	maxContextChars int
}

func NewEvidenceConditioner(maxContextChars int) *EvidenceConditioner {
	return &EvidenceConditioner{maxContextChars: maxContextChars}
}

// extractGuidelineSentences keeps only the sentences of text containing at
// least one cue term, rejoined with ". ". Returns "" when nothing matches.
func extractGuidelineSentences(text string) string {
	sentences := strings.Split(text, ".")

	var selected []string
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, cue := range importantCues {
			if strings.Contains(lower, cue) {
				selected = append(selected, strings.TrimSpace(sentence))
				break
			}
		}
	}

	return strings.Join(selected, ". ")
}

// Condition filters each candidate down to its cue sentences and applies a
// strict prefix truncation: accumulation stops at the first item that would
// push the total past the character budget, never resuming for later items.
// Relative input order is preserved; chunks with no cue sentence are dropped.
func (c *EvidenceConditioner) Condition(candidates []entity.ScoredCandidate) []entity.EvidenceItem {
	conditioned := make([]entity.EvidenceItem, 0, len(candidates))
	for _, candidate := range candidates {
		keyText := extractGuidelineSentences(candidate.Text)
		if keyText == "" {
			continue
		}
		conditioned = append(conditioned, entity.EvidenceItem{
			Content: keyText,
			Source:  candidate.ID,
		})
	}

	final := make([]entity.EvidenceItem, 0, len(conditioned))
	totalChars := 0
	for _, item := range conditioned {
		if totalChars+len(item.Content) > c.maxContextChars {
			break
		}
		final = append(final, item)
		totalChars += len(item.Content)
	}

	return final
}
