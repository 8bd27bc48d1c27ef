package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/medassist/medassist-backend/internal/entity"
)

// Validator checks incoming chat requests before they reach the pipeline.
type Validator struct {
	maxQueryLength int
}

func NewValidator(maxQueryLength int) *Validator {
	return &Validator{maxQueryLength: maxQueryLength}
}

// ValidateChatRequest rejects empty and oversized queries.
func (v *Validator) ValidateChatRequest(req *entity.ChatRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return entity.ErrEmptyQuery
	}

	if n := utf8.RuneCountInString(req.Query); n > v.maxQueryLength {
		return fmt.Errorf("%w: %d runes, limit %d", entity.ErrQueryTooLong, n, v.maxQueryLength)
	}

	return nil
}
