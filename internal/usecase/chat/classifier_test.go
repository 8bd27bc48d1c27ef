package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/medassist/medassist-backend/internal/entity"
)

func TestClassify_RuleBased(t *testing.T) {
	// The rule path must never reach the model.
	chat := &fakeChat{respond: func(messages []entity.PromptMessage) (string, error) {
		return "", errors.New("model must not be called")
	}}
	classifier := NewQueryClassifier(chat)

	tests := []struct {
		name  string
		query string
		want  entity.IntentFlag
	}{
		{
			name:  "diet query",
			query: "What diet is recommended for diabetes?",
			want:  entity.FlagDietaryGuidance,
		},
		{
			name:  "emergency outranks diet",
			query: "I have chest pain, what diet should I follow?",
			want:  entity.FlagEmergency,
		},
		{
			name:  "lifestyle query",
			query: "How much exercise do I need per week?",
			want:  entity.FlagLifestyleAdvice,
		},
		{
			name:  "disease management",
			query: "How do I manage hypertension long term?",
			want:  entity.FlagDiseaseManage,
		},
		{
			name:  "symptom check",
			query: "My child has a fever, is that serious?",
			want:  entity.FlagSymptomCheck,
		},
		{
			name:  "general education",
			query: "Tell me about vaccination schedules",
			want:  entity.FlagGeneralEducation,
		},
		{
			name:  "case insensitive",
			query: "SHORTNESS OF BREATH after climbing stairs",
			want:  entity.FlagEmergency,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Classify(context.Background(), tt.query); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestClassify_ModelFallback(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     entity.IntentFlag
	}{
		{
			name:     "valid label",
			response: "disease_management",
			want:     entity.FlagDiseaseManage,
		},
		{
			name:     "label with whitespace and casing",
			response: "  Dietary_Guidance\n",
			want:     entity.FlagDietaryGuidance,
		},
		{
			name:     "label outside enumeration",
			response: "probably a diet question",
			want:     entity.FlagUnknown,
		},
		{
			name: "model failure",
			err:  errors.New("deployment down"),
			want: entity.FlagUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{respond: func(messages []entity.PromptMessage) (string, error) {
				return tt.response, tt.err
			}}
			classifier := NewQueryClassifier(chat)

			// No rule vocabulary matches this query.
			got := classifier.Classify(context.Background(), "How often do guidelines change?")
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
