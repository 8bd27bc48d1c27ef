package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/medassist/medassist-backend/internal/entity"
)

func TestGenerate_SafetyGate(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{
			name:   "clean answer passes",
			answer: "Limit sodium intake and increase physical activity.",
			want:   "Limit sodium intake and increase physical activity.",
		},
		{
			name:   "dosage term suppressed",
			answer: "Take 500 mg twice daily.",
			want:   RestrictedContentMessage,
		},
		{
			name:   "case insensitive match",
			answer: "Your Dosage should be adjusted.",
			want:   RestrictedContentMessage,
		},
		{
			name:   "term inside larger word suppressed",
			answer: "This may help diagnose the condition.",
			want:   RestrictedContentMessage,
		},
		{
			name:   "whole answer suppressed, not redacted",
			answer: "Eat vegetables. Also inject insulin as needed.",
			want:   RestrictedContentMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{respond: func(messages []entity.PromptMessage) (string, error) {
				return tt.answer, nil
			}}
			generator := NewAnswerGenerator(chat, 0.2, 450)

			got, err := generator.Generate(context.Background(), nil)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerate_ModelFailure(t *testing.T) {
	modelErr := errors.New("deployment down")
	chat := &fakeChat{respond: func(messages []entity.PromptMessage) (string, error) {
		return "", modelErr
	}}
	generator := NewAnswerGenerator(chat, 0.2, 450)

	_, err := generator.Generate(context.Background(), nil)
	if !errors.Is(err, modelErr) {
		t.Errorf("Generate() error = %v, want %v", err, modelErr)
	}
}

func TestGenerate_PassesSamplingParameters(t *testing.T) {
	var gotTemperature float32
	var gotMaxTokens int
	chat := &recordingChat{onComplete: func(temperature float32, maxTokens int) {
		gotTemperature = temperature
		gotMaxTokens = maxTokens
	}}
	generator := NewAnswerGenerator(chat, 0.2, 450)

	if _, err := generator.Generate(context.Background(), nil); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if gotTemperature != 0.2 || gotMaxTokens != 450 {
		t.Errorf("Generate() called model with temperature=%v maxTokens=%d, want 0.2/450", gotTemperature, gotMaxTokens)
	}
}

type recordingChat struct {
	onComplete func(temperature float32, maxTokens int)
}

func (r *recordingChat) Complete(ctx context.Context, messages []entity.PromptMessage, temperature float32, maxTokens int) (string, error) {
	r.onComplete(temperature, maxTokens)
	return "ok", nil
}
