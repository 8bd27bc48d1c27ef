package chat

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/medassist/medassist-backend/internal/entity"
	"go.uber.org/zap"
)

// Rule vocabularies, checked in priority order. The emergency set is checked
// first so that a query mentioning both chest pain and diet flags as an
// emergency.
var (
	emergencyTerms = []string{
		"chest pain", "shortness of breath", "difficulty breathing",
		"loss of consciousness", "seizure", "severe bleeding",
		"stroke", "heart attack", "sudden weakness",
	}

	dietTerms = []string{
		"diet", "food", "eat", "nutrition", "meal", "dietary",
	}

	lifestyleTerms = []string{
		"exercise", "physical activity", "sleep", "stress",
		"lifestyle", "habits",
	}

	diseaseTerms = []string{
		"diabetes", "hypertension", "asthma",
		"heart disease", "thyroid", "cancer",
	}

	symptomTerms = []string{
		"symptoms", "pain", "fever", "cough", "headache",
		"nausea", "vomiting", "dizziness",
	}

	generalEducationTerms = []string{
		"what is", "information about", "tell me about",
		"explain", "define", "treatments",
	}
)

const intentSystemPrompt = `You are a medical query classifier.

You MUST return exactly ONE label from this list:
dietary_guidance
lifestyle_advice
disease_management
symptom_check
emergency_flag
general_education

Rules:
- Output ONLY the label
- No punctuation
- No explanation
- No extra text
- If the query indicates a potential medical emergency,
  classify it as "emergency_flag"`

// QueryClassifier assigns exactly one intent flag per query: rule-based
// keyword matching first, model-based classification as fallback.
type QueryClassifier struct {
	chat ChatModel
}

func NewQueryClassifier(chat ChatModel) *QueryClassifier {
	return &QueryClassifier{chat: chat}
}

// Classify is total: it always returns a flag and never fails upward.
func (c *QueryClassifier) Classify(ctx context.Context, query string) entity.IntentFlag {
	if flag, ok := c.classifyRuleBased(query); ok {
		ctxzap.Debug(ctx, "query classified by rules", zap.String("flag", string(flag)))
		return flag
	}

	flag := c.classifyModel(ctx, query)
	ctxzap.Debug(ctx, "query classified by model", zap.String("flag", string(flag)))
	return flag
}

func (c *QueryClassifier) classifyRuleBased(query string) (entity.IntentFlag, bool) {
	q := strings.ToLower(query)

	matchers := []struct {
		terms []string
		flag  entity.IntentFlag
	}{
		{emergencyTerms, entity.FlagEmergency},
		{dietTerms, entity.FlagDietaryGuidance},
		{lifestyleTerms, entity.FlagLifestyleAdvice},
		{diseaseTerms, entity.FlagDiseaseManage},
		{symptomTerms, entity.FlagSymptomCheck},
		{generalEducationTerms, entity.FlagGeneralEducation},
	}

	for _, m := range matchers {
		for _, term := range m.terms {
			if strings.Contains(q, term) {
				return m.flag, true
			}
		}
	}

	return entity.FlagUnknown, false
}

// classifyModel asks the chat model for a label. The returned text is
// validated against the closed enumeration; anything else, including a model
// failure, coerces to FlagUnknown instead of propagating an arbitrary label
// into the prompt.
func (c *QueryClassifier) classifyModel(ctx context.Context, query string) entity.IntentFlag {
	messages := []entity.PromptMessage{
		{Role: entity.RoleSystem, Content: intentSystemPrompt},
		{Role: entity.RoleUser, Content: query},
	}

	response, err := c.chat.Complete(ctx, messages, 0, 0)
	if err != nil {
		ctxzap.Warn(ctx, "model classification failed, flagging unknown", zap.Error(err))
		return entity.FlagUnknown
	}

	flag := entity.IntentFlag(strings.ToLower(strings.TrimSpace(response)))
	if !flag.Valid() {
		ctxzap.Warn(ctx, "model returned label outside enumeration, flagging unknown",
			zap.String("label", string(flag)),
		)
		return entity.FlagUnknown
	}
	return flag
}
