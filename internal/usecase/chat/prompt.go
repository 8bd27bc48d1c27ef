package chat

import (
	"fmt"
	"strings"

	"github.com/medassist/medassist-backend/internal/entity"
)

const systemPrompt = `You are MedAssist, a clinical guideline summarization assistant.

You must answer ONLY using the provided medical evidence.
If the evidence is insufficient or missing, say:
"Insufficient evidence in the provided guidelines."

Do NOT use prior medical knowledge.
Do NOT provide diagnosis.
Do NOT provide medication dosages.
If the question is outside clinical guidelines, say:
"Question outside clinical guidelines."
If the question indicates a medical emergency, say:
"Medical emergency detected. Please seek immediate medical attention."`

const answerConstraints = `Answer Guidelines:
- Use bullet points where appropriate
- Be concise and clinically neutral
- Do not invent recommendations
- Do not add external facts
- If recommendations vary, mention the variation`

// PromptAssembler builds the system/user message pair handed to generation.
// Pure and deterministic: the output is a function of its inputs only.
type PromptAssembler struct{}

func NewPromptAssembler() *PromptAssembler {
	return &PromptAssembler{}
}

// Assemble returns the ordered prompt messages for a query, its conditioned
// evidence and its classification flag.
func (a *PromptAssembler) Assemble(query string, evidence []entity.EvidenceItem, flag entity.IntentFlag) []entity.PromptMessage {
	var user strings.Builder

	user.WriteString("Task:\n")
	user.WriteString("Answer the following clinical question based strictly on the evidence below.\n\n")
	user.WriteString("Question:\n")
	user.WriteString(query)
	user.WriteString("\n\nEvidence:\n")
	user.WriteString(buildEvidenceBlock(evidence))
	user.WriteString("\n\n")
	user.WriteString(answerConstraints)
	user.WriteString(fmt.Sprintf("\n\nFlag: %s", flag))

	return []entity.PromptMessage{
		{Role: entity.RoleSystem, Content: systemPrompt},
		{Role: entity.RoleUser, Content: user.String()},
	}
}

// buildEvidenceBlock enumerates the evidence, each item labeled with its
// position and originating chunk id.
func buildEvidenceBlock(evidence []entity.EvidenceItem) string {
	lines := make([]string, 0, len(evidence))
	for i, item := range evidence {
		lines = append(lines, fmt.Sprintf("[Evidence %d | Source:%s]\n%s", i+1, item.Source, item.Content))
	}
	return strings.Join(lines, "\n\n")
}
