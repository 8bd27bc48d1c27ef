package chat

import (
	"strings"
	"testing"

	"github.com/medassist/medassist-backend/internal/entity"
)

func TestAssemble(t *testing.T) {
	assembler := NewPromptAssembler()

	evidence := []entity.EvidenceItem{
		{Content: "Patients should limit sodium intake.", Source: "chunk-1"},
		{Content: "Regular activity is recommended.", Source: "chunk-2"},
	}

	messages := assembler.Assemble("How do I lower blood pressure?", evidence, entity.FlagDiseaseManage)

	if len(messages) != 2 {
		t.Fatalf("Assemble() returned %d messages, want 2", len(messages))
	}
	if messages[0].Role != entity.RoleSystem {
		t.Errorf("first message role = %q, want system", messages[0].Role)
	}
	if !strings.Contains(messages[0].Content, "ONLY using the provided medical evidence") {
		t.Errorf("system message missing evidence-only instruction: %q", messages[0].Content)
	}

	user := messages[1]
	if user.Role != entity.RoleUser {
		t.Errorf("second message role = %q, want user", user.Role)
	}
	for _, want := range []string{
		"Question:\nHow do I lower blood pressure?",
		"[Evidence 1 | Source:chunk-1]\nPatients should limit sodium intake.",
		"[Evidence 2 | Source:chunk-2]\nRegular activity is recommended.",
		"Flag: disease_management",
		"Do not invent recommendations",
	} {
		if !strings.Contains(user.Content, want) {
			t.Errorf("user message missing %q:\n%s", want, user.Content)
		}
	}

	// Sections must appear in pipeline order: question, evidence,
	// constraints, flag.
	question := strings.Index(user.Content, "Question:")
	evidenceIdx := strings.Index(user.Content, "Evidence:")
	constraints := strings.Index(user.Content, "Answer Guidelines:")
	flag := strings.Index(user.Content, "Flag:")
	if !(question < evidenceIdx && evidenceIdx < constraints && constraints < flag) {
		t.Errorf("user message sections out of order:\n%s", user.Content)
	}
}

func TestAssemble_Deterministic(t *testing.T) {
	assembler := NewPromptAssembler()
	evidence := []entity.EvidenceItem{{Content: "text", Source: "c1"}}

	first := assembler.Assemble("query", evidence, entity.FlagUnknown)
	second := assembler.Assemble("query", evidence, entity.FlagUnknown)

	if first[1].Content != second[1].Content {
		t.Error("Assemble() is not deterministic for identical input")
	}
}

func TestAssemble_EmptyEvidence(t *testing.T) {
	assembler := NewPromptAssembler()

	messages := assembler.Assemble("query", nil, entity.FlagUnknown)
	if !strings.Contains(messages[1].Content, "Evidence:\n\n") {
		t.Errorf("empty evidence block missing from user message:\n%s", messages[1].Content)
	}
	if !strings.Contains(messages[0].Content, "Insufficient evidence in the provided guidelines.") {
		t.Errorf("system message missing insufficient-evidence instruction")
	}
}
