package entity

// IntentFlag is the classified intent category attached to a query.
type IntentFlag string

const (
	FlagEmergency        IntentFlag = "emergency_flag"
	FlagDietaryGuidance  IntentFlag = "dietary_guidance"
	FlagLifestyleAdvice  IntentFlag = "lifestyle_advice"
	FlagDiseaseManage    IntentFlag = "disease_management"
	FlagSymptomCheck     IntentFlag = "symptom_check"
	FlagGeneralEducation IntentFlag = "general_education"
	FlagUnknown          IntentFlag = "unknown"
)

// IntentFlags lists every flag a classifier may assign. FlagUnknown is not
// included; it is the fallback when nothing else applies.
func IntentFlags() []IntentFlag {
	return []IntentFlag{
		FlagEmergency,
		FlagDietaryGuidance,
		FlagLifestyleAdvice,
		FlagDiseaseManage,
		FlagSymptomCheck,
		FlagGeneralEducation,
	}
}

// Valid reports whether f is a member of the closed flag enumeration.
func (f IntentFlag) Valid() bool {
	switch f {
	case FlagEmergency, FlagDietaryGuidance, FlagLifestyleAdvice,
		FlagDiseaseManage, FlagSymptomCheck, FlagGeneralEducation, FlagUnknown:
		return true
	}
	return false
}

// Chunk is a bounded window of ingested guideline text with a stable,
// URL-safe identifier. Two chunks are the same evidence iff their IDs match.
type Chunk struct {
	ID        string
	Content   string
	Embedding []float32
	Source    string
	Year      int
}

// VectorHit is one result of a vector-similarity lookup against the index.
type VectorHit struct {
	Text      string
	Embedding []float32
	Score     float64
	Source    string
	Year      int
}

// KeywordHit is one result of a lexical lookup against the index.
type KeywordHit struct {
	Text   string
	Score  float64
	Source string
	Year   int
}

// ScoredCandidate is a chunk plus the relevance scores assigned to it while
// serving a single query. Candidates are request-scoped and never persisted.
type ScoredCandidate struct {
	ID        string
	Text      string
	Embedding []float32
	Source    string
	Year      int

	// HybridScore is the fused vector/keyword score in [0,1].
	HybridScore float64
	// RelevanceScore is the model-assigned rating in [0,10]; zero when the
	// model response could not be parsed.
	RelevanceScore float64
}

// EvidenceItem is a chunk reduced to its guideline-relevant sentences,
// tagged with the identifier of the chunk it came from.
type EvidenceItem struct {
	Content string
	Source  string
}

// Prompt message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// PromptMessage is a role-tagged block of prompt text, immutable once built.
type PromptMessage struct {
	Role    string
	Content string
}
