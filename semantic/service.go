package semantic

import "context"

// EmbeddingKind tells the service what kind of text is being embedded
type EmbeddingKind string

const (
	KindProfile EmbeddingKind = "profile"
	KindJob     EmbeddingKind = "job"
)

// SimilarityResult is the outcome of comparing two embedding vectors
type SimilarityResult struct {
	// Similarity is in [0, 1]
	Similarity          float64 `json:"similarity"`
	KeywordMatch        float64 `json:"keyword_match,omitempty"`
	ContextualRelevance float64 `json:"contextual_relevance,omitempty"`
}

// ExtractedSkill is one skill pulled out of free text
type ExtractedSkill struct {
	Name       string  `json:"name"`
	Level      string  `json:"level,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// JobRequirements is the structured breakdown of a job's free text
type JobRequirements struct {
	Skills         []string `json:"skills,omitempty"`
	Experience     string   `json:"experience,omitempty"`
	Education      string   `json:"education,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
}

// Service is the external semantic collaborator. Callers treat every
// operation as fallible and wire an explicit fallback at the call site;
// a degraded service must never fail a scoring or import run.
type Service interface {
	GenerateEmbedding(ctx context.Context, kind EmbeddingKind, text string) ([]float32, error)
	Similarity(ctx context.Context, a, b []float32) (*SimilarityResult, error)
	ExtractSkills(ctx context.Context, text string) ([]ExtractedSkill, error)
	ExtractJobRequirements(ctx context.Context, text string) (*JobRequirements, error)
}
