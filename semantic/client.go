package semantic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/talentmatch/backend/config"
)

// Client implements Service on top of Vertex AI: the embedding model for
// vectors and Gemini for structured extraction.
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	embedder  *genai.EmbeddingModel
	modelName string
}

// NewClient creates a new Vertex AI semantic client
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)

	// Low temperature for consistent structured outputs
	model.SetTemperature(0.2)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)

	return &Client{
		client:    client,
		model:     model,
		embedder:  client.EmbeddingModel(cfg.EmbeddingModel),
		modelName: cfg.GeminiModel,
	}, nil
}

// Close closes the underlying Vertex AI client
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateEmbedding returns an embedding vector for the given text
func (c *Client) GenerateEmbedding(ctx context.Context, kind EmbeddingKind, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("cannot embed empty text")
	}

	resp, err := c.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed for %s: %w", kind, err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, errors.New("empty embedding response")
	}

	return resp.Embedding.Values, nil
}

// Similarity compares two embedding vectors. The similarity component is
// cosine similarity clamped to [0, 1].
func (c *Client) Similarity(_ context.Context, a, b []float32) (*SimilarityResult, error) {
	sim, err := cosineSimilarity(a, b)
	if err != nil {
		return nil, err
	}

	return &SimilarityResult{Similarity: sim}, nil
}

// ExtractSkills pulls structured skills out of resume or job text
func (c *Client) ExtractSkills(ctx context.Context, text string) ([]ExtractedSkill, error) {
	prompt := fmt.Sprintf(`Extract the technical and professional skills mentioned in the following text.
Return a JSON array, one object per skill:

[
  {"name": "Go", "level": "Expert", "confidence": 0.9}
]

Use level values Beginner, Intermediate or Expert; omit level when it cannot be inferred.
Confidence is 0-1.

TEXT:
%s

Return ONLY the JSON array, no markdown formatting, no explanation.`, text)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var skills []ExtractedSkill
	if err := json.Unmarshal([]byte(raw), &skills); err != nil {
		log.Printf("[Semantic] Failed to parse skills response: %s", raw)
		return nil, fmt.Errorf("failed to parse skills JSON: %w", err)
	}

	return skills, nil
}

// ExtractJobRequirements pulls a structured requirement breakdown out of a
// job's free text
func (c *Client) ExtractJobRequirements(ctx context.Context, text string) (*JobRequirements, error) {
	prompt := fmt.Sprintf(`Extract the requirements from the following job description.
Return a JSON object:

{
  "skills": ["skill1", "skill2"],
  "experience": "e.g. 5+ years backend development",
  "education": "e.g. Bachelor's in Computer Science",
  "certifications": ["AWS Certified"]
}

Use null or empty arrays for missing data.

JOB TEXT:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, text)

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var reqs JobRequirements
	if err := json.Unmarshal([]byte(raw), &reqs); err != nil {
		log.Printf("[Semantic] Failed to parse requirements response: %s", raw)
		return nil, fmt.Errorf("failed to parse requirements JSON: %w", err)
	}

	return &reqs, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", errors.New("no response from Gemini")
	}

	return cleanJSON(text), nil
}

// cosineSimilarity computes the cosine similarity of two vectors, clamped
// to [0, 1] so downstream percentage scaling stays in range
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, errors.New("cannot compare empty vectors")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("cannot compare zero vectors")
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}

	return sim, nil
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

func cleanJSON(text string) string {
	// Remove markdown code blocks if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
