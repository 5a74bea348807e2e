package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Google Cloud
	ProjectID string
	Location  string

	// Server
	Port  string
	Debug bool

	// Vertex AI models
	GeminiModel    string
	EmbeddingModel string

	// Matching
	MaxCandidatePool    int // upper bound on profiles loaded per ranking run
	DefaultMatchLimit   int
	DefaultMinScore     int
	ScoreWorkers        int // concurrent scoring goroutines per ranking run
	SemanticTimeoutSecs int // per-call timeout against the semantic service

	// Authentication
	JWTSecret      string
	JWTExpiryHours int

	// Cloud Storage
	ImportBucketName string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Google Cloud
		ProjectID: getEnv("PROJECT_ID", ""),
		Location:  getEnv("LOCATION", "us-central1"),

		// Server
		Port:  getEnv("PORT", "8080"),
		Debug: getEnvBool("DEBUG", false),

		// Vertex AI models
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),

		// Matching
		MaxCandidatePool:    getEnvInt("MAX_CANDIDATE_POOL", 1000),
		DefaultMatchLimit:   getEnvInt("DEFAULT_MATCH_LIMIT", 20),
		DefaultMinScore:     getEnvInt("DEFAULT_MIN_SCORE", 40),
		ScoreWorkers:        getEnvInt("SCORE_WORKERS", 5),
		SemanticTimeoutSecs: getEnvInt("SEMANTIC_TIMEOUT_SECONDS", 15),

		// Authentication
		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		// Cloud Storage
		ImportBucketName: getEnv("IMPORT_BUCKET_NAME", ""),
	}

	return cfg
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	// ProjectID is required for both Firestore and Vertex AI
	if c.ProjectID == "" {
		return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Firestore and Vertex AI"}
	}

	if c.MaxCandidatePool <= 0 {
		return &ConfigError{Field: "MAX_CANDIDATE_POOL", Message: "MAX_CANDIDATE_POOL must be positive"}
	}
	if c.ScoreWorkers <= 0 {
		return &ConfigError{Field: "SCORE_WORKERS", Message: "SCORE_WORKERS must be positive"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
