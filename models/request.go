package models

// CreateCandidateRequest represents the API request to create a profile
// @Description Manual/API candidate creation request
type CreateCandidateRequest struct {
	Email      string            `json:"email" binding:"required,email" example:"jane@example.com"`
	Phone      string            `json:"phone,omitempty"`
	FirstName  string            `json:"firstName" binding:"required" example:"Jane"`
	LastName   string            `json:"lastName,omitempty" example:"Doe"`
	Skills     []CandidateSkill  `json:"skills,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`
	ResumeText string            `json:"resumeText,omitempty"`
}

// UpdateCandidateRequest represents a profile update; email is the
// identity anchor and stays immutable
// @Description Candidate profile update request
type UpdateCandidateRequest struct {
	Phone      string            `json:"phone,omitempty"`
	FirstName  string            `json:"firstName,omitempty"`
	LastName   string            `json:"lastName,omitempty"`
	Skills     []CandidateSkill  `json:"skills,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`
	ResumeText string            `json:"resumeText,omitempty"`
}

// CreateJobRequest represents the API request to create a job
// @Description Job creation request
type CreateJobRequest struct {
	Title           string     `json:"title" binding:"required" example:"Senior Backend Engineer"`
	Company         string     `json:"company" binding:"required" example:"Acme Corp"`
	Description     string     `json:"description" binding:"required"`
	Requirements    string     `json:"requirements,omitempty"`
	Skills          []JobSkill `json:"skills,omitempty"`
	ExperienceLevel string     `json:"experienceLevel" binding:"required" example:"Senior"`
}

// UpdateJobRequest represents a content update; identity fields are immutable
// @Description Job content update request
type UpdateJobRequest struct {
	Description     string     `json:"description,omitempty"`
	Requirements    string     `json:"requirements,omitempty"`
	Skills          []JobSkill `json:"skills,omitempty"`
	ExperienceLevel string     `json:"experienceLevel,omitempty"`
}

// ImportRowError describes one row that failed identity validation
type ImportRowError struct {
	RowNumber int    `json:"rowNumber" example:"7"`
	Reason    string `json:"reason" example:"row has neither email nor phone"`
}

// ImportSummary is the batch outcome returned by the reconciliation pipeline
// @Description Per-batch import summary with explicit counters
type ImportSummary struct {
	ImportBatchID    string           `json:"importBatchId"`
	Processed        int              `json:"processed" example:"120"`
	Created          int              `json:"created" example:"80"`
	LinkedToExisting int              `json:"linkedToExisting" example:"35"`
	Errors           []ImportRowError `json:"errors,omitempty"`
	RecordIDs        []string         `json:"recordIds,omitempty"`
}

// ValidateStructureResponse reports whether uploaded headers carry identity
type ValidateStructureResponse struct {
	Valid               bool   `json:"valid"`
	MissingIdentityKind string `json:"missingIdentityKind,omitempty" example:"email_or_phone"`
}

// RankRequest represents a ranking request for one job
// @Description Ranking request parameters
type RankRequest struct {
	Limit    int `json:"limit,omitempty" form:"limit" example:"20"`
	MinScore int `json:"minScore,omitempty" form:"min_score" example:"40"`
}

// RankResponse represents the ranked match list for a job
// @Description Ranked matches for a job
type RankResponse struct {
	Matches      []MatchResult   `json:"matches"`
	TotalMatches int             `json:"totalMatches" example:"12"`
	SkippedCount int             `json:"skippedCount,omitempty" example:"1"`
	Job          *JobDescription `json:"job,omitempty"`
}

// UpdateMatchStatusRequest represents a manual review transition
// @Description Match status update request
type UpdateMatchStatusRequest struct {
	Status MatchStatus `json:"status" binding:"required" example:"Shortlisted"`
	Notes  string      `json:"notes,omitempty"`
}

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty" example:"email is required"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp" example:"2024-01-15T10:30:00Z"`
}
