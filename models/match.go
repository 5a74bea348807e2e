package models

import "time"

// MatchStatus is the review state of a persisted match. Transitions are
// manual only; the ranking pipeline never changes status.
type MatchStatus string

const (
	MatchActive      MatchStatus = "Active"
	MatchReviewed    MatchStatus = "Reviewed"
	MatchShortlisted MatchStatus = "Shortlisted"
	MatchRejected    MatchStatus = "Rejected"
)

// ValidMatchStatus reports whether s is one of the allowed review states
func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchActive, MatchReviewed, MatchShortlisted, MatchRejected:
		return true
	}
	return false
}

// ScoreBreakdown holds the per-factor sub-scores and explainability data
// @Description Per-factor score breakdown for one match
type ScoreBreakdown struct {
	SkillsScore     int `json:"skillsScore" firestore:"skillsScore"`
	ExperienceScore int `json:"experienceScore" firestore:"experienceScore"`
	EducationScore  int `json:"educationScore" firestore:"educationScore"`
	SemanticScore   int `json:"semanticScore" firestore:"semanticScore"`

	MatchedSkills []string `json:"matchedSkills,omitempty" firestore:"matchedSkills,omitempty"`
	MissingSkills []string `json:"missingSkills,omitempty" firestore:"missingSkills,omitempty"`

	RelevantExperience []string `json:"relevantExperience,omitempty" firestore:"relevantExperience,omitempty"`
	RelevantEducation  []string `json:"relevantEducation,omitempty" firestore:"relevantEducation,omitempty"`

	Strengths       []string `json:"strengths,omitempty" firestore:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty" firestore:"weaknesses,omitempty"`
	Recommendations []string `json:"recommendations,omitempty" firestore:"recommendations,omitempty"`
}

// MatchResult is the persisted outcome of scoring one (job, profile) pair
// @Description Scored match between a job and a candidate
type MatchResult struct {
	ID        string `json:"id" firestore:"-"`
	JobID     string `json:"jobId" firestore:"jobId"`
	ProfileID string `json:"profileId" firestore:"profileId"`

	Score     int            `json:"score" firestore:"score"` // 0-100
	Breakdown ScoreBreakdown `json:"breakdown" firestore:"breakdown"`

	Status     MatchStatus `json:"status" firestore:"status"`
	ReviewerID string      `json:"reviewerId,omitempty" firestore:"reviewerId,omitempty"`
	Notes      string      `json:"notes,omitempty" firestore:"notes,omitempty"`
	ReviewedAt *time.Time  `json:"reviewedAt,omitempty" firestore:"reviewedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
