package models

import "time"

// SkillImportance classifies how much a job skill matters
type SkillImportance string

const (
	ImportanceRequired   SkillImportance = "Required"
	ImportancePreferred  SkillImportance = "Preferred"
	ImportanceNiceToHave SkillImportance = "Nice-to-have"
)

// ExperienceLevel constants
const (
	LevelEntry     = "Entry"
	LevelMid       = "Mid"
	LevelSenior    = "Senior"
	LevelLead      = "Lead"
	LevelExecutive = "Executive"
)

// JobSkill is a skill requirement on a job description
type JobSkill struct {
	Name       string          `json:"name" firestore:"name" example:"Go"`
	Importance SkillImportance `json:"importance" firestore:"importance" example:"Required"`
}

// JobDescription represents a job opening in Firestore
// @Description Job description with skill requirements
type JobDescription struct {
	ID           string     `json:"id" firestore:"-"`
	Title        string     `json:"title" firestore:"title" example:"Senior Backend Engineer"`
	Company      string     `json:"company" firestore:"company" example:"Acme Corp"`
	Description  string     `json:"description" firestore:"description"`
	Requirements string     `json:"requirements,omitempty" firestore:"requirements,omitempty"`
	Skills       []JobSkill `json:"skills,omitempty" firestore:"skills,omitempty"`

	// One of Entry, Mid, Senior, Lead, Executive
	ExperienceLevel string `json:"experienceLevel" firestore:"experienceLevel" example:"Senior"`

	// Precomputed semantic embedding over description+requirements
	Embedding []float32 `json:"-" firestore:"embedding,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// CombinedText returns the free text the scoring engine and embedding
// generation work against
func (j *JobDescription) CombinedText() string {
	if j.Requirements == "" {
		return j.Description
	}
	return j.Description + "\n" + j.Requirements
}

// NormalizeExperienceLevel normalizes various level spellings to the
// canonical band names
func NormalizeExperienceLevel(raw string) string {
	switch raw {
	case "entry", "ENTRY", "Entry", "junior", "Junior":
		return LevelEntry
	case "mid", "MID", "Mid", "middle", "intermediate":
		return LevelMid
	case "senior", "SENIOR", "Senior":
		return LevelSenior
	case "lead", "LEAD", "Lead", "principal", "staff":
		return LevelLead
	case "executive", "EXECUTIVE", "Executive", "director", "vp":
		return LevelExecutive
	default:
		return raw
	}
}
