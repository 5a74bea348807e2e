package models

import "time"

// DataSource identifies how a candidate profile entered the system
type DataSource string

const (
	SourceManual DataSource = "manual"
	SourceImport DataSource = "spreadsheet-import"
	SourceAPI    DataSource = "api"
)

// CandidateProfile represents a canonical candidate record in Firestore
// @Description Canonical candidate record
type CandidateProfile struct {
	ID        string `json:"id" firestore:"-"`
	Email     string `json:"email" firestore:"email" example:"jane@example.com"`
	Phone     string `json:"phone,omitempty" firestore:"phone,omitempty"`
	FirstName string `json:"firstName" firestore:"firstName" example:"Jane"`
	LastName  string `json:"lastName,omitempty" firestore:"lastName,omitempty" example:"Doe"`

	Skills     []CandidateSkill  `json:"skills,omitempty" firestore:"skills,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty" firestore:"experience,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty" firestore:"education,omitempty"`

	// Free-text resume body, used for embedding generation
	ResumeText string `json:"resumeText,omitempty" firestore:"resumeText,omitempty"`

	// Precomputed semantic embedding; empty when embedding generation
	// failed or was never attempted
	Embedding []float32 `json:"-" firestore:"embedding,omitempty"`

	Source DataSource `json:"source" firestore:"source" example:"manual"`
	Active bool       `json:"active" firestore:"active"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// FullName returns the display name composed from the name parts
func (p *CandidateProfile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// CandidateSkill is a skill with a proficiency level
type CandidateSkill struct {
	Name  string `json:"name" firestore:"name" example:"Go"`
	Level string `json:"level,omitempty" firestore:"level,omitempty" example:"Expert"`
}

// ExperienceEntry represents one past position
type ExperienceEntry struct {
	Company      string     `json:"company" firestore:"company"`
	Title        string     `json:"title" firestore:"title"`
	StartDate    time.Time  `json:"startDate" firestore:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty" firestore:"endDate,omitempty"` // nil means current position
	Description  string     `json:"description,omitempty" firestore:"description,omitempty"`
	Technologies []string   `json:"technologies,omitempty" firestore:"technologies,omitempty"`
}

// EducationEntry represents one education record
type EducationEntry struct {
	Institution    string `json:"institution" firestore:"institution"`
	Degree         string `json:"degree" firestore:"degree" example:"Master of Science"`
	Field          string `json:"field,omitempty" firestore:"field,omitempty" example:"Computer Science"`
	GraduationYear int    `json:"graduationYear,omitempty" firestore:"graduationYear,omitempty"`
}

// ProfileVariant tags where a consolidated profile view came from
type ProfileVariant string

const (
	// VariantCanonical is a profile with no linked import records
	VariantCanonical ProfileVariant = "profile_only"
	// VariantMerged is a profile overlaid with its latest import record
	VariantMerged ProfileVariant = "merged_with_excel"
	// VariantSynthetic is a profile-shaped view of an unlinked import record
	VariantSynthetic ProfileVariant = "excel_only"
)

// ImportMeta carries provenance of the import record used during consolidation
type ImportMeta struct {
	BatchID    string    `json:"batchId"`
	FileName   string    `json:"fileName"`
	ImportedAt time.Time `json:"importedAt"`
	Status     string    `json:"status"`
	MatchedBy  string    `json:"matchedBy"`
}

// ConsolidatedProfile is the read-time projection of a profile merged with
// spreadsheet-import data. Variant tells downstream code which of the three
// shapes it is handling.
type ConsolidatedProfile struct {
	CandidateProfile
	Variant ProfileVariant `json:"variant"`

	// Spreadsheet-only fields overlaid from the import record
	ExperienceSummary string   `json:"experienceSummary,omitempty"`
	CurrentCompany    string   `json:"currentCompany,omitempty"`
	CurrentCTC        string   `json:"currentCtc,omitempty"`
	ExpectedCTC       string   `json:"expectedCtc,omitempty"`
	NoticePeriod      string   `json:"noticePeriod,omitempty"`
	Locations         []string `json:"locations,omitempty"`
	Availability      string   `json:"availability,omitempty"`

	Import *ImportMeta `json:"import,omitempty"`
}
