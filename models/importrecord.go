package models

import "time"

// ImportStatus is the outcome recorded for one spreadsheet row.
// ImportProcessed marks a mapped row before link resolution; every
// record settles on one of the other three statuses.
type ImportStatus string

const (
	ImportProcessed      ImportStatus = "processed"
	ImportLinkedExisting ImportStatus = "linked_to_existing"
	ImportCreatedProfile ImportStatus = "created_new_profile"
	ImportError          ImportStatus = "error"
)

// MatchedBy records which identity field linked a row to a profile
type MatchedBy string

const (
	MatchedByEmail MatchedBy = "email"
	MatchedByPhone MatchedBy = "phone"
	MatchedByBoth  MatchedBy = "both"
	MatchedByNone  MatchedBy = "none"
)

// ImportRecord is the append-only audit row produced from one spreadsheet
// row. Records are never deleted; after creation only the profile link and
// status may be updated.
// @Description Audit record for one imported spreadsheet row
type ImportRecord struct {
	ID        string `json:"id" firestore:"-"`
	BatchID   string `json:"batchId" firestore:"batchId"`
	FileName  string `json:"fileName" firestore:"fileName"`
	RowNumber int    `json:"rowNumber" firestore:"rowNumber"`

	// Normalized candidate fields mapped from the row
	CandidateName     string   `json:"candidateName,omitempty" firestore:"candidateName,omitempty"`
	Email             string   `json:"email,omitempty" firestore:"email,omitempty"`
	Phone             string   `json:"phone,omitempty" firestore:"phone,omitempty"`
	ExperienceSummary string   `json:"experienceSummary,omitempty" firestore:"experienceSummary,omitempty"`
	CurrentCompany    string   `json:"currentCompany,omitempty" firestore:"currentCompany,omitempty"`
	CurrentCTC        string   `json:"currentCtc,omitempty" firestore:"currentCtc,omitempty"`
	ExpectedCTC       string   `json:"expectedCtc,omitempty" firestore:"expectedCtc,omitempty"`
	NoticePeriod      string   `json:"noticePeriod,omitempty" firestore:"noticePeriod,omitempty"`
	Locations         []string `json:"locations,omitempty" firestore:"locations,omitempty"`
	Availability      string   `json:"availability,omitempty" firestore:"availability,omitempty"`

	// ProfileID links the record to a canonical profile. For rows that
	// matched nothing it holds the placeholder id generated by the
	// pipeline and the status is created_new_profile.
	ProfileID string `json:"profileId,omitempty" firestore:"profileId,omitempty"`

	// UserID is the legacy link field kept for records written before
	// profileId existed; consolidation falls back to it.
	UserID string `json:"userId,omitempty" firestore:"userId,omitempty"`

	Status    ImportStatus `json:"status" firestore:"status"`
	MatchedBy MatchedBy    `json:"matchedBy" firestore:"matchedBy"`
	Error     string       `json:"error,omitempty" firestore:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
