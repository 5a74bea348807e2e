package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/storage"
)

// Store is the slice of the record store the pipeline needs: identity
// lookups for deduplication and append-only import record writes.
type Store interface {
	GetCandidateByEmail(ctx context.Context, email string) (*models.CandidateProfile, error)
	GetCandidateByPhone(ctx context.Context, phone string) (*models.CandidateProfile, error)
	CreateImportRecord(ctx context.Context, record *models.ImportRecord) error
}

// Pipeline reconciles spreadsheet rows against canonical candidate profiles
type Pipeline struct {
	store Store
}

// NewPipeline creates a new reconciliation pipeline
func NewPipeline(store Store) *Pipeline {
	return &Pipeline{store: store}
}

// ErrNoDataRows is returned for a spreadsheet with a header but no rows
var ErrNoDataRows = errors.New("spreadsheet contains no data rows")

// ProcessRows runs the reconciliation pipeline over one parsed spreadsheet.
// batchID is generated once per run by the caller and shared by every
// record the run produces. Rows are processed sequentially so row order
// determines rowNumber and error attribution; a bad row records an error
// outcome and never aborts the batch.
func (p *Pipeline) ProcessRows(ctx context.Context, batchID, fileName string, rows []map[string]string) (*models.ImportSummary, error) {
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	summary := &models.ImportSummary{ImportBatchID: batchID}

	for i, raw := range rows {
		// Header occupies sheet row 1, the first data row is row 2.
		rowNumber := i + 2

		record, rowErr := p.processRow(ctx, batchID, fileName, rowNumber, raw)
		if rowErr != nil {
			summary.Errors = append(summary.Errors, models.ImportRowError{
				RowNumber: rowNumber,
				Reason:    rowErr.Error(),
			})
		}
		if record == nil {
			continue
		}

		if err := p.store.CreateImportRecord(ctx, record); err != nil {
			log.Printf("[Reconcile] Failed to persist import record for row %d: %v", rowNumber, err)
			// One error entry per row: rows that already failed
			// validation keep the validation reason.
			if rowErr == nil {
				summary.Errors = append(summary.Errors, models.ImportRowError{
					RowNumber: rowNumber,
					Reason:    fmt.Sprintf("failed to persist import record: %v", err),
				})
			}
			continue
		}

		summary.RecordIDs = append(summary.RecordIDs, record.ID)

		switch record.Status {
		case models.ImportLinkedExisting:
			summary.Processed++
			summary.LinkedToExisting++
		case models.ImportCreatedProfile:
			summary.Processed++
			summary.Created++
		}
	}

	log.Printf("[Reconcile] Batch %s: processed=%d created=%d linked=%d errors=%d",
		batchID, summary.Processed, summary.Created, summary.LinkedToExisting, len(summary.Errors))

	return summary, nil
}

// processRow maps, validates and deduplicates one row. It returns the
// import record to persist (possibly an error-status record) and the row
// error, if any.
func (p *Pipeline) processRow(ctx context.Context, batchID, fileName string, rowNumber int, raw map[string]string) (*models.ImportRecord, error) {
	mapped := NormalizeRow(raw)

	email := strings.ToLower(mapped[FieldEmail])
	phone := mapped[FieldPhone]

	record := &models.ImportRecord{
		ID:                uuid.NewString(),
		BatchID:           batchID,
		FileName:          fileName,
		RowNumber:         rowNumber,
		CandidateName:     mapped[FieldName],
		Email:             email,
		Phone:             phone,
		ExperienceSummary: mapped[FieldExperience],
		CurrentCompany:    mapped[FieldCompany],
		CurrentCTC:        mapped[FieldCurrentCTC],
		ExpectedCTC:       mapped[FieldExpectedCTC],
		NoticePeriod:      mapped[FieldNoticePeriod],
		Locations:         splitLocations(mapped[FieldLocations]),
		Availability:      mapped[FieldAvailability],
		Status:            models.ImportProcessed,
		MatchedBy:         models.MatchedByNone,
	}

	// A row without any identity cannot be reconciled.
	if email == "" && phone == "" {
		err := errors.New("row has neither email nor phone")
		record.Status = models.ImportError
		record.Error = err.Error()
		return record, err
	}

	if record.CandidateName == "" {
		record.CandidateName = DeriveDisplayName(email)
	}

	profile, matchedBy, err := p.findExisting(ctx, email, phone)
	if err != nil {
		record.Status = models.ImportError
		record.Error = err.Error()
		return record, fmt.Errorf("profile lookup failed: %w", err)
	}

	if profile != nil {
		record.Status = models.ImportLinkedExisting
		record.MatchedBy = matchedBy
		record.ProfileID = profile.ID
		return record, nil
	}

	// No match: generate the placeholder identity this row's eventual
	// profile will use. The placeholder is not a profile yet.
	record.Status = models.ImportCreatedProfile
	record.ProfileID = uuid.NewString()
	return record, nil
}

// findExisting looks an active profile up by email first, then phone, and
// reports which identity fields agreed with the found profile
func (p *Pipeline) findExisting(ctx context.Context, email, phone string) (*models.CandidateProfile, models.MatchedBy, error) {
	if email != "" {
		profile, err := p.store.GetCandidateByEmail(ctx, email)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, models.MatchedByNone, err
		}
		if profile != nil {
			if phone != "" && profile.Phone == phone {
				return profile, models.MatchedByBoth, nil
			}
			return profile, models.MatchedByEmail, nil
		}
	}

	if phone != "" {
		profile, err := p.store.GetCandidateByPhone(ctx, phone)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, models.MatchedByNone, err
		}
		if profile != nil {
			return profile, models.MatchedByPhone, nil
		}
	}

	return nil, models.MatchedByNone, nil
}

// DeriveDisplayName builds a display name from the email local-part,
// capitalized. Used when a row carries no candidate name.
func DeriveDisplayName(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return ""
	}

	// Dots and underscores in local-parts usually separate name tokens.
	local = strings.NewReplacer(".", " ", "_", " ").Replace(local)

	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SplitName splits a display name into first/last parts. Middle tokens
// fold into the last name.
func SplitName(name string) (first, last string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}

func splitLocations(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})

	locations := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			locations = append(locations, trimmed)
		}
	}
	return locations
}
