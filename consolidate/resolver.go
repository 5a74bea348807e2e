package consolidate

import (
	"context"
	"fmt"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/reconcile"
)

// ImportStore is the slice of the record store consolidation reads from
type ImportStore interface {
	ListImportRecordsByProfile(ctx context.Context, profileID string) ([]*models.ImportRecord, error)
	ListStandaloneImportRecords(ctx context.Context) ([]*models.ImportRecord, error)
}

// Resolver merges canonical profiles with their spreadsheet-import data at
// read time. It never mutates stored entities: resolving the same inputs
// twice yields identical output.
type Resolver struct {
	store ImportStore
}

// NewResolver creates a new consolidation resolver
func NewResolver(store ImportStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve projects a canonical profile through its most recent linked
// import record. Import data wins on overlapping fields. A profile with no
// linked records comes back unchanged, tagged Canonical.
func (r *Resolver) Resolve(ctx context.Context, profile *models.CandidateProfile) (*models.ConsolidatedProfile, error) {
	records, err := r.store.ListImportRecordsByProfile(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load import records for profile %s: %w", profile.ID, err)
	}

	consolidated := &models.ConsolidatedProfile{
		CandidateProfile: *profile,
		Variant:          models.VariantCanonical,
	}

	latest := latestRecord(records)
	if latest == nil {
		return consolidated, nil
	}

	overlay(consolidated, latest)
	consolidated.Variant = models.VariantMerged
	consolidated.Import = &models.ImportMeta{
		BatchID:    latest.BatchID,
		FileName:   latest.FileName,
		ImportedAt: latest.CreatedAt,
		Status:     string(latest.Status),
		MatchedBy:  string(latest.MatchedBy),
	}

	return consolidated, nil
}

// ListStandalone converts every import record that never linked to a
// canonical profile into a synthetic read-only profile view, so listings
// surface candidates that only ever existed as spreadsheet rows.
func (r *Resolver) ListStandalone(ctx context.Context) ([]*models.ConsolidatedProfile, error) {
	records, err := r.store.ListStandaloneImportRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load standalone import records: %w", err)
	}

	profiles := make([]*models.ConsolidatedProfile, 0, len(records))
	for _, record := range records {
		profiles = append(profiles, SyntheticProfile(record))
	}

	return profiles, nil
}

// SyntheticProfile builds the profile-shaped view of one unlinked import
// record
func SyntheticProfile(record *models.ImportRecord) *models.ConsolidatedProfile {
	id := record.ProfileID
	if id == "" {
		id = record.ID
	}

	first, last := reconcile.SplitName(record.CandidateName)

	return &models.ConsolidatedProfile{
		CandidateProfile: models.CandidateProfile{
			ID:        id,
			Email:     record.Email,
			Phone:     record.Phone,
			FirstName: first,
			LastName:  last,
			Source:    models.SourceImport,
			Active:    true,
			CreatedAt: record.CreatedAt,
			UpdatedAt: record.CreatedAt,
		},
		Variant:           models.VariantSynthetic,
		ExperienceSummary: record.ExperienceSummary,
		CurrentCompany:    record.CurrentCompany,
		CurrentCTC:        record.CurrentCTC,
		ExpectedCTC:       record.ExpectedCTC,
		NoticePeriod:      record.NoticePeriod,
		Locations:         record.Locations,
		Availability:      record.Availability,
		Import: &models.ImportMeta{
			BatchID:    record.BatchID,
			FileName:   record.FileName,
			ImportedAt: record.CreatedAt,
			Status:     string(record.Status),
			MatchedBy:  string(record.MatchedBy),
		},
	}
}

// latestRecord picks the most recently created record; consolidation always
// uses the newest re-import of a candidate
func latestRecord(records []*models.ImportRecord) *models.ImportRecord {
	var latest *models.ImportRecord
	for _, record := range records {
		if latest == nil || record.CreatedAt.After(latest.CreatedAt) {
			latest = record
		}
	}
	return latest
}

// overlay applies the import record's non-empty fields onto the
// consolidated view; import data takes precedence on conflict
func overlay(c *models.ConsolidatedProfile, record *models.ImportRecord) {
	if record.CandidateName != "" {
		c.FirstName, c.LastName = reconcile.SplitName(record.CandidateName)
	}
	if record.Email != "" {
		c.Email = record.Email
	}
	if record.Phone != "" {
		c.Phone = record.Phone
	}
	if record.ExperienceSummary != "" {
		c.ExperienceSummary = record.ExperienceSummary
	}
	if record.CurrentCompany != "" {
		c.CurrentCompany = record.CurrentCompany
	}
	if record.CurrentCTC != "" {
		c.CurrentCTC = record.CurrentCTC
	}
	if record.ExpectedCTC != "" {
		c.ExpectedCTC = record.ExpectedCTC
	}
	if record.NoticePeriod != "" {
		c.NoticePeriod = record.NoticePeriod
	}
	if len(record.Locations) > 0 {
		c.Locations = record.Locations
	}
	if record.Availability != "" {
		c.Availability = record.Availability
	}
}
