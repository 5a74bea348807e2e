package consolidate

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/talentmatch/backend/models"
)

type stubImportStore struct {
	byProfile  map[string][]*models.ImportRecord
	standalone []*models.ImportRecord
}

func (s *stubImportStore) ListImportRecordsByProfile(_ context.Context, profileID string) ([]*models.ImportRecord, error) {
	return s.byProfile[profileID], nil
}

func (s *stubImportStore) ListStandaloneImportRecords(_ context.Context) ([]*models.ImportRecord, error) {
	return s.standalone, nil
}

func TestResolveCanonicalOnly(t *testing.T) {
	r := NewResolver(&stubImportStore{})

	profile := &models.CandidateProfile{ID: "p-1", Email: "jane@example.com", FirstName: "Jane"}

	got, err := r.Resolve(context.Background(), profile)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got.Variant != models.VariantCanonical {
		t.Errorf("variant = %s, want profile_only", got.Variant)
	}
	if got.Import != nil {
		t.Error("canonical profile should carry no import meta")
	}
	if got.Email != "jane@example.com" || got.FirstName != "Jane" {
		t.Errorf("profile fields changed: %+v", got.CandidateProfile)
	}
}

func TestResolveMergesLatestImport(t *testing.T) {
	older := &models.ImportRecord{
		ID:             "r-1",
		BatchID:        "b-1",
		ProfileID:      "p-1",
		CurrentCompany: "Old Corp",
		CreatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	newer := &models.ImportRecord{
		ID:                "r-2",
		BatchID:           "b-2",
		FileName:          "latest.xlsx",
		ProfileID:         "p-1",
		CandidateName:     "Jane A Doe",
		Phone:             "555",
		CurrentCompany:    "New Corp",
		ExperienceSummary: "6 years",
		Status:            models.ImportLinkedExisting,
		MatchedBy:         models.MatchedByEmail,
		CreatedAt:         time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	store := &stubImportStore{byProfile: map[string][]*models.ImportRecord{
		"p-1": {older, newer},
	}}
	r := NewResolver(store)

	profile := &models.CandidateProfile{
		ID:        "p-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "111",
	}

	got, err := r.Resolve(context.Background(), profile)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got.Variant != models.VariantMerged {
		t.Errorf("variant = %s, want merged_with_excel", got.Variant)
	}
	if got.CurrentCompany != "New Corp" {
		t.Errorf("currentCompany = %q, want latest import to win", got.CurrentCompany)
	}
	if got.Phone != "555" {
		t.Errorf("phone = %q, want import value", got.Phone)
	}
	if got.FirstName != "Jane" || got.LastName != "A Doe" {
		t.Errorf("name = %q %q, want split from import", got.FirstName, got.LastName)
	}
	// Fields the import leaves empty keep the canonical value.
	if got.Email != "jane@example.com" {
		t.Errorf("email = %q, want canonical value kept", got.Email)
	}
	if got.Import == nil || got.Import.BatchID != "b-2" || got.Import.FileName != "latest.xlsx" {
		t.Errorf("import meta = %+v, want latest batch", got.Import)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	record := &models.ImportRecord{
		ID:             "r-1",
		ProfileID:      "p-1",
		CurrentCompany: "Corp",
		CreatedAt:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	store := &stubImportStore{byProfile: map[string][]*models.ImportRecord{"p-1": {record}}}
	r := NewResolver(store)

	profile := &models.CandidateProfile{ID: "p-1", Email: "a@b.c", FirstName: "A"}

	first, err := r.Resolve(context.Background(), profile)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := r.Resolve(context.Background(), profile)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolving twice differs:\n%+v\n%+v", first, second)
	}
	if profile.Phone != "" || profile.FirstName != "A" {
		t.Error("Resolve must not mutate the stored profile")
	}
}

func TestListStandalone(t *testing.T) {
	record := &models.ImportRecord{
		ID:            "r-9",
		BatchID:       "b-9",
		ProfileID:     "placeholder-1",
		CandidateName: "Sam Lee",
		Email:         "sam@example.com",
		Status:        models.ImportCreatedProfile,
		MatchedBy:     models.MatchedByNone,
		CreatedAt:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	r := NewResolver(&stubImportStore{standalone: []*models.ImportRecord{record}})

	profiles, err := r.ListStandalone(context.Background())
	if err != nil {
		t.Fatalf("ListStandalone: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("profiles = %d, want 1", len(profiles))
	}

	got := profiles[0]
	if got.Variant != models.VariantSynthetic {
		t.Errorf("variant = %s, want excel_only", got.Variant)
	}
	if got.ID != "placeholder-1" {
		t.Errorf("id = %s, want placeholder profile id", got.ID)
	}
	if got.FirstName != "Sam" || got.LastName != "Lee" {
		t.Errorf("name = %q %q", got.FirstName, got.LastName)
	}
	if got.Source != models.SourceImport {
		t.Errorf("source = %s, want spreadsheet-import", got.Source)
	}
	if !got.Active {
		t.Error("synthetic profile should be active")
	}
}

func TestSyntheticProfileFallsBackToRecordID(t *testing.T) {
	record := &models.ImportRecord{ID: "r-1", CandidateName: "X"}

	if got := SyntheticProfile(record); got.ID != "r-1" {
		t.Errorf("id = %s, want record id when no placeholder exists", got.ID)
	}
}
