package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/storage"
)

type stubStore struct {
	byEmail map[string]*models.CandidateProfile
	byPhone map[string]*models.CandidateProfile

	created   []*models.ImportRecord
	createErr error
}

func newStubStore() *stubStore {
	return &stubStore{
		byEmail: make(map[string]*models.CandidateProfile),
		byPhone: make(map[string]*models.CandidateProfile),
	}
}

func (s *stubStore) GetCandidateByEmail(_ context.Context, email string) (*models.CandidateProfile, error) {
	if p, ok := s.byEmail[email]; ok {
		return p, nil
	}
	return nil, storage.ErrNotFound
}

func (s *stubStore) GetCandidateByPhone(_ context.Context, phone string) (*models.CandidateProfile, error) {
	if p, ok := s.byPhone[phone]; ok {
		return p, nil
	}
	return nil, storage.ErrNotFound
}

func (s *stubStore) CreateImportRecord(_ context.Context, record *models.ImportRecord) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, record)
	return nil
}

func TestProcessRowsCreatesNewProfiles(t *testing.T) {
	store := newStubStore()
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Name": "Jane Doe", "Email": "jane@example.com"},
	}

	summary, err := p.ProcessRows(context.Background(), "batch-1", "candidates.xlsx", rows)
	if err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}

	if summary.Processed != 1 || summary.Created != 1 || summary.LinkedToExisting != 0 {
		t.Fatalf("summary = %+v, want 1 processed, 1 created", summary)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", summary.Errors)
	}

	record := store.created[0]
	if record.Status != models.ImportCreatedProfile {
		t.Errorf("status = %s, want %s", record.Status, models.ImportCreatedProfile)
	}
	if record.MatchedBy != models.MatchedByNone {
		t.Errorf("matchedBy = %s, want none", record.MatchedBy)
	}
	if record.BatchID != "batch-1" {
		t.Errorf("batchID = %s, want batch-1", record.BatchID)
	}
	if record.RowNumber != 2 {
		t.Errorf("rowNumber = %d, want 2 (header is row 1)", record.RowNumber)
	}
	if record.ProfileID == "" {
		t.Error("created row should carry a placeholder profile id")
	}
}

func TestProcessRowsLinksExistingByEmail(t *testing.T) {
	store := newStubStore()
	store.byEmail["jane@example.com"] = &models.CandidateProfile{ID: "p-1", Email: "jane@example.com", Phone: "111"}
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Email": "Jane@Example.com"},
	}

	summary, err := p.ProcessRows(context.Background(), "batch-1", "f.csv", rows)
	if err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}

	if summary.LinkedToExisting != 1 || summary.Created != 0 {
		t.Fatalf("summary = %+v, want 1 linked", summary)
	}

	record := store.created[0]
	if record.Status != models.ImportLinkedExisting {
		t.Errorf("status = %s, want linked_to_existing", record.Status)
	}
	if record.MatchedBy != models.MatchedByEmail {
		t.Errorf("matchedBy = %s, want email", record.MatchedBy)
	}
	if record.ProfileID != "p-1" {
		t.Errorf("profileID = %s, want p-1", record.ProfileID)
	}
	if record.Email != "jane@example.com" {
		t.Errorf("email = %s, want lowercased", record.Email)
	}
}

func TestProcessRowsMatchedByBoth(t *testing.T) {
	store := newStubStore()
	store.byEmail["jane@example.com"] = &models.CandidateProfile{ID: "p-1", Email: "jane@example.com", Phone: "555"}
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Email": "jane@example.com", "Phone": "555"},
	}

	summary, err := p.ProcessRows(context.Background(), "b", "f.csv", rows)
	if err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}
	if summary.LinkedToExisting != 1 {
		t.Fatalf("summary = %+v, want 1 linked", summary)
	}
	if got := store.created[0].MatchedBy; got != models.MatchedByBoth {
		t.Errorf("matchedBy = %s, want both", got)
	}
}

func TestProcessRowsFallsBackToPhone(t *testing.T) {
	store := newStubStore()
	store.byPhone["555"] = &models.CandidateProfile{ID: "p-2", Phone: "555"}
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Mobile Number": "555"},
	}

	_, err := p.ProcessRows(context.Background(), "b", "f.csv", rows)
	if err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}
	record := store.created[0]
	if record.MatchedBy != models.MatchedByPhone {
		t.Errorf("matchedBy = %s, want phone", record.MatchedBy)
	}
	if record.ProfileID != "p-2" {
		t.Errorf("profileID = %s, want p-2", record.ProfileID)
	}
}

func TestProcessRowsBadRowDoesNotAbortBatch(t *testing.T) {
	store := newStubStore()
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Name": "No Identity", "Current CTC": "10"},
		{"Email": "ok@example.com"},
	}

	summary, err := p.ProcessRows(context.Background(), "b", "f.xlsx", rows)
	if err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}

	if len(summary.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", summary.Errors)
	}
	if summary.Errors[0].RowNumber != 2 {
		t.Errorf("error rowNumber = %d, want 2", summary.Errors[0].RowNumber)
	}
	if summary.Created != 1 || summary.Processed != 1 {
		t.Errorf("summary = %+v, want the good row processed", summary)
	}

	// The bad row is still persisted with an error status for the audit trail.
	if len(store.created) != 2 {
		t.Fatalf("persisted records = %d, want 2", len(store.created))
	}
	if store.created[0].Status != models.ImportError {
		t.Errorf("bad row status = %s, want error", store.created[0].Status)
	}
}

func TestProcessRowsPersistFailureIsCollected(t *testing.T) {
	store := newStubStore()
	store.createErr = errors.New("firestore down")
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Email": "jane@example.com"},
	}

	summary, err := p.ProcessRows(context.Background(), "b", "f.csv", rows)
	if err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}
	if summary.Processed != 0 {
		t.Errorf("processed = %d, want 0 when persistence fails", summary.Processed)
	}
	if len(summary.Errors) != 1 {
		t.Errorf("errors = %v, want the persist failure surfaced", summary.Errors)
	}
}

func TestProcessRowsInvalidRowPersistFailureReportsOnce(t *testing.T) {
	store := newStubStore()
	store.createErr = errors.New("firestore down")
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Name": "No Identity"},
	}

	summary, err := p.ProcessRows(context.Background(), "b", "f.csv", rows)
	if err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one entry for the row", summary.Errors)
	}
	if got := summary.Errors[0].Reason; got != "row has neither email nor phone" {
		t.Errorf("reason = %q, want the validation failure", got)
	}
}

func TestProcessRowsPersistTerminalStatuses(t *testing.T) {
	store := newStubStore()
	store.byEmail["linked@example.com"] = &models.CandidateProfile{ID: "p-1", Email: "linked@example.com"}
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Email": "linked@example.com"},
		{"Email": "new@example.com"},
		{"Name": "No Identity"},
	}

	if _, err := p.ProcessRows(context.Background(), "b", "f.csv", rows); err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}
	for _, record := range store.created {
		if record.Status == models.ImportProcessed || record.Status == "" {
			t.Errorf("row %d persisted with non-terminal status %q", record.RowNumber, record.Status)
		}
	}
}

func TestProcessRowsEmptySheet(t *testing.T) {
	p := NewPipeline(newStubStore())

	if _, err := p.ProcessRows(context.Background(), "b", "f.csv", nil); !errors.Is(err, ErrNoDataRows) {
		t.Fatalf("err = %v, want ErrNoDataRows", err)
	}
}

func TestProcessRowsDerivesNameFromEmail(t *testing.T) {
	store := newStubStore()
	p := NewPipeline(store)

	rows := []map[string]string{
		{"Email": "john.smith@example.com"},
	}

	if _, err := p.ProcessRows(context.Background(), "b", "f.csv", rows); err != nil {
		t.Fatalf("ProcessRows: %v", err)
	}
	if got := store.created[0].CandidateName; got != "John Smith" {
		t.Errorf("candidateName = %q, want derived John Smith", got)
	}
}
