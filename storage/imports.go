package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/talentmatch/backend/models"
)

// CreateImportRecord persists one audit row. Import records are append-only;
// nothing ever deletes them.
func (f *FirestoreClient) CreateImportRecord(ctx context.Context, record *models.ImportRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = time.Now()

	if _, err := f.client.Collection(importRecordsCollection).Doc(record.ID).Set(ctx, record); err != nil {
		return fmt.Errorf("failed to create import record: %w", err)
	}

	return nil
}

// ListImportRecordsByProfile returns every import record linked to the
// profile id, checking the legacy userId field as well. Ordering is left to
// the caller; the result set is one record per re-import of the candidate.
func (f *FirestoreClient) ListImportRecordsByProfile(ctx context.Context, profileID string) ([]*models.ImportRecord, error) {
	records, err := f.queryImportRecords(ctx, "profileId", profileID)
	if err != nil {
		return nil, err
	}

	// Legacy records carry the link in userId instead.
	if len(records) == 0 {
		records, err = f.queryImportRecords(ctx, "userId", profileID)
		if err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (f *FirestoreClient) queryImportRecords(ctx context.Context, field, value string) ([]*models.ImportRecord, error) {
	iter := f.client.Collection(importRecordsCollection).
		Where(field, "==", value).
		Documents(ctx)
	defer iter.Stop()

	var records []*models.ImportRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query import records by %s: %w", field, err)
		}

		var record models.ImportRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, fmt.Errorf("failed to parse import record: %w", err)
		}
		record.ID = doc.Ref.ID
		records = append(records, &record)
	}

	return records, nil
}

// ListStandaloneImportRecords returns records whose status is
// created_new_profile, i.e. rows that never linked to a canonical profile
func (f *FirestoreClient) ListStandaloneImportRecords(ctx context.Context) ([]*models.ImportRecord, error) {
	iter := f.client.Collection(importRecordsCollection).
		Where("status", "==", string(models.ImportCreatedProfile)).
		Documents(ctx)
	defer iter.Stop()

	var records []*models.ImportRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list standalone import records: %w", err)
		}

		var record models.ImportRecord
		if err := doc.DataTo(&record); err != nil {
			return nil, fmt.Errorf("failed to parse import record: %w", err)
		}
		record.ID = doc.Ref.ID
		records = append(records, &record)
	}

	return records, nil
}
