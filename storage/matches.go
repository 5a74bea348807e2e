package storage

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/talentmatch/backend/models"
)

// SaveMatchResults bulk-inserts a batch of match results using a Firestore
// BulkWriter. The whole batch is attempted; the first write error is
// returned after the writer drains.
func (f *FirestoreClient) SaveMatchResults(ctx context.Context, matches []*models.MatchResult) error {
	if len(matches) == 0 {
		return nil
	}

	bw := f.client.BulkWriter(ctx)

	var jobs []*firestore.BulkWriterJob
	for _, match := range matches {
		if match.ID == "" {
			match.ID = uuid.NewString()
		}
		match.CreatedAt = time.Now()

		ref := f.client.Collection(matchResultsCollection).Doc(match.ID)
		job, err := bw.Create(ref, match)
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to enqueue match result: %w", err)
		}
		jobs = append(jobs, job)
	}

	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("failed to save match result: %w", err)
		}
	}

	return nil
}

// GetMatchResult retrieves a match result by id
func (f *FirestoreClient) GetMatchResult(ctx context.Context, id string) (*models.MatchResult, error) {
	doc, err := f.client.Collection(matchResultsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}

	var match models.MatchResult
	if err := doc.DataTo(&match); err != nil {
		return nil, fmt.Errorf("failed to parse match result: %w", err)
	}

	match.ID = doc.Ref.ID
	return &match, nil
}

// UpdateMatchStatus applies a manual review transition to a match result
func (f *FirestoreClient) UpdateMatchStatus(ctx context.Context, id string, matchStatus models.MatchStatus, reviewerID, notes string) error {
	if _, err := f.GetMatchResult(ctx, id); err != nil {
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     string(matchStatus),
		"reviewedAt": now,
	}
	if reviewerID != "" {
		updates["reviewerId"] = reviewerID
	}
	if notes != "" {
		updates["notes"] = notes
	}

	if _, err := f.client.Collection(matchResultsCollection).Doc(id).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update match status: %w", err)
	}

	return nil
}
