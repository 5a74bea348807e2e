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

// CreateJob creates a new job description
func (f *FirestoreClient) CreateJob(ctx context.Context, job *models.JobDescription) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt

	if _, err := f.client.Collection(jobsCollection).Doc(job.ID).Set(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// GetJob retrieves a job description by id
func (f *FirestoreClient) GetJob(ctx context.Context, id string) (*models.JobDescription, error) {
	doc, err := f.client.Collection(jobsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	var job models.JobDescription
	if err := doc.DataTo(&job); err != nil {
		return nil, fmt.Errorf("failed to parse job data: %w", err)
	}

	job.ID = doc.Ref.ID
	return &job, nil
}

// UpdateJob applies content updates to a job. Identity (id, title, company)
// is immutable; callers only pass content fields.
func (f *FirestoreClient) UpdateJob(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	_, err := f.client.Collection(jobsCollection).Doc(id).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update job: %w", err)
	}

	return nil
}
