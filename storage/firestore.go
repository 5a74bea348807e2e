package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/talentmatch/backend/config"
	"github.com/talentmatch/backend/models"
)

const (
	candidatesCollection    = "candidates"
	jobsCollection          = "jobs"
	importRecordsCollection = "import_records"
	matchResultsCollection  = "match_results"
)

// Sentinel errors surfaced to callers so they can distinguish not-found and
// identity conflicts from infrastructure failures.
var (
	ErrNotFound      = errors.New("not found")
	ErrEmailConflict = errors.New("email already in use by an active profile")
)

// FirestoreClient wraps Firestore operations for all entity kinds
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient creates a new Firestore client
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*FirestoreClient, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreClient{client: client}, nil
}

// Close closes the Firestore client
func (f *FirestoreClient) Close() error {
	return f.client.Close()
}

// CreateCandidate creates a new candidate profile. Email uniqueness among
// active profiles is enforced; a conflict is a hard error and never merges
// silently.
func (f *FirestoreClient) CreateCandidate(ctx context.Context, profile *models.CandidateProfile) error {
	profile.Email = normalizeEmail(profile.Email)

	existing, err := f.GetCandidateByEmail(ctx, profile.Email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return ErrEmailConflict
	}

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	profile.Active = true
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	if _, err := f.client.Collection(candidatesCollection).Doc(profile.ID).Set(ctx, profile); err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}

	return nil
}

// GetCandidate retrieves a candidate profile by id
func (f *FirestoreClient) GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error) {
	doc, err := f.client.Collection(candidatesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	var profile models.CandidateProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse candidate data: %w", err)
	}

	profile.ID = doc.Ref.ID
	return &profile, nil
}

// GetCandidateByEmail retrieves an active candidate profile by email
func (f *FirestoreClient) GetCandidateByEmail(ctx context.Context, email string) (*models.CandidateProfile, error) {
	return f.findActiveCandidate(ctx, "email", normalizeEmail(email))
}

// normalizeEmail lowercases and trims an email so stored values and
// lookups agree regardless of how the address was entered.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetCandidateByPhone retrieves an active candidate profile by phone
func (f *FirestoreClient) GetCandidateByPhone(ctx context.Context, phone string) (*models.CandidateProfile, error) {
	return f.findActiveCandidate(ctx, "phone", phone)
}

func (f *FirestoreClient) findActiveCandidate(ctx context.Context, field, value string) (*models.CandidateProfile, error) {
	if value == "" {
		return nil, ErrNotFound
	}

	iter := f.client.Collection(candidatesCollection).
		Where(field, "==", value).
		Where("active", "==", true).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate by %s: %w", field, err)
	}

	var profile models.CandidateProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse candidate data: %w", err)
	}

	profile.ID = doc.Ref.ID
	return &profile, nil
}

// ListActiveCandidates returns up to limit active candidate profiles.
// The bound keeps the ranking working set at a predictable size.
func (f *FirestoreClient) ListActiveCandidates(ctx context.Context, limit int) ([]*models.CandidateProfile, error) {
	iter := f.client.Collection(candidatesCollection).
		Where("active", "==", true).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var profiles []*models.CandidateProfile
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list candidates: %w", err)
		}

		var profile models.CandidateProfile
		if err := doc.DataTo(&profile); err != nil {
			return nil, fmt.Errorf("failed to parse candidate data: %w", err)
		}
		profile.ID = doc.Ref.ID
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}

// UpdateCandidate applies field updates to a profile
func (f *FirestoreClient) UpdateCandidate(ctx context.Context, id string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now()

	_, err := f.client.Collection(candidatesCollection).Doc(id).Set(ctx, updates, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update candidate: %w", err)
	}

	return nil
}

// DeactivateCandidate soft-deletes a profile. Profiles are never physically
// removed.
func (f *FirestoreClient) DeactivateCandidate(ctx context.Context, id string) error {
	if _, err := f.GetCandidate(ctx, id); err != nil {
		return err
	}
	return f.UpdateCandidate(ctx, id, map[string]interface{}{"active": false})
}
