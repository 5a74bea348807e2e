package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/storage"
)

type stubRankStore struct {
	job      *models.JobDescription
	profiles []*models.CandidateProfile

	saved   []*models.MatchResult
	saveErr error
}

func (s *stubRankStore) GetJob(_ context.Context, id string) (*models.JobDescription, error) {
	if s.job == nil || s.job.ID != id {
		return nil, storage.ErrNotFound
	}
	return s.job, nil
}

func (s *stubRankStore) GetCandidate(_ context.Context, id string) (*models.CandidateProfile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *stubRankStore) ListActiveCandidates(_ context.Context, limit int) ([]*models.CandidateProfile, error) {
	if limit < len(s.profiles) {
		return s.profiles[:limit], nil
	}
	return s.profiles, nil
}

func (s *stubRankStore) SaveMatchResults(_ context.Context, matches []*models.MatchResult) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = matches
	return nil
}

// passthroughResolver wraps profiles unchanged, optionally failing for one id
type passthroughResolver struct {
	failID string
}

func (r *passthroughResolver) Resolve(_ context.Context, profile *models.CandidateProfile) (*models.ConsolidatedProfile, error) {
	if r.failID != "" && profile.ID == r.failID {
		return nil, errors.New("consolidation broken")
	}
	return &models.ConsolidatedProfile{
		CandidateProfile: *profile,
		Variant:          models.VariantCanonical,
	}, nil
}

func rankJob() *models.JobDescription {
	return &models.JobDescription{
		ID:              "j-1",
		Title:           "Senior Backend Engineer",
		Description:     "Build APIs with Go and Kubernetes",
		Requirements:    "Computer Science degree",
		Skills:          []models.JobSkill{{Name: "Go", Importance: models.ImportanceRequired}},
		ExperienceLevel: models.LevelSenior,
	}
}

// Three profiles engineered to score, with the rankJob weights,
// 62 (strong), 58 (mid) and 3 (weak).
func rankProfiles() []*models.CandidateProfile {
	strong := &models.CandidateProfile{
		ID:         "strong",
		Skills:     []models.CandidateSkill{{Name: "Go"}},
		Experience: []models.ExperienceEntry{experienceYears(6)},
		Education:  []models.EducationEntry{{Degree: "BSc", Field: "Computer Science"}},
	}
	mid := &models.CandidateProfile{
		ID:         "mid",
		Skills:     []models.CandidateSkill{{Name: "Go"}},
		Experience: []models.ExperienceEntry{experienceYears(6)},
	}
	weak := &models.CandidateProfile{ID: "weak"}

	return []*models.CandidateProfile{weak, mid, strong}
}

func newTestRanker(store *stubRankStore, resolver ProfileResolver) *Ranker {
	engine := NewEngine(&stubSemantic{}, time.Second)
	return NewRanker(store, resolver, engine, 1000, 3)
}

func TestRankFiltersSortsAndTruncates(t *testing.T) {
	store := &stubRankStore{job: rankJob(), profiles: rankProfiles()}
	r := newTestRanker(store, &passthroughResolver{})

	resp, err := r.Rank(context.Background(), "j-1", 1, 50)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	// weak scores below 50 and is filtered before truncation.
	if resp.TotalMatches != 2 {
		t.Errorf("totalMatches = %d, want 2 (pre-truncation)", resp.TotalMatches)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("matches = %d, want limit applied", len(resp.Matches))
	}
	if resp.Matches[0].ProfileID != "strong" {
		t.Errorf("top match = %s, want strong", resp.Matches[0].ProfileID)
	}
	if resp.SkippedCount != 0 {
		t.Errorf("skipped = %d, want 0", resp.SkippedCount)
	}
	if resp.Job == nil || resp.Job.ID != "j-1" {
		t.Errorf("job = %+v, want echoed back", resp.Job)
	}
	if len(store.saved) != 1 {
		t.Errorf("persisted = %d, want the returned top match", len(store.saved))
	}
}

func TestRankSortsDescending(t *testing.T) {
	store := &stubRankStore{job: rankJob(), profiles: rankProfiles()}
	r := newTestRanker(store, &passthroughResolver{})

	resp, err := r.Rank(context.Background(), "j-1", 0, 0)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	if len(resp.Matches) != 3 {
		t.Fatalf("matches = %d, want all with minScore 0", len(resp.Matches))
	}
	for i := 1; i < len(resp.Matches); i++ {
		if resp.Matches[i].Score > resp.Matches[i-1].Score {
			t.Fatalf("matches not sorted descending: %d before %d",
				resp.Matches[i-1].Score, resp.Matches[i].Score)
		}
	}
}

func TestRankTieBreakPreservesCandidateOrder(t *testing.T) {
	twinA := &models.CandidateProfile{ID: "twin-a", Skills: []models.CandidateSkill{{Name: "Go"}}}
	twinB := &models.CandidateProfile{ID: "twin-b", Skills: []models.CandidateSkill{{Name: "Go"}}}

	store := &stubRankStore{job: rankJob(), profiles: []*models.CandidateProfile{twinA, twinB}}
	r := newTestRanker(store, &passthroughResolver{})

	resp, err := r.Rank(context.Background(), "j-1", 0, 0)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(resp.Matches))
	}
	if resp.Matches[0].ProfileID != "twin-a" || resp.Matches[1].ProfileID != "twin-b" {
		t.Errorf("tie order = %s, %s; want candidate order preserved",
			resp.Matches[0].ProfileID, resp.Matches[1].ProfileID)
	}
}

func TestRankSkipsFailingProfiles(t *testing.T) {
	store := &stubRankStore{job: rankJob(), profiles: rankProfiles()}
	r := newTestRanker(store, &passthroughResolver{failID: "mid"})

	resp, err := r.Rank(context.Background(), "j-1", 0, 0)
	if err != nil {
		t.Fatalf("a failing profile must not fail the run: %v", err)
	}

	if resp.SkippedCount != 1 {
		t.Errorf("skipped = %d, want 1", resp.SkippedCount)
	}
	for _, m := range resp.Matches {
		if m.ProfileID == "mid" {
			t.Error("skipped profile leaked into results")
		}
	}
}

func TestRankUnknownJobIsHardError(t *testing.T) {
	store := &stubRankStore{profiles: rankProfiles()}
	r := newTestRanker(store, &passthroughResolver{})

	if _, err := r.Rank(context.Background(), "missing", 0, 0); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRankPersistFailureIsNotFatal(t *testing.T) {
	store := &stubRankStore{job: rankJob(), profiles: rankProfiles(), saveErr: errors.New("bulk writer down")}
	r := newTestRanker(store, &passthroughResolver{})

	resp, err := r.Rank(context.Background(), "j-1", 0, 0)
	if err != nil {
		t.Fatalf("persistence failure must not invalidate the ranking: %v", err)
	}
	if len(resp.Matches) == 0 {
		t.Error("expected computed matches despite persistence failure")
	}
}

func TestScoreOne(t *testing.T) {
	store := &stubRankStore{job: rankJob(), profiles: rankProfiles()}
	r := newTestRanker(store, &passthroughResolver{})

	result, err := r.ScoreOne(context.Background(), "j-1", "strong")
	if err != nil {
		t.Fatalf("ScoreOne: %v", err)
	}
	if result.ProfileID != "strong" || result.JobID != "j-1" {
		t.Errorf("ids = %s/%s", result.JobID, result.ProfileID)
	}
	if result.Score <= 0 {
		t.Errorf("score = %d, want positive", result.Score)
	}

	if _, err := r.ScoreOne(context.Background(), "j-1", "ghost"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unknown profile", err)
	}
}
