package matching

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/talentmatch/backend/models"
)

// RankStore is the slice of the record store ranking needs
type RankStore interface {
	GetJob(ctx context.Context, id string) (*models.JobDescription, error)
	GetCandidate(ctx context.Context, id string) (*models.CandidateProfile, error)
	ListActiveCandidates(ctx context.Context, limit int) ([]*models.CandidateProfile, error)
	SaveMatchResults(ctx context.Context, matches []*models.MatchResult) error
}

// ProfileResolver consolidates a canonical profile with its import data
// before scoring
type ProfileResolver interface {
	Resolve(ctx context.Context, profile *models.CandidateProfile) (*models.ConsolidatedProfile, error)
}

// Ranker scores every active candidate against one job and persists the
// ranked result set
type Ranker struct {
	store    RankStore
	resolver ProfileResolver
	engine   *Engine
	poolSize int // max candidates loaded per run
	workers  int // concurrent scoring goroutines
}

// NewRanker creates a new ranking orchestrator
func NewRanker(store RankStore, resolver ProfileResolver, engine *Engine, poolSize, workers int) *Ranker {
	if poolSize <= 0 {
		poolSize = 1000
	}
	if workers <= 0 {
		workers = 5
	}
	return &Ranker{
		store:    store,
		resolver: resolver,
		engine:   engine,
		poolSize: poolSize,
		workers:  workers,
	}
}

// Rank scores all active profiles against the job, keeps matches at or
// above minScore, sorts them by score descending (candidate order breaks
// ties) and persists the top limit results. An unknown job is a hard
// error; a profile that fails to score is skipped and counted, and a
// persistence failure is logged without invalidating the computed ranking.
func (r *Ranker) Rank(ctx context.Context, jobID string, limit, minScore int) (*models.RankResponse, error) {
	job, err := r.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}

	profiles, err := r.store.ListActiveCandidates(ctx, r.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	// Score concurrently but keep results slot-indexed so candidate order
	// is stable for tie-breaking.
	results := make([]*models.MatchResult, len(profiles))
	skipped := 0

	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, r.workers)

	for i, profile := range profiles {
		wg.Add(1)
		go func(slot int, p *models.CandidateProfile) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			match, err := r.scoreOne(ctx, job, p)
			if err != nil {
				log.Printf("[Ranker] Skipping profile %s: %v", p.ID, err)
				mu.Lock()
				skipped++
				mu.Unlock()
				return
			}

			results[slot] = match
		}(i, profile)
	}

	wg.Wait()

	var matches []*models.MatchResult
	for _, match := range results {
		if match != nil && match.Score >= minScore {
			matches = append(matches, match)
		}
	}

	totalMatches := len(matches)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	if err := r.store.SaveMatchResults(ctx, matches); err != nil {
		// The ranking is already computed; callers still get it.
		log.Printf("[Ranker] Failed to persist %d match results for job %s: %v", len(matches), jobID, err)
	}

	response := &models.RankResponse{
		Matches:      make([]models.MatchResult, 0, len(matches)),
		TotalMatches: totalMatches,
		SkippedCount: skipped,
		Job:          job,
	}
	for _, match := range matches {
		response.Matches = append(response.Matches, *match)
	}

	log.Printf("[Ranker] Job %s: %d candidates scored, %d matched, %d returned, %d skipped",
		jobID, len(profiles), totalMatches, len(response.Matches), skipped)

	return response, nil
}

// ScoreOne consolidates and scores a single profile; used for the direct
// score operation exposed to controllers. Unknown ids are hard errors.
func (r *Ranker) ScoreOne(ctx context.Context, jobID, profileID string) (*models.MatchResult, error) {
	job, err := r.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}

	profile, err := r.store.GetCandidate(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", profileID, err)
	}

	return r.scoreOne(ctx, job, profile)
}

func (r *Ranker) scoreOne(ctx context.Context, job *models.JobDescription, profile *models.CandidateProfile) (*models.MatchResult, error) {
	consolidated, err := r.resolver.Resolve(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("consolidation failed: %w", err)
	}

	return r.engine.ScoreCandidate(ctx, job, consolidated)
}
