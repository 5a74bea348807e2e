package matching

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/semantic"
)

// Sub-score weights of the overall match score
const (
	weightSkills     = 0.4
	weightExperience = 0.3
	weightEducation  = 0.1
	weightSemantic   = 0.2
)

// experienceBand is the expected total-experience range for a job level
type experienceBand struct {
	min, max float64
}

// experienceBands maps experience levels to year ranges. Jobs with a level
// outside this table score a neutral base.
var experienceBands = map[string]experienceBand{
	models.LevelEntry:     {0, 2},
	models.LevelMid:       {2, 5},
	models.LevelSenior:    {5, 10},
	models.LevelLead:      {7, 15},
	models.LevelExecutive: {10, 20},
}

const daysPerYear = 365.25

// Engine computes the deterministic multi-factor match score between one
// job and one candidate. The semantic service is the only external
// dependency; every call to it degrades to a zero contribution on failure.
type Engine struct {
	semantic        semantic.Service
	semanticTimeout time.Duration
}

// NewEngine creates a new scoring engine
func NewEngine(svc semantic.Service, semanticTimeout time.Duration) *Engine {
	return &Engine{
		semantic:        svc,
		semanticTimeout: semanticTimeout,
	}
}

// ScoreCandidate scores one consolidated profile against one job. The
// result carries no id; persistence is the orchestrator's concern. Output
// is deterministic given identical inputs and an identical (or absent)
// similarity response.
func (e *Engine) ScoreCandidate(ctx context.Context, job *models.JobDescription, profile *models.ConsolidatedProfile) (*models.MatchResult, error) {
	breakdown := models.ScoreBreakdown{}

	breakdown.SkillsScore, breakdown.MatchedSkills, breakdown.MissingSkills = scoreSkills(job, profile)
	breakdown.ExperienceScore, breakdown.RelevantExperience = scoreExperience(job, profile)
	breakdown.EducationScore, breakdown.RelevantEducation = scoreEducation(job, profile)
	breakdown.SemanticScore = e.scoreSemantic(ctx, job, profile)

	buildInsights(&breakdown)

	overall := int(math.Round(
		float64(breakdown.SkillsScore)*weightSkills +
			float64(breakdown.ExperienceScore)*weightExperience +
			float64(breakdown.EducationScore)*weightEducation +
			float64(breakdown.SemanticScore)*weightSemantic,
	))

	return &models.MatchResult{
		JobID:     job.ID,
		ProfileID: profile.ID,
		Score:     overall,
		Breakdown: breakdown,
		Status:    models.MatchActive,
	}, nil
}

// scoreSkills compares job skill names against profile skill names with
// case-insensitive exact matching. Required skills carry 70% of the
// sub-score, the remaining tiers 30%; an empty tier contributes nothing.
func scoreSkills(job *models.JobDescription, profile *models.ConsolidatedProfile) (int, []string, []string) {
	if len(job.Skills) == 0 {
		return 0, nil, nil
	}

	profileSkills := make(map[string]bool, len(profile.Skills))
	for _, s := range profile.Skills {
		profileSkills[strings.ToLower(s.Name)] = true
	}

	var (
		requiredTotal, requiredMatched   int
		preferredTotal, preferredMatched int
		matched, missing                 []string
	)

	for _, skill := range job.Skills {
		hit := profileSkills[strings.ToLower(skill.Name)]
		if hit {
			matched = append(matched, skill.Name)
		} else {
			missing = append(missing, skill.Name)
		}

		if skill.Importance == models.ImportanceRequired {
			requiredTotal++
			if hit {
				requiredMatched++
			}
		} else {
			preferredTotal++
			if hit {
				preferredMatched++
			}
		}
	}

	score := 0.0
	if requiredTotal > 0 {
		score += float64(requiredMatched) / float64(requiredTotal) * 70
	}
	if preferredTotal > 0 {
		score += float64(preferredMatched) / float64(preferredTotal) * 30
	}

	return int(math.Round(score)), matched, missing
}

// scoreExperience compares total experience years against the job level's
// band, with a relevance bonus for entries that overlap the job text
func scoreExperience(job *models.JobDescription, profile *models.ConsolidatedProfile) (int, []string) {
	if len(profile.Experience) == 0 {
		return 0, nil
	}

	totalYears := 0.0
	for _, entry := range profile.Experience {
		end := time.Now()
		if entry.EndDate != nil {
			end = *entry.EndDate
		}
		if years := end.Sub(entry.StartDate).Hours() / 24 / daysPerYear; years > 0 {
			totalYears += years
		}
	}

	base := 50.0
	if band, ok := experienceBands[job.ExperienceLevel]; ok {
		switch {
		case totalYears >= band.min && totalYears <= band.max:
			base = 90
		case totalYears > band.max:
			// Over-qualified still scores well.
			base = 80
		default:
			// Under-qualified, scaled by how close they get, floor 20.
			base = math.Max(20, totalYears/band.min*60)
		}
	}

	jobText := job.CombinedText()
	var relevant []string
	for _, entry := range profile.Experience {
		entryText := entry.Title + " " + entry.Description + " " + strings.Join(entry.Technologies, " ")
		if sharedKeywords(entryText, jobText) >= 2 {
			relevant = append(relevant, entry.Title+" at "+entry.Company)
		}
	}

	score := base
	if len(relevant) > 0 {
		score = math.Min(100, score+10)
	}

	return int(math.Round(score)), relevant
}

// scoreEducation rewards relevant degrees plus flat advanced-degree bonuses
func scoreEducation(job *models.JobDescription, profile *models.ConsolidatedProfile) (int, []string) {
	if len(profile.Education) == 0 {
		return 30, nil
	}

	jobText := job.CombinedText()
	score := 50.0
	var relevant []string

	for _, entry := range profile.Education {
		if sharedKeywords(entry.Degree+" "+entry.Field, jobText) >= 2 {
			score += 20
			relevant = append(relevant, entry.Degree+" in "+entry.Field)
		}

		degree := strings.ToLower(entry.Degree)
		if strings.Contains(degree, "master") {
			score += 10
		}
		if strings.Contains(degree, "phd") {
			score += 15
		}
	}

	return int(math.Round(math.Min(100, score))), relevant
}

// scoreSemantic scales the external similarity signal to a percentage.
// Both sides need a precomputed embedding; any failure degrades to zero
// and never fails the scoring call.
func (e *Engine) scoreSemantic(ctx context.Context, job *models.JobDescription, profile *models.ConsolidatedProfile) int {
	if len(job.Embedding) == 0 || len(profile.Embedding) == 0 {
		return 0
	}

	callCtx := ctx
	if e.semanticTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.semanticTimeout)
		defer cancel()
	}

	result, err := e.semantic.Similarity(callCtx, job.Embedding, profile.Embedding)
	if err != nil {
		log.Printf("[Engine] Similarity call failed for job %s, profile %s: %v", job.ID, profile.ID, err)
		return 0
	}

	return int(math.Round(result.Similarity * 100))
}
