package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/semantic"
)

// stubSemantic fakes the external semantic service with a fixed similarity
type stubSemantic struct {
	similarity float64
	err        error
	calls      int
}

func (s *stubSemantic) GenerateEmbedding(_ context.Context, _ semantic.EmbeddingKind, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (s *stubSemantic) Similarity(_ context.Context, _, _ []float32) (*semantic.SimilarityResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &semantic.SimilarityResult{Similarity: s.similarity}, nil
}

func (s *stubSemantic) ExtractSkills(_ context.Context, _ string) ([]semantic.ExtractedSkill, error) {
	return nil, nil
}

func (s *stubSemantic) ExtractJobRequirements(_ context.Context, _ string) (*semantic.JobRequirements, error) {
	return nil, nil
}

// experienceYears builds an entry ending now with a title too short to
// ever count as relevant, so band scoring is isolated
func experienceYears(years float64) models.ExperienceEntry {
	start := time.Now().Add(-time.Duration(years * daysPerYear * 24 * float64(time.Hour)))
	return models.ExperienceEntry{Company: "X", Title: "Y", StartDate: start}
}

func seniorJob() *models.JobDescription {
	return &models.JobDescription{
		ID:              "j-1",
		Title:           "Senior Backend Engineer",
		Description:     "Build APIs with Go and Kubernetes",
		ExperienceLevel: models.LevelSenior,
	}
}

func profileWith(experience ...models.ExperienceEntry) *models.ConsolidatedProfile {
	return &models.ConsolidatedProfile{
		CandidateProfile: models.CandidateProfile{ID: "p-1", Experience: experience},
	}
}

func TestScoreExperienceBands(t *testing.T) {
	tests := []struct {
		name  string
		years float64
		level string
		want  int
	}{
		{"in band", 6, models.LevelSenior, 90},
		{"band lower edge", 5, models.LevelSenior, 90},
		{"over qualified", 12, models.LevelSenior, 80},
		{"under qualified scales", 4, models.LevelSenior, 48}, // 4/5*60
		{"under qualified floor", 0.5, models.LevelSenior, 20},
		{"unknown level", 6, "Wizard", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := seniorJob()
			job.ExperienceLevel = tt.level
			got, _ := scoreExperience(job, profileWith(experienceYears(tt.years)))
			if got != tt.want {
				t.Errorf("scoreExperience(%v years, %s) = %d, want %d", tt.years, tt.level, got, tt.want)
			}
		})
	}
}

func TestScoreExperienceNoEntries(t *testing.T) {
	got, relevant := scoreExperience(seniorJob(), profileWith())
	if got != 0 {
		t.Errorf("score = %d, want 0 without any experience", got)
	}
	if relevant != nil {
		t.Errorf("relevant = %v, want none", relevant)
	}
}

func TestScoreExperienceRelevanceBonus(t *testing.T) {
	entry := experienceYears(6)
	entry.Title = "Backend Engineer"
	entry.Company = "Acme"
	entry.Technologies = []string{"Kubernetes", "Go APIs"}

	got, relevant := scoreExperience(seniorJob(), profileWith(entry))
	if got != 100 {
		t.Errorf("score = %d, want 90+10 capped at 100", got)
	}
	if len(relevant) != 1 || relevant[0] != "Backend Engineer at Acme" {
		t.Errorf("relevant = %v", relevant)
	}
}

func TestScoreSkills(t *testing.T) {
	job := seniorJob()
	job.Skills = []models.JobSkill{
		{Name: "Go", Importance: models.ImportanceRequired},
		{Name: "Kubernetes", Importance: models.ImportanceRequired},
		{Name: "Terraform", Importance: models.ImportancePreferred},
	}

	profile := profileWith()
	profile.Skills = []models.CandidateSkill{
		{Name: "go"}, // case-insensitive match
		{Name: "terraform"},
	}

	score, matched, missing := scoreSkills(job, profile)
	if score != 65 { // 1/2*70 + 1/1*30
		t.Errorf("score = %d, want 65", score)
	}
	if len(matched) != 2 {
		t.Errorf("matched = %v, want Go and Terraform", matched)
	}
	if len(missing) != 1 || missing[0] != "Kubernetes" {
		t.Errorf("missing = %v, want Kubernetes", missing)
	}
}

func TestScoreSkillsMonotonic(t *testing.T) {
	job := seniorJob()
	job.Skills = []models.JobSkill{
		{Name: "Go", Importance: models.ImportanceRequired},
		{Name: "Kubernetes", Importance: models.ImportanceRequired},
	}

	fewer := profileWith()
	fewer.Skills = []models.CandidateSkill{{Name: "Go"}}

	more := profileWith()
	more.Skills = []models.CandidateSkill{{Name: "Go"}, {Name: "Kubernetes"}}

	fewerScore, _, _ := scoreSkills(job, fewer)
	moreScore, _, _ := scoreSkills(job, more)
	if moreScore <= fewerScore {
		t.Errorf("matching more skills scored %d <= %d", moreScore, fewerScore)
	}
}

func TestScoreSkillsNoJobSkills(t *testing.T) {
	score, matched, missing := scoreSkills(seniorJob(), profileWith())
	if score != 0 || matched != nil || missing != nil {
		t.Errorf("got %d/%v/%v, want all empty", score, matched, missing)
	}
}

func TestScoreEducation(t *testing.T) {
	job := seniorJob()
	job.Requirements = "Computer Science degree preferred"

	tests := []struct {
		name      string
		education []models.EducationEntry
		want      int
	}{
		{"no education", nil, 30},
		{"unrelated degree", []models.EducationEntry{{Degree: "BA", Field: "Art"}}, 50},
		{"relevant degree", []models.EducationEntry{{Degree: "BSc", Field: "Computer Science"}}, 70},
		{"relevant master", []models.EducationEntry{{Degree: "Master of Science", Field: "Computer Science"}}, 80},
		{"relevant phd", []models.EducationEntry{{Degree: "PhD", Field: "Computer Science"}}, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := profileWith()
			profile.Education = tt.education
			got, _ := scoreEducation(job, profile)
			if got != tt.want {
				t.Errorf("scoreEducation = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreCandidateOverall(t *testing.T) {
	svc := &stubSemantic{similarity: 0.5}
	e := NewEngine(svc, time.Second)

	job := seniorJob()
	job.Skills = []models.JobSkill{{Name: "Go", Importance: models.ImportanceRequired}}
	job.Embedding = []float32{1, 0}

	profile := profileWith(experienceYears(6))
	profile.Skills = []models.CandidateSkill{{Name: "Go"}}
	profile.Embedding = []float32{1, 0}

	result, err := e.ScoreCandidate(context.Background(), job, profile)
	if err != nil {
		t.Fatalf("ScoreCandidate: %v", err)
	}

	b := result.Breakdown
	if b.SkillsScore != 70 || b.ExperienceScore != 90 || b.EducationScore != 30 || b.SemanticScore != 50 {
		t.Fatalf("breakdown = %+v", b)
	}

	// 70*0.4 + 90*0.3 + 30*0.1 + 50*0.2 = 68
	if result.Score != 68 {
		t.Errorf("overall = %d, want 68", result.Score)
	}
	if result.Status != models.MatchActive {
		t.Errorf("status = %s, want Active", result.Status)
	}
	if result.JobID != "j-1" || result.ProfileID != "p-1" {
		t.Errorf("ids = %s/%s", result.JobID, result.ProfileID)
	}
}

func TestScoreCandidateDeterministic(t *testing.T) {
	svc := &stubSemantic{similarity: 0.8}
	e := NewEngine(svc, time.Second)

	job := seniorJob()
	job.Skills = []models.JobSkill{{Name: "Go", Importance: models.ImportanceRequired}}

	profile := profileWith(experienceYears(6))
	profile.Skills = []models.CandidateSkill{{Name: "Go"}}

	first, _ := e.ScoreCandidate(context.Background(), job, profile)
	second, _ := e.ScoreCandidate(context.Background(), job, profile)
	if first.Score != second.Score {
		t.Errorf("scores differ: %d vs %d", first.Score, second.Score)
	}
}

func TestSemanticDegradation(t *testing.T) {
	t.Run("missing embeddings skip the call", func(t *testing.T) {
		svc := &stubSemantic{similarity: 0.9}
		e := NewEngine(svc, time.Second)

		result, err := e.ScoreCandidate(context.Background(), seniorJob(), profileWith())
		if err != nil {
			t.Fatalf("ScoreCandidate: %v", err)
		}
		if result.Breakdown.SemanticScore != 0 {
			t.Errorf("semantic = %d, want 0 without embeddings", result.Breakdown.SemanticScore)
		}
		if svc.calls != 0 {
			t.Errorf("similarity called %d times, want 0", svc.calls)
		}
	})

	t.Run("service failure degrades to zero", func(t *testing.T) {
		svc := &stubSemantic{err: errors.New("unavailable")}
		e := NewEngine(svc, time.Second)

		job := seniorJob()
		job.Embedding = []float32{1}
		profile := profileWith()
		profile.Embedding = []float32{1}

		result, err := e.ScoreCandidate(context.Background(), job, profile)
		if err != nil {
			t.Fatalf("scoring must not fail on semantic errors: %v", err)
		}
		if result.Breakdown.SemanticScore != 0 {
			t.Errorf("semantic = %d, want 0 on failure", result.Breakdown.SemanticScore)
		}
	})
}

func TestBuildInsights(t *testing.T) {
	t.Run("strengths above threshold", func(t *testing.T) {
		b := models.ScoreBreakdown{SkillsScore: 85, ExperienceScore: 90, EducationScore: 80, SemanticScore: 70}
		buildInsights(&b)
		if len(b.Strengths) != 3 {
			t.Errorf("strengths = %v, want all three factors", b.Strengths)
		}
		if len(b.Weaknesses) != 0 {
			t.Errorf("weaknesses = %v, want none", b.Weaknesses)
		}
	})

	t.Run("missing skills named in recommendation", func(t *testing.T) {
		b := models.ScoreBreakdown{
			SkillsScore:     40,
			ExperienceScore: 90,
			MissingSkills:   []string{"Go", "Kubernetes", "Terraform", "Rust"},
		}
		buildInsights(&b)
		if len(b.Recommendations) == 0 {
			t.Fatal("expected an upskilling recommendation")
		}
		if got := b.Recommendations[0]; got != "consider upskilling in: Go, Kubernetes, Terraform" {
			t.Errorf("recommendation = %q, want first three missing skills", got)
		}
	})

	t.Run("no strengths at all", func(t *testing.T) {
		b := models.ScoreBreakdown{SkillsScore: 30, ExperienceScore: 30, EducationScore: 30}
		buildInsights(&b)
		found := false
		for _, r := range b.Recommendations {
			if r == "reconsider this candidate or revisit the job requirements" {
				found = true
			}
		}
		if !found {
			t.Errorf("recommendations = %v, want reconsider advice", b.Recommendations)
		}
	})

	t.Run("single weakness", func(t *testing.T) {
		b := models.ScoreBreakdown{SkillsScore: 85, ExperienceScore: 50, EducationScore: 80}
		buildInsights(&b)
		found := false
		for _, r := range b.Recommendations {
			if r == "good candidate with minor gaps" {
				found = true
			}
		}
		if !found {
			t.Errorf("recommendations = %v, want minor-gaps note", b.Recommendations)
		}
	})
}

func TestSubScoresStayInRange(t *testing.T) {
	svc := &stubSemantic{similarity: 1.0}
	e := NewEngine(svc, time.Second)

	job := seniorJob()
	job.Requirements = "Computer Science degree, Go, Kubernetes"
	job.Skills = []models.JobSkill{{Name: "Go", Importance: models.ImportanceRequired}}
	job.Embedding = []float32{1}

	entry := experienceYears(8)
	entry.Title = "Go Kubernetes Engineer"
	profile := profileWith(entry)
	profile.Skills = []models.CandidateSkill{{Name: "Go"}}
	profile.Education = []models.EducationEntry{
		{Degree: "PhD", Field: "Computer Science"},
		{Degree: "Master of Science", Field: "Computer Science"},
		{Degree: "BSc", Field: "Computer Science"},
	}
	profile.Embedding = []float32{1}

	result, err := e.ScoreCandidate(context.Background(), job, profile)
	if err != nil {
		t.Fatalf("ScoreCandidate: %v", err)
	}

	b := result.Breakdown
	for name, score := range map[string]int{
		"skills":     b.SkillsScore,
		"experience": b.ExperienceScore,
		"education":  b.EducationScore,
		"semantic":   b.SemanticScore,
		"overall":    result.Score,
	} {
		if score < 0 || score > 100 {
			t.Errorf("%s score %d out of range", name, score)
		}
	}
}
