package matching

import (
	"fmt"
	"strings"

	"github.com/talentmatch/backend/models"
)

// Sub-score thresholds for insight generation
const (
	strengthThreshold = 80
	weaknessThreshold = 60
)

// buildInsights derives the qualitative strengths, weaknesses and
// recommendations from the sub-scores. Rule-based and deterministic; no
// model call is involved.
func buildInsights(b *models.ScoreBreakdown) {
	if b.SkillsScore >= strengthThreshold {
		b.Strengths = append(b.Strengths, "strong skills alignment")
	}
	if b.ExperienceScore >= strengthThreshold {
		b.Strengths = append(b.Strengths, "relevant work experience")
	}
	if b.EducationScore >= strengthThreshold {
		b.Strengths = append(b.Strengths, "appropriate education")
	}

	if b.SkillsScore < weaknessThreshold {
		b.Weaknesses = append(b.Weaknesses, "skills gap against the job requirements")
		if len(b.MissingSkills) > 0 {
			named := b.MissingSkills
			if len(named) > 3 {
				named = named[:3]
			}
			b.Recommendations = append(b.Recommendations,
				fmt.Sprintf("consider upskilling in: %s", strings.Join(named, ", ")))
		} else {
			b.Recommendations = append(b.Recommendations, "review skill expectations for this role")
		}
	}

	if b.ExperienceScore < weaknessThreshold {
		b.Weaknesses = append(b.Weaknesses, "limited relevant experience")
		b.Recommendations = append(b.Recommendations,
			"pair with a senior team member or consider a mentoring plan")
	}

	if len(b.Strengths) == 0 {
		b.Recommendations = append(b.Recommendations,
			"reconsider this candidate or revisit the job requirements")
	}

	if len(b.Weaknesses) == 1 {
		b.Recommendations = append(b.Recommendations, "good candidate with minor gaps")
	}
}
