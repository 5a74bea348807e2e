package semantic

import "strings"

// knownSkills is the fixed technical-skill list scanned when the remote
// extraction call degrades. Names are stored lowercase.
var knownSkills = []string{
	"go", "golang", "python", "java", "javascript", "typescript", "c++", "c#",
	"ruby", "rust", "kotlin", "swift", "php", "scala", "sql", "nosql",
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka",
	"rabbitmq", "grpc", "rest", "graphql", "docker", "kubernetes", "terraform",
	"aws", "gcp", "azure", "linux", "git", "ci/cd", "jenkins", "react",
	"angular", "vue", "node.js", "django", "flask", "spring", "html", "css",
	"machine learning", "data analysis", "agile", "scrum", "project management",
	"communication", "leadership",
}

// FallbackExtractSkills scans text against the fixed skill list. It is the
// local degradation path when ExtractSkills fails; confidence is fixed low
// to mark heuristic origin.
func FallbackExtractSkills(text string) []ExtractedSkill {
	lower := strings.ToLower(text)

	var skills []ExtractedSkill
	for _, name := range knownSkills {
		if strings.Contains(lower, name) {
			skills = append(skills, ExtractedSkill{Name: name, Confidence: 0.5})
		}
	}
	return skills
}

// FallbackExtractJobRequirements is the local degradation path for
// ExtractJobRequirements: skills come from the keyword scan, the free-form
// sections stay empty.
func FallbackExtractJobRequirements(text string) *JobRequirements {
	extracted := FallbackExtractSkills(text)

	skills := make([]string, 0, len(extracted))
	for _, s := range extracted {
		skills = append(skills, s.Name)
	}

	return &JobRequirements{Skills: skills}
}
