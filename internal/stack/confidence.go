package stack

import "github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/source"

// manifestFiles are the descriptor filenames whose presence raises confidence.
var manifestFiles = []string{
	"package.json",
	"requirements.txt",
	"pom.xml",
	"build.gradle",
	"Cargo.toml",
	"go.mod",
	"pyproject.toml",
}

// Confidence scores how much signal supported the profile: 0.4 base, +0.15
// for a known manifest, +0.1 for build tools, +0.1 for tests, +0.1 for
// frameworks, +0.15 for a known primary language, clamped to 1.0.
func Confidence(p *TechStackProfile, records []source.FileRecord) float64 {
	confidence := 0.4

	for _, name := range manifestFiles {
		if source.HasFile(records, name) {
			confidence += 0.15
			break
		}
	}
	if len(p.BuildTools) > 0 {
		confidence += 0.1
	}
	if p.HasTests {
		confidence += 0.1
	}
	if len(p.Frameworks) > 0 {
		confidence += 0.1
	}
	if p.PrimaryLanguage != "" && p.PrimaryLanguage != "Unknown" {
		confidence += 0.15
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// Recommendations returns advisory notes for gaps the profile exposed:
// missing tests, missing container descriptor, missing pipeline file.
func Recommendations(p *TechStackProfile, records []source.FileRecord) []string {
	var recs []string

	if !p.HasTests {
		switch p.PrimaryLanguage {
		case "JavaScript", "TypeScript":
			recs = append(recs, "Add tests with Jest or Mocha")
		case "Python":
			recs = append(recs, "Set up pytest for testing")
		case "Java", "Kotlin":
			recs = append(recs, "Use JUnit for unit tests")
		case "Go":
			recs = append(recs, "Add Go tests (go test)")
		}
	}

	if !p.HasContainerDescriptor {
		recs = append(recs, "Create a Dockerfile for containerization")
	}

	if !source.HasFile(records, ".gitlab-ci.yml") {
		recs = append(recs, "A .gitlab-ci.yml pipeline will be generated")
	}

	return recs
}
