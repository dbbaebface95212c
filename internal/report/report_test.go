package report

import (
	"strings"
	"testing"
	"time"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/analyzer"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/scan"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/source"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/stack"
)

func sampleAnalysis() *analyzer.Analysis {
	return &analyzer.Analysis{
		Repository: &source.RepoInfo{
			URL:      "https://github.com/user/shop",
			Platform: "github",
			Owner:    "user",
			Name:     "shop",
			FullName: "user/shop",
		},
		Profile: &stack.TechStackProfile{
			PrimaryLanguage: "Go",
			LanguageStats:   []scan.LanguageStat{{Language: "Go", Lines: 900, Percentage: 90.0}},
			VersionInfo:     stack.VersionInfo{LanguageVersion: "1.21"},
			Frameworks:      []string{"Gin"},
			BuildTools:      []string{"go"},
			PackageManagers: []string{"go"},
			HasTests:        true,
		},
		Confidence:      0.9,
		Recommendations: []string{"Create a Dockerfile for containerization"},
		FileCount:       12,
		Method:          "git",
	}
}

func TestText(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	out := Text(sampleAnalysis(), at)

	for _, want := range []string{
		"Repository: user/shop",
		"Primary language: Go",
		"Version: 1.21",
		"Frameworks: Gin",
		"Tests present: yes",
		"Dockerfile present: no",
		"Confidence: 90%",
		"Go: 900 lines (90.0%)",
		"Create a Dockerfile",
		"2024-03-01 12:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestTextEmptySignals(t *testing.T) {
	a := sampleAnalysis()
	a.Profile.Frameworks = nil
	a.Recommendations = nil
	out := Text(a, time.Now())

	if !strings.Contains(out, "Frameworks: none detected") {
		t.Error("expected 'none detected' for empty frameworks")
	}
	if strings.Contains(out, "Recommendations") {
		t.Error("recommendations section should be omitted when empty")
	}
}

func TestReadme(t *testing.T) {
	out := Readme(sampleAnalysis(), time.Now())

	for _, want := range []string{
		"# GitLab CI/CD Pipeline for shop",
		"SONAR_HOST_URL",
		"NEXUS_PASSWORD",
		"sonar.projectKey=shop",
		"**Deploy Production**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("readme missing %q", want)
		}
	}
	// no container descriptor, so no docker stage section
	if strings.Contains(out, "**Docker Build**") {
		t.Error("docker stage documented without a container descriptor")
	}
}

func TestReadmeWithContainer(t *testing.T) {
	a := sampleAnalysis()
	a.Profile.HasContainerDescriptor = true
	out := Readme(a, time.Now())
	if !strings.Contains(out, "**Docker Build**") {
		t.Error("expected docker stage section with a container descriptor")
	}
}
