// Package report renders the human-readable analysis report and the usage
// README that accompany a generated pipeline.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/analyzer"
)

// Text renders the plain-text analysis report.
func Text(a *analyzer.Analysis, at time.Time) string {
	ts := a.Profile
	var b strings.Builder

	b.WriteString("Self-Deploy: Repository Analysis Report\n")
	b.WriteString("==========================================\n\n")
	fmt.Fprintf(&b, "Repository: %s\n", a.Repository.FullName)
	fmt.Fprintf(&b, "Platform: %s\n", a.Repository.Platform)
	fmt.Fprintf(&b, "URL: %s\n", a.Repository.URL)
	fmt.Fprintf(&b, "Analyzed: %s\n\n", at.Format("2006-01-02 15:04:05"))

	b.WriteString("Technology Stack\n")
	b.WriteString("--------------------\n")
	fmt.Fprintf(&b, "Primary language: %s\n", ts.PrimaryLanguage)
	fmt.Fprintf(&b, "Version: %s\n", ts.VersionInfo.LanguageVersion)
	fmt.Fprintf(&b, "Frameworks: %s\n", orNone(ts.Frameworks))
	fmt.Fprintf(&b, "Build tools: %s\n", orNone(ts.BuildTools))
	fmt.Fprintf(&b, "Package managers: %s\n\n", orNone(ts.PackageManagers))

	b.WriteString("Additional Signals\n")
	b.WriteString("-------------------------\n")
	fmt.Fprintf(&b, "Tests present: %s\n", yesNo(ts.HasTests))
	fmt.Fprintf(&b, "Dockerfile present: %s\n", yesNo(ts.HasContainerDescriptor))
	fmt.Fprintf(&b, "Confidence: %.0f%%\n\n", a.Confidence*100)

	b.WriteString("Language Statistics\n")
	b.WriteString("--------------------\n")
	for _, s := range ts.LanguageStats {
		fmt.Fprintf(&b, "%s: %d lines (%.1f%%)\n", s.Language, s.Lines, s.Percentage)
	}

	if len(a.Recommendations) > 0 {
		b.WriteString("\nRecommendations\n------------\n")
		for _, r := range a.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	return b.String()
}

// Readme renders the setup instructions shipped next to the pipeline file.
func Readme(a *analyzer.Analysis, at time.Time) string {
	repo := a.Repository
	ts := a.Profile
	var b strings.Builder

	fmt.Fprintf(&b, "# GitLab CI/CD Pipeline for %s\n\n", repo.Name)
	b.WriteString("This pipeline was generated automatically by **Self-Deploy**.\n\n")

	b.WriteString("## Project\n\n")
	fmt.Fprintf(&b, "- **Language**: %s\n", ts.PrimaryLanguage)
	fmt.Fprintf(&b, "- **Frameworks**: %s\n", orNone(ts.Frameworks))
	fmt.Fprintf(&b, "- **Build tools**: %s\n\n", orNone(ts.BuildTools))

	b.WriteString("## Usage\n\n")
	b.WriteString("1. Copy `.gitlab-ci.yml` into the root of your repository:\n\n")
	b.WriteString("   ```bash\n   cp .gitlab-ci.yml /path/to/your/repo/\n   ```\n\n")
	b.WriteString("2. Configure CI/CD variables in GitLab settings:\n")
	b.WriteString("   - `SONAR_HOST_URL` — your SonarQube server URL\n")
	b.WriteString("   - `SONAR_TOKEN` — SonarQube access token\n")
	b.WriteString("   - `NEXUS_URL` — your Nexus Repository URL\n")
	b.WriteString("   - `NEXUS_USER` — Nexus user name\n")
	b.WriteString("   - `NEXUS_PASSWORD` — Nexus password\n\n")
	b.WriteString("3. Commit and push:\n\n")
	b.WriteString("   ```bash\n   git add .gitlab-ci.yml\n   git commit -m \"Add GitLab CI/CD pipeline\"\n   git push\n   ```\n\n")

	b.WriteString("## Stages\n\n")
	b.WriteString("1. **Build** — compile the project\n")
	b.WriteString("2. **Test** — run the test suite\n")
	b.WriteString("3. **Quality** — lint and static analysis (never blocking)\n")
	b.WriteString("4. **Package** — archive deployable artifacts\n")
	if ts.HasContainerDescriptor {
		b.WriteString("5. **Docker Build** — build and scan the container image\n")
		b.WriteString("6. **Deploy Staging** — manual rollout to staging\n")
		b.WriteString("7. **Deploy Production** — manual rollout to production\n\n")
	} else {
		b.WriteString("5. **Deploy Staging** — manual rollout to staging\n")
		b.WriteString("6. **Deploy Production** — manual rollout to production\n\n")
	}

	b.WriteString("## Configuration Notes\n\n")
	b.WriteString("For SonarQube analysis, add a `sonar-project.properties` at the project root:\n\n")
	b.WriteString("```properties\n")
	fmt.Fprintf(&b, "sonar.projectKey=%s\n", repo.Name)
	fmt.Fprintf(&b, "sonar.projectName=%s\n", repo.Name)
	b.WriteString("sonar.sources=.\nsonar.sourceEncoding=UTF-8\n")
	b.WriteString("```\n\n")
	b.WriteString("For Kubernetes deployments, make sure the `staging` and `production`\ncontexts exist and Deployment manifests are applied.\n\n")
	fmt.Fprintf(&b, "The generated jobs are tuned for %s; dependency caching is enabled to\nspeed up builds.\n", ts.PrimaryLanguage)

	fmt.Fprintf(&b, "\n---\nGenerated: %s\n", at.Format("2006-01-02 15:04:05"))
	return b.String()
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none detected"
	}
	return strings.Join(items, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
