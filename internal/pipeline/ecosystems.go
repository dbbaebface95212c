package pipeline

import (
	"fmt"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/stack"
)

// Ecosystem enumerates the supported pipeline flavors. Every synthesizer
// decision dispatches on this tag through the ecosystems table, so adding
// a language is a single table addition.
type Ecosystem int

const (
	EcoGeneric Ecosystem = iota
	EcoNode
	EcoPython
	EcoJVM
	EcoGo
)

// EcosystemFor maps a primary language onto its ecosystem; anything
// unrecognized falls through to the generic variant.
func EcosystemFor(language string) Ecosystem {
	switch language {
	case "JavaScript", "TypeScript":
		return EcoNode
	case "Python":
		return EcoPython
	case "Java", "Kotlin":
		return EcoJVM
	case "Go":
		return EcoGo
	default:
		return EcoGeneric
	}
}

// ecosystemSpec carries every per-ecosystem decision table: runtime image,
// CI variables, cache paths, dependency-restore rules and job templates.
type ecosystemSpec struct {
	image        func(version string) string
	variables    []Variable
	cachePaths   []string
	beforeScript func(p *stack.TechStackProfile) []string
	buildJob     func(p *stack.TechStackProfile) Job
	testJob      func(p *stack.TechStackProfile) Job
	qualityJob   func(p *stack.TechStackProfile) Job
}

var ecosystems = map[Ecosystem]ecosystemSpec{
	EcoNode: {
		image: func(v string) string {
			if v == "" {
				v = "18"
			}
			return fmt.Sprintf("node:%s-alpine", v)
		},
		variables: []Variable{
			{"NPM_CONFIG_CACHE", "$CI_PROJECT_DIR/.npm"},
			{"NODE_OPTIONS", "--max-old-space-size=4096"},
			{"CI", "true"},
		},
		cachePaths: []string{".npm/", "node_modules/"},
		beforeScript: func(p *stack.TechStackProfile) []string {
			// package manager priority is fixed: npm, then yarn, then pnpm
			switch {
			case p.HasBuildTool("npm"):
				return []string{"npm ci --cache .npm --prefer-offline"}
			case p.HasBuildTool("yarn"):
				return []string{"yarn install --frozen-lockfile --cache-folder .yarn"}
			case p.HasBuildTool("pnpm"):
				return []string{"pnpm install --frozen-lockfile"}
			}
			return nil
		},
		buildJob:   nodeBuildJob,
		testJob:    nodeTestJob,
		qualityJob: nodeQualityJob,
	},
	EcoPython: {
		image: func(v string) string {
			if v == "" {
				v = "3.9"
			}
			return fmt.Sprintf("python:%s-slim", v)
		},
		variables: []Variable{
			{"PIP_CACHE_DIR", "$CI_PROJECT_DIR/.cache/pip"},
			{"PYTHONPATH", "$CI_PROJECT_DIR"},
			{"PYTHONUNBUFFERED", "1"},
		},
		cachePaths: []string{".cache/pip/", "__pycache__/", ".pytest_cache/"},
		beforeScript: func(p *stack.TechStackProfile) []string {
			return []string{
				"python -m pip install --upgrade pip",
				"pip install -r requirements.txt --cache-dir .cache/pip",
			}
		},
		buildJob:   pythonBuildJob,
		testJob:    pythonTestJob,
		qualityJob: pythonQualityJob,
	},
	EcoJVM: {
		image: func(v string) string {
			if v == "" {
				v = "11"
			}
			return fmt.Sprintf("maven:3.8-openjdk-%s", v)
		},
		variables: []Variable{
			{"MAVEN_OPTS", "-Dmaven.repo.local=$CI_PROJECT_DIR/.m2/repository -Xmx1024m"},
			{"MAVEN_CLI_OPTS", "--batch-mode --errors --fail-at-end --show-version"},
		},
		cachePaths: []string{".m2/repository/", ".gradle/"},
		beforeScript: func(p *stack.TechStackProfile) []string {
			if p.HasBuildTool("maven") {
				return []string{"mvn dependency:go-offline $MAVEN_CLI_OPTS"}
			}
			return nil
		},
		buildJob:   jvmBuildJob,
		testJob:    jvmTestJob,
		qualityJob: jvmQualityJob,
	},
	EcoGo: {
		image: func(v string) string {
			if v == "" {
				v = "1.19"
			}
			return fmt.Sprintf("golang:%s-alpine", v)
		},
		variables: []Variable{
			{"GOCACHE", "$CI_PROJECT_DIR/.cache/go-build"},
			{"GOPATH", "$CI_PROJECT_DIR/.go"},
			{"CGO_ENABLED", "0"},
		},
		cachePaths: []string{".cache/go-build/", ".go/"},
		beforeScript: func(p *stack.TechStackProfile) []string {
			return nil
		},
		buildJob:   goBuildJob,
		testJob:    goTestJob,
		qualityJob: goQualityJob,
	},
	EcoGeneric: {
		image: func(v string) string {
			return "alpine:latest"
		},
		variables:  nil,
		cachePaths: nil,
		beforeScript: func(p *stack.TechStackProfile) []string {
			return nil
		},
		buildJob:   genericBuildJob,
		testJob:    genericTestJob,
		qualityJob: genericQualityJob,
	},
}

func nodeBuildJob(p *stack.TechStackProfile) Job {
	script := []string{`npm run build || echo "No build script found"`}
	if p.HasFramework("React") || p.HasFramework("Vue.js") || p.HasFramework("Angular") || p.HasFramework("Next.js") {
		script = []string{"npm run build"}
	}
	return Job{
		Name:   "build",
		Stage:  "build",
		Script: script,
		Artifacts: &Artifacts{
			Paths:    []string{"dist/", "build/", ".next/", "out/"},
			ExpireIn: "1 hour",
		},
		Only: []string{"branches"},
	}
}

func nodeTestJob(p *stack.TechStackProfile) Job {
	var script []string
	switch {
	case p.HasFramework("React"):
		script = []string{"npm test -- --coverage --watchAll=false --ci"}
	case p.HasFramework("Vue.js"):
		script = []string{"npm run test:unit"}
	case p.HasFramework("Angular"):
		script = []string{"npm run test -- --watch=false --browsers=ChromeHeadless --code-coverage"}
	default:
		script = []string{"npm test"}
	}
	return Job{
		Name:   "test",
		Stage:  "test",
		Script: script,
		Artifacts: &Artifacts{
			Paths: []string{"coverage/"},
			When:  "always",
			Reports: &Reports{
				JUnit:    "junit.xml",
				Coverage: &CoverageReport{Format: "cobertura", Path: "coverage/cobertura-coverage.xml"},
			},
		},
		CoverageRegex: `/Lines\s*:\s*(\d+\.?\d*)%/`,
	}
}

func nodeQualityJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:  "code-quality",
		Stage: "quality",
		Script: []string{
			"npm run lint || npx eslint . --ext .js,.jsx,.ts,.tsx --format gitlab --output-file eslint-report.json || true",
			"npx prettier --check . || true",
		},
		Artifacts: &Artifacts{
			When:    "always",
			Reports: &Reports{CodeQuality: "eslint-report.json"},
		},
		AllowFailure: true,
	}
}

func pythonBuildJob(p *stack.TechStackProfile) Job {
	script := []string{"python -m compileall ."}
	if p.HasFramework("Django") {
		script = append(script,
			"python manage.py collectstatic --noinput",
			"python manage.py check --deploy",
		)
	}
	return Job{
		Name:   "build",
		Stage:  "build",
		Script: script,
		Artifacts: &Artifacts{
			Paths:    []string{"staticfiles/", "*.pyc"},
			ExpireIn: "1 hour",
		},
	}
}

func pythonTestJob(p *stack.TechStackProfile) Job {
	if p.HasFramework("Django") {
		return Job{
			Name:  "test",
			Stage: "test",
			Script: []string{
				"coverage run --source='.' manage.py test --keepdb",
				"coverage xml",
				"coverage report",
			},
			Artifacts: &Artifacts{
				When: "always",
				Reports: &Reports{
					JUnit:    "test-results.xml",
					Coverage: &CoverageReport{Format: "cobertura", Path: "coverage.xml"},
				},
			},
			CoverageRegex: `/TOTAL.+ ([0-9]{1,3}%)/`,
		}
	}
	return Job{
		Name:  "test",
		Stage: "test",
		Script: []string{
			"pytest --junitxml=test-results.xml --cov=. --cov-report=xml --cov-report=term",
		},
		Artifacts: &Artifacts{
			When: "always",
			Reports: &Reports{
				JUnit:    "test-results.xml",
				Coverage: &CoverageReport{Format: "cobertura", Path: "coverage.xml"},
			},
		},
		CoverageRegex: `/TOTAL.+ ([0-9]{1,3}%)/`,
	}
}

func pythonQualityJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:  "code-quality",
		Stage: "quality",
		Script: []string{
			"pip install flake8 black mypy",
			"flake8 . --format=json --output-file=flake8-report.json || true",
			"black --check . || true",
			"mypy . --ignore-missing-imports || true",
		},
		Artifacts: &Artifacts{
			When:    "always",
			Reports: &Reports{CodeQuality: "flake8-report.json"},
		},
		AllowFailure: true,
	}
}

func jvmBuildJob(p *stack.TechStackProfile) Job {
	if p.HasBuildTool("gradle") && !p.HasBuildTool("maven") {
		return Job{
			Name:   "build",
			Stage:  "build",
			Script: []string{"./gradlew clean build -x test --no-daemon"},
			Artifacts: &Artifacts{
				Paths:    []string{"build/libs/*.jar"},
				ExpireIn: "1 hour",
			},
		}
	}
	return Job{
		Name:  "build",
		Stage: "build",
		Script: []string{
			"mvn clean compile $MAVEN_CLI_OPTS",
			"mvn package -DskipTests $MAVEN_CLI_OPTS",
		},
		Artifacts: &Artifacts{
			Paths:    []string{"target/*.jar", "target/*.war"},
			ExpireIn: "1 hour",
		},
	}
}

func jvmTestJob(p *stack.TechStackProfile) Job {
	if p.HasBuildTool("gradle") && !p.HasBuildTool("maven") {
		return Job{
			Name:   "test",
			Stage:  "test",
			Script: []string{"./gradlew test jacocoTestReport --no-daemon"},
			Artifacts: &Artifacts{
				Paths:   []string{"build/reports/jacoco/test/html/"},
				When:    "always",
				Reports: &Reports{JUnit: "build/test-results/test/*.xml"},
			},
		}
	}
	return Job{
		Name:  "test",
		Stage: "test",
		Script: []string{
			"mvn test $MAVEN_CLI_OPTS",
			"mvn jacoco:report $MAVEN_CLI_OPTS",
		},
		Artifacts: &Artifacts{
			Paths:   []string{"target/site/jacoco/"},
			When:    "always",
			Reports: &Reports{JUnit: "target/surefire-reports/*.xml"},
		},
	}
}

func jvmQualityJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:  "code-quality",
		Stage: "quality",
		Script: []string{
			"mvn checkstyle:check $MAVEN_CLI_OPTS || true",
			"mvn pmd:check $MAVEN_CLI_OPTS || true",
		},
		AllowFailure: true,
	}
}

func goBuildJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:  "build",
		Stage: "build",
		Script: []string{
			"go mod download",
			"go build -v -o app ./...",
		},
		Artifacts: &Artifacts{
			Paths:    []string{"app"},
			ExpireIn: "1 hour",
		},
	}
}

func goTestJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:  "test",
		Stage: "test",
		Script: []string{
			"go test -v ./... -coverprofile=coverage.out",
			"go tool cover -func=coverage.out",
		},
		Artifacts: &Artifacts{
			Paths: []string{"coverage.out"},
			When:  "always",
		},
		CoverageRegex: `/total:.*?([0-9.]+)%/`,
	}
}

func goQualityJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:  "code-quality",
		Stage: "quality",
		Script: []string{
			"go fmt ./...",
			"go vet ./...",
			"go install golang.org/x/lint/golint@latest",
			"golint ./... || true",
		},
		AllowFailure: true,
	}
}

func genericBuildJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:   "build",
		Stage:  "build",
		Script: []string{`echo "Configure build commands for your project"`},
		Artifacts: &Artifacts{
			Paths:    []string{"build/"},
			ExpireIn: "1 hour",
		},
	}
}

func genericTestJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:   "test",
		Stage:  "test",
		Script: []string{`echo "Configure test commands for your project"`},
	}
}

func genericQualityJob(p *stack.TechStackProfile) Job {
	return Job{
		Name:         "code-quality",
		Stage:        "quality",
		Script:       []string{`echo "Configure code quality checks for your project"`},
		AllowFailure: true,
	}
}
