package pipeline

import (
	"fmt"
	"strings"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/stack"
)

// Synthesizer compiles technology profiles into pipeline documents. For a
// fixed profile the output is fully deterministic.
type Synthesizer struct {
	SonarQubeEnabled bool
	NexusEnabled     bool
}

// NewSynthesizer returns a Synthesizer with both optional integrations on.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{SonarQubeEnabled: true, NexusEnabled: true}
}

// Synthesize builds the pipeline document for a profile. projectName
// parametrizes image tags and deployment targets.
func (s *Synthesizer) Synthesize(p *stack.TechStackProfile, projectName string) *Document {
	eco := ecosystems[EcosystemFor(p.PrimaryLanguage)]

	doc := &Document{
		ProjectName: projectName,
		Stages:      stageList(p.HasContainerDescriptor),
		BaseImage:   eco.image(p.VersionInfo.LanguageVersion),
		Variables:   eco.variables,
		Cache: CacheSpec{
			Key:    "$CI_COMMIT_REF_SLUG",
			Paths:  eco.cachePaths,
			Policy: "pull-push",
		},
		BeforeScript: eco.beforeScript(p),
	}

	doc.Jobs = append(doc.Jobs, eco.buildJob(p))
	if p.HasTests {
		doc.Jobs = append(doc.Jobs, eco.testJob(p))
	}
	doc.Jobs = append(doc.Jobs, eco.qualityJob(p))
	if s.SonarQubeEnabled {
		doc.Jobs = append(doc.Jobs, sonarQubeJob())
	}
	doc.Jobs = append(doc.Jobs, packageJob())
	if s.NexusEnabled {
		doc.Jobs = append(doc.Jobs, nexusUploadJob())
	}
	if p.HasContainerDescriptor {
		doc.Jobs = append(doc.Jobs, dockerBuildJob(projectName), dockerScanJob(projectName))
	}
	doc.Jobs = append(doc.Jobs,
		deployJob("staging", projectName, p.HasContainerDescriptor),
		deployJob("production", projectName, p.HasContainerDescriptor),
	)
	return doc
}

// stageList returns the fixed stage order, inserting docker-build before
// the deployment stages only when a container descriptor is present.
func stageList(hasContainer bool) []string {
	stages := []string{"build", "test", "quality", "package"}
	if hasContainer {
		stages = append(stages, "docker-build")
	}
	return append(stages, "deploy-staging", "deploy-production")
}

func sonarQubeJob() Job {
	return Job{
		Name:  "sonarqube-check",
		Stage: "quality",
		Image: "sonarsource/sonar-scanner-cli:latest",
		Variables: []Variable{
			{"SONAR_HOST_URL", "${SONAR_HOST_URL}"},
			{"SONAR_TOKEN", "${SONAR_TOKEN}"},
		},
		Script: []string{
			"sonar-scanner -Dsonar.projectKey=$CI_PROJECT_NAME -Dsonar.sources=. -Dsonar.host.url=$SONAR_HOST_URL -Dsonar.login=$SONAR_TOKEN",
		},
		AllowFailure: true,
		Only:         []string{"main", "develop"},
	}
}

func packageJob() Job {
	return Job{
		Name:  "package",
		Stage: "package",
		Script: []string{
			`echo "Packaging artifacts for deployment"`,
			"tar -czf application.tar.gz dist/ build/ staticfiles/ target/ app || true",
		},
		Artifacts: &Artifacts{
			Paths:    []string{"application.tar.gz"},
			ExpireIn: "1 week",
		},
		Only: []string{"main", "develop"},
	}
}

func nexusUploadJob() Job {
	return Job{
		Name:  "nexus-upload",
		Stage: "package",
		Script: []string{
			`echo "Uploading artifacts to Nexus Repository"`,
			"curl -v -u $NEXUS_USER:$NEXUS_PASSWORD --upload-file application.tar.gz $NEXUS_URL/repository/releases/$CI_PROJECT_NAME/$CI_COMMIT_TAG/application.tar.gz",
		},
		Only: []string{"tags"},
		When: "manual",
	}
}

// imageTag returns the per-project registry tag for the current commit.
func imageTag(projectName string) string {
	return fmt.Sprintf("$CI_REGISTRY_IMAGE:%s-$CI_COMMIT_SHA", strings.ToLower(projectName))
}

func dockerBuildJob(projectName string) Job {
	tag := imageTag(projectName)
	stableScript := fmt.Sprintf(
		"if [ \"$CI_COMMIT_BRANCH\" == \"main\" ]; then\n  docker tag %s $CI_REGISTRY_IMAGE:stable\n  docker push $CI_REGISTRY_IMAGE:stable\nfi",
		tag)

	return Job{
		Name:     "docker-build",
		Stage:    "docker-build",
		Image:    "docker:24-cli",
		Services: []string{"docker:24-dind"},
		Variables: []Variable{
			{"DOCKER_TLS_CERTDIR", "/certs"},
			{"DOCKER_DRIVER", "overlay2"},
		},
		BeforeScript: []string{
			"docker login -u $CI_REGISTRY_USER -p $CI_REGISTRY_PASSWORD $CI_REGISTRY",
		},
		Script: []string{
			`echo "Building Docker image with multi-stage build..."`,
			fmt.Sprintf("docker build --build-arg CI_COMMIT_SHA=$CI_COMMIT_SHA --build-arg CI_COMMIT_REF_NAME=$CI_COMMIT_REF_NAME --cache-from $CI_REGISTRY_IMAGE:latest -t %s -t $CI_REGISTRY_IMAGE:latest .", tag),
			fmt.Sprintf("docker push %s", tag),
			"docker push $CI_REGISTRY_IMAGE:latest",
			stableScript,
		},
		AfterScript: []string{"docker system prune -f"},
		Only:        []string{"main", "develop"},
	}
}

func dockerScanJob(projectName string) Job {
	return Job{
		Name:            "docker-security-scan",
		Stage:           "docker-build",
		Image:           "aquasec/trivy:latest",
		ImageEntrypoint: []string{""},
		Script: []string{
			fmt.Sprintf(`trivy image --format template --template "@contrib/gitlab.tpl" --output gl-container-scanning-report.json %s`, imageTag(projectName)),
		},
		Artifacts: &Artifacts{
			Reports: &Reports{ContainerScanning: "gl-container-scanning-report.json"},
		},
		Dependencies: []string{"docker-build"},
		AllowFailure: true,
		Only:         []string{"main", "develop"},
	}
}

// deployJob builds the staging or production deployment. The rollout
// command is chosen here, at synthesis time, by container presence —
// no shell-level branching survives into the document.
func deployJob(env string, projectName string, hasContainer bool) Job {
	name := strings.ToLower(projectName)
	script := []string{
		fmt.Sprintf(`echo "Deploying to %s environment"`, env),
		fmt.Sprintf("kubectl config use-context %s", env),
	}
	if hasContainer {
		script = append(script,
			fmt.Sprintf("kubectl set image deployment/%s %s=%s", name, name, imageTag(projectName)),
			fmt.Sprintf("kubectl rollout status deployment/%s", name),
		)
	} else {
		script = append(script, `echo "Non-containerized deployment: add rollout commands for your target (e.g. a VM)"`)
	}

	job := Job{
		Name:   "deploy-" + env,
		Stage:  "deploy-" + env,
		Image:  "bitnami/kubectl:latest",
		Script: script,
		When:   "manual",
	}
	switch env {
	case "staging":
		job.Environment = &Environment{Name: "staging", URL: fmt.Sprintf("https://staging.%s.com", name)}
		job.Only = []string{"develop"}
	case "production":
		job.Environment = &Environment{Name: "production", URL: fmt.Sprintf("https://%s.com", name)}
		job.Only = []string{"main"}
	}
	return job
}
