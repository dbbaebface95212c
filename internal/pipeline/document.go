// Package pipeline compiles a technology profile into a structured GitLab
// CI document. The synthesizer builds the in-memory model; serialization
// to YAML is a single separate pass so structural validity never depends
// on which branches fired.
package pipeline

// Document is the full synthesized pipeline: ordered stages, global
// configuration and ordered jobs. It is built once per analysis run and
// never mutated.
type Document struct {
	ProjectName  string     `json:"project_name"`
	Stages       []string   `json:"stages"`
	BaseImage    string     `json:"image"`
	Variables    []Variable `json:"variables"`
	Cache        CacheSpec  `json:"cache"`
	BeforeScript []string   `json:"before_script"`
	Jobs         []Job      `json:"jobs"`
}

// Variable is one environment variable entry. Order is preserved.
type Variable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CacheSpec configures dependency caching for the pipeline.
type CacheSpec struct {
	Key    string   `json:"key"`
	Paths  []string `json:"paths"`
	Policy string   `json:"policy"`
}

// Job is a single pipeline job bound to a stage.
type Job struct {
	Name            string       `json:"name"`
	Stage           string       `json:"stage"`
	Image           string       `json:"image,omitempty"`
	ImageEntrypoint []string     `json:"image_entrypoint,omitempty"`
	Services        []string     `json:"services,omitempty"`
	Variables       []Variable   `json:"variables,omitempty"`
	BeforeScript    []string     `json:"before_script,omitempty"`
	Script          []string     `json:"script"`
	AfterScript     []string     `json:"after_script,omitempty"`
	Artifacts       *Artifacts   `json:"artifacts,omitempty"`
	CoverageRegex   string       `json:"coverage,omitempty"`
	AllowFailure    bool         `json:"allow_failure,omitempty"`
	Dependencies    []string     `json:"dependencies,omitempty"`
	Environment     *Environment `json:"environment,omitempty"`
	Only            []string     `json:"only,omitempty"`
	When            string       `json:"when,omitempty"`
}

// Artifacts configures what a job preserves after it finishes.
type Artifacts struct {
	Paths    []string `json:"paths,omitempty"`
	ExpireIn string   `json:"expire_in,omitempty"`
	When     string   `json:"when,omitempty"`
	Reports  *Reports `json:"reports,omitempty"`
}

// Reports holds structured report references inside an artifacts block.
type Reports struct {
	JUnit             string          `json:"junit,omitempty"`
	CodeQuality       string          `json:"codequality,omitempty"`
	ContainerScanning string          `json:"container_scanning,omitempty"`
	Coverage          *CoverageReport `json:"coverage_report,omitempty"`
}

// CoverageReport references a coverage report file and its format.
type CoverageReport struct {
	Format string `json:"coverage_format"`
	Path   string `json:"path"`
}

// Environment names a deployment environment.
type Environment struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Job lookup by name, for tests and rendering. Returns nil when absent.
func (d *Document) Job(name string) *Job {
	for i := range d.Jobs {
		if d.Jobs[i].Name == name {
			return &d.Jobs[i]
		}
	}
	return nil
}
