package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Render serializes the document as a .gitlab-ci.yml. The YAML tree is
// built node by node so stage order, job order and script line order
// survive serialization exactly as synthesized.
func Render(doc *Document) ([]byte, error) {
	root := newMapping()

	addKey(root, "stages", seqNode(doc.Stages))
	addKey(root, "variables", variablesNode(doc.Variables))
	addKey(root, "image", strNode(doc.BaseImage))
	addKey(root, "cache", cacheNode(doc.Cache))
	addKey(root, "before_script", seqNode(doc.BeforeScript))

	lastStage := ""
	for i := range doc.Jobs {
		job := &doc.Jobs[i]
		key := strNode(job.Name)
		if job.Stage != lastStage {
			key.HeadComment = stageBanner(job.Stage)
			lastStage = job.Stage
		}
		root.Content = append(root.Content, key, jobNode(job))
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode pipeline yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

func stageBanner(stage string) string {
	return fmt.Sprintf("==================== %s STAGE ====================", strings.ToUpper(stage))
}

func jobNode(job *Job) *yaml.Node {
	m := newMapping()
	addKey(m, "stage", strNode(job.Stage))

	if job.Image != "" {
		if len(job.ImageEntrypoint) > 0 {
			img := newMapping()
			addKey(img, "name", strNode(job.Image))
			addKey(img, "entrypoint", seqNode(job.ImageEntrypoint))
			addKey(m, "image", img)
		} else {
			addKey(m, "image", strNode(job.Image))
		}
	}
	if len(job.Services) > 0 {
		addKey(m, "services", seqNode(job.Services))
	}
	if len(job.Variables) > 0 {
		addKey(m, "variables", variablesNode(job.Variables))
	}
	if len(job.BeforeScript) > 0 {
		addKey(m, "before_script", seqNode(job.BeforeScript))
	}
	addKey(m, "script", seqNode(job.Script))
	if len(job.AfterScript) > 0 {
		addKey(m, "after_script", seqNode(job.AfterScript))
	}
	if job.Artifacts != nil {
		addKey(m, "artifacts", artifactsNode(job.Artifacts))
	}
	if job.CoverageRegex != "" {
		addKey(m, "coverage", strNode(job.CoverageRegex))
	}
	if job.AllowFailure {
		addKey(m, "allow_failure", boolNode(true))
	}
	if len(job.Dependencies) > 0 {
		addKey(m, "dependencies", seqNode(job.Dependencies))
	}
	if job.Environment != nil {
		env := newMapping()
		addKey(env, "name", strNode(job.Environment.Name))
		if job.Environment.URL != "" {
			addKey(env, "url", strNode(job.Environment.URL))
		}
		addKey(m, "environment", env)
	}
	if len(job.Only) > 0 {
		addKey(m, "only", seqNode(job.Only))
	}
	if job.When != "" {
		addKey(m, "when", strNode(job.When))
	}
	return m
}

func artifactsNode(a *Artifacts) *yaml.Node {
	m := newMapping()
	if len(a.Paths) > 0 {
		addKey(m, "paths", seqNode(a.Paths))
	}
	if a.Reports != nil {
		r := newMapping()
		if a.Reports.JUnit != "" {
			addKey(r, "junit", strNode(a.Reports.JUnit))
		}
		if a.Reports.CodeQuality != "" {
			addKey(r, "codequality", strNode(a.Reports.CodeQuality))
		}
		if a.Reports.ContainerScanning != "" {
			addKey(r, "container_scanning", strNode(a.Reports.ContainerScanning))
		}
		if a.Reports.Coverage != nil {
			c := newMapping()
			addKey(c, "coverage_format", strNode(a.Reports.Coverage.Format))
			addKey(c, "path", strNode(a.Reports.Coverage.Path))
			addKey(r, "coverage_report", c)
		}
		addKey(m, "reports", r)
	}
	if a.ExpireIn != "" {
		addKey(m, "expire_in", strNode(a.ExpireIn))
	}
	if a.When != "" {
		addKey(m, "when", strNode(a.When))
	}
	return m
}

func cacheNode(c CacheSpec) *yaml.Node {
	m := newMapping()
	addKey(m, "key", strNode(c.Key))
	addKey(m, "paths", seqNode(c.Paths))
	addKey(m, "policy", strNode(c.Policy))
	return m
}

func variablesNode(vars []Variable) *yaml.Node {
	m := newMapping()
	for _, v := range vars {
		addKey(m, v.Key, strNode(v.Value))
	}
	return m
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func addKey(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, strNode(key), value)
}

func strNode(s string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	if strings.Contains(s, "\n") {
		n.Style = yaml.LiteralStyle
	}
	return n
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", b)}
}

func seqNode(items []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range items {
		n.Content = append(n.Content, strNode(item))
	}
	return n
}
