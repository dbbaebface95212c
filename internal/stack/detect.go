package stack

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/source"
)

// buildToolFiles maps well-known marker filenames to build tools. Detection
// is presence-only; no file is ever read.
var buildToolFiles = map[string]string{
	"package.json":      "npm",
	"yarn.lock":         "yarn",
	"pnpm-lock.yaml":    "pnpm",
	"requirements.txt":  "pip",
	"pyproject.toml":    "poetry",
	"Pipfile":           "pipenv",
	"pom.xml":           "maven",
	"build.gradle":      "gradle",
	"build.gradle.kts":  "gradle",
	"Cargo.toml":        "cargo",
	"go.mod":            "go",
	"Makefile":          "make",
	"webpack.config.js": "webpack",
	"vite.config.js":    "vite",
	"vite.config.ts":    "vite",
}

// test file naming conventions across the supported ecosystems
var testFilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^test.*\.py$`),
	regexp.MustCompile(`(?i)^test_.*\.py$`),
	regexp.MustCompile(`(?i).*_test\.py$`),
	regexp.MustCompile(`(?i).*\.test\.jsx?$`),
	regexp.MustCompile(`(?i).*\.spec\.jsx?$`),
	regexp.MustCompile(`(?i).*\.test\.tsx?$`),
	regexp.MustCompile(`(?i).*\.spec\.tsx?$`),
	regexp.MustCompile(`(?i).*Test\.java$`),
	regexp.MustCompile(`(?i).*_test\.go$`),
}

// testDirs matched as proper path segments, not substrings
var testDirs = map[string]bool{
	"test":      true,
	"tests":     true,
	"__tests__": true,
	"spec":      true,
	"specs":     true,
}

// container descriptor filenames, matched exactly
var dockerfileNames = map[string]bool{
	"Dockerfile":      true,
	"dockerfile":      true,
	"Dockerfile.prod": true,
	"Dockerfile.dev":  true,
}

// DetectBuildTools scans the record list once against the marker-filename
// table and returns the sorted set of recognized tools.
func DetectBuildTools(records []source.FileRecord) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		if !r.IsFile() {
			continue
		}
		if tool, ok := buildToolFiles[r.Name]; ok {
			seen[tool] = true
		}
	}

	tools := make([]string, 0, len(seen))
	for t := range seen {
		tools = append(tools, t)
	}
	sort.Strings(tools)
	return tools
}

// HasTests reports whether any record matches a test naming convention or
// lives under a conventional test directory. Either signal alone suffices.
func HasTests(records []source.FileRecord) bool {
	for _, r := range records {
		for _, p := range testFilePatterns {
			if p.MatchString(r.Name) {
				return true
			}
		}
		for _, seg := range strings.Split(r.Path, "/") {
			if testDirs[seg] {
				return true
			}
		}
	}
	return false
}

// HasContainerDescriptor reports whether the tree carries a Dockerfile.
func HasContainerDescriptor(records []source.FileRecord) bool {
	for _, r := range records {
		if r.IsFile() && dockerfileNames[r.Name] {
			return true
		}
	}
	return false
}

// StructuralFrameworks infers frameworks from file structure alone:
// component extensions and well-known entrypoint filenames imply a
// framework even when no manifest names it.
func StructuralFrameworks(records []source.FileRecord) map[string]bool {
	frameworks := make(map[string]bool)
	for _, r := range records {
		if !r.IsFile() {
			continue
		}
		switch r.Extension {
		case ".jsx", ".tsx":
			frameworks["React"] = true
		case ".vue":
			frameworks["Vue.js"] = true
		}
		if r.Name == "manage.py" || r.Name == "settings.py" {
			frameworks["Django"] = true
		}
	}
	return frameworks
}
