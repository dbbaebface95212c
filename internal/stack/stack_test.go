package stack

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/source"
)

func fileRecord(name, relPath string) source.FileRecord {
	return source.FileRecord{
		Name:      name,
		Kind:      source.KindFile,
		Path:      relPath,
		Extension: strings.ToLower(filepath.Ext(name)),
	}
}

// materialize writes content files into a temp dir and returns records with
// absolute paths, like a real checkout.
func materialize(t *testing.T, files map[string]string) []source.FileRecord {
	t.Helper()
	dir := t.TempDir()
	var records []source.FileRecord
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		records = append(records, source.FileRecord{
			Name:         filepath.Base(name),
			Kind:         source.KindFile,
			Path:         name,
			Extension:    strings.ToLower(filepath.Ext(name)),
			SizeBytes:    int64(len(content)),
			AbsolutePath: path,
		})
	}
	return records
}

func TestDetectBuildTools(t *testing.T) {
	records := []source.FileRecord{
		fileRecord("package.json", "package.json"),
		fileRecord("yarn.lock", "yarn.lock"),
		fileRecord("go.mod", "go.mod"),
		fileRecord("main.go", "main.go"),
	}

	got := DetectBuildTools(records)
	want := []string{"go", "npm", "yarn"}
	if len(got) != len(want) {
		t.Fatalf("DetectBuildTools = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DetectBuildTools[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHasTestsByFilename(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"parser_test.go", true},
		{"test_models.py", true},
		{"app.test.tsx", true},
		{"Button.spec.js", true},
		{"UserServiceTest.java", true},
		{"main.go", false},
		{"contest.py", false},
	}
	for _, tt := range tests {
		records := []source.FileRecord{fileRecord(tt.name, tt.name)}
		if got := HasTests(records); got != tt.want {
			t.Errorf("HasTests(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHasTestsByDirectory(t *testing.T) {
	records := []source.FileRecord{
		fileRecord("helpers.py", "tests/helpers.py"),
	}
	if !HasTests(records) {
		t.Error("expected tests/ path segment to count as a test signal")
	}

	// "testserver" is not the segment "test"
	records = []source.FileRecord{
		fileRecord("main.go", "testserver/main.go"),
	}
	if HasTests(records) {
		t.Error("substring match on directory names is not allowed")
	}
}

func TestHasContainerDescriptor(t *testing.T) {
	if !HasContainerDescriptor([]source.FileRecord{fileRecord("Dockerfile", "Dockerfile")}) {
		t.Error("expected Dockerfile to be detected")
	}
	if HasContainerDescriptor([]source.FileRecord{fileRecord("Dockerfile.md", "Dockerfile.md")}) {
		t.Error("Dockerfile.md is not a container descriptor")
	}
}

func TestStructuralFrameworks(t *testing.T) {
	records := []source.FileRecord{
		fileRecord("App.jsx", "src/App.jsx"),
		fileRecord("manage.py", "manage.py"),
	}
	got := StructuralFrameworks(records)
	if !got["React"] || !got["Django"] {
		t.Errorf("expected React and Django, got %v", got)
	}
}

func TestConfidenceEmptyTree(t *testing.T) {
	p := Build(nil)
	if got := Confidence(p, nil); got != 0.4 {
		t.Errorf("Confidence on empty tree = %v, want 0.4", got)
	}
}

func TestConfidenceBounds(t *testing.T) {
	records := materialize(t, map[string]string{
		"go.mod":       "module example.com/app\n\ngo 1.21\n\nrequire github.com/gin-gonic/gin v1.9.1\n",
		"main.go":      "package main\n\nfunc main() {}\n",
		"main_test.go": "package main\n",
	})

	p := Build(records)
	got := Confidence(p, records)
	if got < 0 || got > 1 {
		t.Fatalf("confidence %v outside [0, 1]", got)
	}
	// base 0.4 + manifest 0.15 + build tools 0.1 + tests 0.1 + frameworks 0.1
	// + known language 0.15 = 1.0
	if got != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got)
	}
}

func TestBuildGoProject(t *testing.T) {
	records := materialize(t, map[string]string{
		"go.mod":  "module example.com/app\n\ngo 1.21.3\n",
		"main.go": "package main\n\nfunc main() {}\n",
	})

	p := Build(records)
	if p.PrimaryLanguage != "Go" {
		t.Errorf("primary language = %q, want Go", p.PrimaryLanguage)
	}
	if p.VersionInfo.LanguageVersion != "1.21.3" {
		t.Errorf("language version = %q, want 1.21.3 (manifest override)", p.VersionInfo.LanguageVersion)
	}
	if !p.HasBuildTool("go") {
		t.Errorf("expected go build tool, got %v", p.BuildTools)
	}
}

func TestBuildDefaultVersionWhenManifestSilent(t *testing.T) {
	records := materialize(t, map[string]string{
		"app.py": "print('hi')\n",
	})

	p := Build(records)
	if p.PrimaryLanguage != "Python" {
		t.Fatalf("primary language = %q, want Python", p.PrimaryLanguage)
	}
	if p.VersionInfo.LanguageVersion != "3.9" {
		t.Errorf("language version = %q, want default 3.9", p.VersionInfo.LanguageVersion)
	}
}

func TestBuildUnknownLanguageVersion(t *testing.T) {
	records := materialize(t, map[string]string{
		"lib.rs": "fn main() {}\n",
	})

	p := Build(records)
	if p.PrimaryLanguage != "Rust" {
		t.Fatalf("primary language = %q, want Rust", p.PrimaryLanguage)
	}
	if p.VersionInfo.LanguageVersion != "latest" {
		t.Errorf("language version = %q, want latest", p.VersionInfo.LanguageVersion)
	}
}

func TestRecommendations(t *testing.T) {
	records := materialize(t, map[string]string{
		"main.go": "package main\n",
	})
	p := Build(records)
	recs := Recommendations(p, records)

	wantSubstrings := []string{"go test", "Dockerfile", ".gitlab-ci.yml"}
	for _, want := range wantSubstrings {
		found := false
		for _, r := range recs {
			if strings.Contains(r, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a recommendation mentioning %q, got %v", want, recs)
		}
	}
}
