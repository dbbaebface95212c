package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		url      string
		platform string
		fullName string
	}{
		{"https://github.com/spring-projects/spring-boot", "github", "spring-projects/spring-boot"},
		{"https://github.com/user/repo.git", "github", "user/repo"},
		{"https://github.com/user/repo/", "github", "user/repo"},
		{"https://gitlab.com/gitlab-org/gitlab", "gitlab", "gitlab-org/gitlab"},
		{"git@nowhere", "", ""},
		{"https://bitbucket.org/team/repo", "", ""},
	}
	for _, tt := range tests {
		info, err := ParseURL(tt.url)
		if tt.platform == "" {
			if err == nil {
				t.Errorf("ParseURL(%s) expected error, got %+v", tt.url, info)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseURL(%s): %v", tt.url, err)
			continue
		}
		if info.Platform != tt.platform || info.FullName != tt.fullName {
			t.Errorf("ParseURL(%s) = %s %s, want %s %s",
				tt.url, info.Platform, info.FullName, tt.platform, tt.fullName)
		}
	}
}

func TestValidURL(t *testing.T) {
	if !ValidURL("https://github.com/user/repo") {
		t.Error("expected GitHub URL to be valid")
	}
	if ValidURL("ftp://example.com/stuff") {
		t.Error("expected non-repository URL to be invalid")
	}
}

func mkTree(t *testing.T, paths map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range paths {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestWalkSkipRules(t *testing.T) {
	root := mkTree(t, map[string]string{
		"main.go":                  "package main",
		"src/app.js":               "x",
		".gitignore":               "dist/",
		".env":                     "SECRET=1",
		".git/config":              "x",
		"node_modules/lib/x.js":    "x",
		"__pycache__/a.pyc":        "x",
		"vendor/ok.go":             "x", // not in the skip list
		".hidden/notes.txt":        "x",
		"dist/bundle.js":           "x",
		"deep/build/artifact.bin":  "x",
		"deep/src/component.jsx":   "x",
		".env.example":             "SECRET=",
		"docs/.DS_Store":           "x",
		"docs/readme.md":           "x",
		"target/classes/App.class": "x",
	})

	records, err := Walk(root)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	byPath := make(map[string]FileRecord)
	for _, r := range records {
		byPath[r.Path] = r
	}

	wantPresent := []string{
		"/main.go", "/src/app.js", "/.gitignore", "/.env.example",
		"/vendor/ok.go", "/deep/src/component.jsx", "/docs/readme.md",
	}
	for _, p := range wantPresent {
		if _, ok := byPath[p]; !ok {
			t.Errorf("expected %s in walk output", p)
		}
	}

	wantAbsent := []string{
		"/.env", "/.git/config", "/node_modules/lib/x.js", "/__pycache__/a.pyc",
		"/.hidden/notes.txt", "/dist/bundle.js", "/deep/build/artifact.bin",
		"/docs/.DS_Store", "/target/classes/App.class",
	}
	for _, p := range wantAbsent {
		if _, ok := byPath[p]; ok {
			t.Errorf("did not expect %s in walk output", p)
		}
	}
}

func TestWalkRecordFields(t *testing.T) {
	root := mkTree(t, map[string]string{"src/App.JSX": "hello"})

	records, err := Walk(root)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	var file *FileRecord
	for i, r := range records {
		if r.IsFile() {
			file = &records[i]
		}
	}
	if file == nil {
		t.Fatal("no file record produced")
	}
	if file.Name != "App.JSX" {
		t.Errorf("name = %q", file.Name)
	}
	if file.Extension != ".jsx" {
		t.Errorf("extension = %q, want lowercase .jsx", file.Extension)
	}
	if file.SizeBytes != 5 {
		t.Errorf("size = %d, want 5", file.SizeBytes)
	}
	if file.Path != "/src/App.JSX" {
		t.Errorf("path = %q", file.Path)
	}
}

func TestFindByName(t *testing.T) {
	root := mkTree(t, map[string]string{"sub/go.mod": "module x"})
	records, err := Walk(root)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	if got := FindByName(records, "go.mod"); got == "" {
		t.Error("expected go.mod to be found")
	}
	if got := FindByName(records, "pom.xml"); got != "" {
		t.Errorf("expected empty path for missing file, got %q", got)
	}
	if !HasFile(records, "go.mod") || HasFile(records, "pom.xml") {
		t.Error("HasFile mismatch")
	}
}

func TestSanitizeEntry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"repo-main/src/app.js", "repo-main/src/app.js"},
		{"../../etc/passwd", "etc/passwd"},
		{"./a/./b", "a/b"},
		{"a/../../b", "b"},
	}
	for _, tt := range tests {
		if got := sanitizeEntry(tt.in); got != tt.want {
			t.Errorf("sanitizeEntry(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// fakeGit materializes a fixed tree instead of cloning.
type fakeGit struct {
	files map[string]string
	fail  bool
}

func (g *fakeGit) Run(dir string, args ...string) (string, error) {
	if g.fail {
		return "", os.ErrNotExist
	}
	// last arg of clone is the target dir
	target := args[len(args)-1]
	for rel, content := range g.files {
		path := filepath.Join(target, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", err
		}
	}
	return "", nil
}

func TestFetchViaGit(t *testing.T) {
	f := NewFetcher("")
	f.Git = &fakeGit{files: map[string]string{
		"go.mod":  "module example.com/app\n",
		"main.go": "package main\n",
	}}

	info, err := ParseURL("https://github.com/user/app")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := f.Fetch(info)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	defer res.Cleanup()

	if res.Method != "git" {
		t.Errorf("method = %q, want git", res.Method)
	}
	if !HasFile(res.Records, "go.mod") || !HasFile(res.Records, "main.go") {
		t.Errorf("records missing expected files: %+v", res.Records)
	}
}

func TestResultCleanup(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "checkout")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	res := &Result{RootDir: sub}
	res.Cleanup()
	if _, err := os.Stat(sub); !os.IsNotExist(err) {
		t.Error("cleanup should remove the temp dir")
	}
	if res.RootDir != "" {
		t.Error("cleanup should clear RootDir")
	}
}
