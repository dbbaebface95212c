package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// chdir stands in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if stdin != "" {
		rootCmd.SetIn(strings.NewReader(stdin))
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "selfdeploy version 1.2.3") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestConfigShowDefaults(t *testing.T) {
	// run from an empty dir so no selfdeploy.yaml is picked up
	chdir(t, t.TempDir())

	out, err := execute(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"output_dir: generated_pipelines", "main", "token_env: GITHUB_TOKEN"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q in:\n%s", want, out)
		}
	}
}

func TestConfigValidateBadFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "selfdeploy.yaml", "branches: ['bad branch', 'bad branch']\n")

	_, err := execute(t, "", "config", "validate")
	if err == nil {
		t.Error("expected validation failure")
	}
}

func TestAnalyzeInteractiveRejectsBadURL(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "not-a-repo-url\nexit\n", "analyze")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "unsupported URL") {
		t.Errorf("expected URL rejection, got:\n%s", out)
	}
	if !strings.Contains(out, "Thanks for using selfdeploy.") {
		t.Errorf("expected clean exit, got:\n%s", out)
	}
}

func TestAnalyzeInteractiveEmptyInput(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "\nquit\n", "analyze")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(out, "URL cannot be empty") {
		t.Errorf("expected empty-URL error, got:\n%s", out)
	}
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
