package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selfdeploy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
output_dir: out
branches: [trunk]
sonarqube: false
token_env: GH_TOKEN
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("output_dir = %q", cfg.OutputDir)
	}
	if len(cfg.Branches) != 1 || cfg.Branches[0] != "trunk" {
		t.Errorf("branches = %v", cfg.Branches)
	}
	if cfg.SonarQubeEnabled() {
		t.Error("sonarqube should be disabled")
	}
	if !cfg.NexusEnabled() {
		t.Error("nexus should default to enabled")
	}
	if cfg.TokenEnv != "GH_TOKEN" {
		t.Errorf("token_env = %q", cfg.TokenEnv)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `sonarqube: true`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.OutputDir != "generated_pipelines" {
		t.Errorf("output_dir default = %q", cfg.OutputDir)
	}
	if len(cfg.Branches) != 3 || cfg.Branches[0] != "main" {
		t.Errorf("branches default = %v", cfg.Branches)
	}
	if cfg.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("token_env default = %q", cfg.TokenEnv)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "output_dir: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if errs := Validate(cfg); len(errs) != 0 {
		t.Errorf("default config must validate, got %v", errs)
	}
	if !cfg.SonarQubeEnabled() || !cfg.NexusEnabled() {
		t.Error("integrations default to enabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErrs int
	}{
		{
			name:     "valid",
			cfg:      Config{OutputDir: "out", Branches: []string{"main"}},
			wantErrs: 0,
		},
		{
			name:     "missing output dir",
			cfg:      Config{Branches: []string{"main"}},
			wantErrs: 1,
		},
		{
			name:     "no branches",
			cfg:      Config{OutputDir: "out"},
			wantErrs: 1,
		},
		{
			name:     "bad branch name",
			cfg:      Config{OutputDir: "out", Branches: []string{"feat ure"}},
			wantErrs: 1,
		},
		{
			name:     "duplicate branch",
			cfg:      Config{OutputDir: "out", Branches: []string{"main", "main"}},
			wantErrs: 1,
		},
		{
			name:     "bad token env",
			cfg:      Config{OutputDir: "out", Branches: []string{"main"}, TokenEnv: "A B"},
			wantErrs: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(&tt.cfg)
			if len(errs) != tt.wantErrs {
				t.Errorf("got %d errors (%v), want %d", len(errs), errs, tt.wantErrs)
			}
		})
	}
}
