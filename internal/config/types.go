// Package config loads and validates the selfdeploy YAML configuration.
package config

// Config holds the tool-level settings read from selfdeploy.yaml.
type Config struct {
	// OutputDir is where generated pipeline artifacts are written.
	OutputDir string `yaml:"output_dir"`

	// Branches are tried in order when downloading a repository archive.
	Branches []string `yaml:"branches"`

	// SonarQube toggles generation of the sonarqube-check job. Nil means enabled.
	SonarQube *bool `yaml:"sonarqube"`

	// Nexus toggles generation of the nexus-upload job. Nil means enabled.
	Nexus *bool `yaml:"nexus"`

	// HistoryDB is the path to the SQLite analysis history database.
	// Empty means ~/.selfdeploy/history.db.
	HistoryDB string `yaml:"history_db"`

	// TokenEnv names the environment variable holding the GitHub API token.
	TokenEnv string `yaml:"token_env"`
}

// SonarQubeEnabled reports whether the sonarqube-check job should be generated.
func (c *Config) SonarQubeEnabled() bool {
	return c.SonarQube == nil || *c.SonarQube
}

// NexusEnabled reports whether the nexus-upload job should be generated.
func (c *Config) NexusEnabled() bool {
	return c.Nexus == nil || *c.Nexus
}
