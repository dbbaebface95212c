package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/analyzer"
)

// Default filenames written for each analyzed repository.
const (
	PipelineFile = ".gitlab-ci.yml"
	ReportFile   = "analysis_report.txt"
	ReadmeFile   = "README.md"
	AnalysisFile = "analysis.json"
)

// Store manages generated pipeline artifacts on disk.
type Store struct {
	baseDir string // defaults to ./generated_pipelines
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultStore returns a Store at ./generated_pipelines, creating the
// directory if needed.
func DefaultStore() (*Store, error) {
	dir := "generated_pipelines"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &Store{baseDir: dir}, nil
}

// BaseDir returns the store's root directory.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// RepoDir returns the output directory for a repository.
func (s *Store) RepoDir(repoName string) string {
	return filepath.Join(s.baseDir, repoName)
}

// Artifacts is the set of rendered documents saved for one analysis run.
type Artifacts struct {
	Pipeline []byte
	Report   string
	Readme   string
}

// Save writes all artifacts for a repository under <baseDir>/<repoName>/.
// Existing files are overwritten; each write is atomic.
func (s *Store) Save(repoName string, a *analyzer.Analysis, art Artifacts) (string, error) {
	dir := s.RepoDir(repoName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	if err := WriteAtomic(filepath.Join(dir, PipelineFile), art.Pipeline); err != nil {
		return "", fmt.Errorf("write pipeline: %w", err)
	}
	if err := WriteAtomic(filepath.Join(dir, ReportFile), []byte(art.Report)); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := WriteAtomic(filepath.Join(dir, ReadmeFile), []byte(art.Readme)); err != nil {
		return "", fmt.Errorf("write readme: %w", err)
	}
	if err := WriteJSON(filepath.Join(dir, AnalysisFile), a); err != nil {
		return "", fmt.Errorf("write analysis: %w", err)
	}
	return dir, nil
}
