// Package analyzer drives a full analysis run: acquire the repository,
// build its technology profile and score the result.
package analyzer

import (
	"fmt"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/source"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/stack"
)

// Analysis is the complete result of one repository analysis run.
type Analysis struct {
	Repository      *source.RepoInfo        `json:"repository"`
	Profile         *stack.TechStackProfile `json:"tech_stack"`
	Confidence      float64                 `json:"confidence_level"`
	Recommendations []string                `json:"recommendations"`
	FileCount       int                     `json:"file_count"`
	Method          string                  `json:"analysis_method"`
}

// Analyze fetches the repository at url and classifies it. The fetch temp
// directory is removed before returning; everything the caller needs is in
// the Analysis.
func Analyze(fetcher *source.Fetcher, url string) (*Analysis, error) {
	info, err := source.ParseURL(url)
	if err != nil {
		return nil, err
	}

	res, err := fetcher.Fetch(info)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", info.FullName, err)
	}
	defer res.Cleanup()

	return FromRecords(info, res.Records, res.Method), nil
}

// FromRecords classifies an already-materialized record list. Split out of
// Analyze so local trees and tests can bypass acquisition entirely.
func FromRecords(info *source.RepoInfo, records []source.FileRecord, method string) *Analysis {
	profile := stack.Build(records)
	return &Analysis{
		Repository:      info,
		Profile:         profile,
		Confidence:      stack.Confidence(profile, records),
		Recommendations: stack.Recommendations(profile, records),
		FileCount:       len(records),
		Method:          method,
	}
}
