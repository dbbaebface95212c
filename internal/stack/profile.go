// Package stack assembles the technology profile of a source tree and
// scores how much signal supported it.
package stack

import (
	"sort"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/manifest"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/scan"
	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/source"
)

// VersionInfo carries the resolved language version. FrameworkVersions is
// reserved for future use and currently always empty.
type VersionInfo struct {
	LanguageVersion   string            `json:"language_version"`
	FrameworkVersions map[string]string `json:"framework_versions"`
}

// TechStackProfile is the immutable result of classifying a source tree.
type TechStackProfile struct {
	PrimaryLanguage        string              `json:"primary_language"`
	LanguageStats          []scan.LanguageStat `json:"language_stats"`
	VersionInfo            VersionInfo         `json:"version_info"`
	Frameworks             []string            `json:"frameworks"`
	BuildTools             []string            `json:"build_tools"`
	PackageManagers        []string            `json:"package_managers"`
	HasTests               bool                `json:"has_tests"`
	HasContainerDescriptor bool                `json:"has_dockerfile"`
}

// defaultVersions holds per-language fallback versions used when no
// manifest provides a hint.
var defaultVersions = map[string]string{
	"Java":       "11",
	"Kotlin":     "1.8",
	"Go":         "1.19",
	"TypeScript": "5.0",
	"JavaScript": "ES2022",
	"Python":     "3.9",
}

// HasFramework reports whether the profile contains the named framework.
func (p *TechStackProfile) HasFramework(name string) bool {
	for _, f := range p.Frameworks {
		if f == name {
			return true
		}
	}
	return false
}

// HasBuildTool reports whether the profile contains the named build tool.
func (p *TechStackProfile) HasBuildTool(name string) bool {
	for _, t := range p.BuildTools {
		if t == name {
			return true
		}
	}
	return false
}

// Build classifies the file records into a technology profile. Every
// sub-step degrades to an empty or default value when its signal is
// missing; an empty record list yields an Unknown profile, not an error.
func Build(records []source.FileRecord) *TechStackProfile {
	stats, primary := scan.Classify(records)

	buildTools := DetectBuildTools(records)

	return &TechStackProfile{
		PrimaryLanguage:        primary,
		LanguageStats:          stats,
		VersionInfo:            resolveVersion(records, primary),
		Frameworks:             resolveFrameworks(records, primary),
		BuildTools:             buildTools,
		PackageManagers:        buildTools, // identical by current policy
		HasTests:               HasTests(records),
		HasContainerDescriptor: HasContainerDescriptor(records),
	}
}

// resolveVersion starts from the per-language default and overrides it only
// when a manifest yields a hint; absence of a hint never clears the default.
func resolveVersion(records []source.FileRecord, primary string) VersionInfo {
	info := VersionInfo{
		LanguageVersion:   "latest",
		FrameworkVersions: map[string]string{},
	}
	if v, ok := defaultVersions[primary]; ok {
		info.LanguageVersion = v
	}

	switch primary {
	case "Java", "Kotlin":
		if v, ok := manifest.JavaVersionFromPOM(source.FindByName(records, "pom.xml")); ok {
			info.LanguageVersion = v
		}
		if v, ok := manifest.JavaVersionFromGradle(source.FindByName(records, "build.gradle")); ok {
			info.LanguageVersion = v
		}
	case "Go":
		if v, ok := manifest.GoVersion(source.FindByName(records, "go.mod")); ok {
			info.LanguageVersion = v
		}
	case "Python":
		if v, ok := manifest.PythonVersion(source.FindByName(records, "pyproject.toml")); ok {
			info.LanguageVersion = v
		}
	case "TypeScript", "JavaScript":
		if v, ok := manifest.NodeVersion(source.FindByName(records, "package.json")); ok {
			info.LanguageVersion = v
		}
	}
	return info
}

// resolveFrameworks unions every manifest parser applicable to the primary
// language with the structural heuristics, returning a sorted list.
func resolveFrameworks(records []source.FileRecord, primary string) []string {
	var sets []map[string]bool

	switch primary {
	case "JavaScript", "TypeScript":
		sets = append(sets, manifest.NodeFrameworks(source.FindByName(records, "package.json")))
	case "Python":
		sets = append(sets,
			manifest.RequirementsFrameworks(source.FindByName(records, "requirements.txt")),
			manifest.PyprojectFrameworks(source.FindByName(records, "pyproject.toml")))
	case "Java", "Kotlin":
		sets = append(sets,
			manifest.POMFrameworks(source.FindByName(records, "pom.xml")),
			manifest.GradleFrameworks(source.FindByName(records, "build.gradle")))
	case "Go":
		sets = append(sets, manifest.GoFrameworks(source.FindByName(records, "go.mod")))
	}
	sets = append(sets, StructuralFrameworks(records))

	merged := manifest.Union(sets...)
	frameworks := make([]string, 0, len(merged))
	for name := range merged {
		frameworks = append(frameworks, name)
	}
	sort.Strings(frameworks)
	return frameworks
}
