// Package scan classifies a source tree's file records into per-language
// line statistics and picks the dominant implementation language.
package scan

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/Ioshi5505/Nexus-Pipline-HackatonT2025/internal/source"
)

// UnknownLanguage is returned when no recognized source file is present.
const UnknownLanguage = "Unknown"

// maxFileSize is the per-file read ceiling; larger files contribute zero lines.
const maxFileSize = 1024 * 1024

// languageExtensions maps file extensions to recognized languages.
var languageExtensions = map[string]string{
	// JavaScript/TypeScript
	".js":  "JavaScript",
	".jsx": "JavaScript",
	".ts":  "TypeScript",
	".tsx": "TypeScript",
	".mjs": "JavaScript",
	".cjs": "JavaScript",

	// Python
	".py":  "Python",
	".pyw": "Python",
	".pyx": "Python",

	// Java/Kotlin
	".java": "Java",
	".kt":   "Kotlin",
	".kts":  "Kotlin",

	// Go
	".go": "Go",

	// Additional languages
	".rs":    "Rust",
	".cpp":   "C++",
	".cc":    "C++",
	".cxx":   "C++",
	".c":     "C",
	".h":     "C/C++",
	".hpp":   "C++",
	".cs":    "C#",
	".php":   "PHP",
	".rb":    "Ruby",
	".swift": "Swift",
	".scala": "Scala",
	".dart":  "Dart",
}

// configLanguages are markup/config pseudo-languages that must never win
// primary-language selection over an implementation language.
var configLanguages = map[string]bool{
	"JSON":     true,
	"YAML":     true,
	"XML":      true,
	"Markdown": true,
	"HTML":     true,
	"CSS":      true,
}

// LanguageStat holds significant-line statistics for one language.
type LanguageStat struct {
	Language   string  `json:"language"`
	Lines      int     `json:"lines"`
	Percentage float64 `json:"percentage"`
}

// Classify counts significant lines per recognized language and returns the
// stats sorted by descending line count together with the primary language.
// Unreadable or oversized files contribute zero; an empty tree yields a nil
// slice and UnknownLanguage.
func Classify(records []source.FileRecord) ([]LanguageStat, string) {
	stats := CountLines(records)
	return stats, PrimaryLanguage(stats)
}

// CountLines accumulates per-language significant line counts and derives
// percentages over the grand total, rounded to one decimal.
func CountLines(records []source.FileRecord) []LanguageStat {
	lines := make(map[string]int)
	total := 0

	for _, r := range records {
		if !r.IsFile() {
			continue
		}
		lang, ok := languageExtensions[r.Extension]
		if !ok {
			continue
		}
		n := countFileLines(r)
		if n > 0 {
			lines[lang] += n
			total += n
		}
	}

	if total == 0 {
		return nil
	}

	stats := make([]LanguageStat, 0, len(lines))
	for lang, n := range lines {
		pct := float64(int(float64(n)/float64(total)*1000+0.5)) / 10
		stats = append(stats, LanguageStat{Language: lang, Lines: n, Percentage: pct})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Lines != stats[j].Lines {
			return stats[i].Lines > stats[j].Lines
		}
		return stats[i].Language < stats[j].Language
	})
	return stats
}

// countFileLines counts non-blank lines in the record's file. Missing paths,
// oversized files and read failures all contribute zero — absence of a
// signal is not an error here.
func countFileLines(r source.FileRecord) int {
	if r.AbsolutePath == "" {
		return 0
	}
	info, err := os.Stat(r.AbsolutePath)
	if err != nil || info.Size() > maxFileSize {
		return 0
	}

	f, err := os.Open(r.AbsolutePath)
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxFileSize)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			count++
		}
	}
	if sc.Err() != nil {
		return 0
	}
	return count
}

// PrimaryLanguage picks the first language by line count that is not a
// markup/config pseudo-language. When only config languages are present the
// most voluminous one wins anyway; an empty stat list yields UnknownLanguage.
func PrimaryLanguage(stats []LanguageStat) string {
	if len(stats) == 0 {
		return UnknownLanguage
	}
	for _, s := range stats {
		if !configLanguages[s.Language] {
			return s.Language
		}
	}
	return stats[0].Language
}
