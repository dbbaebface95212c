package manifest

import (
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// requirementsFrameworks maps requirements.txt package-name substrings to
// canonical framework names.
var requirementsFrameworks = map[string]string{
	"django":     "Django",
	"flask":      "Flask",
	"fastapi":    "FastAPI",
	"tornado":    "Tornado",
	"sanic":      "Sanic",
	"starlette":  "Starlette",
	"aiohttp":    "aiohttp",
	"streamlit":  "Streamlit",
	"pandas":     "Pandas",
	"numpy":      "NumPy",
	"tensorflow": "TensorFlow",
	"pytorch":    "PyTorch",
	"torch":      "PyTorch",
	"pytest":     "pytest",
	"unittest":   "unittest",
}

// pyprojectFrameworks maps pyproject.toml content substrings to canonical names.
var pyprojectFrameworks = map[string]string{
	"django":  "Django",
	"flask":   "Flask",
	"fastapi": "FastAPI",
	"poetry":  "Poetry",
}

var (
	requirementSplit     = regexp.MustCompile(`[><=!]`)
	pythonVersionPattern = regexp.MustCompile(`(\d+\.\d+)`)
)

type pyprojectDoc struct {
	Project struct {
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
}

// PythonVersion extracts the Python version from pyproject.toml's
// requires-python constraint (e.g. ">=3.9" yields "3.9").
func PythonVersion(path string) (string, bool) {
	data, ok := readManifest(path)
	if !ok {
		return "", false
	}
	var doc pyprojectDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", false
	}
	if m := pythonVersionPattern.FindString(doc.Project.RequiresPython); m != "" {
		return m, true
	}
	return "", false
}

// RequirementsFrameworks scans requirements.txt lines for recognized
// packages. Comment lines are skipped; version constraints are stripped
// before matching.
func RequirementsFrameworks(path string) map[string]bool {
	frameworks := make(map[string]bool)

	data, ok := readManifest(path)
	if !ok {
		return frameworks
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pkg := strings.TrimSpace(requirementSplit.Split(line, 2)[0])
		for key, name := range requirementsFrameworks {
			if strings.Contains(pkg, key) {
				frameworks[name] = true
			}
		}
	}
	return frameworks
}

// PyprojectFrameworks scans pyproject.toml content for recognized framework
// mentions. The scan is a plain substring match so partially written
// descriptors still yield their signals.
func PyprojectFrameworks(path string) map[string]bool {
	frameworks := make(map[string]bool)

	data, ok := readManifest(path)
	if !ok {
		return frameworks
	}
	content := strings.ToLower(string(data))
	for key, name := range pyprojectFrameworks {
		if strings.Contains(content, key) {
			frameworks[name] = true
		}
	}
	return frameworks
}
