package manifest

import (
	"strings"

	"golang.org/x/mod/modfile"
)

// goFrameworks maps go.mod require-path substrings to canonical names.
var goFrameworks = map[string]string{
	"gin-gonic/gin": "Gin",
	"gorilla/mux":   "Gorilla Mux",
	"labstack/echo": "Echo",
	"fiber":         "Fiber",
	"gorm.io/gorm":  "GORM",
	"go-chi/chi":    "Chi",
}

// GoVersion extracts the go directive version from go.mod.
func GoVersion(path string) (string, bool) {
	data, ok := readManifest(path)
	if !ok {
		return "", false
	}
	mf, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil || mf.Go == nil || mf.Go.Version == "" {
		return "", false
	}
	return mf.Go.Version, true
}

// GoFrameworks returns the frameworks recognized among go.mod require paths.
func GoFrameworks(path string) map[string]bool {
	frameworks := make(map[string]bool)

	data, ok := readManifest(path)
	if !ok {
		return frameworks
	}
	mf, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil {
		return frameworks
	}
	for _, req := range mf.Require {
		modPath := req.Mod.Path
		for key, name := range goFrameworks {
			if strings.Contains(modPath, key) {
				frameworks[name] = true
			}
		}
	}
	return frameworks
}
