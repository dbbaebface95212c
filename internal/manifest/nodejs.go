package manifest

import (
	"encoding/json"
	"regexp"
)

// nodeFrameworks maps package.json dependency keys to canonical framework names.
var nodeFrameworks = map[string]string{
	"react":         "React",
	"@types/react":  "React",
	"react-dom":     "React",
	"react-scripts": "React",
	"next":          "Next.js",
	"nuxt":          "Nuxt.js",
	"vue":           "Vue.js",
	"@vue/cli":      "Vue.js",
	"@angular/core": "Angular",
	"svelte":        "Svelte",
	"express":       "Express.js",
	"koa":           "Koa",
	"fastify":       "Fastify",
	"@nestjs/core":  "NestJS",
	"typescript":    "TypeScript",
	"webpack":       "Webpack",
	"vite":          "Vite",
	"jest":          "Jest",
	"mocha":         "Mocha",
	"cypress":       "Cypress",
}

var nodeVersionPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

type packageJSON struct {
	Engines         map[string]string `json:"engines"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// NodeVersion extracts the Node.js version from package.json's engines.node
// constraint (e.g. ">=18.0.0" yields "18.0").
func NodeVersion(path string) (string, bool) {
	data, ok := readManifest(path)
	if !ok {
		return "", false
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", false
	}
	constraint, ok := pkg.Engines["node"]
	if !ok {
		return "", false
	}
	if m := nodeVersionPattern.FindString(constraint); m != "" {
		return m, true
	}
	return "", false
}

// NodeFrameworks returns the canonical frameworks recognized among
// package.json dependencies and devDependencies.
func NodeFrameworks(path string) map[string]bool {
	frameworks := make(map[string]bool)

	data, ok := readManifest(path)
	if !ok {
		return frameworks
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return frameworks
	}

	deps := union(toSet(pkg.Dependencies), toSet(pkg.DevDependencies))
	for key, name := range nodeFrameworks {
		if deps[key] {
			frameworks[name] = true
		}
	}
	return frameworks
}

func toSet(m map[string]string) map[string]bool {
	s := make(map[string]bool, len(m))
	for k := range m {
		s[k] = true
	}
	return s
}
