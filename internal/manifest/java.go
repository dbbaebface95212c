package manifest

import (
	"bytes"
	"encoding/xml"
	"regexp"
	"strings"
)

// pomFrameworks maps pom.xml artifactId substrings to canonical names.
var pomFrameworks = map[string]string{
	"spring-boot": "Spring Boot",
	"spring-core": "Spring Framework",
	"spring-web":  "Spring Web",
	"hibernate":   "Hibernate",
	"junit":       "JUnit",
	"mockito":     "Mockito",
}

// gradleFrameworks maps build.gradle content substrings to canonical names.
var gradleFrameworks = map[string]string{
	"spring-boot": "Spring Boot",
	"spring":      "Spring Framework",
	"hibernate":   "Hibernate",
	"junit":       "JUnit",
	"kotlin":      "Kotlin",
}

var (
	gradleSourceCompat = regexp.MustCompile(`sourceCompatibility\s*=\s*["']?(\d+(?:\.\d+)?)["']?`)
	gradleJavaVersion  = regexp.MustCompile(`JavaVersion\.VERSION_(\d+)`)
)

// JavaVersionFromPOM extracts the Java version from pom.xml properties
// (java.version or maven.compiler.source, in either namespace).
func JavaVersionFromPOM(path string) (string, bool) {
	data, ok := readManifest(path)
	if !ok {
		return "", false
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	inProperties := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "properties" {
				inProperties = true
				continue
			}
			if inProperties && (strings.Contains(t.Name.Local, "java.version") || strings.Contains(t.Name.Local, "maven.compiler.source")) {
				var value string
				if err := dec.DecodeElement(&value, &t); err != nil {
					return "", false
				}
				value = strings.TrimSpace(value)
				if value != "" {
					return value, true
				}
			}
		case xml.EndElement:
			if t.Name.Local == "properties" {
				inProperties = false
			}
		}
	}
}

// JavaVersionFromGradle extracts the Java version from build.gradle via
// sourceCompatibility or JavaVersion.VERSION_n declarations.
func JavaVersionFromGradle(path string) (string, bool) {
	data, ok := readManifest(path)
	if !ok {
		return "", false
	}
	if m := gradleSourceCompat.FindSubmatch(data); m != nil {
		return string(m[1]), true
	}
	if m := gradleJavaVersion.FindSubmatch(data); m != nil {
		return string(m[1]), true
	}
	return "", false
}

// POMFrameworks returns the frameworks recognized among pom.xml dependency
// artifactIds, at any nesting depth.
func POMFrameworks(path string) map[string]bool {
	frameworks := make(map[string]bool)

	data, ok := readManifest(path)
	if !ok {
		return frameworks
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	depDepth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			return frameworks
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "dependency":
				depDepth++
			case depDepth > 0 && t.Name.Local == "artifactId":
				var artifact string
				if err := dec.DecodeElement(&artifact, &t); err != nil {
					return frameworks
				}
				artifact = strings.ToLower(strings.TrimSpace(artifact))
				for key, name := range pomFrameworks {
					if strings.Contains(artifact, key) {
						frameworks[name] = true
					}
				}
			}
		case xml.EndElement:
			if t.Name.Local == "dependency" {
				depDepth--
			}
		}
	}
}

// GradleFrameworks scans build.gradle content for recognized framework
// mentions.
func GradleFrameworks(path string) map[string]bool {
	frameworks := make(map[string]bool)

	data, ok := readManifest(path)
	if !ok {
		return frameworks
	}
	content := strings.ToLower(string(data))
	for key, name := range gradleFrameworks {
		if strings.Contains(content, key) {
			frameworks[name] = true
		}
	}
	return frameworks
}
