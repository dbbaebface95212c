package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNodeVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		ok      bool
	}{
		{"range constraint", `{"engines": {"node": ">=18.0.0"}}`, "18.0", true},
		{"bare major", `{"engines": {"node": "20"}}`, "20", true},
		{"no engines", `{"name": "app"}`, "", false},
		{"invalid json", `{not json`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, "package.json", tt.content)
			got, ok := NodeVersion(path)
			if got != tt.want || ok != tt.ok {
				t.Errorf("NodeVersion = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNodeVersionMissingFile(t *testing.T) {
	if _, ok := NodeVersion(filepath.Join(t.TempDir(), "package.json")); ok {
		t.Error("expected ok=false for missing file")
	}
}

func TestNodeFrameworks(t *testing.T) {
	path := writeManifest(t, "package.json", `{
		"dependencies": {"react": "^18.2.0", "express": "^4.18.0"},
		"devDependencies": {"jest": "^29.0.0", "left-pad": "1.0.0"}
	}`)

	got := NodeFrameworks(path)
	for _, want := range []string{"React", "Express.js", "Jest"} {
		if !got[want] {
			t.Errorf("expected %s to be detected, got %v", want, got)
		}
	}
	if len(got) != 3 {
		t.Errorf("expected exactly 3 frameworks, got %v", got)
	}
}

func TestPythonVersion(t *testing.T) {
	path := writeManifest(t, "pyproject.toml", `
[project]
name = "app"
requires-python = ">=3.11"
`)
	got, ok := PythonVersion(path)
	if !ok || got != "3.11" {
		t.Errorf("PythonVersion = (%q, %v), want (3.11, true)", got, ok)
	}
}

func TestPythonVersionAbsent(t *testing.T) {
	path := writeManifest(t, "pyproject.toml", `
[project]
name = "app"
`)
	if _, ok := PythonVersion(path); ok {
		t.Error("expected ok=false when requires-python is absent")
	}
}

func TestRequirementsFrameworks(t *testing.T) {
	path := writeManifest(t, "requirements.txt", `
# web stack
Django==4.2
flask>=2.0
pytest
left-pad==1.0
`)
	got := RequirementsFrameworks(path)
	for _, want := range []string{"Django", "Flask", "pytest"} {
		if !got[want] {
			t.Errorf("expected %s to be detected, got %v", want, got)
		}
	}
	if got["left-pad"] {
		t.Error("unexpected detection of unrelated package")
	}
}

func TestPyprojectFrameworks(t *testing.T) {
	path := writeManifest(t, "pyproject.toml", `
[tool.poetry]
name = "svc"

[tool.poetry.dependencies]
fastapi = "^0.100"
`)
	got := PyprojectFrameworks(path)
	if !got["FastAPI"] || !got["Poetry"] {
		t.Errorf("expected FastAPI and Poetry, got %v", got)
	}
}

func TestGoVersion(t *testing.T) {
	path := writeManifest(t, "go.mod", `module example.com/app

go 1.21.3

require github.com/gin-gonic/gin v1.9.1
`)
	got, ok := GoVersion(path)
	if !ok || got != "1.21.3" {
		t.Errorf("GoVersion = (%q, %v), want (1.21.3, true)", got, ok)
	}
}

func TestGoFrameworks(t *testing.T) {
	path := writeManifest(t, "go.mod", `module example.com/app

go 1.21

require (
	github.com/gin-gonic/gin v1.9.1
	gorm.io/gorm v1.25.0
	github.com/stretchr/testify v1.8.0
)
`)
	got := GoFrameworks(path)
	if !got["Gin"] || !got["GORM"] {
		t.Errorf("expected Gin and GORM, got %v", got)
	}
	if len(got) != 2 {
		t.Errorf("expected exactly 2 frameworks, got %v", got)
	}
}

func TestJavaVersionFromPOM(t *testing.T) {
	path := writeManifest(t, "pom.xml", `<?xml version="1.0"?>
<project>
  <properties>
    <java.version>17</java.version>
  </properties>
</project>`)
	got, ok := JavaVersionFromPOM(path)
	if !ok || got != "17" {
		t.Errorf("JavaVersionFromPOM = (%q, %v), want (17, true)", got, ok)
	}
}

func TestJavaVersionFromPOMCompilerSource(t *testing.T) {
	path := writeManifest(t, "pom.xml", `<?xml version="1.0"?>
<project>
  <properties>
    <maven.compiler.source>11</maven.compiler.source>
  </properties>
</project>`)
	got, ok := JavaVersionFromPOM(path)
	if !ok || got != "11" {
		t.Errorf("JavaVersionFromPOM = (%q, %v), want (11, true)", got, ok)
	}
}

func TestJavaVersionFromGradle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"sourceCompatibility", `sourceCompatibility = '17'`, "17"},
		{"enum form", `sourceCompatibility = JavaVersion.VERSION_11`, "11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, "build.gradle", tt.content)
			got, ok := JavaVersionFromGradle(path)
			if !ok || got != tt.want {
				t.Errorf("JavaVersionFromGradle = (%q, %v), want (%q, true)", got, ok, tt.want)
			}
		})
	}
}

func TestPOMFrameworks(t *testing.T) {
	path := writeManifest(t, "pom.xml", `<?xml version="1.0"?>
<project>
  <dependencies>
    <dependency>
      <groupId>org.springframework.boot</groupId>
      <artifactId>spring-boot-starter-web</artifactId>
    </dependency>
    <dependency>
      <groupId>org.junit.jupiter</groupId>
      <artifactId>junit-jupiter</artifactId>
    </dependency>
  </dependencies>
</project>`)
	got := POMFrameworks(path)
	if !got["Spring Boot"] {
		t.Errorf("expected Spring Boot, got %v", got)
	}
	if !got["JUnit"] {
		t.Errorf("expected JUnit, got %v", got)
	}
}

func TestUnion(t *testing.T) {
	a := map[string]bool{"x": true}
	b := map[string]bool{"y": true}
	got := Union(a, b)
	if !got["x"] || !got["y"] || len(got) != 2 {
		t.Errorf("Union = %v", got)
	}
}
