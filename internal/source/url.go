package source

import (
	"fmt"
	"regexp"
)

// RepoInfo identifies a hosted repository parsed from its URL.
type RepoInfo struct {
	URL      string `json:"url"`
	Platform string `json:"platform"` // "github" or "gitlab"
	Owner    string `json:"owner"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

var (
	githubURLPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	gitlabURLPattern = regexp.MustCompile(`gitlab\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// ParseURL extracts owner and repository name from a GitHub or GitLab URL.
func ParseURL(url string) (*RepoInfo, error) {
	if m := githubURLPattern.FindStringSubmatch(url); m != nil {
		return &RepoInfo{
			URL:      url,
			Platform: "github",
			Owner:    m[1],
			Name:     m[2],
			FullName: m[1] + "/" + m[2],
		}, nil
	}
	if m := gitlabURLPattern.FindStringSubmatch(url); m != nil {
		return &RepoInfo{
			URL:      url,
			Platform: "gitlab",
			Owner:    m[1],
			Name:     m[2],
			FullName: m[1] + "/" + m[2],
		}, nil
	}
	return nil, fmt.Errorf("unsupported repository URL %q: only github.com and gitlab.com are supported", url)
}

// ValidURL reports whether url looks like a supported repository URL.
func ValidURL(url string) bool {
	_, err := ParseURL(url)
	return err == nil
}
