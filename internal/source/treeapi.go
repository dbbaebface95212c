package source

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// fetchGitHubTree lists the repository via the GitHub git trees API. The
// resulting records carry no absolute paths, so the profile builder will
// skip every content-dependent step.
func fetchGitHubTree(httpClient *http.Client, token string, info *RepoInfo) ([]FileRecord, error) {
	ctx := context.Background()

	hc := httpClient
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}
	client := github.NewClient(hc)

	tree, _, err := client.Git.GetTree(ctx, info.Owner, info.Name, "HEAD", true)
	if err != nil {
		return nil, fmt.Errorf("github tree API: %w", err)
	}

	var records []FileRecord
	for _, entry := range tree.Entries {
		p := entry.GetPath()
		name := path.Base(p)

		if skipTreeDir(path.Dir(p)) {
			continue
		}

		if entry.GetType() == "tree" {
			if skipDir(name) {
				continue
			}
			records = append(records, FileRecord{
				Name: name,
				Kind: KindDirectory,
				Path: "/" + p,
			})
			continue
		}
		if entry.GetType() != "blob" || skipFile(name) {
			continue
		}
		records = append(records, FileRecord{
			Name:      name,
			Kind:      KindFile,
			Path:      "/" + p,
			Extension: strings.ToLower(path.Ext(name)),
			SizeBytes: int64(entry.GetSize()),
		})
	}
	return records, nil
}

// skipTreeDir applies the walk's directory exclusions to an API parent
// path: any excluded or hidden segment disqualifies the whole entry.
func skipTreeDir(dir string) bool {
	if dir == "." {
		return false
	}
	for _, seg := range strings.Split(dir, "/") {
		if seg != "" && skipDir(seg) {
			return true
		}
	}
	return false
}
