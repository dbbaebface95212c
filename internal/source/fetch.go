package source

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// GitRunner provides git command execution. Interface for testing.
type GitRunner interface {
	Run(dir string, args ...string) (string, error)
}

// ExecGit implements GitRunner using exec.Command.
type ExecGit struct{}

func (g *ExecGit) Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return strings.TrimSpace(string(out)), fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Result holds a materialized repository tree ready for analysis.
// RootDir is empty in tree-API mode, where no content is available locally
// and every content-dependent step degrades to its default.
type Result struct {
	Records []FileRecord
	RootDir string // temp dir containing the checkout, "" in tree-API mode
	Method  string // "git", "archive" or "tree-api"
}

// Cleanup removes the temp directory backing the result, if any.
func (r *Result) Cleanup() {
	RemoveAll(r.RootDir)
	r.RootDir = ""
}

// Fetcher materializes remote repositories into local file record lists.
type Fetcher struct {
	Git      GitRunner
	HTTP     *http.Client
	Token    string   // optional GitHub token for the tree API fallback
	Branches []string // archive branch candidates, in order
}

// NewFetcher returns a Fetcher with the default git runner and HTTP client.
func NewFetcher(token string) *Fetcher {
	return &Fetcher{
		Git:      &ExecGit{},
		HTTP:     &http.Client{Timeout: 30 * time.Second},
		Token:    token,
		Branches: []string{"main", "master", "develop"},
	}
}

// Fetch acquires the repository at url, preferring a shallow git clone and
// falling back to archive download, then (GitHub only) to the tree API.
func (f *Fetcher) Fetch(info *RepoInfo) (*Result, error) {
	if res, err := f.fetchGit(info); err == nil {
		return res, nil
	}

	res, archiveErr := f.fetchArchive(info)
	if archiveErr == nil {
		return res, nil
	}

	if info.Platform == "github" {
		records, err := fetchGitHubTree(f.HTTP, f.Token, info)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", info.FullName, err)
		}
		return &Result{Records: records, Method: "tree-api"}, nil
	}
	return nil, fmt.Errorf("fetch %s: %w", info.FullName, archiveErr)
}

func (f *Fetcher) fetchGit(info *RepoInfo) (*Result, error) {
	dir, err := os.MkdirTemp("", "selfdeploy-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	if _, err := f.Git.Run("", "clone", "--depth", "1", info.URL, dir); err != nil {
		RemoveAll(dir)
		return nil, err
	}
	records, err := Walk(dir)
	if err != nil {
		RemoveAll(dir)
		return nil, err
	}
	return &Result{Records: records, RootDir: dir, Method: "git"}, nil
}

func (f *Fetcher) fetchArchive(info *RepoInfo) (*Result, error) {
	var lastErr error
	for _, branch := range f.Branches {
		data, err := f.downloadArchive(info, branch)
		if err != nil {
			lastErr = err
			continue
		}
		res, err := f.extractArchive(data)
		if err != nil {
			lastErr = err
			continue
		}
		return res, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no archive branches configured")
	}
	return nil, fmt.Errorf("download archive: %w", lastErr)
}

func (f *Fetcher) downloadArchive(info *RepoInfo, branch string) ([]byte, error) {
	var url string
	switch info.Platform {
	case "github":
		url = fmt.Sprintf("https://github.com/%s/%s/archive/refs/heads/%s.zip", info.Owner, info.Name, branch)
	case "gitlab":
		url = fmt.Sprintf("https://gitlab.com/%s/%s/-/archive/%s/%s-%s.zip", info.Owner, info.Name, branch, info.Name, branch)
	default:
		return nil, fmt.Errorf("unsupported platform %q", info.Platform)
	}

	resp, err := f.HTTP.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("branch %s: HTTP %d", branch, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// extractArchive unpacks the zip into a temp dir and walks the single
// top-level directory hosting providers put into their archives.
func (f *Fetcher) extractArchive(data []byte) (*Result, error) {
	dir, err := os.MkdirTemp("", "selfdeploy-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	if err := unzip(data, dir); err != nil {
		RemoveAll(dir)
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		RemoveAll(dir)
		return nil, fmt.Errorf("read extracted dir: %w", err)
	}
	root := dir
	for _, e := range entries {
		if e.IsDir() {
			root = filepath.Join(dir, e.Name())
			break
		}
	}

	records, err := Walk(root)
	if err != nil {
		RemoveAll(dir)
		return nil, err
	}
	return &Result{Records: records, RootDir: root, Method: "archive"}, nil
}

// unzip extracts an in-memory zip archive under dest, rejecting entries
// whose sanitized path would escape it.
func unzip(data []byte, dest string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	for _, zf := range zr.File {
		target := filepath.Join(dest, sanitizeEntry(zf.Name))
		if zf.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", filepath.Dir(target), err)
		}
		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("open entry %s: %w", zf.Name, err)
		}
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			rc.Close()
			return fmt.Errorf("create %s: %w", target, err)
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("extract %s: %w", zf.Name, err)
		}
	}
	return nil
}

// sanitizeEntry normalizes a zip entry path, dropping '.' and '..' segments
// so entries cannot escape the extraction root.
func sanitizeEntry(p string) string {
	parts := strings.Split(filepath.ToSlash(p), "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
		case "..":
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
		default:
			stack = append(stack, part)
		}
	}
	return filepath.Join(stack...)
}
