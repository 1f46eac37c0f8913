// Package gitrepo fetches remote repositories for analysis and locates
// their README. Cloning is shallow: the graph only ever looks at the
// checked-out tree, never at history.
package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// ErrEmptyURL is returned when the repository URL is blank.
var ErrEmptyURL = errors.New("repository URL cannot be empty")

// readmeNames are checked in order when locating the repository README.
var readmeNames = []string{"README.md", "readme.md", "README.txt", "Readme.md"}

// Clone performs a depth-1 clone of url into a fresh temp directory and
// returns the directory, the derived repository name, and a cleanup
// function. The cleanup removes the temp directory and is safe to defer
// immediately.
func Clone(ctx context.Context, url string) (dir, name string, cleanup func(), err error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", "", nil, ErrEmptyURL
	}

	dir, err = os.MkdirTemp("", "ccg-repo-")
	if err != nil {
		return "", "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	_, err = gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	if err != nil {
		cleanup()
		return "", "", nil, fmt.Errorf("clone %s: %w", url, err)
	}

	return dir, RepoName(url), cleanup, nil
}

// RepoName derives a display name from a repository URL:
// "https://host/owner/repo.git" -> "repo".
func RepoName(url string) string {
	name := path.Base(strings.TrimSuffix(strings.TrimSpace(url), "/"))
	return strings.TrimSuffix(name, ".git")
}

// ReadReadme returns the content of the first README variant found in the
// repository root, or ok=false when none exists or it cannot be read.
func ReadReadme(repoPath string) (content string, ok bool) {
	for _, name := range readmeNames {
		data, err := os.ReadFile(filepath.Join(repoPath, name))
		if err != nil {
			continue
		}
		return string(data), true
	}
	return "", false
}
