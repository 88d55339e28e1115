package repos

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseImageRepoURL is the repository holding the base CasC document
// the assembled configuration starts from.
const DefaultBaseImageRepoURL = "https://github.com/cavcrosby/jenkins-docker-base"

// CloneError reports a failed git clone of one repository.
type CloneError struct {
	URL    string
	Stderr string
	Err    error
}

func (e *CloneError) Error() string {
	msg := fmt.Sprintf("cloning %s: %v", e.URL, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// RepoName derives the checkout directory name from a repository URL, the
// last path element.
func RepoName(url string) string {
	return path.Base(strings.TrimSuffix(url, "/"))
}

// CloneAll clones every repository URL into dest (created when missing),
// each under its RepoName. Clones run in parallel; the first failure
// cancels the rest and is returned.
func CloneAll(ctx context.Context, urls []string, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating clone destination: %w", err)
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, url := range urls {
		url := url
		g.Go(func() error {
			return clone(ctx, url, filepath.Join(dest, RepoName(url)))
		})
	}
	return g.Wait()
}

func clone(ctx context.Context, url, target string) error {
	cmd := exec.CommandContext(ctx, "git", "clone", "--quiet", url, target)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &CloneError{URL: url, Stderr: stderr.String(), Err: err}
	}
	return nil
}
