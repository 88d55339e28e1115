package repos

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// File name patterns for the two kinds of files pulled out of checkouts.
var (
	// JobDSLFilePattern matches a repository's job-dsl script.
	JobDSLFilePattern = regexp.MustCompile(`.*job-dsl.*`)
	// CascFilePattern matches the base image's casc document, usually
	// named casc.yaml.
	CascFilePattern = regexp.MustCompile(`^.*casc.*\.ya?ml$`)
)

// SelectionError reports a directory that did not yield exactly one file
// matching the pattern. Matches carries the number of candidates found.
type SelectionError struct {
	Dir     string
	Pattern string
	Matches int
}

func (e *SelectionError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("%s has no file matching %s", e.Dir, e.Pattern)
	}
	return fmt.Sprintf("%s has %d files matching %s, want exactly one", e.Dir, e.Matches, e.Pattern)
}

// ListRepoNames returns the names of the checkouts under projectsDir, in
// directory order. A missing directory means setup has not run yet.
func ListRepoNames(projectsDir string) ([]string, error) {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil, fmt.Errorf("listing project repos (run 'setup' first?): %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

// FindOne returns the path of the single file in dir whose name matches
// pattern. Anything other than exactly one candidate is a SelectionError;
// directories never count as candidates.
func FindOne(dir string, pattern *regexp.Regexp) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("searching %s: %w", dir, err)
	}
	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern.MatchString(entry.Name()) {
			matches = append(matches, entry.Name())
		}
	}
	if len(matches) != 1 {
		return "", &SelectionError{Dir: dir, Pattern: pattern.String(), Matches: len(matches)}
	}
	return filepath.Join(dir, matches[0]), nil
}
