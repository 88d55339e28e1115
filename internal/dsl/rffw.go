package dsl

import (
	"fmt"
	"regexp"
	"strings"
)

// StagingDirName is the directory, relative to the Jenkins working
// directory, under which fetched project repositories are relocated before
// the CasC document is consumed. The rewriter roots workspace-relative
// paths here.
const StagingDirName = "projects"

// Matches readFileFromWorkspace('<path>') with a non-empty single-quoted
// argument. Calls in any other shape (wrong quote style, missing close
// paren) intentionally do not match and pass through verbatim.
var workspaceRefPattern = regexp.MustCompile(`readFileFromWorkspace\('([^']+)'\)`)

const currentDirPrefix = "./"

// RewriteWorkspaceRefs rewrites readFileFromWorkspace call expressions in a
// job-dsl script so they work where no Jenkins workspace exists yet. Each
// matched call becomes a direct file read of the path relocated under the
// staging directory for repoName:
//
//	readFileFromWorkspace('./cfg.txt') => new File('./projects/<repoName>/cfg.txt').text
//
// The rewrite runs in two passes: first every distinct matched expression is
// mapped to its replacement, then each is substituted as a literal string.
// The second pass never re-scans replaced text, so a replacement can not be
// matched again. Input with no matches is returned unchanged.
func RewriteWorkspaceRefs(repoName, jobDSL string) string {
	matches := workspaceRefPattern.FindAllStringSubmatch(jobDSL, -1)
	if len(matches) == 0 {
		return jobDSL
	}

	replacements := make(map[string]string, len(matches))
	exprs := make([]string, 0, len(matches))
	for _, m := range matches {
		expr, arg := m[0], m[1]
		if _, seen := replacements[expr]; seen {
			continue
		}
		replacements[expr] = fmt.Sprintf("new File('%s').text", relocateArg(repoName, arg))
		exprs = append(exprs, expr)
	}

	for _, expr := range exprs {
		jobDSL = strings.ReplaceAll(jobDSL, expr, replacements[expr])
	}
	return jobDSL
}

// relocateArg replaces a leading current-directory marker with the staging
// path for the repository. Arguments without the marker pass through
// unchanged.
func relocateArg(repoName, arg string) string {
	if rest, ok := strings.CutPrefix(arg, currentDirPrefix); ok {
		return currentDirPrefix + StagingDirName + "/" + repoName + "/" + rest
	}
	return arg
}
