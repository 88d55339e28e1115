// Package docker wraps the docker build invocation used to bake the
// assembled configuration into an image. It is thin process orchestration;
// no image inspection or daemon API use.
package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// BuildOptions configures one docker build run.
type BuildOptions struct {
	// Tag is the image tag, plain or name:tag form.
	Tag string
	// Official marks a non-testing build; the current git branch and
	// commit get passed as BRANCH/COMMIT build arguments.
	Official bool
	// ExtraOpts are raw option strings forwarded to docker build. Each is
	// whitespace-split, so "-t image:latest" becomes two arguments.
	ExtraOpts []string
}

// BuildError reports a docker build that did not exit cleanly.
type BuildError struct {
	Args []string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("docker %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Build runs docker build against the working directory. Output streams
// through to the caller's stdout/stderr; interruption arrives via ctx.
func Build(ctx context.Context, opts BuildOptions) error {
	var branch, commit string
	if opts.Official {
		var err error
		if branch, err = gitRevParse(ctx, "--abbrev-ref", "HEAD"); err != nil {
			return err
		}
		if commit, err = gitRevParse(ctx, "HEAD"); err != nil {
			return err
		}
	}

	args := buildArgs(opts, branch, commit)
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &BuildError{Args: args, Err: err}
	}
	return nil
}

// buildArgs assembles the docker build argument list. The final "." sends
// the working directory as the build context.
func buildArgs(opts BuildOptions, branch, commit string) []string {
	args := []string{"build", "--no-cache"}
	if opts.Official {
		args = append(args,
			"--build-arg", "BRANCH="+branch,
			"--build-arg", "COMMIT="+commit,
		)
	}
	args = append(args, "--tag", opts.Tag)
	for _, opt := range opts.ExtraOpts {
		args = append(args, strings.Fields(opt)...)
	}
	return append(args, ".")
}

func gitRevParse(ctx context.Context, revArgs ...string) (string, error) {
	args := append([]string{"rev-parse"}, revArgs...)
	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		return "", fmt.Errorf("resolving git %s: %w", strings.Join(revArgs, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}
