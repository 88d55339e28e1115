package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"cascutil/internal/casc"
	"cascutil/internal/dsl"
	"cascutil/internal/repos"
	"cascutil/pkg/logging"

	"github.com/spf13/cobra"
)

const addJobsSubsystem = "addjobs"

var (
	addJobsFlags documentFlags

	// addJobsTransformRFFW enables rewriting of readFileFromWorkspace
	// expressions so job-dsl scripts work before any workspace exists.
	addJobsTransformRFFW bool
)

var addJobsCmd = &cobra.Command{
	Use:   "addjobs",
	Short: "Add Jenkins jobs to the loaded configuration based on job-dsl file(s) in repo(s)",
	Long: `Scans every project repository under the staging directory for a job-dsl
script and appends each one as a {script: ...} entry to the document's jobs
list. A repository must contain exactly one job-dsl file; repositories with
zero or several candidates are skipped with a warning and the run continues.

Requires 'cascutil setup' to have cloned the project repositories first.`,
	Args: cobra.NoArgs,
	RunE: runAddJobs,
}

func runAddJobs(cmd *cobra.Command, args []string) error {
	// Bindings are validated before the document is touched so a bad
	// binding aborts with nothing partially assembled.
	bindings, err := dsl.ParseBindings(addJobsFlags.envVars)
	if err != nil {
		return err
	}

	doc, err := loadBaseDocument(addJobsFlags.cascPath)
	if err != nil {
		return err
	}

	repoNames, err := repos.ListRepoNames(dsl.StagingDirName)
	if err != nil {
		return err
	}

	var scripts []casc.Script
	for _, name := range repoNames {
		script, err := collectJobScript(name)
		if err != nil {
			var selErr *repos.SelectionError
			if errors.As(err, &selErr) {
				logging.Warn(addJobsSubsystem, "%v, skipping %s", selErr, name)
				continue
			}
			return err
		}
		scripts = append(scripts, script)
	}

	casc.InjectScripts(doc, scripts)

	if err := mergeIfRequested(doc, addJobsFlags.mergePath); err != nil {
		return err
	}
	return writeDocument(cmd.OutOrStdout(), doc, bindings)
}

// collectJobScript reads the single job-dsl file of one project repository,
// applying the workspace-reference rewrite when enabled.
func collectJobScript(repoName string) (casc.Script, error) {
	dir := filepath.Join(dsl.StagingDirName, repoName)
	path, err := repos.FindOne(dir, repos.JobDSLFilePattern)
	if err != nil {
		return casc.Script{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return casc.Script{}, err
	}
	text := string(data)
	if addJobsTransformRFFW {
		text = dsl.RewriteWorkspaceRefs(repoName, text)
	}
	return casc.Script{Source: repoName, Text: text}, nil
}

func init() {
	rootCmd.AddCommand(addJobsCmd)
	addJobsFlags.register(addJobsCmd)
	addJobsCmd.Flags().BoolVarP(&addJobsTransformRFFW, "transform-rffw", "t", false,
		"Transform readFileFromWorkspace functions to enable usage with casc && job-dsl plugin")
}
