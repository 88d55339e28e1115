package cmd

import (
	"os"
	"time"

	"cascutil/internal/dsl"
	"cascutil/internal/repos"
	"cascutil/pkg/logging"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const setupSubsystem = "setup"

// setupClean removes the working-directory contents added by setup instead
// of cloning.
var setupClean bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Clone the project and base-image repositories; invoked before docker-build",
	Long: `Reads the project repository list from ./jobs.toml and clones each entry
into the staging directory, plus the base-image repository (which carries
the default casc file) into the working directory. Existing checkouts are
replaced so re-running setup always yields fresh clones.

With --clean, the staging directory and the base-image checkout are removed
and nothing is cloned.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	baseRepoDir := repos.RepoName(repos.DefaultBaseImageRepoURL)

	if setupClean {
		if err := os.RemoveAll(dsl.StagingDirName); err != nil {
			return err
		}
		return os.RemoveAll(baseRepoDir)
	}

	config, err := repos.LoadConfig(repos.DefaultConfigPath)
	if err != nil {
		return err
	}

	// Stale checkouts would make git clone fail; start from a clean tree.
	if err := os.RemoveAll(dsl.StagingDirName); err != nil {
		return err
	}
	if err := os.RemoveAll(baseRepoDir); err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Cloning repositories..."
	s.Start()

	ctx := cmd.Context()
	err = repos.CloneAll(ctx, config.Git.RepoURLs, dsl.StagingDirName)
	if err == nil {
		err = repos.CloneAll(ctx, []string{repos.DefaultBaseImageRepoURL}, ".")
	}
	s.Stop()
	if err != nil {
		return err
	}

	logging.Debug(setupSubsystem, "cloned %d project repos and the base image repo", len(config.Git.RepoURLs))
	renderCloneSummary(cmd, config.Git.RepoURLs)
	return nil
}

// renderCloneSummary prints a table of everything setup checked out.
func renderCloneSummary(cmd *cobra.Command, projectURLs []string) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"REPOSITORY", "URL", "LOCATION"})
	for _, url := range projectURLs {
		t.AppendRow(table.Row{repos.RepoName(url), url, dsl.StagingDirName + "/"})
	}
	t.AppendRow(table.Row{
		repos.RepoName(repos.DefaultBaseImageRepoURL),
		repos.DefaultBaseImageRepoURL,
		"./",
	})
	t.Render()
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().BoolVarP(&setupClean, "clean", "c", false,
		"Clean the working directory of the contents added by the setup subcommand")
}
