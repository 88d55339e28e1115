package cmd

import (
	"cascutil/internal/docker"

	"github.com/spf13/cobra"
)

var (
	// dockerBuildOpts are raw options forwarded to docker build.
	dockerBuildOpts []string

	// dockerBuildOfficial marks a non-testing build; branch and commit of
	// the current checkout get baked in as build arguments.
	dockerBuildOfficial bool
)

var dockerBuildCmd = &cobra.Command{
	Use:   "docker-build TAG",
	Short: "Run 'docker build' against the working directory",
	Long: `Builds the Jenkins image from the working directory with --no-cache. TAG is
a normal docker tag, or name:tag format. Official builds additionally pass
the current git branch and commit as BRANCH/COMMIT build arguments.`,
	Args: cobra.ExactArgs(1),
	RunE: runDockerBuild,
}

func runDockerBuild(cmd *cobra.Command, args []string) error {
	return docker.Build(cmd.Context(), docker.BuildOptions{
		Tag:       args[0],
		Official:  dockerBuildOfficial,
		ExtraOpts: dockerBuildOpts,
	})
}

func init() {
	rootCmd.AddCommand(dockerBuildCmd)
	dockerBuildCmd.Flags().StringArrayVar(&dockerBuildOpts, "opt", nil,
		"Pass options to 'docker build', e.g. --opt '-t image:v1.0.0' --opt '-t image:latest'")
	dockerBuildCmd.Flags().BoolVarP(&dockerBuildOfficial, "officialbld", "b", false,
		"Perform a docker build that is considered non-testing")
}
