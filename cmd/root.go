package cmd

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"

	"cascutil/internal/dsl"
	"cascutil/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands. These mirror the error taxonomy: input-shape
// problems are caught before any document mutation, missing resources abort
// before merge/injection proceeds.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeBadInput indicates malformed user input such as a bad
	// name=value binding or a non-positive agent count.
	ExitCodeBadInput = 2
	// ExitCodeMissingResource indicates a required file or directory
	// (casc document, merge document, projects dir) was not found.
	ExitCodeMissingResource = 3
)

// debugLogging enables verbose logging across all subcommands.
var debugLogging bool

// rootCmd represents the base command for the cascutil application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cascutil",
	Short: "Assemble configuration as code (CasC) files for Jenkins",
	Long: `cascutil assembles a deployment-time Jenkins Configuration as Code
document: it loads a base casc file, injects job-dsl scripts discovered in
project repositories, adds agent placeholders to be resolved at run time,
merges overlay documents, and expands environment variable references at
output time.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if debugLogging {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application. It runs the root
// command under a signal-aware context so an interrupt stops in-flight git
// and docker child processes.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "cascutil version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var bindingErr *dsl.BindingFormatError
	if errors.As(err, &bindingErr) {
		return ExitCodeBadInput
	}

	var countErr *agentCountError
	if errors.As(err, &countErr) {
		return ExitCodeBadInput
	}

	if errors.Is(err, fs.ErrNotExist) {
		return ExitCodeMissingResource
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(newVersionCmd())
}
