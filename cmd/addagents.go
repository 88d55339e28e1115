package cmd

import (
	"fmt"

	"cascutil/internal/casc"
	"cascutil/internal/dsl"

	"github.com/spf13/cobra"
)

var (
	addAgentsFlags documentFlags

	// addAgentsCount is how many agent placeholders to add.
	addAgentsCount int
)

// agentCountError reports a non-positive --numagents value. It is rejected
// before the placeholder generator runs.
type agentCountError struct {
	count int
}

func (e *agentCountError) Error() string {
	return fmt.Sprintf("number of agents must be a positive integer, got %d", e.count)
}

var addAgentsCmd = &cobra.Command{
	Use:   "addagent-placeholder",
	Short: "Add placeholder(s) for new Jenkins agents, to be defined at run time",
	Long: `Appends agent node descriptors to the document's jenkins.nodes list. Each
descriptor's name, description, executor count and remote root directory are
deferred environment variable references indexed per agent
(e.g. ${JENKINS_AGENT_NAME1}), so images can declare agents without being
explicit, and users may ignore the placeholders entirely.`,
	Args: cobra.NoArgs,
	RunE: runAddAgents,
}

func runAddAgents(cmd *cobra.Command, args []string) error {
	if addAgentsCount < 1 {
		return &agentCountError{count: addAgentsCount}
	}
	bindings, err := dsl.ParseBindings(addAgentsFlags.envVars)
	if err != nil {
		return err
	}

	doc, err := loadBaseDocument(addAgentsFlags.cascPath)
	if err != nil {
		return err
	}

	casc.AddAgentPlaceholders(doc, addAgentsCount)

	if err := mergeIfRequested(doc, addAgentsFlags.mergePath); err != nil {
		return err
	}
	return writeDocument(cmd.OutOrStdout(), doc, bindings)
}

func init() {
	rootCmd.AddCommand(addAgentsCmd)
	addAgentsFlags.register(addAgentsCmd)
	addAgentsCmd.Flags().IntVarP(&addAgentsCount, "numagents", "n", 1,
		"Number of agents (with their placeholders) to add")
}
