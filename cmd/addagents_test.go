package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func resetAddAgentsFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		addAgentsFlags = documentFlags{}
		addAgentsCount = 1
	})
}

func runAddAgentsCapture(t *testing.T) (string, error) {
	t.Helper()
	var out bytes.Buffer
	addAgentsCmd.SetOut(&out)
	defer addAgentsCmd.SetOut(nil)

	err := runAddAgents(addAgentsCmd, nil)
	return out.String(), err
}

func TestRunAddAgentsAppendsPlaceholders(t *testing.T) {
	chdir(t, t.TempDir())
	resetAddAgentsFlags(t)

	addAgentsFlags.cascPath = seedBaseCasc(t)
	addAgentsCount = 2

	raw, err := runAddAgentsCapture(t)
	require.NoError(t, err)

	var decoded struct {
		Jenkins struct {
			Nodes []struct {
				Permanent struct {
					Name string `yaml:"name"`
				} `yaml:"permanent"`
			} `yaml:"nodes"`
		} `yaml:"jenkins"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(raw), &decoded))
	require.Len(t, decoded.Jenkins.Nodes, 2)
	assert.Equal(t, "${JENKINS_AGENT_NAME1}", decoded.Jenkins.Nodes[0].Permanent.Name)
	assert.Equal(t, "${JENKINS_AGENT_NAME2}", decoded.Jenkins.Nodes[1].Permanent.Name)
}

func TestRunAddAgentsExpandsIndexedBindings(t *testing.T) {
	chdir(t, t.TempDir())
	resetAddAgentsFlags(t)

	addAgentsFlags.cascPath = seedBaseCasc(t)
	addAgentsCount = 1
	addAgentsFlags.envVars = []string{
		"JENKINS_AGENT_NAME1=main-agent",
		"JENKINS_AGENT_NUM_EXECUTORS1=2",
	}

	raw, err := runAddAgentsCapture(t)
	require.NoError(t, err)
	assert.Contains(t, raw, "name: main-agent")
	assert.Contains(t, raw, "numExecutors: 2")
	// Unbound references survive for the consuming server.
	assert.Contains(t, raw, "${JENKINS_AGENT_DESC1}")
}

func TestRunAddAgentsRejectsNonPositiveCount(t *testing.T) {
	chdir(t, t.TempDir())
	resetAddAgentsFlags(t)

	for _, count := range []int{0, -3} {
		addAgentsCount = count
		_, err := runAddAgentsCapture(t)
		var countErr *agentCountError
		require.ErrorAs(t, err, &countErr)
		assert.Equal(t, count, countErr.count)
		assert.Equal(t, ExitCodeBadInput, getExitCode(err))
	}
}

func TestRunAddAgentsMissingBaseCasc(t *testing.T) {
	chdir(t, t.TempDir())
	resetAddAgentsFlags(t)

	addAgentsFlags.cascPath = "does-not-exist.yaml"
	addAgentsCount = 1

	_, err := runAddAgentsCapture(t)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
