package casc

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CasC keys that make up an agent node descriptor ({jenkins: {nodes: [...]}}).
const (
	jenkinsKey           = "jenkins"
	nodesKey             = "nodes"
	permanentKey         = "permanent"
	launcherKey          = "launcher"
	jnlpKey              = "jnlp"
	workDirSettingsKey   = "workDirSettings"
	disabledKey          = "disabled"
	failIfMissingDirKey  = "failIfWorkDirIsMissing"
	internalDirKey       = "internalDir"
	nameKey              = "name"
	nodeDescriptionKey   = "nodeDescription"
	numExecutorsKey      = "numExecutors"
	remoteFSKey          = "remoteFS"
	retentionStrategyKey = "retentionStrategy"
)

// Environment variable name prefixes referenced by agent placeholders. Each
// placeholder field carries a per-index deferred reference such as
// ${JENKINS_AGENT_NAME1}, resolved later by the consuming server.
const (
	agentNameVar         = "JENKINS_AGENT_NAME"
	agentDescriptionVar  = "JENKINS_AGENT_DESC"
	agentNumExecutorsVar = "JENKINS_AGENT_NUM_EXECUTORS"
	agentRemoteFSVar     = "JENKINS_AGENT_REMOTE_ROOT_DIR"
)

const retentionAlways = "always"

// AddAgentPlaceholders appends count agent node descriptors to the
// document's jenkins.nodes list, indexed 1..count in that order. The
// enclosing jenkins mapping and nodes list are created when absent. Callers
// validate count >= 1 before invoking.
//
// Each descriptor has the shape:
//
//	- permanent:
//	    launcher:
//	      jnlp:
//	        workDirSettings:
//	          disabled: "false"
//	          failIfWorkDirIsMissing: "false"
//	          internalDir: "remoting"
//	    name: ${JENKINS_AGENT_NAME1}
//	    nodeDescription: ${JENKINS_AGENT_DESC1}
//	    numExecutors: ${JENKINS_AGENT_NUM_EXECUTORS1}
//	    remoteFS: ${JENKINS_AGENT_REMOTE_ROOT_DIR1}
//	    retentionStrategy: always
//
// The launcher sub-tree is identical across descriptors; only the four
// deferred fields vary with the index.
func AddAgentPlaceholders(doc *Document, count int) {
	jenkins := ensureMapping(doc.root, jenkinsKey)
	nodes := ensureSequence(jenkins, nodesKey)
	for index := 1; index <= count; index++ {
		nodes.Content = append(nodes.Content, agentPlaceholder(index))
	}
}

func agentPlaceholder(index int) *yaml.Node {
	settings := newMappingNode()
	setMappingValue(settings, disabledKey, strNode("false"))
	setMappingValue(settings, failIfMissingDirKey, strNode("false"))
	setMappingValue(settings, internalDirKey, strNode("remoting"))

	jnlp := newMappingNode()
	setMappingValue(jnlp, workDirSettingsKey, settings)

	launcher := newMappingNode()
	setMappingValue(launcher, jnlpKey, jnlp)

	permanent := newMappingNode()
	setMappingValue(permanent, launcherKey, launcher)
	setMappingValue(permanent, nameKey, deferredRef(agentNameVar, index))
	setMappingValue(permanent, nodeDescriptionKey, deferredRef(agentDescriptionVar, index))
	setMappingValue(permanent, numExecutorsKey, deferredRef(agentNumExecutorsVar, index))
	setMappingValue(permanent, remoteFSKey, deferredRef(agentRemoteFSVar, index))
	setMappingValue(permanent, retentionStrategyKey, strNode(retentionAlways))

	entry := newMappingNode()
	setMappingValue(entry, permanentKey, permanent)
	return entry
}

func deferredRef(prefix string, index int) *yaml.Node {
	return strNode(fmt.Sprintf("${%s%d}", prefix, index))
}
