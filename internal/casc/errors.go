package casc

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NotMappingError reports a document whose root is not a mapping node.
// Merging and injection are only defined over mapping-rooted documents, so
// loading fails fast before any operation runs.
type NotMappingError struct {
	Kind yaml.Kind
}

func (e *NotMappingError) Error() string {
	return fmt.Sprintf("casc document root must be a mapping, got %s", kindName(e.Kind))
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
