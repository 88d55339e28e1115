package casc

import "gopkg.in/yaml.v3"

// Merge folds source into target, mutating target in place. The walk
// descends source's mapping keys:
//
//   - target lacks the key (or holds an explicit null): the source subtree
//     is grafted at that key as a deep copy
//   - both sides hold mappings: merge recurses
//   - target holds anything else at the key: the entire source mapping at
//     the current level is applied over the target level (conflicting keys
//     replaced, target-only keys kept) and that level is finished
//
// The last rule means a single scalar conflict replaces sibling keys at the
// same level too, not just the conflicting key. That asymmetry is the
// compatibility contract of this merge; see the tests that pin it.
//
// Source is never mutated. Both roots must be mappings, which Load/Parse
// already guarantee.
func Merge(source, target *Document) {
	mergeMapping(source.root, target.root)
}

func mergeMapping(src, dst *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		key := src.Content[i].Value
		val := src.Content[i+1]
		cur := mappingValue(dst, key)
		switch {
		case cur == nil || isNull(cur):
			setMappingValue(dst, key, cloneNode(val))
		case cur.Kind == yaml.MappingNode && val.Kind == yaml.MappingNode:
			mergeMapping(val, cur)
		default:
			overwriteLevel(src, dst)
			return
		}
	}
}

// overwriteLevel applies every key of the source level onto the target
// level, last write wins.
func overwriteLevel(src, dst *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		setMappingValue(dst, src.Content[i].Value, cloneNode(src.Content[i+1]))
	}
}
