package casc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEmptySourceLeavesTargetUnchanged(t *testing.T) {
	target := mustParse(t, "a: 1\nb:\n  c: 2\n")

	Merge(New(), target)

	assert.Equal(t, "a: 1\nb:\n  c: 2\n", encodeToString(t, target))
}

func TestMergeIntoEmptyTargetCopiesSource(t *testing.T) {
	source := mustParse(t, "a: 1\nb:\n  c: 2\n")
	target := New()

	Merge(source, target)

	assert.Equal(t, "a: 1\nb:\n  c: 2\n", encodeToString(t, target))
}

// Pins the canonical override direction: the incoming (source) document wins
// on a scalar conflict. merge({x: 1} into {x: 2}) leaves the target at x: 1.
func TestMergeScalarConflictSourceWins(t *testing.T) {
	source := mustParse(t, "x: 1\n")
	target := mustParse(t, "x: 2\n")

	Merge(source, target)

	assert.Equal(t, "x: 1\n", encodeToString(t, target))
}

func TestMergeIsNotCommutative(t *testing.T) {
	a := "x: 1\n"
	b := "x: 2\n"

	targetAB := mustParse(t, b)
	Merge(mustParse(t, a), targetAB)

	targetBA := mustParse(t, a)
	Merge(mustParse(t, b), targetBA)

	assert.NotEqual(t, encodeToString(t, targetAB), encodeToString(t, targetBA))
}

// Known surprising behavior, preserved for compatibility: a scalar conflict
// at one key replays the whole source level over the target level, so a
// sibling key's target value is replaced too. Target-only siblings survive.
func TestMergeScalarConflictOverwritesWholeLevel(t *testing.T) {
	source := mustParse(t, "x: 1\ny: 10\n")
	target := mustParse(t, "x: 2\ny: 20\nz: 30\n")

	Merge(source, target)

	assert.Equal(t, "x: 1\ny: 10\nz: 30\n", encodeToString(t, target))
}

func TestMergeRecursesThroughNestedMappings(t *testing.T) {
	source := mustParse(t, "jenkins:\n  numExecutors: 4\n")
	target := mustParse(t, "jenkins:\n  systemMessage: hello\n  numExecutors: 2\n")

	Merge(source, target)

	// The conflict sits one level down; the top level is untouched while
	// the jenkins level gets the source's keys applied over it.
	assert.Equal(t, "jenkins:\n  systemMessage: hello\n  numExecutors: 4\n", encodeToString(t, target))
}

func TestMergeGraftsMissingSubtrees(t *testing.T) {
	source := mustParse(t, "unclassified:\n  location:\n    url: https://jenkins.example.com\n")
	target := mustParse(t, "jenkins:\n  systemMessage: hello\n")

	Merge(source, target)

	out := encodeToString(t, target)
	assert.Contains(t, out, "jenkins:\n  systemMessage: hello\n")
	assert.Contains(t, out, "unclassified:\n  location:\n    url: https://jenkins.example.com\n")
}

func TestMergeReplacesExplicitNull(t *testing.T) {
	source := mustParse(t, "a:\n  b: 1\n")
	target := mustParse(t, "a:\n")

	Merge(source, target)

	assert.Equal(t, "a:\n  b: 1\n", encodeToString(t, target))
}

func TestMergeListConflictTreatedAsOverride(t *testing.T) {
	source := mustParse(t, "jobs:\n  - script: one\n")
	target := mustParse(t, "jobs:\n  - script: two\n  - script: three\n")

	Merge(source, target)

	assert.Equal(t, "jobs:\n  - script: one\n", encodeToString(t, target))
}

func TestMergeGraftIsDeepCopied(t *testing.T) {
	source := mustParse(t, "added:\n  value: original\n")
	target := New()

	Merge(source, target)

	// Mutating the source after the merge must not leak into the target.
	sub := mappingValue(source.Root(), "added")
	require.NotNil(t, sub)
	mappingValue(sub, "value").Value = "mutated"

	assert.Contains(t, encodeToString(t, target), "value: original")
}

func TestMergeMappingOverScalarOverridesLevel(t *testing.T) {
	// Source holds a scalar where target holds a mapping; the mismatch is
	// resolved by the same level-wide last-write-wins rule.
	source := mustParse(t, "a: flat\n")
	target := mustParse(t, "a:\n  nested: 1\n")

	Merge(source, target)

	assert.Equal(t, "a: flat\n", encodeToString(t, target))
}
