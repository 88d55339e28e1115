// Package dsl holds the text transformations applied to job-dsl script
// fragments and to the serialized CasC document: rewriting of
// readFileFromWorkspace call expressions so relative paths survive
// relocation under the staging directory, and expansion of deferred
// shell-style variable references against an explicit binding set.
//
// Both transformations are pure string functions; they neither log nor
// touch the filesystem.
package dsl
