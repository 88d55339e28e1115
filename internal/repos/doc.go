// Package repos covers the repository-side collaborators of the document
// engine: loading the jobs.toml project list, cloning the named git
// repositories into the staging directory, and selecting the single
// candidate job-dsl or casc file inside a checkout.
//
// Selection is deliberately strict: a repository must yield exactly one
// matching file. Zero or many candidates is a SelectionError, which the CLI
// treats as a skip for project repositories and as fatal for the base-image
// repository.
package repos
