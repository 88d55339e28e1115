// Package logging provides a thin wrapper around log/slog that tags every
// entry with the subsystem it came from. The document-assembly packages
// (internal/casc, internal/dsl) never log; only the CLI layer and its
// collaborators report diagnostics here.
package logging
