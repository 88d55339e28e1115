package cmd

import (
	"io"

	"cascutil/internal/casc"
	"cascutil/internal/dsl"
	"cascutil/internal/repos"

	"github.com/spf13/cobra"
)

// documentFlags are the options shared by the subcommands that produce a
// casc document (addjobs, addagent-placeholder).
type documentFlags struct {
	cascPath  string
	envVars   []string
	mergePath string
}

// register attaches the shared flags to a subcommand.
func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.cascPath, "casc-path", "c", "", "Load a custom casc instead of the default")
	cmd.Flags().StringArrayVarP(&f.envVars, "env", "e", nil, "Set environment variables, format: '<key>=<value>'")
	cmd.Flags().StringVarP(&f.mergePath, "merge-casc", "m", "", "Merge another casc file into the loaded casc")
}

// loadBaseDocument loads the casc document to operate on. With no explicit
// path, the base-image checkout in the working directory is searched for
// exactly one casc file; ambiguity there is fatal since the base document
// is required.
func loadBaseDocument(cascPath string) (*casc.Document, error) {
	if cascPath == "" {
		baseRepoDir := repos.RepoName(repos.DefaultBaseImageRepoURL)
		found, err := repos.FindOne(baseRepoDir, repos.CascFilePattern)
		if err != nil {
			return nil, err
		}
		cascPath = found
	}
	return casc.Load(cascPath)
}

// mergeIfRequested merges the overlay document at mergePath into doc. An
// empty path means no merge was requested.
func mergeIfRequested(doc *casc.Document, mergePath string) error {
	if mergePath == "" {
		return nil
	}
	overlay, err := casc.Load(mergePath)
	if err != nil {
		return err
	}
	casc.Merge(overlay, doc)
	return nil
}

// writeDocument serializes doc to w, expanding deferred variable references
// against bindings when any were supplied. Unresolved references stay in
// the output for the consuming server to expand later.
func writeDocument(w io.Writer, doc *casc.Document, bindings []dsl.Binding) error {
	if len(bindings) == 0 {
		return doc.Encode(w)
	}
	data, err := doc.MarshalText()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, dsl.ExpandVariables(string(data), bindings))
	return err
}
