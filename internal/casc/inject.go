package casc

import "gopkg.in/yaml.v3"

// CasC keys reserved for injected job-dsl scripts.
const (
	jobsKey   = "jobs"
	scriptKey = "script"
)

// Script is one job-dsl fragment discovered in a source repository. Source
// is the repository name; Text is the raw script body.
type Script struct {
	Source string
	Text   string
}

// InjectScripts appends one {script: <text>} entry per fragment to the
// document's top-level "jobs" list, creating the list when absent. Entries
// are appended in the order supplied, which the caller determines; no
// re-sorting happens here. The script body is marked for folded block
// rendering so multi-line scripts serialize as a literal block rather than
// an escaped single-line string.
func InjectScripts(doc *Document, scripts []Script) {
	jobs := ensureSequence(doc.root, jobsKey)
	for _, s := range scripts {
		entry := newMappingNode()
		body := strNode(s.Text)
		body.Style = yaml.FoldedStyle
		setMappingValue(entry, scriptKey, body)
		jobs.Content = append(jobs.Content, entry)
	}
}
