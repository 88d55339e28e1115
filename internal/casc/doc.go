// Package casc implements the configuration-as-code document engine: an
// ordered YAML document tree plus the operations that assemble a deployable
// Jenkins CasC file from it.
//
// The package operates on three node shapes, mirrored directly from YAML:
// mappings (string keys, insertion order preserved), sequences, and scalar
// leaves. A Document is owned exclusively by its caller for its lifetime;
// operations mutate it in place and are not safe for concurrent use on the
// same Document.
//
// The operations are:
//
//   - Merge: recursive structural merge of one document into another
//   - InjectScripts: append job-dsl script fragments to the reserved
//     top-level "jobs" list
//   - AddAgentPlaceholders: synthesize agent node descriptors under
//     "jenkins.nodes", parameterized by deferred environment variables
//
// None of these operations log or perform I/O beyond what the caller hands
// them; failure conditions surface as typed errors for the CLI layer to
// classify and report.
package casc
