// Package writers turns boulder records and designs into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (boulder, JSON/JSONL, YAML, TSV).
//   - Engine stays domain-only; Pipeline stays orchestration-only.
//   - Design JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
