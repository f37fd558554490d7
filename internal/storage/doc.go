// Package storage persists the state document.
//
// Drivers:
//   - "file": one JSON (or YAML, by extension) document, rewritten in full on
//     every Save. Supports watching for external edits.
//   - "sqlite": the same document spread over three tables (modernc.org/sqlite).
package storage
