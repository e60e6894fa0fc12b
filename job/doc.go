// Package job models the durable unit of pipeline work: a working
// directory derived from the source title and the submission date, plus
// a Store abstraction over the artifacts that accumulate inside it.
//
// Artifact existence is the pipeline's only resumability mechanism.
// A stage whose artifact is already present is skipped; a job directory
// containing protocol.json is complete. The Store interface keeps that
// logic testable without real disk I/O; tests inject MemoryStore.
package job
