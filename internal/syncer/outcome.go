package syncer

import (
	"errors"
	"time"

	"github.com/tradeblocks/blocksync/internal/domain"
	"github.com/tradeblocks/blocksync/internal/parser"
)

// Status is the result of syncing one source.
type Status string

const (
	// StatusSynced means the block's cached records were replaced
	StatusSynced Status = "synced"
	// StatusUnchanged means the source's content fingerprint matched the
	// stored one and the cache was not touched
	StatusUnchanged Status = "unchanged"
	// StatusMerged means the feed file was processed and new rows appended
	StatusMerged Status = "merged"
	// StatusDeleted means the source disappeared from disk and its cached
	// records and sync state were removed
	StatusDeleted Status = "deleted"
	// StatusNotFound means the requested source exists neither on disk nor
	// in the cache
	StatusNotFound Status = "not_found"
	// StatusError means this source's sync attempt failed; the cache holds
	// either the previous complete state or nothing for it
	StatusError Status = "error"
)

// FailureKind classifies a per-source sync failure.
type FailureKind string

const (
	// FailureParse is a malformed source file
	FailureParse FailureKind = "parse"
	// FailureIO is an unreadable or missing file
	FailureIO FailureKind = "io"
	// FailureConflict is a concurrent write detected by the store
	FailureConflict FailureKind = "conflict"
	// FailureSchema is a source folder present without its required
	// primary file
	FailureSchema FailureKind = "schema"
)

// ClassifyFailure maps an error from a sync attempt to its failure kind.
func ClassifyFailure(err error) FailureKind {
	var parseErr *parser.ParseError
	switch {
	case errors.As(err, &parseErr):
		return FailureParse
	case errors.Is(err, domain.ErrMissingPrimaryFile):
		return FailureSchema
	case errors.Is(err, domain.ErrWriteConflict):
		return FailureConflict
	default:
		return FailureIO
	}
}

// Outcome is the per-source result of a sync attempt.
type Outcome struct {
	Source domain.Source
	Status Status
	// RecordCount is the number of records written for a synced block
	RecordCount int
	// Inserted and Skipped count feed rows added vs already present
	Inserted int64
	Skipped  int
	Err      error
}

// SourceError is one entry of a report's error list, surfaced to operators
// so a degraded source is visible instead of silently dropped.
type SourceError struct {
	SourceID string      `json:"source_id"`
	Kind     FailureKind `json:"kind"`
	Message  string      `json:"message"`
}

// Report aggregates the outcomes of one SyncAll invocation. One broken
// source never fails the whole run; it lands in Errors instead.
type Report struct {
	RunID      string        `json:"run_id"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Synced     int           `json:"synced"`
	Unchanged  int           `json:"unchanged"`
	Merged     int           `json:"merged"`
	Deleted    int           `json:"deleted"`
	Errors     []SourceError `json:"errors"`
	Outcomes   []Outcome     `json:"-"`
}

// record folds one outcome into the report. Not safe for concurrent use;
// the coordinator serializes calls.
func (r *Report) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusSynced:
		r.Synced++
	case StatusUnchanged:
		r.Unchanged++
	case StatusMerged:
		r.Merged++
	case StatusDeleted:
		r.Deleted++
	case StatusError:
		r.Errors = append(r.Errors, SourceError{
			SourceID: o.Source.ID,
			Kind:     ClassifyFailure(o.Err),
			Message:  o.Err.Error(),
		})
	}
}
