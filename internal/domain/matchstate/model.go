package matchstate

import "time"

const (
	StatusMaterialized = "MATERIALIZED"
	StatusFailed       = "FAILED"
)

// State is the pipeline's per-match processing record. A materialized
// match is never re-processed; a failed one is retried on the next
// run.
type State struct {
	MatchID       int64
	Status        string
	EventCount    int64
	RejectedCount int64
	FailureReason *string
	UpdatedAt     time.Time
}
