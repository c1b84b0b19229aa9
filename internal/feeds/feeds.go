// Package feeds normalizes heterogeneous intelligence feeds into alert
// records. Every adapter absorbs its own failures: a fetch never raises
// past the adapter boundary, and a failure on one ticker never blocks the
// others.
package feeds

import (
	"context"

	"intel-terminal/internal/models"
)

// FetchStatus distinguishes "no data" from "call failed" so callers can
// log and meter degraded sources while still rendering partial results.
type FetchStatus string

const (
	StatusOK     FetchStatus = "OK"
	StatusEmpty  FetchStatus = "EMPTY"
	StatusFailed FetchStatus = "FAILED"
)

// FeedResult is the outcome of one adapter fetch. Records is never nil;
// an adapter with nothing to report returns an empty slice. Err is only
// set when Status is StatusFailed and exists for observability, not
// control flow.
type FeedResult struct {
	Feed    string
	Status  FetchStatus
	Records []models.AlertRecord
	Err     error
}

// AlertSource is one upstream intelligence feed normalized to the common
// alert schema.
type AlertSource interface {
	Name() string
	// Fetch returns the feed's records scoped to the given portfolio.
	// Implementations must not return partial failures as errors: a
	// degraded source reports StatusFailed with whatever it collected.
	Fetch(ctx context.Context, portfolio []string) FeedResult
}

func okResult(feed string, records []models.AlertRecord) FeedResult {
	if len(records) == 0 {
		return FeedResult{Feed: feed, Status: StatusEmpty, Records: []models.AlertRecord{}}
	}
	return FeedResult{Feed: feed, Status: StatusOK, Records: records}
}

func emptyResult(feed string) FeedResult {
	return FeedResult{Feed: feed, Status: StatusEmpty, Records: []models.AlertRecord{}}
}

func failedResult(feed string, records []models.AlertRecord, err error) FeedResult {
	if records == nil {
		records = []models.AlertRecord{}
	}
	return FeedResult{Feed: feed, Status: StatusFailed, Records: records, Err: err}
}
