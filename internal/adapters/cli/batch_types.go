package cli

import (
	"time"

	"github.com/devbush/likewrapped/internal/application"
)

// BatchResult represents the result of ranking a single account in a batch
type BatchResult struct {
	Handle   string
	Success  bool
	Error    string
	Duration time.Duration
	Cached   bool // true if the ranking was served from cache
	Result   *application.WrappedResult
}

// BatchSummary aggregates results from a batch run
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []BatchResult // in input order
}

// FailedResults returns only the failed results
func (s *BatchSummary) FailedResults() []BatchResult {
	var failed []BatchResult
	for _, r := range s.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}
