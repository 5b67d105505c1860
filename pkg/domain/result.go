package domain

// CollectState is the stage of a single feed collection attempt
type CollectState string

// collection stages, in pipeline order
const (
	StateNotStarted CollectState = "not_started"
	StateFetching   CollectState = "fetching"
	StateParsing    CollectState = "parsing"
	StateSaving     CollectState = "saving"
	StateCompleted  CollectState = "completed"
)

// ErrorKind classifies a feed-level collection failure
type ErrorKind string

// error kinds reported in feed results
const (
	ErrKindNone         ErrorKind = ""
	ErrKindTransport    ErrorKind = "transport"
	ErrKindHTTPStatus   ErrorKind = "http_status"
	ErrKindEmptyContent ErrorKind = "empty_content"
	ErrKindTooLarge     ErrorKind = "too_large"
	ErrKindMalformedXML ErrorKind = "malformed_xml"
	ErrKindStorage      ErrorKind = "storage"
	ErrKindInternal     ErrorKind = "internal"
)

// FeedResult is the outcome of one feed collection attempt
type FeedResult struct {
	FeedID     int64     `json:"feed_id"`
	FeedName   string    `json:"feed_name"`
	Success    bool      `json:"success"`
	Skipped    bool      `json:"skipped,omitempty"`
	ItemsSaved int       `json:"items_count"`
	Error      string    `json:"error,omitempty"`
	Kind       ErrorKind `json:"error_kind,omitempty"`
}

// Status returns textual status of the result
func (r FeedResult) Status() string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Success:
		return "success"
	default:
		return "failed"
	}
}

// BatchResult aggregates results of a batch collection.
// Details has an entry for every feed actually processed, skipped feeds are not listed.
type BatchResult struct {
	SuccessCount int          `json:"success"`
	FailedCount  int          `json:"failed"`
	Details      []FeedResult `json:"details"`
}

// Total returns number of processed feeds
func (b BatchResult) Total() int {
	return b.SuccessCount + b.FailedCount
}

// HasFailures reports whether any feed in the batch failed
func (b BatchResult) HasFailures() bool {
	return b.FailedCount > 0
}
