package betclic

import "errors"

// Failure taxonomy for the acquisition pipeline. Each stage of the feed
// acquisition fails with its own sentinel so upstream drift is
// distinguishable in logs and alerting, never collapsed into one generic
// error. Check with errors.Is.
var (
	// ErrNetwork wraps transport failures and unexpected HTTP statuses.
	ErrNetwork = errors.New("betclic: request failed")

	// ErrAccessDenied is the upstream anti-bot response (HTTP 403). It is
	// a frequent, first-class failure mode for rapid sequential requests,
	// not an edge case.
	ErrAccessDenied = errors.New("betclic: access denied by upstream")

	// ErrPayloadNotFound means the page had no ng-state script element,
	// the anchor carrying the embedded JSON payload.
	ErrPayloadNotFound = errors.New("betclic: ng-state payload not found")

	// ErrParse means the embedded payload was present but not valid JSON.
	ErrParse = errors.New("betclic: malformed embedded JSON")

	// ErrStructureMissing means the payload parsed but the expected key
	// path to the match list was absent.
	ErrStructureMissing = errors.New("betclic: expected structure missing in payload")

	// ErrNotMatch is returned by the normalizer when its input is not a
	// match object at all. Missing fields inside a match never error.
	ErrNotMatch = errors.New("betclic: value is not a match object")

	// ErrNoStatsText means the statistics panel could not be located on
	// the match page, so there is no text to normalize.
	ErrNoStatsText = errors.New("betclic: no statistics text extracted")
)
