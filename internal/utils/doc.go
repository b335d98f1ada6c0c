// Package utils provides shared low-level helpers used throughout the
// strata internals: string truncation, safe JSON previews for log output,
// and deferred resource cleanup.
//
// Key entry points: [Truncate] for bounding log field sizes,
// [Preview] for rendering request/response values in verbose log entries,
// and [CloseWithLog] for deferred closes whose errors should be logged
// rather than returned.
package utils
