package utils

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// DefaultPreviewLimit bounds rendered values in log output when callers
// pass a non-positive limit.
const DefaultPreviewLimit = 500

// Truncate shortens s to at most limit bytes without splitting a UTF-8
// sequence, appending the original size so readers know data was cut.
// A non-positive limit falls back to [DefaultPreviewLimit].
func Truncate(s string, limit int) string {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	if len(s) <= limit {
		return s
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return fmt.Sprintf("%s... (truncated from %d chars)", s[:cut], len(s))
}

// Preview renders v as compact JSON truncated to limit bytes, for
// inclusion in verbose log output. On marshalling failure it falls back
// to fmt's %+v rendering rather than erroring, so the result is always
// safe to log.
func Preview(v any, limit int) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return Truncate(fmt.Sprintf("%+v", v), limit)
	}

	return Truncate(string(encoded), limit)
}
