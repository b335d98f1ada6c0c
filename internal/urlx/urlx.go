// Package urlx holds the URL helpers shared by the origin layer and the
// HTTP transport.
package urlx

import "strings"

// IsAbsolute reports whether raw carries an http:// or https:// scheme
// prefix, case-insensitively. Other schemes do not count: the transport
// only speaks HTTP.
func IsAbsolute(raw string) bool {
	lower := strings.ToLower(raw)

	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Combine joins an origin and a path with exactly one slash, stripping
// every trailing slash from the origin and every leading slash from the
// path first. When the trimmed path is empty, the trimmed origin is
// returned alone.
func Combine(origin, path string) string {
	origin = strings.TrimRight(origin, "/")
	path = strings.TrimLeft(path, "/")

	if path == "" {
		return origin
	}

	return origin + "/" + path
}
