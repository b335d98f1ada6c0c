// Package decode turns raw response payloads into typed Go values. It
// wraps encoding/json with a jsonrepair salvage pass, so mildly damaged
// JSON (trailing commas, single quotes, unquoted keys) still decodes
// instead of failing the pipeline.
//
// The layers package builds its JSON extractors on top of [Any] and [As].
package decode
