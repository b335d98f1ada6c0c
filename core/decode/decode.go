package decode

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// As decodes data as JSON into the target type T. It tries a strict
// [json.Unmarshal] first; when that fails it repairs the payload with
// jsonrepair (fixing trailing commas, single quotes, unquoted keys and
// similar damage) and retries once. Both the original unmarshal error and
// the repair outcome are reported when nothing works.
//
// Example usage:
//
//	type Health struct {
//	    Status string `json:"status"`
//	}
//
//	// Well-formed payload
//	h, err := decode.As[Health]([]byte(`{"status":"ok"}`))
//
//	// Damaged payload, repaired automatically
//	h, err := decode.As[Health]([]byte(`{status: 'ok',}`))
func As[T any](data []byte) (T, error) {
	var out T

	err := json.Unmarshal(data, &out)
	if err == nil {
		return out, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return out, fmt.Errorf("decode: unmarshal as %T failed and payload could not be repaired: unmarshal error: %w, repair error: %v", out, err, repairErr)
	}

	if err = json.Unmarshal([]byte(repaired), &out); err != nil {
		return out, fmt.Errorf("decode: unmarshal of repaired payload as %T failed: %w", out, err)
	}

	return out, nil
}

// Any decodes data as JSON into a generic value (maps, slices and
// primitives), with the same repair fallback as [As].
func Any(data []byte) (any, error) {
	return As[any](data)
}
