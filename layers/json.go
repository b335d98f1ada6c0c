package layers

import (
	"context"

	"github.com/leofalp/strata/core/decode"
	"github.com/leofalp/strata/core/service"
)

// JSONExtractor decodes a JSON body into a generic value, repairing
// slightly damaged payloads before giving up. Suitable for registration in
// [NewExtract] under "application/json".
func JSONExtractor(data []byte) (any, error) {
	return decode.Any(data)
}

// JSON is a layer that decodes every non-empty response body as JSON,
// regardless of the response's type-key. Use [Extract] with [JSONExtractor]
// instead when only bodies declared as JSON should be decoded.
//
// Like [Extract], it changes the service's response type to
// [Extracted[Resp]] and is applied with pipeline.Apply.
type JSON[Req any, Resp Source] struct{}

// NewJSON constructs a JSON layer.
func NewJSON[Req any, Resp Source]() JSON[Req, Resp] {
	return JSON[Req, Resp]{}
}

// Wrap returns a service whose responses carry the body decoded as JSON.
// Undecodable or empty bodies yield an absent value, never an error. Inner
// errors propagate unchanged.
func (JSON[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Extracted[Resp]] {
	return service.Func[Req, Extracted[Resp]](func(ctx context.Context, req Req) (Extracted[Resp], error) {
		resp, err := inner.Call(ctx, req)
		if err != nil {
			return Extracted[Resp]{}, err
		}

		out := Extracted[Resp]{Response: resp}

		data := resp.ContentBytes()
		if len(data) == 0 {
			return out, nil
		}

		value, err := decode.Any(data)
		if err != nil || value == nil {
			return out, nil
		}

		out.value = value
		out.decoded = true
		return out, nil
	})
}
