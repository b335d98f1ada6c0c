package layers

import (
	"context"
	"maps"

	"github.com/leofalp/strata/core/service"
)

// Source is the response capability the extraction layers operate on:
// access to the raw body bytes and to a type-key (typically a normalized
// content type) selecting how those bytes should be decoded.
type Source interface {
	ContentBytes() []byte
	TypeKey() string
}

// Extractor decodes raw body bytes into a typed value. Returning an error
// or a nil value marks the body as undecodable; neither fails the call.
type Extractor func(data []byte) (any, error)

// Extracted pairs an inner response with the value decoded from its body,
// when one could be produced.
type Extracted[Resp any] struct {
	// Response is the inner service's response, untouched.
	Response Resp

	value   any
	decoded bool
}

// Content returns the decoded value and whether one is present. Extraction
// failures surface here as an absent value, never as a call error, so
// callers that need the decoded form must check the second return.
func (e Extracted[Resp]) Content() (any, bool) {
	return e.value, e.decoded
}

// ContentAs re-types the decoded value of an extracted response. It
// reports false when no value was decoded or the value is not a T.
func ContentAs[T any, Resp any](e Extracted[Resp]) (T, bool) {
	value, ok := e.Content()
	if !ok {
		var zero T
		return zero, false
	}

	typed, ok := value.(T)
	return typed, ok
}

// Extract is a layer that decodes response bodies into typed values, keyed
// by the response's type-key. It changes the service's response type from
// Resp to [Extracted[Resp]], so in a pipeline it is applied with
// pipeline.Apply rather than Builder.Layer.
//
// The extractor map is shared immutably by every Service the layer
// produces.
type Extract[Req any, Resp Source] struct {
	extractors map[string]Extractor
}

// NewExtract constructs an Extract layer decoding bodies with the
// extractor registered under their type-key. The map is copied, so the
// caller may reuse or mutate its own map afterwards.
func NewExtract[Req any, Resp Source](extractors map[string]Extractor) Extract[Req, Resp] {
	return Extract[Req, Resp]{extractors: maps.Clone(extractors)}
}

// Wrap returns a service whose responses carry a decoded value alongside
// the inner response.
//
// Decoding runs once, eagerly, when the inner call succeeds, its body is
// non-empty, and an extractor is registered for the type-key. In every
// other case the call still succeeds with an absent value. Inner errors
// propagate unchanged.
func (l Extract[Req, Resp]) Wrap(inner service.Service[Req, Resp]) service.Service[Req, Extracted[Resp]] {
	extractors := l.extractors

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
		extract, ok := extractors[resp.TypeKey()]
		if !ok {
			return out, nil
		}

		value, err := extract(data)
		if err != nil || value == nil {
			return out, nil
		}

		out.value = value
		out.decoded = true
		return out, nil
	})
}
