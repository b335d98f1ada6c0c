package pipeline

import "github.com/leofalp/strata/core/service"

// Builder chains layers onto a base service, tracking the current service
// type S at compile time. Obtain one with [New]; the zero value is unusable
// and every method on it panics.
//
// Each step wraps immediately, so the builder always holds a ready
// service. [Builder.Layer] applies a layer that preserves the service
// type; [Apply] performs a type-changing step.
type Builder[S any] struct {
	svc    S
	seeded bool
}

// New seeds a builder with the base service.
func New[S any](svc S) Builder[S] {
	return Builder[S]{svc: svc, seeded: true}
}

// Layer wraps the current service with l and returns the extended builder.
// The layer listed last ends up outermost: it runs first on the way in and
// last on the way out.
func (b Builder[S]) Layer(l service.Layer[S, S]) Builder[S] {
	if !b.seeded {
		panic("pipeline: Layer called on zero Builder, use New")
	}

	return Builder[S]{svc: l.Wrap(b.svc), seeded: true}
}

// Apply wraps the current service with a type-changing layer, producing a
// builder over the layer's output service type. It is the package-level
// form of [Builder.Layer] for steps where In and Out differ, since Go
// methods cannot introduce type parameters.
func Apply[In, Out any](b Builder[In], l service.Layer[In, Out]) Builder[Out] {
	if !b.seeded {
		panic("pipeline: Apply called on zero Builder, use New")
	}

	return Builder[Out]{svc: l.Wrap(b.svc), seeded: true}
}

// Build returns the composed service.
func (b Builder[S]) Build() S {
	if !b.seeded {
		panic("pipeline: Build called on zero Builder, use New")
	}

	return b.svc
}
