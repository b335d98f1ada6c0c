package registry

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/leofalp/strata/core/fault"
	"github.com/leofalp/strata/core/result"
)

// ErrNotProvided is returned by [Resolve] when no builder has been
// registered for the requested service type and tag.
var ErrNotProvided = fault.New("strata/registry", 1, "no builder provided")

// key identifies an entry: the service type plus an optional tag, so one
// registry can hold several instances of the same type.
type key struct {
	typ reflect.Type
	tag string
}

func (k key) String() string {
	if k.tag == "" {
		return k.typ.String()
	}

	return fmt.Sprintf("%s[%s]", k.typ, k.tag)
}

// entry tracks one keyed service: its builder, the outcome of the most
// recent finished build, and the in-flight build other resolvers wait on.
// An Ok outcome is the memoized instance; an Err outcome is kept for
// waiters to read and the next resolver runs the builder again.
type entry struct {
	build    func(ctx context.Context) (any, error)
	outcome  result.Result[any]
	inflight chan struct{} // non-nil while a build is running
}

// Registry holds lazily built services keyed by type and tag. Builders
// run on first resolution; successful instances are memoized for the rest
// of the registry's lifetime, while failed builds are retried on the next
// access. All methods are safe for concurrent use.
//
// Registries are explicit objects passed to the code that needs them;
// there is no package-level default instance.
type Registry struct {
	mu      sync.Mutex
	entries map[key]*entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[key]*entry)}
}

func keyFor[S any](tag string) key {
	return key{typ: reflect.TypeOf((*S)(nil)).Elem(), tag: tag}
}

// Provide registers a builder for service type S under tag. The builder
// is not invoked until the first [Resolve]; it may block on I/O and is
// called without any registry lock held. Providing a key again replaces
// the previous builder and drops any memoized instance.
//
// Use the empty tag for the canonical instance of a type and distinct
// tags for additional ones.
func Provide[S any](r *Registry, tag string, build func(ctx context.Context) (S, error)) {
	k := keyFor[S](tag)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[k] = &entry{
		build: func(ctx context.Context) (any, error) {
			return build(ctx)
		},
	}
}

// Resolve returns the service registered for S under tag, building it on
// first access. Concurrent resolvers of the same key share a single build:
// latecomers wait for the in-flight build and receive its outcome. A
// failed build is not memoized; the next Resolve runs the builder again.
func Resolve[S any](ctx context.Context, r *Registry, tag string) (S, error) {
	var zero S
	k := keyFor[S](tag)

	r.mu.Lock()
	e, ok := r.entries[k]
	if !ok {
		r.mu.Unlock()
		return zero, ErrNotProvided.With("%s", k)
	}

	for {
		if e.outcome.IsOK() {
			instance := e.outcome.Value()
			r.mu.Unlock()

			return instance.(S), nil
		}

		if e.inflight != nil {
			done := e.inflight
			r.mu.Unlock()

			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("registry resolve of %s aborted: %w", k, ctx.Err())
			case <-done:
			}

			r.mu.Lock()
			if e.outcome.IsOK() || e.inflight != nil {
				// Built, or another resolver already started a fresh
				// attempt; re-dispatch.
				continue
			}

			err := e.outcome.Err()
			r.mu.Unlock()

			return zero, err
		}

		instance, err := runBuild(ctx, r, e, k)
		if err != nil {
			return zero, err
		}

		return instance.(S), nil
	}
}

// runBuild executes the entry's builder as the owning resolver. The
// registry lock is held on entry and never across the builder itself; the
// outcome is recorded in the entry and the in-flight channel is closed on
// every exit path, including a panicking builder, so waiters cannot hang.
func runBuild(ctx context.Context, r *Registry, e *entry, k key) (instance any, err error) {
	done := make(chan struct{})
	e.inflight = done
	build := e.build
	r.mu.Unlock()

	defer func() {
		p := recover()

		r.mu.Lock()
		e.inflight = nil
		if p != nil {
			err = fmt.Errorf("registry build of %s panicked: %v", k, p)
		}
		e.outcome = result.Of(instance, err)
		close(done)
		r.mu.Unlock()

		if p != nil {
			panic(p)
		}
	}()

	instance, err = build(ctx)

	return instance, err
}
