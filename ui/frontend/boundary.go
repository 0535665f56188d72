package frontend

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// BoundaryState is the supervisor state of one route boundary.
type BoundaryState int

// Boundary states.
const (
	Healthy BoundaryState = iota
	Failed
)

// FaultState is the captured failure of one route boundary.
type FaultState struct {
	Err     error
	Context string // Boundary context, e.g. "route:/dashboard"
}

// RenderFailure is returned by Boundary.Render when the supervised subtree
// failed; the caller renders the fallback panel from its Fault.
type RenderFailure struct {
	Fault FaultState
}

// Error implements the error interface
func (e *RenderFailure) Error() string {
	return fmt.Sprintf("%s: render failed: %v", e.Fault.Context, e.Fault.Err)
}

// Unwrap returns the captured error
func (e *RenderFailure) Unwrap() error {
	return e.Fault.Err
}

// Boundary supervises rendering of one route's subtree. It starts Healthy,
// enters Failed when a render attempt errors or panics, and stays Failed
// until Reset, serving the fallback instead of re-attempting. A boundary
// owns its FaultState exclusively; failures never cross boundaries.
type Boundary struct {
	context   string // e.g. "route:/dashboard"
	title     string // Fallback panel title, e.g. "Dashboard tab crashed"
	routePath string // Pattern shown in the fallback, e.g. "/dashboard"

	mu    sync.Mutex
	fault *FaultState
}

// NewBoundary creates a Healthy boundary for one route.
func NewBoundary(context, title, routePath string) *Boundary {
	return &Boundary{
		context:   context,
		title:     title,
		routePath: routePath,
	}
}

// Context returns the boundary's context string.
func (b *Boundary) Context() string {
	return b.context
}

// Title returns the fallback panel title.
func (b *Boundary) Title() string {
	return b.title
}

// RoutePath returns the route pattern the boundary supervises.
func (b *Boundary) RoutePath() string {
	return b.routePath
}

// State returns the current supervisor state.
func (b *Boundary) State() BoundaryState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fault != nil {
		return Failed
	}
	return Healthy
}

// Fault returns a copy of the captured fault, or nil when Healthy.
func (b *Boundary) Fault() *FaultState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fault == nil {
		return nil
	}
	fault := *b.fault
	return &fault
}

// Reset clears the captured fault. The next Render re-attempts the subtree
// from scratch; if the same failure recurs the boundary fails again.
func (b *Boundary) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fault = nil
}

// Render supervises one render attempt. The subtree renders into a buffer so
// a failure writes nothing to w. While Failed, Render short-circuits to the
// stored fault without re-attempting. The returned error is a *RenderFailure
// for contained subtree failures; any other error means w itself rejected
// the writeout (client gone) and does not change boundary state.
func (b *Boundary) Render(w io.Writer, render func(io.Writer) error) error {
	b.mu.Lock()
	if b.fault != nil {
		fault := *b.fault
		b.mu.Unlock()
		return &RenderFailure{Fault: fault}
	}
	b.mu.Unlock()

	var buf bytes.Buffer
	if err := b.attempt(&buf, render); err != nil {
		fault := FaultState{Err: err, Context: b.context}
		b.mu.Lock()
		b.fault = &fault
		b.mu.Unlock()
		return &RenderFailure{Fault: fault}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// attempt runs one render with panic containment.
func (b *Boundary) attempt(w io.Writer, render func(io.Writer) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return render(w)
}
