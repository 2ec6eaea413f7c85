package placement

// FragmentKind identifies one of the independently registered render
// fragments.
type FragmentKind string

const (
	KindSummary  FragmentKind = "installments_summary"
	KindPixPrice FragmentKind = "pix_price"
	KindTable    FragmentKind = "installments_table"
)

// RenderContext tracks which fragment kinds have already been emitted during
// a single page render. The host exposes several semantically overlapping
// insertion points for the same fragment; this gate makes sure each kind
// fires at most once per render.
//
// A RenderContext is owned by exactly one render pass and must not be shared
// between concurrent renders; rendering is single-threaded, so no locking.
type RenderContext struct {
	emitted map[FragmentKind]struct{}
}

// NewRenderContext creates a fresh context for one page render.
func NewRenderContext() *RenderContext {
	return &RenderContext{emitted: make(map[FragmentKind]struct{})}
}

// ShouldRender reports whether kind may render now, marking it as emitted.
// It returns true exactly once per kind for the lifetime of the context.
func (rc *RenderContext) ShouldRender(kind FragmentKind) bool {
	if rc == nil {
		return false
	}
	if rc.emitted == nil {
		rc.emitted = make(map[FragmentKind]struct{})
	}
	if _, done := rc.emitted[kind]; done {
		return false
	}
	rc.emitted[kind] = struct{}{}
	return true
}

// Emitted reports whether kind has already rendered in this context.
func (rc *RenderContext) Emitted(kind FragmentKind) bool {
	if rc == nil || rc.emitted == nil {
		return false
	}
	_, done := rc.emitted[kind]
	return done
}
