package cycle

// Element is an opaque handle to something the cycler can mark active.
// The cycler never inspects an element beyond its tag state.
type Element interface {
	HasTag(tag string) bool
	SetTag(tag string, on bool)
}

// Clickable is implemented by elements that can report clicks. New
// registers a handler on every Clickable element and calls the returned
// detach function on Close.
type Clickable interface {
	OnClick(fn func()) (detach func())
}

// VisibilitySource reports how much of target is visible, as a ratio in
// [0, 1]. fn may be called immediately from Observe.
type VisibilitySource interface {
	Observe(target Element, threshold float64, fn func(ratio float64)) (detach func())
}

// Viewport reports the current width of the rendering surface and
// notifies on changes.
type Viewport interface {
	Width() int
	OnResize(fn func(width int)) (detach func())
}
