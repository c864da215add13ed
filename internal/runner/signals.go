package runner

import "github.com/tinytelemetry/cycler/internal/cycle"

// Item is a headless element handle.
type Item struct {
	Title string

	tags     map[string]bool
	handlers map[int]func()
	next     int
}

// NewItem returns an untagged item.
func NewItem(title string) *Item {
	return &Item{Title: title, tags: make(map[string]bool), handlers: make(map[int]func())}
}

// HasTag implements cycle.Element.
func (it *Item) HasTag(tag string) bool { return it.tags[tag] }

// SetTag implements cycle.Element.
func (it *Item) SetTag(tag string, on bool) { it.tags[tag] = on }

// OnClick implements cycle.Clickable.
func (it *Item) OnClick(fn func()) func() {
	id := it.next
	it.next++
	it.handlers[id] = fn
	return func() { delete(it.handlers, id) }
}

// Click notifies click handlers.
func (it *Item) Click() {
	for i := 0; i < it.next; i++ {
		if fn, ok := it.handlers[i]; ok {
			fn()
		}
	}
}

// Elements converts items to element handles.
func Elements(items []*Item) []cycle.Element {
	out := make([]cycle.Element, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// Viewport is a cycle.Viewport with a settable width.
type Viewport struct {
	width    int
	handlers map[int]func(int)
	next     int
}

// NewViewport returns a viewport of the given width.
func NewViewport(width int) *Viewport {
	return &Viewport{width: width, handlers: make(map[int]func(int))}
}

// Width implements cycle.Viewport.
func (v *Viewport) Width() int { return v.width }

// OnResize implements cycle.Viewport.
func (v *Viewport) OnResize(fn func(int)) func() {
	id := v.next
	v.next++
	v.handlers[id] = fn
	return func() { delete(v.handlers, id) }
}

// SetWidth changes the width and notifies resize handlers.
func (v *Viewport) SetWidth(width int) {
	v.width = width
	for i := 0; i < v.next; i++ {
		if fn, ok := v.handlers[i]; ok {
			fn(width)
		}
	}
}

// Visibility is a cycle.VisibilitySource with a settable ratio. Observe
// reports the current ratio immediately.
type Visibility struct {
	ratio    float64
	handlers map[int]func(float64)
	next     int
}

// NewVisibility returns a source reporting ratio.
func NewVisibility(ratio float64) *Visibility {
	return &Visibility{ratio: ratio, handlers: make(map[int]func(float64))}
}

// Observe implements cycle.VisibilitySource.
func (v *Visibility) Observe(_ cycle.Element, _ float64, fn func(float64)) func() {
	id := v.next
	v.next++
	v.handlers[id] = fn
	fn(v.ratio)
	return func() { delete(v.handlers, id) }
}

// SetRatio changes the visible ratio and notifies observers.
func (v *Visibility) SetRatio(ratio float64) {
	v.ratio = ratio
	for i := 0; i < v.next; i++ {
		if fn, ok := v.handlers[i]; ok {
			fn(ratio)
		}
	}
}
