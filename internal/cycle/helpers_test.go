package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const frameStep = 100 * time.Millisecond

type fakeElement struct {
	name   string
	tags   map[string]bool
	clicks []func()
}

func newElements(n int) []*fakeElement {
	els := make([]*fakeElement, n)
	for i := range els {
		els[i] = &fakeElement{name: string(rune('a' + i)), tags: map[string]bool{}}
	}
	return els
}

func asElements(els []*fakeElement) []Element {
	out := make([]Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out
}

func (e *fakeElement) HasTag(tag string) bool     { return e.tags[tag] }
func (e *fakeElement) SetTag(tag string, on bool) { e.tags[tag] = on }

func (e *fakeElement) OnClick(fn func()) func() {
	e.clicks = append(e.clicks, fn)
	idx := len(e.clicks) - 1
	return func() { e.clicks[idx] = nil }
}

func (e *fakeElement) click() {
	for _, fn := range e.clicks {
		if fn != nil {
			fn()
		}
	}
}

type fakeViewport struct {
	width    int
	handlers []func(int)
}

func (v *fakeViewport) Width() int { return v.width }

func (v *fakeViewport) OnResize(fn func(int)) func() {
	v.handlers = append(v.handlers, fn)
	idx := len(v.handlers) - 1
	return func() { v.handlers[idx] = nil }
}

func (v *fakeViewport) resize(width int) {
	v.width = width
	for _, fn := range v.handlers {
		if fn != nil {
			fn(width)
		}
	}
}

type fakeVisibility struct {
	initial  *float64
	handlers []func(float64)
}

func (v *fakeVisibility) Observe(_ Element, _ float64, fn func(float64)) func() {
	v.handlers = append(v.handlers, fn)
	idx := len(v.handlers) - 1
	if v.initial != nil {
		fn(*v.initial)
	}
	return func() { v.handlers[idx] = nil }
}

func (v *fakeVisibility) report(ratio float64) {
	for _, fn := range v.handlers {
		if fn != nil {
			fn(ratio)
		}
	}
}

type recorder struct {
	events []Event
}

func (r *recorder) Handle(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) reset() { r.events = nil }

func (r *recorder) of(kind Kind) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// progressFor returns the progress values reported for index, in order.
func (r *recorder) progressFor(index int) []float64 {
	var out []float64
	for _, ev := range r.of(KindProgressed) {
		if ev.Index == index {
			out = append(out, ev.Progress)
		}
	}
	return out
}

type harness struct {
	cycler *Cycler
	clock  *VirtualClock
	rec    *recorder
	els    []*fakeElement
}

func newHarness(t *testing.T, n int, opts ...Option) *harness {
	t.Helper()

	h := &harness{
		clock: NewVirtualClock(epoch, frameStep),
		rec:   &recorder{},
		els:   newElements(n),
	}
	all := append([]Option{
		WithInterval(time.Second),
		WithScheduler(h.clock),
		WithObserver(h.rec),
		WithID("test"),
	}, opts...)

	c, err := New(asElements(h.els), all...)
	require.NoError(t, err)
	h.clock.Bind(c)
	h.cycler = c
	t.Cleanup(func() { _ = c.Close() })
	return h
}

func (h *harness) tagged() []int {
	var out []int
	for i, el := range h.els {
		if el.HasTag("active") {
			out = append(out, i)
		}
	}
	return out
}
