package tui

import (
	"github.com/tinytelemetry/cycler/internal/cycle"
	"github.com/tinytelemetry/cycler/internal/model"
)

// Panel is one slide tab. It is the element handle the cycler tags, and
// it reports mouse clicks on its tab row.
type Panel struct {
	Slide model.Slide

	tags   map[string]bool
	clicks []func()
}

// NewPanel returns an untagged panel for slide.
func NewPanel(slide model.Slide) *Panel {
	return &Panel{Slide: slide, tags: make(map[string]bool)}
}

// HasTag implements cycle.Element.
func (p *Panel) HasTag(tag string) bool { return p.tags[tag] }

// SetTag implements cycle.Element.
func (p *Panel) SetTag(tag string, on bool) { p.tags[tag] = on }

// OnClick implements cycle.Clickable.
func (p *Panel) OnClick(fn func()) func() {
	p.clicks = append(p.clicks, fn)
	idx := len(p.clicks) - 1
	return func() { p.clicks[idx] = nil }
}

// Click notifies the registered click handlers.
func (p *Panel) Click() {
	for _, fn := range p.clicks {
		if fn != nil {
			fn()
		}
	}
}

func panelElements(panels []*Panel) []cycle.Element {
	out := make([]cycle.Element, len(panels))
	for i, p := range panels {
		out[i] = p
	}
	return out
}
