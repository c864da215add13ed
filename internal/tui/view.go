package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerRows   = 1
	helpRows     = 1
	paneRows     = 10 // tab list and slide body, borders included
	tabTop       = headerRows + 1
	sidebarWidth = 28
	tabBarWidth  = 10
	titleWidth   = sidebarWidth - tabBarWidth - 6
	chartHeight  = 5
	minWidth     = sidebarWidth + 12
	minHeight    = headerRows + helpRows + 4
)

// paneFit returns the share of the slide pane's rows that fit on screen.
func (p *CarouselPage) paneFit() float64 {
	if p.height <= 0 || p.width <= 0 {
		return 0
	}
	visible := min(max(p.height-headerRows-helpRows, 0), paneRows)
	return float64(visible) / float64(paneRows)
}

// tabAt maps a screen cell to the tab rendered there.
func (p *CarouselPage) tabAt(x, y int) (int, bool) {
	if x < 0 || x >= sidebarWidth || y >= p.height-helpRows {
		return 0, false
	}
	idx := y - tabTop
	if idx < 0 || idx >= len(p.panels) || idx >= paneRows-1 {
		return 0, false
	}
	return idx, true
}

// View renders the carousel.
func (p *CarouselPage) View(width, height int) string {
	if p.err != nil {
		return "Error: " + p.err.Error()
	}
	if width <= 0 || height <= 0 || p.cycler == nil {
		return "Initializing carousel..."
	}
	if width < minWidth || height < minHeight {
		return fmt.Sprintf("Terminal too small. Resize to at least %dx%d.", minWidth, minHeight)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		p.renderTabs(),
		p.renderBody(width-sidebarWidth),
	)
	sections := []string{p.renderHeader(width), main}

	remaining := height - headerRows - paneRows - helpRows
	if remaining > chartHeight+1 {
		sections = append(sections, p.renderChart(width))
		remaining -= chartHeight + 1
	}
	if remaining > 1 {
		sections = append(sections, p.renderEvents(remaining))
	}

	helpView := p.help.View(p.keys)
	limit := max(height-lipgloss.Height(helpView), 0)

	lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, sections...), "\n")
	if len(lines) > limit {
		lines = lines[:limit]
	}
	for len(lines) < limit {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n") + "\n" + helpView
}

func (p *CarouselPage) renderHeader(width int) string {
	c := p.cycler
	var status string
	switch {
	case c.PausedByBreakpoint():
		status = pausedStyle.Render("paused: narrow terminal")
	case c.Paused() && !c.Visible():
		status = pausedStyle.Render("paused: hidden")
	case c.Paused():
		status = pausedStyle.Render("paused")
	case c.Running():
		status = runningStyle.Render("running")
	default:
		status = mutedStyle.Render("stopped")
	}

	title := fmt.Sprintf("cycler  slide %d/%d  ", c.Current()+1, c.Len())
	return headerStyle.Width(width).Render(title + status)
}

func (p *CarouselPage) renderTabs() string {
	lines := make([]string, 0, paneRows)
	lines = append(lines, sectionTitleStyle.Render("Slides"))

	current := p.cycler.Current()
	for i, panel := range p.panels {
		if len(lines) == paneRows {
			break
		}
		marker, style := " ", tabStyle
		switch {
		case i == current:
			marker, style = "▸", activeTabStyle
		case panel.HasTag(p.cfg.ActiveTag):
			style = doneTabStyle
		}
		label := fmt.Sprintf("%s %2d %-*s ", marker, i+1, titleWidth, truncate(panel.Slide.Title, titleWidth))
		lines = append(lines, style.Render(label)+p.bar.ViewAs(p.progress[i]))
	}

	return lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(paneRows).
		Render(strings.Join(lines, "\n"))
}

func (p *CarouselPage) renderBody(width int) string {
	slide := p.panels[p.cycler.Current()].Slide
	content := sectionTitleStyle.Render(slide.Title) + "\n\n" + slide.Body
	return bodyStyle.
		Width(max(width-2, 1)).
		Height(paneRows - 2).
		MaxHeight(paneRows).
		Render(content)
}

// renderChart draws one bar per slide, scaled to interval progress.
func (p *CarouselPage) renderChart(width int) string {
	n := len(p.panels)
	barWidth := min(max((width-(n-1))/n, 1), 6)
	chartWidth := min(n*barWidth+n-1, width)

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
		barchart.WithMaxValue(1),
		barchart.WithNoAutoMaxValue(),
	)

	current := p.cycler.Current()
	for i := range p.panels {
		color := ColorGray
		if i == current {
			color = ColorBlue
		}
		bc.Push(barchart.BarData{
			Values: []barchart.BarValue{{
				Name:  p.panels[i].Slide.Title,
				Value: p.progress[i],
				Style: lipgloss.NewStyle().Foreground(color).Background(color),
			}},
		})
	}
	bc.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, sectionTitleStyle.Render("Progress"), bc.View())
}

func (p *CarouselPage) renderEvents(rows int) string {
	lines := []string{sectionTitleStyle.Render("Events")}
	shown := p.events
	if keep := rows - 1; len(shown) > keep {
		shown = shown[len(shown)-keep:]
	}
	for _, e := range shown {
		lines = append(lines, mutedStyle.Render(e))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
