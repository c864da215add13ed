package model

// Slide is one item in a cycled deck.
type Slide struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Deck is the on-disk shape of a slides file.
type Deck struct {
	Slides []Slide `yaml:"slides"`
}

// DefaultSlides is the deck used when no slides file is configured.
func DefaultSlides() []Slide {
	return []Slide{
		{Title: "Interval", Body: "Each slide stays current for one interval,\nthen the next one takes over."},
		{Title: "Cumulative", Body: "Activating a slide keeps every earlier slide\nmarked active, like a filled progress track."},
		{Title: "Click", Body: "Click a tab (or press its number) to jump there.\nThe interval restarts from zero."},
		{Title: "Breakpoint", Body: "Narrow the terminal below the breakpoint\nand the cycle pauses until it widens again."},
		{Title: "Visibility", Body: "Shrink the terminal until this panel is mostly hidden,\nor switch focus away, and the cycle waits for you."},
	}
}
