package cycle

// Kind identifies the type of a cycle event.
type Kind uint8

const (
	// KindActivated is emitted when an element gains the active tag.
	KindActivated Kind = iota + 1

	// KindDeactivated is emitted when an element loses the active tag.
	KindDeactivated

	// KindPaused is emitted when advancement is suspended.
	KindPaused

	// KindResumed is emitted when advancement is allowed again.
	KindResumed

	// KindStarted is emitted each time a fresh interval window starts.
	KindStarted

	// KindProgressed is emitted on every frame for the current element and
	// every element before it.
	KindProgressed
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindActivated:
		return "activated"
	case KindDeactivated:
		return "deactivated"
	case KindPaused:
		return "paused"
	case KindResumed:
		return "resumed"
	case KindStarted:
		return "started"
	case KindProgressed:
		return "progressed"
	default:
		return "unknown"
	}
}

// Trigger sources passed to Activate.
const (
	TriggerInterval  = "interval"
	TriggerClick     = "click"
	TriggerImmediate = "immediate-active"
)

// Pause and resume sources.
const (
	SourceManual     = ""
	SourceVisibility = "visibility"
	SourceBreakpoint = "breakpoint"
)

// Event is a single notification from a Cycler. Which fields are set
// depends on Kind:
//
//	Activated    TriggeredBy
//	Deactivated  TriggeredBy, Deactivated, DeactivatedIndices
//	Paused       Source
//	Resumed      Source
//	Started      -
//	Progressed   Progress
type Event struct {
	Kind    Kind
	Index   int
	Element Element

	TriggeredBy string

	// Deactivated lists every element untagged so far by the same
	// Activate call, including this one.
	Deactivated        []Element
	DeactivatedIndices []int

	Source string

	// Progress is the elapsed fraction of the interval. It is not clamped
	// and can briefly exceed 1 on the frame that advances the cycle.
	Progress float64
}

// Observer receives cycle events. Handle runs synchronously inside the
// state transition that produced the event.
type Observer interface {
	Handle(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// Handle calls f(ev).
func (f ObserverFunc) Handle(ev Event) { f(ev) }

// Observers fans an event out to each observer in order.
type Observers []Observer

// Handle dispatches ev to every non-nil observer.
func (o Observers) Handle(ev Event) {
	for _, obs := range o {
		if obs != nil {
			obs.Handle(ev)
		}
	}
}

// Callbacks routes events to one function per kind. Nil slots are skipped.
type Callbacks struct {
	OnActive   func(Event)
	OnDeactive func(Event)
	OnPause    func(Event)
	OnResume   func(Event)
	OnStart    func(Event)
	OnProgress func(Event)
}

// Handle implements Observer.
func (c Callbacks) Handle(ev Event) {
	var fn func(Event)
	switch ev.Kind {
	case KindActivated:
		fn = c.OnActive
	case KindDeactivated:
		fn = c.OnDeactive
	case KindPaused:
		fn = c.OnPause
	case KindResumed:
		fn = c.OnResume
	case KindStarted:
		fn = c.OnStart
	case KindProgressed:
		fn = c.OnProgress
	}
	if fn != nil {
		fn(ev)
	}
}

type nopObserver struct{}

func (nopObserver) Handle(Event) {}
