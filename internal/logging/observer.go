package logging

import (
	"github.com/rs/zerolog"

	"github.com/tinytelemetry/cycler/internal/cycle"
)

// EventObserver logs cycle events. Activation, pause and resume go out at
// info; deactivation and start at debug; progress at trace.
type EventObserver struct {
	logger zerolog.Logger
}

// NewEventObserver returns an observer writing to logger.
func NewEventObserver(logger zerolog.Logger) *EventObserver {
	return &EventObserver{logger: logger}
}

// Handle implements cycle.Observer.
func (o *EventObserver) Handle(ev cycle.Event) {
	var e *zerolog.Event
	switch ev.Kind {
	case cycle.KindActivated:
		e = o.logger.Info().Str("triggered_by", ev.TriggeredBy)
	case cycle.KindDeactivated:
		e = o.logger.Debug().Str("triggered_by", ev.TriggeredBy).Ints("deactivated", ev.DeactivatedIndices)
	case cycle.KindPaused, cycle.KindResumed:
		e = o.logger.Info().Str("source", sourceName(ev.Source))
	case cycle.KindStarted:
		e = o.logger.Debug()
	case cycle.KindProgressed:
		e = o.logger.Trace().Float64("progress", ev.Progress)
	default:
		e = o.logger.Warn()
	}
	e.Int("index", ev.Index).Msg(ev.Kind.String())
}

func sourceName(source string) string {
	if source == cycle.SourceManual {
		return "manual"
	}
	return source
}
