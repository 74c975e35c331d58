package video

import (
	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/log"
	"github.com/anisan-cli/avbridge/tracksdata"
)

// message is a unit of work for the loop goroutine.
type message interface {
	handle(v *Video)
}

type dispatchMsg struct {
	action Action
	done   chan struct{}
}

func (m dispatchMsg) handle(v *Video) {
	defer close(m.done)

	handler, ok := actionHandlers[m.action.Type]
	if !ok {
		log.Warnf("no handler for action %q", m.action.Type)
		return
	}
	handler(v, m.action)
}

type flushMsg struct {
	done chan struct{}
}

func (m flushMsg) handle(*Video) {
	close(m.done)
}

type deviceMsg struct {
	event decoder.Event
}

func (m deviceMsg) handle(v *Video) {
	handler, ok := deviceHandlers[m.event.Kind]
	if !ok {
		log.Debugf("ignoring device event %s", m.event.Kind)
		return
	}
	handler(v, m.event)
}

// prepareMsg reports the outcome of load attempt number attempt.
type prepareMsg struct {
	attempt int
	err     error
}

func (m prepareMsg) handle(v *Video) {
	if m.err != nil {
		v.onPrepareError(m.attempt, m.err)
		return
	}
	v.onPrepareSuccess(m.attempt)
}

type tracksDataMsg struct {
	session string
	data    tracksdata.Data
	err     error
}

func (m tracksDataMsg) handle(v *Video) {
	v.onTracksData(m.session, m.data, m.err)
}

type cueExpiredMsg struct {
	gen int
}

func (m cueExpiredMsg) handle(v *Video) {
	v.onCueExpired(m.gen)
}

// pausedRecheckMsg re-reads the paused state and reports it if it drifted from last.
type pausedRecheckMsg struct {
	last any
}

func (m pausedRecheckMsg) handle(v *Video) {
	if v.read(PropPaused) != m.last {
		v.propChanged(PropPaused)
	}
}

var actionHandlers = map[ActionType]func(*Video, Action){
	ActionObserveProp: func(v *Video, a Action) {
		if p, ok := ParseProp(a.PropName); ok {
			v.observe(p)
		}
	},
	ActionSetProp: func(v *Video, a Action) {
		if p, ok := ParseProp(a.PropName); ok {
			v.write(p, a.PropValue)
		}
	},
	ActionCommand: func(v *Video, a Action) {
		handler, ok := commandHandlers[a.CommandName]
		if !ok {
			log.Debugf("ignoring unknown command %q", a.CommandName)
			return
		}
		handler(v, a.CommandArgs)
	},
}

var commandHandlers = map[Command]func(*Video, *CommandArgs){
	CommandLoad:    (*Video).commandLoad,
	CommandUnload:  func(v *Video, _ *CommandArgs) { v.unload() },
	CommandDestroy: func(v *Video, _ *CommandArgs) { v.destroy() },
}

var deviceHandlers = map[decoder.EventKind]func(*Video, decoder.Event){
	decoder.BufferingStart:    func(v *Video, _ decoder.Event) { v.setBuffering(true) },
	decoder.BufferingProgress: func(v *Video, _ decoder.Event) { v.setBuffering(true) },
	decoder.BufferingComplete: func(v *Video, _ decoder.Event) { v.setBuffering(false) },
	decoder.CurrentPlayTime:   func(v *Video, _ decoder.Event) { v.propChanged(PropTime) },
	decoder.SubtitleChange:    func(v *Video, ev decoder.Event) { v.renderCue(ev.Duration, ev.Text) },
	decoder.StreamCompleted:   func(v *Video, _ decoder.Event) { v.emit(Event{Kind: EventEnded}) },
}
