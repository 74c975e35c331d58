package video

import (
	"fmt"
	"maps"
)

// ActionType selects how a dispatched action is processed.
type ActionType string

const (
	ActionObserveProp ActionType = "observeProp"
	ActionSetProp     ActionType = "setProp"
	ActionCommand     ActionType = "command"
)

// Command is a lifecycle command name.
type Command string

const (
	CommandLoad    Command = "load"
	CommandUnload  Command = "unload"
	CommandDestroy Command = "destroy"
)

// Stream describes the media to play.
type Stream struct {
	URL      string         `json:"url"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// CommandArgs are the arguments of a load command. Time is the start position in ms.
type CommandArgs struct {
	Stream *Stream  `json:"stream,omitempty"`
	Time   *float64 `json:"time,omitempty"`
}

// Action is one request to the adapter.
type Action struct {
	Type        ActionType   `json:"type"`
	PropName    string       `json:"propName,omitempty"`
	PropValue   any          `json:"propValue,omitempty"`
	CommandName Command      `json:"commandName,omitempty"`
	CommandArgs *CommandArgs `json:"commandArgs,omitempty"`
}

func (a Action) validate() error {
	switch a.Type {
	case ActionObserveProp, ActionSetProp, ActionCommand:
		return nil
	case "":
		return fmt.Errorf("%w: missing type", ErrInvalidAction)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Type)
	}
}

// clone detaches the action from caller-owned memory.
func (a Action) clone() Action {
	if a.CommandArgs == nil {
		return a
	}

	args := *a.CommandArgs
	if args.Stream != nil {
		stream := *args.Stream
		stream.Metadata = maps.Clone(stream.Metadata)
		args.Stream = &stream
	}
	if args.Time != nil {
		t := *args.Time
		args.Time = &t
	}
	a.CommandArgs = &args
	return a
}
