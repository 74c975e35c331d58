// Package scenario plays scripted sessions against a simulated decoder.
//
// A script is a JSON document describing the stream the simulated device
// holds and a list of steps: actions dispatched to the adapter, device events
// injected into it, playhead movements and pauses.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/anisan-cli/avbridge/decoder"
	"github.com/anisan-cli/avbridge/filesystem"
	"github.com/anisan-cli/avbridge/util"
	"github.com/anisan-cli/avbridge/video"
	"github.com/anisan-cli/avbridge/where"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// Script is a scripted session.
type Script struct {
	Name     string              `json:"name"`
	Duration float64             `json:"duration"`
	Tracks   []decoder.TrackInfo `json:"tracks"`

	// FailPrepares makes the first n prepares of the device fail.
	FailPrepares int `json:"failPrepares"`

	// ManualPrepare holds prepares until a step completes them.
	ManualPrepare bool `json:"manualPrepare"`

	Steps []Step `json:"steps"`
}

// Step is one scripted instruction. Exactly one field is set.
type Step struct {
	Dispatch *video.Action `json:"dispatch,omitempty"`
	Device   *DeviceEvent  `json:"device,omitempty"`
	Advance  float64       `json:"advance,omitempty"`
	State    decoder.State `json:"state,omitempty"`
	Complete bool          `json:"complete,omitempty"`

	// Wait sleeps for the given number of milliseconds.
	Wait int `json:"wait,omitempty"`
}

// DeviceEvent is a device notification in script form.
type DeviceEvent struct {
	Kind     string  `json:"kind"`
	Percent  int     `json:"percent,omitempty"`
	Time     float64 `json:"time,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Text     string  `json:"text,omitempty"`
}

func (e DeviceEvent) event() (decoder.Event, error) {
	kind, ok := decoder.ParseEventKind(e.Kind)
	if !ok {
		return decoder.Event{}, fmt.Errorf("unknown device event %q", e.Kind)
	}

	return decoder.Event{
		Kind:     kind,
		Percent:  e.Percent,
		Time:     e.Time,
		Duration: e.Duration,
		Text:     e.Text,
	}, nil
}

func (s Step) kinds() int {
	return lo.CountBy([]bool{
		s.Dispatch != nil,
		s.Device != nil,
		s.Advance != 0,
		s.State != "",
		s.Complete,
		s.Wait != 0,
	}, func(set bool) bool { return set })
}

// Resolve finds a script by path. Paths that do not exist are looked up in
// the scripts directory.
func Resolve(path string) string {
	if exists, _ := afero.Exists(filesystem.API(), path); exists || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(where.Scripts(), path)
}

// Load reads and validates the script at path.
func Load(path string) (*Script, error) {
	path = Resolve(path)

	contents, err := afero.ReadFile(filesystem.API(), path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	var script Script
	if err := json.Unmarshal(contents, &script); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}

	if script.Name == "" {
		script.Name = util.FileStem(path)
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}

	return &script, nil
}

// Validate checks that every step does exactly one thing.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}

	for i, step := range s.Steps {
		switch step.kinds() {
		case 0:
			return fmt.Errorf("step %d: empty", i+1)
		case 1:
		default:
			return fmt.Errorf("step %d: more than one instruction", i+1)
		}

		if step.Device != nil {
			if _, err := step.Device.event(); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}

	return nil
}

// Run plays the script. Every adapter event is passed to listener. The
// adapter is destroyed at the end unless the script did it already.
func Run(script *Script, opts video.Options, listener video.Listener) error {
	dec := decoder.NewSimulated(script.Duration, script.Tracks...)
	dec.FailPrepares(script.FailPrepares)
	dec.SetManualPrepare(script.ManualPrepare)

	v, err := video.New(dec, opts)
	if err != nil {
		return err
	}

	for _, kind := range video.Describe().Events {
		if err := v.On(kind, listener); err != nil {
			return err
		}
	}

	for i, step := range script.Steps {
		if err := play(v, dec, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	if v.Destroyed() {
		return nil
	}
	return v.Dispatch(video.Action{Type: video.ActionCommand, CommandName: video.CommandDestroy})
}

func play(v *video.Video, dec *decoder.Simulated, step Step) error {
	switch {
	case step.Dispatch != nil:
		return v.Dispatch(*step.Dispatch)
	case step.Device != nil:
		ev, err := step.Device.event()
		if err != nil {
			return err
		}
		dec.Emit(ev)
	case step.Advance != 0:
		dec.Advance(step.Advance)
	case step.State != "":
		dec.ForceState(step.State)
	case step.Complete:
		if !dec.CompletePrepare() {
			return errors.New("no prepare is pending")
		}
	case step.Wait != 0:
		time.Sleep(time.Duration(step.Wait) * time.Millisecond)
	}

	if v.Destroyed() {
		return nil
	}
	return v.Flush()
}
