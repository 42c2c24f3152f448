// Package automation replays scripted pointer sessions and sweeps
// parameters across headless ensembles.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/bezdyn/internal/config"
	"github.com/san-kum/bezdyn/internal/session"
)

var (
	ErrUnknownAction = errors.New("automation: unknown action")
	ErrBadScenario   = errors.New("automation: invalid scenario")
)

// Scenario is a scripted headless session. Events fire before the tick of
// their frame, in file order for events sharing a frame.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Preset      string  `yaml:"preset"`
	Seed        uint64  `yaml:"seed"`
	Frames      int     `yaml:"frames"`
	Dt          float64 `yaml:"dt"`
	Events      []Event `yaml:"events"`
}

// Event is one scripted input. Action is one of press, move, release,
// leave, toggle, param, reset, randomize or clear.
type Event struct {
	Frame  int     `yaml:"frame"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Name   string  `yaml:"name"`
	Value  float64 `yaml:"value"`
	// On sets a toggle; nil flips it.
	On *bool `yaml:"on"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("automation: parse scenario: %w", err)
	}
	if sc.Dt == 0 {
		sc.Dt = 1.0 / config.DefaultFPS
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive", ErrBadScenario)
	}
	if sc.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive", ErrBadScenario)
	}
	for i, ev := range sc.Events {
		if ev.Frame < 0 || ev.Frame >= sc.Frames {
			return fmt.Errorf("%w: event %d at frame %d outside [0, %d)", ErrBadScenario, i, ev.Frame, sc.Frames)
		}
		if !knownAction(ev.Action) {
			return fmt.Errorf("%w: event %d: %q", ErrUnknownAction, i, ev.Action)
		}
	}
	return nil
}

var actions = []string{"clear", "leave", "move", "param", "press", "randomize", "release", "reset", "toggle"}

func knownAction(a string) bool {
	i := sort.SearchStrings(actions, a)
	return i < len(actions) && actions[i] == a
}

// Options builds the session options: base, then the preset, then the
// scenario seed when set.
func (sc *Scenario) Options(base *config.Config) (session.Options, error) {
	cfg := *base
	if sc.Preset != "" {
		if err := config.Apply(&cfg, sc.Preset); err != nil {
			return session.Options{}, err
		}
	}
	if sc.Seed != 0 {
		cfg.Seed = sc.Seed
	}
	return cfg.SessionOptions(), nil
}

// Runner replays a scenario against a fresh session.
type Runner struct {
	Log       *zap.Logger
	Observers []session.Observer
}

func NewRunner(log *zap.Logger, observers ...session.Observer) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Log: log, Observers: observers}
}

// Run executes the scenario and returns the finished session.
func (r *Runner) Run(ctx context.Context, sc *Scenario, opts session.Options) (*session.Session, error) {
	events := append([]Event(nil), sc.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })

	s := session.New(opts)
	for _, o := range r.Observers {
		s.AddObserver(o)
	}

	next := 0
	for frame := 0; frame < sc.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return s, fmt.Errorf("automation: scenario %q stopped at frame %d: %w", sc.Name, frame, err)
		}
		for next < len(events) && events[next].Frame == frame {
			if err := apply(s, events[next]); err != nil {
				return s, fmt.Errorf("automation: frame %d: %w", frame, err)
			}
			r.Log.Debug("event", zap.Int("frame", frame), zap.String("action", events[next].Action))
			next++
		}
		s.Tick(sc.Dt)
	}
	r.Log.Info("scenario finished",
		zap.String("name", sc.Name),
		zap.Int("frames", sc.Frames),
		zap.Int("events", len(events)))
	return s, nil
}

func apply(s *session.Session, ev Event) error {
	switch ev.Action {
	case "press":
		s.PointerMove(ev.X, ev.Y)
		s.PointerDown()
	case "move":
		s.PointerMove(ev.X, ev.Y)
	case "release":
		s.PointerUp()
	case "leave":
		s.PointerLeave()
	case "toggle":
		if ev.On == nil {
			_, err := s.Flip(ev.Name)
			return err
		}
		return s.SetToggle(ev.Name, *ev.On)
	case "param":
		return s.SetParam(ev.Name, ev.Value)
	case "reset":
		s.Reset()
	case "randomize":
		s.Randomize()
	case "clear":
		s.ClearParticles()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
	return nil
}
