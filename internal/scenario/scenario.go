// Package scenario loads a description of pending timers, relative to the
// moment it is applied, and installs it into a timer queue.
package scenario

//go:generate errtrace -w .

import (
	"fmt"
	"os"
	"time"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"github.com/davebream/timeridle/internal/timers"
)

// Duration is a time.Duration written as a Go duration string ("1500ms",
// "-100ms") or as an integer number of milliseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errtrace.Wrap(fmt.Errorf("line %d: duration must be a scalar", node.Line))
	}
	var ms int64
	if err := node.Decode(&ms); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return errtrace.Wrap(fmt.Errorf("line %d: %w", node.Line, err))
	}
	*d = Duration(parsed)
	return nil
}

// TimerSpec describes one timer. In is the offset of its target time from
// the moment the scenario is applied; negative means overdue.
type TimerSpec struct {
	Label    string   `yaml:"label,omitempty"`
	In       Duration `yaml:"in"`
	Interval Duration `yaml:"interval,omitempty"`
	Repeat   bool     `yaml:"repeat,omitempty"`
}

type Scenario struct {
	Name   string      `yaml:"name,omitempty"`
	Timers []TimerSpec `yaml:"timers"`
}

func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("parse scenario: %w", err))
	}
	if err := s.Validate(); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &s, nil
}

// Load reads a scenario from a YAML or JSON file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("load scenario: %w", err))
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%s: %w", path, err))
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

func (s *Scenario) Validate() error {
	for i, t := range s.Timers {
		if t.Repeat && t.Interval <= 0 {
			return errtrace.Wrap(fmt.Errorf("timer %d (%s): repeating timer needs a positive interval", i, t.Label))
		}
		if t.Interval < 0 {
			return errtrace.Wrap(fmt.Errorf("timer %d (%s): negative interval", i, t.Label))
		}
	}
	return nil
}

// Apply schedules every timer into q relative to now. onFire, when set, is
// called with the label of each timer as it fires. It returns the new timer
// ids in scenario order.
func (s *Scenario) Apply(q *timers.Queue, now time.Time, onFire func(label string)) []string {
	ids := make([]string, 0, len(s.Timers))
	for _, t := range s.Timers {
		interval := time.Duration(t.Interval)
		if interval == 0 && t.In > 0 {
			interval = time.Duration(t.In)
		}
		var fn func()
		if onFire != nil {
			label := t.Label
			fn = func() { onFire(label) }
		}
		ids = append(ids, q.Schedule(now.Add(time.Duration(t.In)), interval, t.Repeat, fn))
	}
	return ids
}
