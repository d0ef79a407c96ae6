// Package plan holds the pre-planned sequence of move/turn steps that the
// navigator executes, and the loaders for the JSON and YAML plan files.
package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

type Action string

const (
	MoveForward Action = "moveForward"
	TurnLeft    Action = "turnLeft"
	TurnRight   Action = "turnRight"
)

// Known reports whether the navigator knows how to execute the action.
func (a Action) Known() bool {
	switch a {
	case MoveForward, TurnLeft, TurnRight:
		return true
	}
	return false
}

// IsTurn reports whether the action rotates the bot.
func (a Action) IsTurn() bool {
	return a == TurnLeft || a == TurnRight
}

// Step is a single plan entry.  Value is in degrees for turns and
// centimetres for forward moves.
type Step struct {
	Action Action  `json:"action" yaml:"action"`
	Value  float64 `json:"value" yaml:"value"`
}

func (s Step) String() string {
	return fmt.Sprintf("%s(%g)", s.Action, s.Value)
}

type Plan []Step

// file is the long form of a plan file: {"steps": [...]}.
type file struct {
	Steps Plan `json:"steps" yaml:"steps"`
}

var ErrMalformedPlan = errors.New("malformed plan")

// Parse reads a JSON plan: either a bare array of steps or an object with a
// "steps" array.  Unknown action names are kept so that they can be reported
// when the plan runs.
func Parse(data []byte) (Plan, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.Wrap(ErrMalformedPlan, "empty input")
	}
	if trimmed[0] == '[' {
		var p Plan
		if err := json.Unmarshal(trimmed, &p); err != nil {
			return nil, errors.Wrapf(ErrMalformedPlan, "%v", err)
		}
		return p, nil
	}
	var f file
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, errors.Wrapf(ErrMalformedPlan, "%v", err)
	}
	if f.Steps == nil {
		return nil, errors.Wrap(ErrMalformedPlan, "no steps")
	}
	return f.Steps, nil
}

// ParseYAML is the YAML equivalent of Parse.
func ParseYAML(data []byte) (Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err == nil && p != nil {
		return p, nil
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(ErrMalformedPlan, "%v", err)
	}
	if f.Steps == nil {
		return nil, errors.Wrap(ErrMalformedPlan, "no steps")
	}
	return f.Steps, nil
}

// Load reads a plan file, choosing the format from the extension.
func Load(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

// TotalForward sums the forward distance the plan asks for.
func (p Plan) TotalForward() float64 {
	var total float64
	for _, s := range p {
		if s.Action == MoveForward && s.Value > 0 {
			total += s.Value
		}
	}
	return total
}
