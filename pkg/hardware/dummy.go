package hardware

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Command is one call made on a Dummy.
type Command struct {
	Name  string
	Value float64
}

func (c Command) String() string {
	return fmt.Sprintf("%s(%g)", c.Name, c.Value)
}

// Dummy logs and records every call instead of touching hardware.  Errors
// can be injected per command name.
type Dummy struct {
	log *zap.SugaredLogger

	lock     sync.Mutex
	commands []Command
	sounds   []string
	failures map[string]error
}

func NewDummy(log *zap.SugaredLogger) *Dummy {
	return &Dummy{
		log:      log,
		failures: map[string]error{},
	}
}

var _ Interface = (*Dummy)(nil)

// FailOn makes every subsequent call to the named command return err.
func (d *Dummy) FailOn(name string, err error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.failures[name] = err
}

func (d *Dummy) record(name string, value float64) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.log.Debugf("DHW: %s(%g)", name, value)
	d.commands = append(d.commands, Command{Name: name, Value: value})
	return d.failures[name]
}

func (d *Dummy) Forward(speed float64) error {
	return d.record("Forward", speed)
}

func (d *Dummy) Stop() error {
	return d.record("Stop", 0)
}

func (d *Dummy) TurnLeft(ctx context.Context, degrees float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.record("TurnLeft", degrees)
}

func (d *Dummy) TurnRight(ctx context.Context, degrees float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.record("TurnRight", degrees)
}

func (d *Dummy) PlaySound(path string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.log.Debugf("DHW: PlaySound %s", path)
	d.sounds = append(d.sounds, path)
}

func (d *Dummy) Shutdown() error {
	return d.record("Shutdown", 0)
}

// Commands returns a copy of the calls made so far.
func (d *Dummy) Commands() []Command {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]Command(nil), d.commands...)
}

// Turns returns just the turn commands, in order.
func (d *Dummy) Turns() []Command {
	var turns []Command
	for _, c := range d.Commands() {
		if c.Name == "TurnLeft" || c.Name == "TurnRight" {
			turns = append(turns, c)
		}
	}
	return turns
}

func (d *Dummy) Sounds() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.sounds...)
}
