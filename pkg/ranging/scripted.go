package ranging

import (
	"context"
	"sync"
	"time"
)

// Scripted is a fake EchoTimer that replays a fixed sequence of echo
// durations.  Once the script is exhausted the last entry repeats.  A nil
// error slot in Errs means "no error" for the matching reading.
type Scripted struct {
	lock      sync.Mutex
	Durations []time.Duration
	Errs      []error
	calls     int
}

func NewScripted(durations ...time.Duration) *Scripted {
	return &Scripted{Durations: durations}
}

// NewScriptedDistances builds a script from distances in centimetres.
func NewScriptedDistances(cms ...float64) *Scripted {
	s := &Scripted{}
	for _, cm := range cms {
		s.Durations = append(s.Durations, EchoForDistance(cm))
	}
	return s
}

func (s *Scripted) MeasureEcho(ctx context.Context) (time.Duration, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	i := s.calls
	s.calls++
	if i < len(s.Errs) && s.Errs[i] != nil {
		return 0, s.Errs[i]
	}
	if len(s.Durations) == 0 {
		return 0, nil
	}
	if i >= len(s.Durations) {
		i = len(s.Durations) - 1
	}
	return s.Durations[i], nil
}

// Calls returns the number of readings taken so far.
func (s *Scripted) Calls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.calls
}

// Func adapts a plain function into an EchoTimer.
type Func func(ctx context.Context) (time.Duration, error)

func (f Func) MeasureEcho(ctx context.Context) (time.Duration, error) {
	return f(ctx)
}
