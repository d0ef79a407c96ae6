package joystick

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"testing"

	"go.uber.org/zap"
	"go.viam.com/test"
)

func encode(t *testing.T, events ...rawEvent) io.ReadCloser {
	t.Helper()
	var buf bytes.Buffer
	for _, e := range events {
		test.That(t, binary.Write(&buf, binary.LittleEndian, e), test.ShouldBeNil)
	}
	return io.NopCloser(&buf)
}

func TestReadEvent(t *testing.T) {
	j := FromReader(encode(t,
		rawEvent{Time: 1000, Value: 0, Type: EventTypeButton | eventTypeInit, Number: ButtonR1},
		rawEvent{Time: 1250, Value: 1, Type: EventTypeButton, Number: ButtonR1},
		rawEvent{Time: 1300, Value: -32767, Type: EventTypeAxis, Number: AxisDPadY},
	))

	first, err := j.ReadEvent()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, first.Type, test.ShouldEqual, EventType(EventTypeButton))
	test.That(t, first.Pressed(ButtonR1), test.ShouldBeFalse)

	second, err := j.ReadEvent()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second.Pressed(ButtonR1), test.ShouldBeTrue)
	test.That(t, second.Pressed(ButtonSquare), test.ShouldBeFalse)
	test.That(t, second.Time.Sub(first.Time).Milliseconds(), test.ShouldEqual, int64(250))

	third, err := j.ReadEvent()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, third.String(), test.ShouldEqual, "axis(7)=-32767")

	_, err = j.ReadEvent()
	test.That(t, err, test.ShouldEqual, io.EOF)
}

func TestLoopClosesChannel(t *testing.T) {
	j := FromReader(encode(t, rawEvent{Time: 1, Value: 1, Type: EventTypeButton, Number: ButtonSquare}))
	events := make(chan *Event, 2)
	err := j.Loop(context.Background(), events, zap.NewNop().Sugar())
	test.That(t, err, test.ShouldEqual, io.EOF)

	e, ok := <-events
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, e.Pressed(ButtonSquare), test.ShouldBeTrue)
	_, ok = <-events
	test.That(t, ok, test.ShouldBeFalse)
}
