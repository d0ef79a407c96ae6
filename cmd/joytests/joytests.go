package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tigerbot-team/rovernav/pkg/joystick"
	"github.com/tigerbot-team/rovernav/pkg/logging"
)

// Prints joystick events, to check the button mapping the navigator uses.
func main() {
	log, _, err := logging.New("joytests", "debug")
	if err != nil {
		panic(err)
	}

	// Hook Ctrl-C to cause shut down.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	jDev := os.Getenv("JOYSTICK_DEVICE")
	if jDev == "" {
		jDev = joystick.DefaultDevice
	}
	j, err := joystick.NewJoystick(jDev)
	if err != nil {
		fmt.Printf("Failed to open joystick: %v.\n", err)
		os.Exit(1)
	}

	events := make(chan *joystick.Event)
	go func() {
		err := j.Loop(ctx, events, log)
		fmt.Printf("Joystick loop exited: %v\n", err)
	}()
	for je := range events {
		switch {
		case je.Pressed(joystick.ButtonR1):
			fmt.Println(je, "(start navigation)")
		case je.Pressed(joystick.ButtonSquare):
			fmt.Println(je, "(stop navigation)")
		default:
			fmt.Println(je)
		}
	}
}
