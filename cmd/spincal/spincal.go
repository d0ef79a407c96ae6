package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/benbjohnson/clock"

	"github.com/tigerbot-team/rovernav/pkg/config"
	"github.com/tigerbot-team/rovernav/pkg/hardware"
	"github.com/tigerbot-team/rovernav/pkg/logging"
)

// Spin calibration: asks the bot for a full turn, then asks the operator how
// far it actually went and prints the spin speed that would have been right.
func main() {
	fmt.Println("---- Spin Calibration ----")
	log, _, err := logging.New("spincal", "info")
	if err != nil {
		panic(err)
	}
	cfg, err := config.Load(config.DefaultPath, log)
	if err != nil {
		fmt.Println("Bad config ", err)
		os.Exit(1)
	}

	hw, err := hardware.New(cfg.Hardware, clock.New(), log)
	if err != nil {
		fmt.Println("Failed to open hardware ", err)
		os.Exit(1)
	}
	defer func() {
		fmt.Println("Zeroing motors for shut down")
		_ = hw.Shutdown()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	speed := cfg.Hardware.SpinSpeedCMPerS
	for {
		fmt.Printf("Spinning 360 degrees left assuming %.2f cm/s.\n", speed)
		if err := hw.TurnLeft(context.Background(), 360); err != nil {
			fmt.Println("Spin failed ", err)
			return
		}
		fmt.Println("Enter the angle actually turned (degrees), or blank to finish:")
		if !scanner.Scan() || scanner.Text() == "" {
			break
		}
		actual, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil || actual <= 0 {
			fmt.Printf("Can't use %q, try again.\n", scanner.Text())
			continue
		}
		// Angle turned scales with the true wheel speed.
		speed = speed * actual / 360
		hw.SetSpinSpeed(speed)
		fmt.Printf("spin_speed_cm_per_s: %.2f\n", speed)
	}
}
