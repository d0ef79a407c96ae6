package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/tigerbot-team/rovernav/pkg/config"
	"github.com/tigerbot-team/rovernav/pkg/logging"
	"github.com/tigerbot-team/rovernav/pkg/obstacle"
	"github.com/tigerbot-team/rovernav/pkg/ranging"
)

// Prints the three rangefinder distances twice a second, for bring-up.
func main() {
	log, _, err := logging.New("rangetests", "info")
	if err != nil {
		panic(err)
	}
	cfg, err := config.Load(config.DefaultPath, log)
	if err != nil {
		fmt.Println("Bad config ", err)
		os.Exit(1)
	}

	var sensors [3]*ranging.GPIO
	for i, pins := range []config.SensorPins{cfg.Sensors.Front, cfg.Sensors.Left, cfg.Sensors.Right} {
		name := obstacle.Side(i).String()
		sensors[i], err = ranging.NewGPIO(name, pins.Trigger, pins.Echo, cfg.Sensors.EchoTimeout, clock.New())
		if err != nil {
			fmt.Println("Failed to open sensor ", err)
			os.Exit(1)
		}
		defer func(g *ranging.GPIO) {
			_ = g.Close()
		}(sensors[i])
	}
	s := obstacle.New(sensors[0], sensors[1], sensors[2], cfg.Navigator.SafeDistanceCM, log)

	ctx := context.Background()
	for range time.NewTicker(500 * time.Millisecond).C {
		for _, side := range []obstacle.Side{obstacle.Front, obstacle.Left, obstacle.Right} {
			d, err := s.Distance(ctx, side)
			if err != nil {
				fmt.Printf("%5s: %v\n", side, err)
				continue
			}
			fmt.Printf("%5s: %6.1fcm\n", side, d)
		}
		blocked, _ := s.IsObstacleAhead(ctx)
		fmt.Println("Blocked:", blocked)
	}
}
