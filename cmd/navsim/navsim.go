package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/benbjohnson/clock"

	"github.com/tigerbot-team/rovernav/pkg/hardware"
	"github.com/tigerbot-team/rovernav/pkg/logging"
	"github.com/tigerbot-team/rovernav/pkg/navigator"
	"github.com/tigerbot-team/rovernav/pkg/obstacle"
	"github.com/tigerbot-team/rovernav/pkg/plan"
	"github.com/tigerbot-team/rovernav/pkg/sim"
	"github.com/tigerbot-team/rovernav/pkg/trace"
)

func main() {
	worldFile := flag.String("world", "", "YAML obstacle world (empty for open ground)")
	out := flag.String("png", "", "write the track to this PNG")
	size := flag.Int("size", 512, "PNG size in pixels")
	level := flag.String("log-level", "info", "log level")
	target := flag.String("compensation", string(navigator.CompensateTurn), "compensation target: turn or next_forward")
	realtime := flag.Bool("realtime", false, "pace increments like the real bot")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: navsim [flags] <plan.json|plan.yaml>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	log, _, err := logging.New("navsim", *level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	p, err := plan.Load(flag.Arg(0))
	if err != nil {
		log.Fatalw("Failed to load plan", "error", err)
	}
	world := sim.NewWorld()
	if *worldFile != "" {
		if world, err = sim.Load(*worldFile); err != nil {
			log.Fatalw("Failed to load world", "error", err)
		}
	}

	cfg := navigator.DefaultConfig()
	cfg.CompensationTarget = navigator.CompensationTarget(*target)
	cfg.RecordTrail = true
	if !*realtime {
		cfg.IncrementInterval = 0
	}
	front, left, right := world.Sensors()
	sensor := obstacle.New(front, left, right, cfg.SafeDistanceCM, log.Named("sensor"))
	nav, err := navigator.New(cfg, hardware.NewDummy(log.Named("hw")), sensor, clock.New(), log)
	if err != nil {
		log.Fatalw("Failed to create navigator", "error", err)
	}
	world.Track(nav)

	result, err := nav.Execute(context.Background(), p)
	if err != nil {
		log.Errorw("Run failed", "error", err)
	}
	for _, s := range result.Steps {
		switch {
		case s.Skipped:
			fmt.Printf("%3d %-20s skipped: %v\n", s.Index, s.Step, s.Err)
		default:
			fmt.Printf("%3d %-20s effective %-8g avoidances %d\n", s.Index, s.Step, s.EffectiveValue, len(s.Avoidances))
		}
	}
	fmt.Printf("Final position %v heading %.1f compensation %.1f\n",
		result.Position, result.Heading.Float(), result.LateralCompensation)

	if *out != "" {
		if err := trace.SavePNG(*out, trace.FromResult(result, world.Obstacles), *size); err != nil {
			log.Fatalw("Failed to write PNG", "error", err)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}
