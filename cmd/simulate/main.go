// Command simulate runs the world headless: no window, no input devices,
// as many fixed steps as asked for. It exists for replay verification,
// profiling, and quick determinism checks from the command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/pkg/profile"

	"github.com/seojinpark/blade/internal/application/replay"
	"github.com/seojinpark/blade/internal/application/sim"
	"github.com/seojinpark/blade/internal/application/system"
	"github.com/seojinpark/blade/internal/infrastructure/config"
)

func main() {
	var (
		levelFlag   = flag.String("level", "training", "level to simulate")
		framesFlag  = flag.Int("frames", 3600, "number of fixed steps to run (a replay runs its full length)")
		replayFlag  = flag.String("replay", "", "drive input from a recorded session")
		configFlag  = flag.String("config", "", "config directory (default: embedded documents)")
		profileFlag = flag.String("profile", "", "write a cpu or mem profile to the working directory")
	)
	flag.Parse()

	var prof interface{ Stop() }
	switch *profileFlag {
	case "":
	case "cpu":
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		prof = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		log.Fatalf("unknown profile mode %q (want cpu or mem)", *profileFlag)
	}

	err := run(*levelFlag, *framesFlag, *replayFlag, *configFlag)
	if prof != nil {
		prof.Stop()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run(level string, frames int, replayPath, configDir string) error {
	loader := config.Default()
	if configDir != "" {
		loader = config.NewLoader(configDir)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return err
	}

	var source inputSource = &demoScript{}
	if replayPath != "" {
		data, err := replay.Load(replayPath)
		if err != nil {
			return err
		}
		if data.Version != replay.Version {
			log.Printf("Replay version %q differs from %q, playback may drift", data.Version, replay.Version)
		}
		if data.Level != "" {
			level = data.Level
		}
		frames = len(data.Frames)
		source = replay.NewReplayer(*data)
	}

	world := sim.New(cfg, loader)
	if err := world.LoadLevel(level); err != nil {
		return err
	}
	world.OnLevelCleared = func(name string) {
		log.Printf("Level cleared: %s", name)
	}

	framerate := cfg.Physics.Display.Framerate
	if framerate <= 0 {
		framerate = 60
	}
	dt := 1.0 / float64(framerate)

	start := time.Now()
	steps := 0
	for i := 0; i < frames; i++ {
		buttons, ok := source.Next()
		if !ok {
			break
		}
		if err := world.Step(buttons, dt); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		steps++
		if world.GameOver() || world.Complete() {
			break
		}
	}
	elapsed := time.Since(start)

	p := world.Player()
	fmt.Printf("frames:   %d in %s", steps, elapsed.Round(time.Millisecond))
	if elapsed > 0 {
		fmt.Printf(" (%.0f frames/sec)", float64(steps)/elapsed.Seconds())
	}
	fmt.Println()
	fmt.Printf("level:    %s\n", world.Stage().Name)
	fmt.Printf("position: (%.1f, %.1f)\n", p.Pos.X, p.Pos.Y)
	fmt.Printf("state:    %s\n", world.Machine().Current())
	fmt.Printf("health:   %d/%d\n", p.Health, p.MaxHealth)
	fmt.Printf("kills:    %d\n", world.Kills())
	switch {
	case world.GameOver():
		fmt.Println("outcome:  game over")
	case world.Complete():
		fmt.Println("outcome:  complete")
	default:
		fmt.Println("outcome:  still running")
	}
	return nil
}

// inputSource yields one button state per frame. replay.Replayer
// satisfies it directly.
type inputSource interface {
	Next() (system.Buttons, bool)
}

// demoScript drives a canned input loop so profiling runs exercise the
// run, jump, combo, and dash paths instead of idling on the spawn point.
type demoScript struct {
	frame int
}

func (d *demoScript) Next() (system.Buttons, bool) {
	phase := d.frame % 240
	d.frame++

	var b system.Buttons
	switch {
	case phase < 80:
		b.Right = true
	case phase < 90:
		b.Right = true
		b.Jump = true
	case phase < 110:
		// Tap the button; the combo chains on press edges.
		b.Attack = (phase/5)%2 == 0
	case phase < 190:
		b.Left = true
	case phase < 200:
		b.Left = true
		b.Jump = true
	case phase < 205:
		b.Dash = true
	}
	return b, true
}
