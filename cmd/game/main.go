// Command game runs the playable build: the simulation stepped at a fixed
// rate behind an ebiten window, with primitive-shape rendering.
//
// Tuning documents load from the embedded defaults unless -config points
// at a directory; with -watch, edits to that directory rebuild the scene
// so tuning changes apply without a restart.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/seojinpark/blade/internal/application/game"
	"github.com/seojinpark/blade/internal/application/replay"
	"github.com/seojinpark/blade/internal/application/scene"
	"github.com/seojinpark/blade/internal/application/scene/playing"
	"github.com/seojinpark/blade/internal/infrastructure/config"
)

func main() {
	var (
		levelFlag  = flag.String("level", "training", "starting level name")
		configFlag = flag.String("config", "", "config directory (default: embedded documents)")
		recordFlag = flag.String("record", "", "record inputs to file (e.g. -record replay.json)")
		replayFlag = flag.String("replay", "", "play back a recorded session")
		watchFlag  = flag.Bool("watch", false, "reload tuning when config files change (needs -config)")
	)
	flag.Parse()

	loader := config.Default()
	if *configFlag != "" {
		loader = config.NewLoader(*configFlag)
	}

	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	build := func(cfg *config.GameConfig) (scene.Scene, error) {
		if *replayFlag != "" {
			data, err := replay.Load(*replayFlag)
			if err != nil {
				return nil, err
			}
			return playing.NewReplay(cfg, loader, *data)
		}
		return playing.New(cfg, loader, *levelFlag, *recordFlag)
	}

	sc, err := build(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if *watchFlag {
		if *configFlag == "" {
			log.Fatal("-watch needs -config: the embedded defaults cannot change")
		}
		dirs := []string{*configFlag}
		if lv := filepath.Join(*configFlag, "levels"); dirExists(lv) {
			dirs = append(dirs, lv)
		}
		watcher, err := config.NewWatcher(dirs...)
		if err != nil {
			log.Fatalf("Failed to watch %s: %v", *configFlag, err)
		}
		defer watcher.Close()

		go func() {
			for err := range watcher.Errors {
				log.Printf("Config watcher: %v", err)
			}
		}()

		sc = &reloadScene{
			inner:  sc,
			events: watcher.Events,
			rebuild: func() (scene.Scene, error) {
				fresh, err := loader.LoadAll()
				if err != nil {
					return nil, err
				}
				return build(fresh)
			},
		}
	}

	display := cfg.Physics.Display
	scale := display.Scale
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(display.ScreenWidth*scale, display.ScreenHeight*scale)
	ebiten.SetWindowTitle("Blade")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(game.New(sc, display.ScreenWidth, display.ScreenHeight, display.Framerate)); err != nil {
		log.Fatal(err)
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// reloadScene wraps the gameplay scene and swaps in a freshly built one
// when a watched config document changes. The swap runs through the
// normal scene transition, so the outgoing scene still saves its
// recording on exit.
type reloadScene struct {
	inner   scene.Scene
	events  <-chan string
	rebuild func() (scene.Scene, error)
}

func (r *reloadScene) Update(dt float64) (scene.Scene, error) {
	select {
	case path, ok := <-r.events:
		if ok {
			log.Printf("Config changed: %s, reloading", path)
			next, err := r.rebuild()
			if err != nil {
				log.Printf("Reload failed, keeping current tuning: %v", err)
				break
			}
			return &reloadScene{inner: next, events: r.events, rebuild: r.rebuild}, nil
		}
	default:
	}

	next, err := r.inner.Update(dt)
	if err != nil {
		return nil, err
	}
	if next != nil {
		return &reloadScene{inner: next, events: r.events, rebuild: r.rebuild}, nil
	}
	return nil, nil
}

func (r *reloadScene) Draw(screen *ebiten.Image) { r.inner.Draw(screen) }

func (r *reloadScene) OnEnter() { r.inner.OnEnter() }

func (r *reloadScene) OnExit() { r.inner.OnExit() }
