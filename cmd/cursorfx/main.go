package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/folio/cursorfx"
	"github.com/folio/cursorfx/fxrt/platform"
	"github.com/folio/cursorfx/fxrt/snapshot"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	debug := flag.Bool("debug", false, "Enable debug logging (frame rate and pool stats)")
	headless := flag.Bool("headless", false, "Render offscreen instead of opening a window")
	frames := flag.Int("frames", 120, "Frames to render in headless mode")
	snapshotPath := flag.String("snapshot", "cursorfx.png", "PNG written after a headless run")
	width := flag.Int("width", 0, "Override window width")
	height := flag.Int("height", 0, "Override window height")
	flag.Parse()

	cfg := cursorfx.DefaultConfig()
	if *configPath != "" {
		loaded, err := cursorfx.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = *loaded
	}
	if *debug {
		cfg.Debug = true
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var err error
	if *headless {
		err = runHeadless(cfg, *frames, *snapshotPath)
	} else {
		err = runWindow(cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runWindow(cfg cursorfx.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	win, err := platform.NewWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Destroy()

	pc := cursorfx.NewParticleCursor(win, cursorfx.WithConfig(cfg))
	if err := pc.Mount(win); err != nil {
		return err
	}
	defer pc.Unmount()

	win.Run(ctx)
	return nil
}

var captureStage = cursorfx.Stage{Name: "Capture"}

// capture writes the overlay image to path once the frame numbered at has
// been rendered. Frames are counted from when the stage was added.
type capture struct {
	at    int
	path  string
	frame int
	done  bool
	err   error
}

func captureSystem(c *capture, overlay *cursorfx.Overlay) {
	c.frame++
	if c.done || c.frame < c.at {
		return
	}
	c.done = true
	surface, ok := overlay.Surface.(*snapshot.Surface)
	if !ok {
		c.err = fmt.Errorf("capture: %T is not a snapshot surface", overlay.Surface)
		return
	}
	c.err = writePNG(c.path, surface)
}

func writePNG(path string, surface *snapshot.Surface) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()
	if err := surface.WritePNG(f); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// runHeadless drives the pointer around a circle at 60 frames per second and
// writes the last frame to a PNG from a stage that runs right after Render.
func runHeadless(cfg cursorfx.Config, frames int, out string) error {
	if frames < 1 {
		return fmt.Errorf("headless run needs at least one frame, got %d", frames)
	}
	clock := cursorfx.NewManualClock(time.Now())
	host := cursorfx.NewStaticHost(clock, cfg.Window.Width, cfg.Window.Height)
	target := snapshot.NewTarget()

	pc := cursorfx.NewParticleCursor(host, cursorfx.WithConfig(cfg))
	if err := pc.Mount(target); err != nil {
		return err
	}
	defer pc.Unmount()

	shot := &capture{at: frames, path: out}
	pc.App().
		UseStage(captureStage, cursorfx.AfterStage(cursorfx.Render)).
		UseSystem(cursorfx.System(captureSystem).InStage(captureStage))
	pc.App().Commands().AddResources(shot)

	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	radius := math.Min(w, h) / 4
	for i := 0; i < frames; i++ {
		angle := float64(i) / 60 * 2 * math.Pi
		host.MovePointer(w/2+radius*math.Cos(angle), h/2+radius*math.Sin(angle))
		clock.Advance(time.Second / 60)
		host.RunFrame()
	}

	if shot.err != nil {
		return shot.err
	}
	if !shot.done {
		return fmt.Errorf("capture did not run after %d frames", frames)
	}
	return nil
}
