package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/minikomi/keysynth/internal/keyboard"
	"github.com/minikomi/keysynth/internal/layout"
	"github.com/minikomi/keysynth/internal/logging"
	"github.com/minikomi/keysynth/internal/midiout"
	"github.com/minikomi/keysynth/internal/synth"
	driver "github.com/minikomi/rtmididrv"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var winTitle string = "🎹"

const (
	fontSize     = 12
	frameTimeout = 16 // ms
)

func listPorts() int {
	drv, err := driver.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open MIDI driver: %s\n", err)
		return 1
	}
	defer drv.Close()

	ins, err := drv.Ins()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list MIDI inputs: %s\n", err)
		return 1
	}
	outs, err := drv.Outs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list MIDI outputs: %s\n", err)
		return 1
	}
	midiout.ListPorts(os.Stdout, ins, outs)
	return 0
}

func run() int {
	flag.Parse()

	if logFile := logging.Setup(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if flag.Arg(0) == "list" {
		return listPorts()
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		return 1
	}

	pl := &player{}

	if cfg.Enabled {
		engine, err := synth.NewEngine(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create synth: %s\n", err)
			return 1
		}
		out := synth.NewOutput(engine)
		if err := out.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open audio output: %s\n", err)
			return 3
		}
		defer out.Stop()
		pl.engine = engine
		log.Printf("synth: %v wave at %d Hz, volume %.2f", cfg.Waveform, cfg.SampleRate, cfg.MasterVolume)
	}

	if *midiOutFlag >= 0 {
		drv, err := driver.New()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open MIDI driver: %s\n", err)
			return 4
		}
		defer drv.Close()

		outs, err := drv.Outs()
		if err != nil || *midiOutFlag >= len(outs) {
			fmt.Fprintf(os.Stderr, "No MIDI output port %d\n", *midiOutFlag)
			return 4
		}
		out := outs[*midiOutFlag]
		if err := out.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open MIDI output %s: %s\n", out, err)
			return 4
		}
		defer out.Close()
		pl.mirror = midiout.ToPort(out)
		defer pl.close()
		log.Printf("midi: mirroring to %s", out)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize SDL: %s\n", err)
		return 2
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(winTitle, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		layout.Width, layout.Height, sdl.WINDOW_SHOWN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create window: %s\n", err)
		return 2
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create renderer: %s\n", err)
		return 2
	}
	defer renderer.Destroy()

	var font *ttf.Font
	if *fontFlag != "" {
		if err := ttf.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize TTF: %s\n", err)
			return 2
		}
		defer ttf.Quit()
		if font, err = ttf.OpenFont(*fontFlag, fontSize); err != nil {
			log.Printf("font %s: %v, octave labels disabled", *fontFlag, err)
			font = nil
		} else {
			defer font.Close()
		}
	}

	state := &keyboy{kb: keyboard.New(), pl: pl}
	state.kb.SetOctave(*octaveFlag)
	defer state.releaseAll()

	Draw(renderer, font, state.kb, state.pressed)

	running := true
	for running {
		dirty := false
		for event := sdl.WaitEventTimeout(frameTimeout); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.KeyboardEvent:
				if ev.Keysym.Sym == sdl.K_ESCAPE {
					running = false
					break
				}
				dirty = state.HandleKeyEvent(ev) || dirty
			case *sdl.MouseButtonEvent:
				dirty = state.HandleMouseEvent(ev) || dirty
			case *sdl.WindowEvent:
				if ev.Event == sdl.WINDOWEVENT_FOCUS_LOST {
					state.releaseAll()
					dirty = true
				}
			case *sdl.QuitEvent:
				log.Println("quit")
				running = false
			}
		}
		if dirty {
			Draw(renderer, font, state.kb, state.pressed)
		}
	}
	return 0
}

func main() {
	os.Exit(run())
}
