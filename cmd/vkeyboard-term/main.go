// Command vkeyboard-term is a terminal demo of the on-screen keyboard. Click a
// field to bring the keyboard up, click keys to type, Esc to dismiss.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/device"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/layouts"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/termhost"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
	"github.com/gdamore/tcell/v2"
)

var version = "dev"

type flags struct {
	configPath string
	layout     string
	fields     int
	touch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	opts, err := vkeyboard.LoadOptions(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.layout != "" {
		opts.DefaultLayout = f.layout
	}
	if opts.LogFilename == "" {
		// the screen owns stdout
		opts.LogFilename = "vkeyboard-term.log"
	}
	if opts.LogDir != "" {
		vkeyboard.SetLogDir(opts.LogDir)
	}
	vkeyboard.SetLogFilename(opts.LogFilename)
	defer vkeyboard.Close()

	logger := vkeyboard.GetLogger()

	registry := vkeyboard.NewLayoutRegistry()
	if err := registry.LoadBuiltins(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	vkeyboard.Init(opts, registry)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := tick.NewLoop(0)

	var app *termhost.App
	host := termhost.NewHost(screen, loop, registry, termhost.WithRedraw(func() {
		if app != nil {
			app.Draw()
		}
	}))

	_, height := screen.Size()
	controller := vkeyboard.NewVisibilityController(registry, host, loop,
		vkeyboard.WithAnimationOptions(opts.Animation()),
		vkeyboard.WithTouchPrimary(f.touch || device.TouchPrimary()),
		vkeyboard.WithLayoutChangeHook(func(change vkeyboard.LayoutChange) {
			logger.Info("Keyboard layout changed", "layout", change.Name, "known", change.Known)
		}),
	)
	defer controller.Close()

	pane := termhost.NewPane(max(height-8, 1))
	app = termhost.NewApp(screen, pane, host, controller)
	defer app.Close()

	for i := 0; i < max(f.fields, 1); i++ {
		field := pane.AddField(fmt.Sprintf("Field %d", i+1), i%4 == 3)
		field.OnSubmit = func(value string) {
			logger.Info("Field submitted", "field", field.Label, "value", value)
		}
		app.Bind(field, "", vkeyboard.BindOptions{ShowOnTouch: opts.ShowOnTouch})
	}

	if len(opts.LayoutDirs) > 0 {
		watcher, err := layouts.NewWatcher(opts.LayoutDirs, 0)
		if err != nil {
			logger.Error("Unable to watch layout directories", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Error("Unable to watch layout directories", "error", err)
		} else {
			defer watcher.Stop()
			go registry.Follow(watcher, loop.Dispatch)
		}
	}

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			loop.Dispatch(func() {
				if app.HandleEvent(ev) {
					stop()
					return
				}
				app.Draw()
			})
		}
	}()

	loop.Dispatch(app.Draw)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() flags {
	var f flags
	var showVersion bool

	flag.StringVar(&f.configPath, "config", "", "Path to a TOML options file")
	flag.StringVar(&f.configPath, "c", "", "Path to a TOML options file (shorthand)")
	flag.StringVar(&f.layout, "layout", "", "Layout to start with")
	flag.IntVar(&f.fields, "fields", 8, "Number of demo fields")
	flag.BoolVar(&f.touch, "touch", false, "Treat the device as touch-primary")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vkeyboard-term - on-screen keyboard terminal demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vkeyboard-term [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s, %s, %s, %s\n",
			vkeyboard.EnvLayout, vkeyboard.EnvLanguage, vkeyboard.EnvShowOnTouch, vkeyboard.EnvLogLevel)
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("vkeyboard-term %s\n", version)
		os.Exit(0)
	}
	return f
}
