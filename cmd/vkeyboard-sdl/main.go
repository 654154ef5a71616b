// Command vkeyboard-sdl is an SDL2 demo of the on-screen keyboard for
// handhelds and framebuffer devices.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/device"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/layouts"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/sdlhost"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/tick"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var version = "dev"

type flags struct {
	configPath    string
	layout        string
	font          string
	fontSize      int
	theme         string
	width, height int
	touch         bool
}

func init() {
	// SDL rendering must stay on the main thread
	runtime.LockOSThread()
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
	if opts.LogDir != "" {
		vkeyboard.SetLogDir(opts.LogDir)
	}
	if opts.LogFilename != "" {
		vkeyboard.SetLogFilename(opts.LogFilename)
	}
	defer vkeyboard.Close()

	logger := vkeyboard.GetLogger()

	registry := vkeyboard.NewLayoutRegistry()
	if err := registry.LoadBuiltins(); err != nil {
		logger.Error("Unable to load layouts", "error", err)
		return 1
	}
	vkeyboard.Init(opts, registry)

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_GAMECONTROLLER); err != nil {
		logger.Error("Failed to initialize SDL", "error", err)
		return 1
	}
	defer sdl.Quit()

	if err := ttf.Init(); err != nil {
		logger.Error("Failed to initialize SDL_ttf", "error", err)
		return 1
	}
	defer ttf.Quit()

	width, height := int32(f.width), int32(f.height)
	window, err := sdl.CreateWindow("vkeyboard", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		logger.Error("Failed to create window", "error", err)
		return 1
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		logger.Error("Failed to create renderer", "error", err)
		return 1
	}
	defer renderer.Destroy()

	font, err := sdlhost.LoadFont(append([]string{f.font}, sdlhost.DefaultFontPaths...), f.fontSize)
	if err != nil {
		logger.Error("Failed to load font", "error", err)
		return 1
	}
	defer font.Close()

	theme := sdlhost.ThemeByName(f.theme)
	loop := tick.NewLoop(256)
	defer loop.Close()

	host := sdlhost.NewHost(loop, registry, width, height, sdlhost.WithTheme(theme))
	controller := vkeyboard.NewVisibilityController(registry, host, loop,
		vkeyboard.WithAnimationOptions(opts.Animation()),
		vkeyboard.WithTouchPrimary(f.touch || device.TouchPrimary()),
	)
	defer controller.Close()

	for _, gc := range sdlhost.OpenControllers(logger) {
		defer gc.Close()
	}

	mapping, err := sdlhost.LoadInputMapping()
	if err != nil {
		logger.Warn("Using the default input mapping", "error", err)
	}

	app := sdlhost.NewApp(host, controller, theme, mapping)
	defer app.Close()

	for i := range 3 {
		field := sdlhost.NewTextField(sdl.Rect{X: 40, Y: 40 + int32(i)*70, W: width - 80, H: 50}, false)
		field.OnSubmit = func(value string) {
			logger.Info("Field submitted", "field", i+1, "value", value)
		}
		app.AddField(field, "", vkeyboard.BindOptions{ShowOnTouch: opts.ShowOnTouch})
	}

	if len(opts.LayoutDirs) > 0 {
		watcher, err := layouts.NewWatcher(opts.LayoutDirs, 0)
		if err == nil {
			err = watcher.Start()
		}
		if err != nil {
			logger.Error("Unable to watch layout directories", "error", err)
		} else {
			defer watcher.Stop()
			go registry.Follow(watcher, loop.Dispatch)
		}
	}

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if app.HandleEvent(event) {
				return 0
			}
		}
		loop.RunPending()

		c := theme.PanelColor
		renderer.SetDrawColor(c.R/2, c.G/2, c.B/2, 255)
		renderer.Clear()
		app.Render(renderer, font)
		renderer.Present()

		sdl.Delay(16)
	}
}

func parseFlags() flags {
	var f flags
	var showVersion bool

	flag.StringVar(&f.configPath, "config", "", "Path to a TOML options file")
	flag.StringVar(&f.configPath, "c", "", "Path to a TOML options file (shorthand)")
	flag.StringVar(&f.layout, "layout", "", "Layout to start with")
	flag.StringVar(&f.font, "font", "", "Path to a TTF font")
	flag.IntVar(&f.fontSize, "font-size", 24, "Key caption font size")
	flag.StringVar(&f.theme, "theme", "default", "Color theme (default, cannoli, nextui)")
	flag.IntVar(&f.width, "width", 1024, "Window width")
	flag.IntVar(&f.height, "height", 768, "Window height")
	flag.BoolVar(&f.touch, "touch", false, "Treat the device as touch-primary")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vkeyboard-sdl - on-screen keyboard SDL demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vkeyboard-sdl [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("vkeyboard-sdl %s\n", version)
		os.Exit(0)
	}
	return f
}
