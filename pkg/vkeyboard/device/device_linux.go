//go:build linux

package device

import (
	"slices"

	evdev "github.com/holoplot/go-evdev"
)

// Touchscreens lists the evdev devices that report multi-touch positions
// directly on a display.
func Touchscreens() ([]Touchscreen, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}

	var screens []Touchscreen
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		if isTouchscreen(dev) {
			screens = append(screens, Touchscreen{Name: p.Name, Path: p.Path})
		}
		dev.Close()
	}
	return screens, nil
}

func isTouchscreen(dev *evdev.InputDevice) bool {
	if !slices.Contains(dev.Properties(), evdev.INPUT_PROP_DIRECT) {
		return false
	}
	return slices.Contains(dev.CapableEvents(evdev.EV_ABS), evdev.ABS_MT_POSITION_X)
}

// TouchPrimary reports whether a touchscreen is attached. Devices that
// cannot be enumerated count as not touch-primary.
func TouchPrimary() bool {
	screens, err := Touchscreens()
	return err == nil && len(screens) > 0
}
