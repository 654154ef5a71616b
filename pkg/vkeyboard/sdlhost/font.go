package sdlhost

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/ttf"
)

// DefaultFontPaths are tried when no font is configured.
var DefaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
}

// LoadFont opens the first of paths that loads. ttf.Init must already have run.
func LoadFont(paths []string, size int) (*ttf.Font, error) {
	var errs []error
	for _, path := range paths {
		if path == "" {
			continue
		}
		font, err := ttf.OpenFont(path, size)
		if err == nil {
			return font, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", path, err))
	}
	if len(errs) == 0 {
		return nil, errors.New("no font configured")
	}
	return nil, errors.Join(errs...)
}
