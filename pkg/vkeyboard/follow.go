package vkeyboard

import (
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/layouts"
)

// Follow registers the layouts of every file w reports until its Loaded
// channel closes. dispatch moves the registration onto the caller's UI
// goroutine so change notifications arrive there; nil registers in place.
// Follow blocks, so run it on its own goroutine.
func (r *LayoutRegistry) Follow(w *layouts.Watcher, dispatch func(func())) {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	for loaded := range w.Loaded() {
		if loaded.Err != nil {
			r.logger.Warn("Unable to load layout file", "path", loaded.Path, "error", loaded.Err)
			continue
		}
		dispatch(func() {
			if err := r.AddTables(loaded.Tables); err != nil {
				r.logger.Warn("Layout file partially loaded", "path", loaded.Path, "error", err)
			}
			r.logger.Debug("Layout file loaded", "path", loaded.Path, "layouts", len(loaded.Tables))
		})
	}
}
