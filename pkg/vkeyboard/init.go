package vkeyboard

import (
	"log/slog"

	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/i18n"
	"github.com/BrandonKowalski/vkeyboard/pkg/vkeyboard/internal"
)

// Init applies the process wide parts of opts: logging, caption language and
// the registry's default layout. Call it once before creating a controller.
func Init(opts Options, registry *LayoutRegistry) {
	if opts.LogDir != "" {
		internal.SetLogDir(opts.LogDir)
	}
	if opts.LogFilename != "" {
		internal.SetLogFilename(opts.LogFilename)
	}
	internal.SetRawLogLevel(opts.LogLevel)
	internal.SetInternalLogLevel(internal.ParseLevel(opts.LogLevel))

	if len(opts.MessageFiles) > 0 {
		if err := i18n.InitI18N(opts.MessageFiles); err != nil {
			internal.GetInternalLogger().Warn("Unable to load message files", "files", opts.MessageFiles, "error", err)
		}
	}

	if opts.Language != "" {
		if err := i18n.SetWithCode(opts.Language); err != nil {
			internal.GetInternalLogger().Warn("Unsupported caption language", "language", opts.Language, "error", err)
		}
	}

	if registry == nil {
		return
	}

	switch {
	case opts.DefaultLayout != "":
		registry.SetDefaultLayout(opts.DefaultLayout)
	case opts.Language != "":
		if name, ok := registry.LayoutForLanguage(opts.LanguageTag()); ok {
			registry.SetDefaultLayout(name)
		}
	}
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

func SetLogFilename(filename string) {
	internal.SetLogFilename(filename)
}

// SetLogDir sets the directory a relative log filename is created in.
func SetLogDir(dir string) {
	internal.SetLogDir(dir)
}

func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
