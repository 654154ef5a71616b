package vkeyboard

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

const (
	EnvLayout      = "VKEYBOARD_LAYOUT"
	EnvLogLevel    = "VKEYBOARD_LOG_LEVEL"
	EnvShowOnTouch = "VKEYBOARD_SHOW_ON_TOUCH"
	EnvLanguage    = "VKEYBOARD_LANG"
)

// Duration is a time.Duration written as a string such as "100ms" in TOML.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Options configures a keyboard process.
type Options struct {
	// DefaultLayout is selected at startup. Empty keeps the registry default.
	DefaultLayout string `toml:"default_layout"`
	// Language picks the caption language and, without DefaultLayout, the layout.
	Language string `toml:"language"`
	// ShowOnTouch is the override applied to bindings on touch-primary devices.
	ShowOnTouch string `toml:"show_on_touch"`
	// LayoutDirs are watched for additional layout files.
	LayoutDirs []string `toml:"layout_dirs"`

	HideDelay       Duration `toml:"hide_delay"`
	ScrollInterval  Duration `toml:"scroll_interval"`
	ScrollStep      float64  `toml:"scroll_step"`
	ScrollThreshold float64  `toml:"scroll_threshold"`

	// MessageFiles are go-i18n message files loaded on top of the embedded captions.
	MessageFiles []string `toml:"message_files"`

	LogDir      string `toml:"log_dir"`
	LogFilename string `toml:"log_filename"`
	LogLevel    string `toml:"log_level"`
}

// DefaultOptions returns the options used when no file is given.
func DefaultOptions() Options {
	anim := DefaultAnimationOptions()
	return Options{
		HideDelay:       Duration(anim.HideDelay),
		ScrollInterval:  Duration(anim.ScrollInterval),
		ScrollStep:      anim.ScrollStep,
		ScrollThreshold: anim.ScrollThreshold,
		LogLevel:        "info",
	}
}

// LoadOptions reads options from a TOML file on top of the defaults, then
// applies environment overrides. An empty path skips the file.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	if path != "" {
		md, err := toml.DecodeFile(path, &opts)
		if err != nil {
			return opts, fmt.Errorf("load options %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return opts, fmt.Errorf("%w: unknown keys %s", ErrInvalidOptions, strings.Join(keys, ", "))
		}
	}

	opts.ApplyEnv(os.LookupEnv)

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// ApplyEnv overrides fields from the VKEYBOARD_* environment variables.
func (o *Options) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvLayout); ok {
		o.DefaultLayout = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		o.LogLevel = v
	}
	if v, ok := lookup(EnvShowOnTouch); ok {
		o.ShowOnTouch = v
	}
	if v, ok := lookup(EnvLanguage); ok {
		o.Language = v
	}
}

// Validate checks the timing values and the language tag.
func (o Options) Validate() error {
	var errs []error
	if o.HideDelay < 0 {
		errs = append(errs, errors.New("hide_delay must not be negative"))
	}
	if o.ScrollInterval <= 0 {
		errs = append(errs, errors.New("scroll_interval must be positive"))
	}
	if o.ScrollStep <= 0 || o.ScrollStep > 1 {
		errs = append(errs, errors.New("scroll_step must be in (0, 1]"))
	}
	if o.ScrollThreshold <= 0 {
		errs = append(errs, errors.New("scroll_threshold must be positive"))
	}
	if o.Language != "" {
		if _, err := language.Parse(o.Language); err != nil {
			errs = append(errs, fmt.Errorf("language: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// Animation returns the scheduler timings.
func (o Options) Animation() AnimationOptions {
	return AnimationOptions{
		ScrollInterval:  time.Duration(o.ScrollInterval),
		ScrollStep:      o.ScrollStep,
		ScrollThreshold: o.ScrollThreshold,
		HideDelay:       time.Duration(o.HideDelay),
	}
}

// LanguageTag returns the configured language, or language.Und.
func (o Options) LanguageTag() language.Tag {
	tag, err := language.Parse(o.Language)
	if err != nil {
		return language.Und
	}
	return tag
}
