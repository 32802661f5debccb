package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/asciicanvas/internal/config/loader"
)

// Config holds the resolved asciicanvas settings.
type Config struct {
	Canvas  CanvasConfig
	History HistoryConfig
	Logging LoggingConfig
	REPL    REPLConfig
	Script  ScriptConfig
}

// CanvasConfig bounds the size of canvases the C command may create.
type CanvasConfig struct {
	MaxWidth  int
	MaxHeight int
}

// HistoryConfig configures the undo history.
type HistoryConfig struct {
	Capacity int
}

// LoggingConfig configures the diagnostic logger.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

// REPLConfig configures the interactive loop.
type REPLConfig struct {
	Prompt string
}

// ScriptConfig configures the Lua script runner.
type ScriptConfig struct {
	Timeout time.Duration
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Canvas:  CanvasConfig{MaxWidth: 1000, MaxHeight: 1000},
		History: HistoryConfig{Capacity: 50},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
		REPL:    REPLConfig{Prompt: "enter command: "},
		Script:  ScriptConfig{Timeout: 5 * time.Second},
	}
}

// Validate checks every setting and returns all failures joined.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.MaxWidth < 1 {
		errs = append(errs, &ValidationError{Path: "canvas.maxWidth", Message: "must be positive", Value: c.Canvas.MaxWidth})
	}
	if c.Canvas.MaxHeight < 1 {
		errs = append(errs, &ValidationError{Path: "canvas.maxHeight", Message: "must be positive", Value: c.Canvas.MaxHeight})
	}
	if c.History.Capacity < 1 {
		errs = append(errs, &ValidationError{Path: "history.capacity", Message: "must be positive", Value: c.History.Capacity})
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, &ValidationError{Path: "logging.level", Message: "must be one of debug, info, warn, error", Value: c.Logging.Level})
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, &ValidationError{Path: "logging.format", Message: "must be text or json", Value: c.Logging.Format})
	}
	if c.Script.Timeout <= 0 {
		errs = append(errs, &ValidationError{Path: "script.timeout", Message: "must be positive", Value: c.Script.Timeout})
	}
	return errors.Join(errs...)
}

// options configures Load.
type options struct {
	fs      loader.FileSystem
	path    string
	environ []string
	useEnv  bool
}

// Option configures Load.
type Option func(*options)

// WithFile sets the config file. A missing file is an error.
func WithFile(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithFileSystem sets the file system used to read the config file.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithEnviron reads environment settings from env instead of the process.
func WithEnviron(env []string) Option {
	return func(o *options) {
		o.environ = env
	}
}

// WithoutEnv disables the environment layer.
func WithoutEnv() Option {
	return func(o *options) {
		o.useEnv = false
	}
}

// Load resolves defaults, the optional config file and the environment
// into a validated Config.
func Load(opts ...Option) (Config, error) {
	o := options{fs: loader.DefaultFS(), useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	merged := make(map[string]any)

	if o.path != "" {
		if _, err := o.fs.Stat(o.path); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, o.path)
		}
		fl, err := loader.ForPath(o.fs, o.path)
		if err != nil {
			return Config{}, err
		}
		data, err := fl.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	if o.useEnv {
		var env *loader.EnvLoader
		if o.environ != nil {
			env = loader.NewEnvLoaderFrom(loader.DefaultEnvPrefix, o.environ)
		} else {
			env = loader.NewEnvLoader(loader.DefaultEnvPrefix)
		}
		data, err := env.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromMap applies a merged settings map on top of Default.
// Unknown keys are ignored.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	d := decoder{data: m}

	d.int("canvas.maxWidth", &cfg.Canvas.MaxWidth)
	d.int("canvas.maxHeight", &cfg.Canvas.MaxHeight)
	d.int("history.capacity", &cfg.History.Capacity)
	d.string("logging.level", &cfg.Logging.Level)
	d.string("logging.format", &cfg.Logging.Format)
	d.string("repl.prompt", &cfg.REPL.Prompt)
	d.duration("script.timeout", &cfg.Script.Timeout)

	return cfg, errors.Join(d.errs...)
}
