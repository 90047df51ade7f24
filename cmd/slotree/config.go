package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/feather-lang/slot"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SLOTREE_RENDER_FULL=true.
const EnvPrefix = "SLOTREE"

type (
	// Config is the effective slotree configuration.
	Config struct {
		Verbose bool         `mapstructure:"verbose"`
		Render  RenderConfig `mapstructure:"render"`
		REPL    REPLConfig   `mapstructure:"repl"`
	}

	// RenderConfig controls how trees are printed.
	RenderConfig struct {
		Full     bool `mapstructure:"full"`
		Markdown bool `mapstructure:"markdown"`
		Width    int  `mapstructure:"width"`
	}

	// REPLConfig controls the interactive session.
	REPLConfig struct {
		Prompt string `mapstructure:"prompt"`
	}

	// App carries what commands share: configuration, logger and output
	// streams.
	App struct {
		v       *viper.Viper
		cfgFile string
		cfg     Config
		logger  *log.Logger
		out     io.Writer
		errOut  io.Writer
	}
)

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{Width: 80},
		REPL:   REPLConfig{Prompt: "slotree> "},
	}
}

func newApp(out, errOut io.Writer) *App {
	return &App{
		v:   viper.New(),
		cfg: DefaultConfig(),
		logger: log.NewWithOptions(errOut, log.Options{
			Level:  log.InfoLevel,
			Prefix: "slotree",
		}),
		out:    out,
		errOut: errOut,
	}
}

// loadConfig merges defaults, the config file, SLOTREE_ environment
// variables and bound flags, then configures logging.
func (a *App) loadConfig() error {
	v := a.v
	d := DefaultConfig()
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("render.full", d.Render.Full)
	v.SetDefault("render.markdown", d.Render.Markdown)
	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("repl.prompt", d.REPL.Prompt)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.SetConfigName("slotree")
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "slotree"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	a.cfg = cfg

	if cfg.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	slot.SetLogger(a.logger)
	a.logger.Debug("Configuration loaded.", "file", v.ConfigFileUsed())
	return nil
}
