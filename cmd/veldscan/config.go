package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/apconduct/veld/incremental"
	"github.com/apconduct/veld/scanner"
)

type LimitsConfig struct {
	MaxDepth         int `mapstructure:"max_depth"`
	SnapshotCapacity int `mapstructure:"snapshot_capacity"`
}

type ScannerConfig struct {
	Layout   bool `mapstructure:"layout"`
	TabWidth int  `mapstructure:"tab_width"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Config holds veldscan settings.
type Config struct {
	Limits  LimitsConfig  `mapstructure:"limits"`
	Scanner ScannerConfig `mapstructure:"scanner"`
	Log     LogConfig     `mapstructure:"log"`
	Output  OutputConfig  `mapstructure:"output"`
}

func setDefaults(v *viper.Viper) {
	limits := scanner.DefaultLimits()
	v.SetDefault("limits.max_depth", limits.MaxDepth)
	v.SetDefault("limits.snapshot_capacity", limits.SnapshotCapacity)
	v.SetDefault("scanner.layout", false)
	v.SetDefault("scanner.tab_width", 8)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.compress", false)
	v.SetDefault("output.format", "text")
}

// loadConfig reads configuration file and VELDSCAN_* environment variables, then applies command line flags.
// A missing default configuration file is not an error, a missing explicit one is.
func loadConfig(opts *options) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("VELDSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
	} else {
		v.SetConfigName("veldscan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/veldscan")
	}

	e := v.ReadInConfig()
	if e != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.configFile != "" || !errors.As(e, &notFound) {
			return nil, fmt.Errorf("cannot read configuration: %w", e)
		}
	}

	if opts.setFlags["f"] {
		v.Set("output.format", opts.format)
	}
	if opts.setFlags["layout"] {
		v.Set("scanner.layout", opts.layout)
	}
	if opts.setFlags["tab"] {
		v.Set("scanner.tab_width", opts.tabWidth)
	}

	cfg := &Config{}
	e = v.Unmarshal(cfg)
	if e != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", e)
	}
	return cfg, cfg.check()
}

func (c *Config) check() error {
	if c.Limits.MaxDepth <= 0 || c.Limits.SnapshotCapacity <= 0 {
		return fmt.Errorf("limits must be positive, got max_depth=%d snapshot_capacity=%d",
			c.Limits.MaxDepth, c.Limits.SnapshotCapacity)
	}
	if c.Scanner.TabWidth <= 0 {
		return fmt.Errorf("tab width must be positive, got %d", c.Scanner.TabWidth)
	}
	return nil
}

func (c *Config) tokenizeOptions(log *zap.Logger) []incremental.Option {
	return []incremental.Option{
		incremental.WithLayout(c.Scanner.Layout),
		incremental.WithTabWidth(c.Scanner.TabWidth),
		incremental.WithLimits(scanner.Limits{
			MaxDepth:         c.Limits.MaxDepth,
			SnapshotCapacity: c.Limits.SnapshotCapacity,
		}),
		incremental.WithLogger(log),
	}
}
