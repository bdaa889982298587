package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/CVDpl/go-radix-trie/internal/common"
	"github.com/CVDpl/go-radix-trie/pkg/radix"
)

// Config holds all configuration for the command-line tools
type Config struct {
	Log  LogConfig  `mapstructure:"log"`
	Trie TrieConfig `mapstructure:"trie"`
	Load LoadConfig `mapstructure:"load"`
}

// LogConfig selects the logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// TrieConfig maps onto radix.Options
type TrieConfig struct {
	MaxNodes   int `mapstructure:"max_nodes"`
	MaxKeySize int `mapstructure:"max_key_size"`
}

// LoadConfig drives cmd/radixload
type LoadConfig struct {
	Keys       int           `mapstructure:"keys"`
	KeyLen     int           `mapstructure:"key_len"`
	Alphabet   string        `mapstructure:"alphabet"`
	Seed       int64         `mapstructure:"seed"`
	CheckEvery int           `mapstructure:"check_every"`
	Duration   time.Duration `mapstructure:"duration"`
	PprofAddr  string        `mapstructure:"pprof_addr"`
}

// Load loads configuration from file and RADIX_* environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("RADIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("trie.max_nodes", common.DefaultMaxNodes)
	v.SetDefault("trie.max_key_size", common.MaxKeySize)

	v.SetDefault("load.keys", 100_000)
	v.SetDefault("load.key_len", 12)
	v.SetDefault("load.alphabet", "abcdefghijklmnop")
	v.SetDefault("load.seed", 1)
	v.SetDefault("load.check_every", 10_000)
	v.SetDefault("load.duration", "0s")
	v.SetDefault("load.pprof_addr", "")
}

// Validate rejects values the tools cannot run with
func (c *Config) Validate() error {
	if _, ok := common.ParseLogLevel(c.Log.Level); !ok {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}
	if c.Trie.MaxNodes < 0 {
		return fmt.Errorf("invalid trie.max_nodes %d", c.Trie.MaxNodes)
	}
	if c.Trie.MaxKeySize < 0 || c.Trie.MaxKeySize > common.MaxKeySize {
		return fmt.Errorf("invalid trie.max_key_size %d", c.Trie.MaxKeySize)
	}
	if c.Load.KeyLen <= 0 || c.Load.Alphabet == "" {
		return fmt.Errorf("invalid load.key_len %d / load.alphabet %q", c.Load.KeyLen, c.Load.Alphabet)
	}
	return nil
}

// Logger builds the configured logger writing to w (stderr when nil)
func (c *Config) Logger(w io.Writer) radix.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, _ := common.ParseLogLevel(c.Log.Level)
	if c.Log.Format == "json" {
		return radix.NewDefaultLoggerTo(w, level)
	}
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(radix.ZerologLevel(level)).
		With().Timestamp().Logger()
	return radix.NewZerologLogger(zl)
}

// Options builds trie options using logger
func (c *Config) Options(logger radix.Logger) *radix.Options {
	return &radix.Options{
		Logger:     logger,
		MaxNodes:   c.Trie.MaxNodes,
		MaxKeySize: c.Trie.MaxKeySize,
	}
}
