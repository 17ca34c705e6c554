package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/viant/protoscope/extractor"
)

const (
	patternLiteral = "literal"
	patternRegexp  = "regexp"
	patternGlob    = "glob"

	outputYAML  = "yaml"
	outputJSON  = "json"
	outputTable = "table"
)

// Config holds extraction settings
type Config struct {
	Root      string   `mapstructure:"root"`
	Files     []string `mapstructure:"files"`
	Include   []string `mapstructure:"include"`
	Exclude   []string `mapstructure:"exclude"`
	Patterns  string   `mapstructure:"patterns"`
	Output    string   `mapstructure:"output"`
	CacheSize int      `mapstructure:"cache_size"`
}

// DefaultConfig returns the configuration used when no file, variable or flag sets a key
func DefaultConfig() *Config {
	return &Config{
		Patterns:  patternLiteral,
		Output:    outputYAML,
		CacheSize: 256,
	}
}

// loadConfig resolves settings with priority flags, PROTOSCOPE_* variables, config file, defaults.
// Without an explicit file protoscope.yaml is looked up in the working directory, its absence is not an error.
func loadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("protoscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("PROTOSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("root", defaults.Root)
	v.SetDefault("files", defaults.Files)
	v.SetDefault("include", defaults.Include)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("patterns", defaults.Patterns)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("cache_size", defaults.CacheSize)

	if flags != nil {
		for _, name := range []string{"root", "include", "exclude", "patterns", "output", "cache-size"} {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flag); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Patterns {
	case patternLiteral, patternRegexp, patternGlob:
	default:
		return fmt.Errorf("unsupported patterns %q, expected %s, %s or %s", c.Patterns, patternLiteral, patternRegexp, patternGlob)
	}
	switch c.Output {
	case outputYAML, outputJSON, outputTable:
	default:
		return fmt.Errorf("unsupported output %q, expected %s, %s or %s", c.Output, outputYAML, outputJSON, outputTable)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative: %d", c.CacheSize)
	}
	return nil
}

// IncludeExpression returns the include filter, all types when no include is configured
func (c *Config) IncludeExpression() (extractor.MatchExpression, error) {
	return c.expression(c.Include, extractor.AllTypes())
}

// ExcludeExpression returns the exclude filter, no types when no exclude is configured
func (c *Config) ExcludeExpression() (extractor.MatchExpression, error) {
	return c.expression(c.Exclude, extractor.NoTypes())
}

func (c *Config) expression(values []string, empty extractor.MatchExpression) (extractor.MatchExpression, error) {
	if len(values) == 0 {
		return empty, nil
	}
	var patterns []extractor.Pattern
	var err error
	switch c.Patterns {
	case patternRegexp:
		patterns, err = extractor.Regexp(values...)
	case patternGlob:
		patterns, err = extractor.Glob(values...)
	default:
		return extractor.Literals(values...), nil
	}
	if err != nil {
		return extractor.MatchExpression{}, err
	}
	return extractor.Patterns(patterns...), nil
}
