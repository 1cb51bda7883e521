// Package config loads the solver settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/bent101/wordle-ranker/pairwise"
)

var ErrInvalid = errors.New("invalid config")

const DefaultPath = "wordle-ranker.yaml"

type Config struct {
	HardMode    bool   `yaml:"hard_mode"`
	OpeningWord string `yaml:"opening_word"`

	// Dictionary is a "word count" file; empty uses the embedded list.
	Dictionary string `yaml:"dictionary"`
	// MaxDictionarySize bounds the pairwise cache, which needs n^2 bytes.
	MaxDictionarySize int `yaml:"max_dictionary_size"`

	Workers   int    `yaml:"workers"`
	CacheFile string `yaml:"cache_file"`

	Logging LoggingConfig `yaml:"logging"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		OpeningWord:       "tares",
		MaxDictionarySize: 6000,
		Workers:           1,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("WORDLE_HARD_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: WORDLE_HARD_MODE=%q", ErrInvalid, v)
		}
		c.HardMode = b
	}
	if v := os.Getenv("WORDLE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: WORDLE_WORKERS=%q", ErrInvalid, v)
		}
		c.Workers = n
	}
	if v := os.Getenv("WORDLE_DICTIONARY"); v != "" {
		c.Dictionary = v
	}
	if v := os.Getenv("WORDLE_OPENING_WORD"); v != "" {
		c.OpeningWord = v
	}
	if v := os.Getenv("WORDLE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

var validLevels = []string{"debug", "info", "warn", "error"}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if c.MaxDictionarySize < 1 {
		return fmt.Errorf("%w: max_dictionary_size must be positive, got %d", ErrInvalid, c.MaxDictionarySize)
	}
	if len(c.OpeningWord) != 5 {
		return fmt.Errorf("%w: opening_word %q is not 5 letters", ErrInvalid, c.OpeningWord)
	}

	validLevel := false
	for _, l := range validLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("%w: logging level %q (valid: %v)", ErrInvalid, c.Logging.Level, validLevels)
	}
	return nil
}

// CheckDictionarySize reports an error when a dictionary of n words would
// need a pairwise cache above the configured bound.
func (c *Config) CheckDictionarySize(n int) error {
	if n > c.MaxDictionarySize {
		return fmt.Errorf("%w: dictionary has %d words, max_dictionary_size is %d (cache would need %d bytes)",
			ErrInvalid, n, c.MaxDictionarySize, pairwise.Footprint(n))
	}
	return nil
}
