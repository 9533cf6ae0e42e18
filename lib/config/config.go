// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "STRBUF_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Capacity limits for buffers created from the command line.
const (
	// MaxBufferCapacity is the largest capacity the config may allow.
	// It matches the largest inline storage the stringref package
	// declares.
	MaxBufferCapacity = 1024

	// minProductionMemory is the argon2 memory floor, in KiB, applied
	// when production does not set its own.
	minProductionMemory = 64 * 1024
)

// Config is the master configuration for strbuf.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	Buffers     BuffersConfig     `yaml:"buffers"`
	Passcode    PasscodeConfig    `yaml:"passcode"`
	Fingerprint FingerprintConfig `yaml:"fingerprint"`
	Paths       PathsConfig       `yaml:"paths"`

	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Buffers  *BuffersConfig  `yaml:"buffers,omitempty"`
	Passcode *PasscodeConfig `yaml:"passcode,omitempty"`
	Paths    *PathsConfig    `yaml:"paths,omitempty"`
}

// BuffersConfig bounds the buffers the CLI allocates.
type BuffersConfig struct {
	// DefaultCapacity is used when --capacity is not given.
	// Default: 64
	DefaultCapacity int `yaml:"default_capacity"`

	// MaxCapacity rejects larger --capacity values.
	// Default: 1024
	MaxCapacity int `yaml:"max_capacity"`
}

// PasscodeConfig holds the stored passcode digest and the argon2id
// parameters used to derive it.
type PasscodeConfig struct {
	// Digest is the hex-encoded argon2id output for the accepted PIN.
	// Empty means no passcode is configured.
	Digest string `yaml:"digest"`

	// Salt is the hex-encoded salt the digest was derived with.
	Salt string `yaml:"salt"`

	// Time is the argon2id iteration count.
	// Default: 1
	Time uint32 `yaml:"time"`

	// MemoryKiB is the argon2id memory cost in KiB.
	// Default: 65536 (64 MiB)
	MemoryKiB uint32 `yaml:"memory_kib"`

	// Threads is the argon2id parallelism.
	// Default: 4
	Threads uint8 `yaml:"threads"`

	// MaxLength is the longest PIN accepted. The PIN buffer is
	// allocated with this capacity.
	// Default: 16
	MaxLength int `yaml:"max_length"`
}

// FingerprintConfig configures keyed content fingerprints.
type FingerprintConfig struct {
	// Key is a hex-encoded 32-byte BLAKE3 key. Empty means a random
	// key per process, which makes fingerprints comparable only within
	// one run.
	Key string `yaml:"key"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// State holds strbuf's own files, such as the default age identity
	// used for sealed transcripts.
	// Default: ~/.local/state/strbuf
	State string `yaml:"state"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Environment: Development,
		Buffers: BuffersConfig{
			DefaultCapacity: 64,
			MaxCapacity:     MaxBufferCapacity,
		},
		Passcode: PasscodeConfig{
			Time:      1,
			MemoryKiB: minProductionMemory,
			Threads:   4,
			MaxLength: 16,
		},
		Paths: PathsConfig{
			State: filepath.Join(homeDir, ".local", "state", "strbuf"),
		},
	}
}

// Load loads configuration from the STRBUF_CONFIG environment variable.
// There are no fallbacks: if STRBUF_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your strbuf.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if c.Passcode.MemoryKiB < minProductionMemory &&
			(overrides == nil || overrides.Passcode == nil || overrides.Passcode.MemoryKiB == 0) {
			c.Passcode.MemoryKiB = minProductionMemory
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Buffers != nil {
		if overrides.Buffers.DefaultCapacity != 0 {
			c.Buffers.DefaultCapacity = overrides.Buffers.DefaultCapacity
		}
		if overrides.Buffers.MaxCapacity != 0 {
			c.Buffers.MaxCapacity = overrides.Buffers.MaxCapacity
		}
	}

	if overrides.Passcode != nil {
		if overrides.Passcode.Digest != "" {
			c.Passcode.Digest = overrides.Passcode.Digest
		}
		if overrides.Passcode.Salt != "" {
			c.Passcode.Salt = overrides.Passcode.Salt
		}
		if overrides.Passcode.Time != 0 {
			c.Passcode.Time = overrides.Passcode.Time
		}
		if overrides.Passcode.MemoryKiB != 0 {
			c.Passcode.MemoryKiB = overrides.Passcode.MemoryKiB
		}
		if overrides.Passcode.Threads != 0 {
			c.Passcode.Threads = overrides.Passcode.Threads
		}
		if overrides.Passcode.MaxLength != 0 {
			c.Passcode.MaxLength = overrides.Passcode.MaxLength
		}
	}

	if overrides.Paths != nil && overrides.Paths.State != "" {
		c.Paths.State = overrides.Paths.State
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Paths.State = expandVars(c.Paths.State, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Provided
// vars take precedence over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Buffers.MaxCapacity < 1 || c.Buffers.MaxCapacity > MaxBufferCapacity {
		errs = append(errs, fmt.Errorf("buffers.max_capacity must be between 1 and %d", MaxBufferCapacity))
	}
	if c.Buffers.DefaultCapacity < 1 || c.Buffers.DefaultCapacity > c.Buffers.MaxCapacity {
		errs = append(errs, fmt.Errorf("buffers.default_capacity must be between 1 and buffers.max_capacity"))
	}

	if c.Passcode.Time == 0 {
		errs = append(errs, fmt.Errorf("passcode.time must be at least 1"))
	}
	if c.Passcode.MemoryKiB < 8*uint32(c.Passcode.Threads) {
		errs = append(errs, fmt.Errorf("passcode.memory_kib must be at least 8 * passcode.threads"))
	}
	if c.Passcode.Threads == 0 {
		errs = append(errs, fmt.Errorf("passcode.threads must be at least 1"))
	}
	if c.Passcode.MaxLength < 1 || c.Passcode.MaxLength > 64 {
		errs = append(errs, fmt.Errorf("passcode.max_length must be between 1 and 64"))
	}
	if (c.Passcode.Digest == "") != (c.Passcode.Salt == "") {
		errs = append(errs, fmt.Errorf("passcode.digest and passcode.salt must be set together"))
	}
	if err := validateHex("passcode.digest", c.Passcode.Digest, 32); err != nil {
		errs = append(errs, err)
	}
	if err := validateHex("passcode.salt", c.Passcode.Salt, 0); err != nil {
		errs = append(errs, err)
	}
	if err := validateHex("fingerprint.key", c.Fingerprint.Key, 32); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// HasPasscode reports whether a passcode digest is configured.
func (c *Config) HasPasscode() bool {
	return c.Passcode.Digest != ""
}

// IdentityFile is the name of the default age identity under
// paths.state.
const IdentityFile = "identity.txt"

// IdentityPath returns where "strbuf keygen" writes, and "strbuf
// replay" looks for, the age identity when no path is given.
func (c *Config) IdentityPath() string {
	return filepath.Join(c.Paths.State, IdentityFile)
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	if c.Paths.State == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.State, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", c.Paths.State, err)
	}
	return nil
}

// validateHex checks an optional hex field. A size of zero accepts any
// non-empty length.
func validateHex(field, value string, size int) error {
	if value == "" {
		return nil
	}
	decoded, err := hex.DecodeString(value)
	if err != nil {
		return fmt.Errorf("%s is not valid hex: %w", field, err)
	}
	if size != 0 && len(decoded) != size {
		return fmt.Errorf("%s must decode to %d bytes, got %d", field, size, len(decoded))
	}
	return nil
}
