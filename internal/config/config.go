// Package config handles the configuration directory, the optional
// config.yaml file and runtime flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"todo/internal/service"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the optional settings filename.
	ConfigFile = "config.yaml"

	// LogFile receives debug logs while the terminal UI owns the screen.
	LogFile = "debug.log"

	// DefaultListen is the HTTP binding address used by serve.
	DefaultListen = ":8080"

	// DefaultShutdownTimeout bounds graceful HTTP shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// File mirrors config.yaml.
type File struct {
	Listen          string        `yaml:"listen"`
	IDPolicy        string        `yaml:"id_policy"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Starter         []StarterTask `yaml:"starter"`
}

// StarterTask is one entry of the configured starter set.
type StarterTask struct {
	ID        int    `yaml:"id"`
	Title     string `yaml:"title"`
	Completed bool   `yaml:"completed"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// File is the decoded config.yaml, or defaults when absent.
	File File
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// Load creates a Config for configDir and reads config.yaml if present.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cfg.Path())
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if f.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must not be negative")
	}
	if f.Starter != nil {
		if err := service.ValidateSeed(toTasks(f.Starter)); err != nil {
			return fmt.Errorf("starter: %w", err)
		}
	}
	c.File = f
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to config.yaml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the path to the debug log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// Listen returns the HTTP address, falling back to DefaultListen.
func (c *Config) Listen() string {
	if c.File.Listen == "" {
		return DefaultListen
	}
	return c.File.Listen
}

// ShutdownTimeout returns the graceful shutdown bound.
func (c *Config) ShutdownTimeout() time.Duration {
	if c.File.ShutdownTimeout == 0 {
		return DefaultShutdownTimeout
	}
	return c.File.ShutdownTimeout
}

// StarterTasks returns the configured starter set, or the built-in one
// when config.yaml does not define any.
func (c *Config) StarterTasks() []service.Task {
	if c.File.Starter == nil {
		return service.StarterTasks()
	}
	return toTasks(c.File.Starter)
}

func toTasks(in []StarterTask) []service.Task {
	out := make([]service.Task, len(in))
	for i, t := range in {
		out[i] = service.Task{ID: t.ID, Title: t.Title, Completed: t.Completed}
	}
	return out
}
