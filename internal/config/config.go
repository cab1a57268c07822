// Package config holds the server configuration and loads it from TOML or
// YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	// Host is the interface to listen on. Empty means all interfaces.
	Host string `toml:"host" yaml:"host"`
	// Port is the TCP port to listen on.
	Port int `toml:"port" yaml:"port"`
	// Root is the directory request paths are resolved against.
	Root string `toml:"root" yaml:"root"`
	// IndexFile is served for directories that contain it.
	IndexFile string `toml:"index_file" yaml:"index_file"`
	// HiddenPrefix marks entries left out of directory listings.
	// Empty lists everything.
	HiddenPrefix string `toml:"hidden_prefix" yaml:"hidden_prefix"`
	// ScriptSuffix marks files that are executed rather than served.
	ScriptSuffix string `toml:"script_suffix" yaml:"script_suffix"`
	// Interpreter is the command scripts are run with, e.g. ["python3", "-u"].
	// Empty executes scripts directly.
	Interpreter []string `toml:"interpreter" yaml:"interpreter"`
	// ScriptTimeout kills scripts running longer than this. Zero disables it.
	ScriptTimeout time.Duration `toml:"script_timeout" yaml:"script_timeout"`
	// LogLevel is a logrus level name.
	LogLevel string `toml:"log_level" yaml:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Host:         "",
		Port:         8080,
		Root:         ".",
		IndexFile:    "index.html",
		HiddenPrefix: ".",
		ScriptSuffix: ".py",
		Interpreter:  []string{"python"},
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load reads the file at path on top of Default. The format is chosen by
// extension: .toml, .yaml or .yml. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("parse %s: unknown keys %v", path, undecoded)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves the defaults in place.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Root == "" {
		return fmt.Errorf("root directory is required")
	}
	if c.IndexFile == "" || strings.ContainsRune(c.IndexFile, filepath.Separator) {
		return fmt.Errorf("invalid index file %q", c.IndexFile)
	}
	if c.ScriptSuffix == "" {
		return fmt.Errorf("script suffix is required")
	}
	if c.ScriptTimeout < 0 {
		return fmt.Errorf("negative script timeout %s", c.ScriptTimeout)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address, host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
