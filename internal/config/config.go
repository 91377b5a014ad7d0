package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultLogLevel     = "info"
	DefaultDatabaseName = "typestore"
)

// Config represents the settings used to start typestore.
type Config struct {
	Log      Log      `toml:"log"`
	Database Database `toml:"database"`
}

// Log configures the console handler and the optional Seq sink.
type Log struct {
	Level     string `toml:"level"`
	SeqURL    string `toml:"seq-url"`
	AddSource bool   `toml:"add-source"`
}

// Database is the seed tree built at startup.
type Database struct {
	Name  string `toml:"name"`
	Types []Type `toml:"types"`
}

type Type struct {
	Name   string            `toml:"name"`
	Info   map[string]string `toml:"info"`
	Tables []Table           `toml:"tables"`
}

type Table struct {
	Name   string            `toml:"name"`
	Origin string            `toml:"origin"`
	Config map[string]string `toml:"config"`
	Groups []Group           `toml:"groups"`
}

type Group struct {
	Name    string          `toml:"name"`
	Columns []Column        `toml:"columns"`
	Rows    [][]interface{} `toml:"rows"`
}

type Column struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

// New creates a Config with the default settings.
func New() *Config {
	return &Config{
		Log: Log{
			Level: DefaultLogLevel,
		},
		Database: Database{
			Name: DefaultDatabaseName,
		},
	}
}

// Decode reads a TOML document into c. Properties not set in the document
// keep their current value. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return err
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		if isRowsKey(k) {
			continue
		}
		unknown = append(unknown, k.String())
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown config keys: %s", strings.Join(unknown, ", "))
	}
	return c.Validate()
}

// rowsPath is where free-form row data lives. Everything below it decodes
// into interface{} values, so the decoder may list it as undecoded.
var rowsPath = toml.Key{"database", "types", "tables", "groups", "rows"}

func isRowsKey(k toml.Key) bool {
	if len(k) < len(rowsPath) {
		return false
	}
	for i, part := range rowsPath {
		if k[i] != part {
			return false
		}
	}
	return true
}

// Validate checks values that decoding alone cannot.
func (c *Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name required")
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error", or offsets
// such as "info+2").
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Load reads the configuration file at path on top of the defaults.
func Load(path string) (*Config, error) {
	c := New()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := c.Decode(f); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}
