package config_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	. "github.com/leengari/typestore/internal/config"
	"github.com/stretchr/testify/assert"
)

// Ensure that a configuration file can be decoded correctly.
func TestDecode(t *testing.T) {
	input := `
[log]
level = "debug"
seq-url = "http://localhost:5341"
add-source = true

[database]
name = "test"

[[database.types]]
name = "res"
info = { owner = "ops" }

[[database.types.tables]]
name = "restable"
origin = "restype"
config = { engine = "memory" }

[[database.types.tables.groups]]
name = "usertime"
columns = [
  { name = "time", type = "int32" },
  { name = "user", type = "text" },
]
rows = [
  [100, "alice"],
  [200, "bob"],
]
`

	config := New()
	err := config.Decode(bytes.NewBufferString(input))
	assert.NoError(t, err)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "http://localhost:5341", config.Log.SeqURL)
	assert.True(t, config.Log.AddSource)
	assert.Equal(t, "test", config.Database.Name)

	if assert.Len(t, config.Database.Types, 1) {
		typ := config.Database.Types[0]
		assert.Equal(t, "res", typ.Name)
		assert.Equal(t, map[string]string{"owner": "ops"}, typ.Info)
		if assert.Len(t, typ.Tables, 1) {
			table := typ.Tables[0]
			assert.Equal(t, "restype", table.Origin)
			assert.Equal(t, "memory", table.Config["engine"])
			if assert.Len(t, table.Groups, 1) {
				group := table.Groups[0]
				assert.Equal(t, []Column{{Name: "time", Type: "int32"}, {Name: "user", Type: "text"}}, group.Columns)
				assert.Equal(t, [][]interface{}{{int64(100), "alice"}, {int64(200), "bob"}}, group.Rows)
			}
		}
	}

	level, err := config.Log.SlogLevel()
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

// Ensure that unset properties keep their defaults.
func TestDecodeKeepsDefaults(t *testing.T) {
	config := New()
	err := config.Decode(bytes.NewBufferString(`[log]
add-source = true
`))
	assert.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, config.Log.Level)
	assert.Equal(t, DefaultDatabaseName, config.Database.Name)
}

// Ensure that a badly formatted config file returns an error.
func TestDecodeBadConfig(t *testing.T) {
	input := `
[database]
name = "test
`

	config := New()
	err := config.Decode(bytes.NewBufferString(input))
	assert.Error(t, err)
}

func TestDecodeUnknownKey(t *testing.T) {
	config := New()
	err := config.Decode(bytes.NewBufferString(`[log]
colour = "red"
`))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "log.colour")
	}
}

// Ensure that row data is never reported as unknown keys.
func TestDecodeRowsAreNotUnknownKeys(t *testing.T) {
	input := `
[[database.types]]
name = "a"

[[database.types.tables]]
name = "t"

[[database.types.tables.groups]]
name = "g"
columns = [{ name = "n", type = "int32" }, { name = "s", type = "text" }]
rows = [[1, "x"], [2, "y"]]
`

	config := New()
	err := config.Decode(bytes.NewBufferString(input))
	assert.NoError(t, err)
	assert.Len(t, config.Database.Types[0].Tables[0].Groups[0].Rows, 2)

	// Unknown keys beside rows are still reported.
	config = New()
	err = config.Decode(bytes.NewBufferString(input + "colour = \"red\"\n"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "database.types.tables.groups.colour")
		assert.NotContains(t, err.Error(), "rows")
	}
}

func TestDecodeInvalidLevel(t *testing.T) {
	config := New()
	err := config.Decode(bytes.NewBufferString(`[log]
level = "loud"
`))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), `invalid log level "loud"`)
	}
}

func TestDecodeEmptyDatabaseName(t *testing.T) {
	config := New()
	err := config.Decode(bytes.NewBufferString(`[database]
name = ""
`))
	assert.EqualError(t, err, "database name required")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typestore.toml")
	assert.NoError(t, os.WriteFile(path, []byte("[database]\nname = \"fromfile\"\n"), 0o644))

	config, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "fromfile", config.Database.Name)

	config, err = Load("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultDatabaseName, config.Database.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
