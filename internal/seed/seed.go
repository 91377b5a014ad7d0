// Package seed builds a Database from a configured seed tree.
package seed

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/leengari/typestore/internal/config"
	"github.com/leengari/typestore/internal/engine"
)

// Build creates the database described by cfg. It stops at the first
// failure and returns the partially built database together with the
// error; nothing created before the failure is rolled back.
func Build(cfg config.Database, logger *slog.Logger) (*engine.Database, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db := engine.NewDatabase(cfg.Name)
	db.AddObserver(engine.NewLoggingObserver(logger))

	names := make([]string, len(cfg.Types))
	for i, typ := range cfg.Types {
		names[i] = typ.Name
	}
	if err := engine.CreateTypeSet(db, names); err != nil {
		return db, fmt.Errorf("create types: %w", err)
	}

	for _, typ := range cfg.Types {
		tg, err := db.GetType(typ.Name)
		if err != nil {
			return db, err
		}
		if err := seedType(tg, typ, logger); err != nil {
			return db, fmt.Errorf("type %q: %w", typ.Name, err)
		}
	}

	info := db.Info()
	logger.Info("database seeded",
		slog.String("database", db.Name()),
		slog.String("id", db.ID()),
		slog.Int("types", info.NumTypes),
		slog.Int("tables", info.TotalTables))

	return db, nil
}

func seedType(tg *engine.TypeGroup, typ config.Type, logger *slog.Logger) error {
	for _, key := range sortedKeys(typ.Info) {
		if err := tg.AddInfo(engine.Text(key), engine.Text(typ.Info[key])); err != nil {
			return err
		}
	}

	for _, tc := range typ.Tables {
		table, err := tg.CreateTable(tc.Name, tc.Origin)
		if err != nil {
			return err
		}
		if err := seedTable(table, tc, logger); err != nil {
			return fmt.Errorf("table %q: %w", tc.Name, err)
		}
	}
	return nil
}

func seedTable(table *engine.Table, tc config.Table, logger *slog.Logger) error {
	for _, key := range sortedKeys(tc.Config) {
		if err := table.AddConfig(key, tc.Config[key]); err != nil {
			return err
		}
	}

	names := make([]string, len(tc.Groups))
	for i, gc := range tc.Groups {
		names[i] = gc.Name
	}
	if err := engine.CreateColumnGroupSet(table, names); err != nil {
		return err
	}

	for _, gc := range tc.Groups {
		group, err := table.GetColumnGroup(gc.Name)
		if err != nil {
			return err
		}
		if err := seedGroup(group, gc); err != nil {
			return fmt.Errorf("group %q: %w", gc.Name, err)
		}
		logger.Debug("group seeded",
			slog.String("table", table.Name()),
			slog.String("group", group.Name()),
			slog.Int("columns", group.NumColumns()),
			slog.Int("rows", group.NumRows()))
	}
	return nil
}

func seedGroup(group *engine.ColumnGroup, gc config.Group) error {
	columns, err := Columns(gc.Columns)
	if err != nil {
		return err
	}
	if err := engine.AddColumnSet(group, columns); err != nil {
		return err
	}

	for i, raw := range gc.Rows {
		row, err := Row(group.Columns(), raw)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if err := group.InsertRow(row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// Columns converts configured columns into schema slots with zero prototypes.
func Columns(cols []config.Column) ([]engine.Column, error) {
	out := make([]engine.Column, len(cols))
	for i, c := range cols {
		kind, err := engine.ParseKind(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		out[i] = engine.NewColumn(c.Name, engine.Zero(kind))
	}
	return out, nil
}

// Row coerces raw decoded values positionally against schema.
func Row(schema []engine.Column, raw []interface{}) (engine.Row, error) {
	if len(raw) != len(schema) {
		return nil, &engine.Error{
			Kind:   engine.KindInsertError,
			Op:     "seed_row",
			Reason: fmt.Sprintf("expected %d values, got %d", len(schema), len(raw)),
		}
	}
	row := make(engine.Row, len(raw))
	for i, r := range raw {
		v, err := engine.Coerce(schema[i].Kind(), r)
		if err != nil {
			return nil, &engine.Error{
				Kind:   engine.KindInsertError,
				Op:     "seed_row",
				Column: schema[i].Name,
				Reason: err.Error(),
			}
		}
		row[i] = v
	}
	return row, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
