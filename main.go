package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/typestore/internal/config"
	"github.com/leengari/typestore/internal/dump"
	"github.com/leengari/typestore/internal/engine"
	"github.com/leengari/typestore/internal/logging"
)

func main() {
	logger, closeFn, err := logging.SetupLogger(config.New().Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(2)
	}
	defer closeFn()

	slog.SetDefault(logger)
	slog.Info("Starting demo...")

	// 1. Database with one type group
	db := engine.NewDatabase("test")
	db.AddObserver(engine.NewLoggingObserver(logger))

	restype := engine.NewTypeGroup("res", engine.InfoPair{Key: engine.Int32(0), Value: engine.Text("h")})
	if err := db.AddType(restype); err != nil {
		fail(closeFn, "failed to add type", err)
	}

	// 2. Table and column group, resolved from the root each time
	dbtype, err := db.GetType("res")
	if err != nil {
		fail(closeFn, "type not found", err)
	}
	if err := dbtype.AddTable(engine.NewTable("restable", "restype")); err != nil {
		fail(closeFn, "failed to add table", err)
	}
	restable, err := dbtype.GetTable("restable")
	if err != nil {
		fail(closeFn, "table not found", err)
	}
	if err := restable.AddColumnGroup(engine.NewColumnGroup("usertime")); err != nil {
		fail(closeFn, "failed to add column group", err)
	}
	usertime, err := restable.GetColumnGroup("usertime")
	if err != nil {
		fail(closeFn, "column group not found", err)
	}

	// 3. Schema
	if err := usertime.AddColumn(engine.NewColumn("time", engine.Int32(0))); err != nil {
		fail(closeFn, "failed to add column", err)
	}
	if err := usertime.AddColumn(engine.NewColumn("user", engine.Text("h"))); err != nil {
		fail(closeFn, "failed to add column", err)
	}

	// 4. Rows
	for i, row := range []engine.Row{
		{engine.Int32(1), engine.Text("a")},
		{engine.Int32(2), engine.Text("b")},
	} {
		if err := usertime.InsertRow(row); err != nil {
			slog.Error("failed to insert row", "index", i, "error", err)
			continue
		}
	}

	// A row of the wrong shape is rejected and nothing is stored
	if err := usertime.InsertRow(engine.Row{engine.Text("oops")}); err != nil {
		slog.Warn("rejected row", "error", err)
	}

	if row, err := usertime.SearchRow("user", engine.Text("b")); err == nil {
		slog.Info("found row", "row", row)
	}

	info := db.Info()
	slog.Info("database info", "types", info.NumTypes, "tables", info.TotalTables)

	snap, err := dump.Take(db)
	if err != nil {
		fail(closeFn, "snapshot failed", err)
	}
	if err := dump.WriteText(os.Stdout, snap); err != nil {
		fail(closeFn, "dump failed", err)
	}
}

func fail(closeFn func(), msg string, err error) {
	slog.Error(msg, "error", err)
	closeFn()
	os.Exit(1)
}
