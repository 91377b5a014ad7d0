package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leengari/typestore/internal/config"
	"github.com/leengari/typestore/internal/dump"
	"github.com/leengari/typestore/internal/logging"
	"github.com/leengari/typestore/internal/seed"
)

//go:embed sample.toml
var sampleConfig []byte

func main() {
	configPath := flag.String("config", "", "Path to a TOML config (defaults to the built-in sample)")
	format := flag.String("format", "text", "Dump format: text, json or msgpack")
	outPath := flag.String("out", "", "Write the dump to this file instead of stdout")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "typestore: %v\n", err)
		os.Exit(2)
	}

	dumpFormat, err := dump.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "typestore: %v\n", err)
		os.Exit(2)
	}

	logger, closeFn, err := logging.SetupLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "typestore: %v\n", err)
		os.Exit(2)
	}
	defer closeFn()

	slog.SetDefault(logger)
	slog.Info("Starting typestore...", "database", cfg.Database.Name)

	if err := run(cfg, dumpFormat, *outPath); err != nil {
		slog.Error("typestore failed", "error", err)
		closeFn()
		os.Exit(1)
	}

	slog.Info("Done")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg := config.New()
	if err := cfg.Decode(bytes.NewReader(sampleConfig)); err != nil {
		return nil, fmt.Errorf("decode built-in sample: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, format dump.Format, outPath string) (err error) {
	db, err := seed.Build(cfg.Database, slog.Default())
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}

	snap, err := dump.Take(db)
	if err != nil {
		return fmt.Errorf("snapshot database: %w", err)
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		w = f
	}

	return dump.Write(w, snap, format)
}
