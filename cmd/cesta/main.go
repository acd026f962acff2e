// CLAUDE:SUMMARY CLI entry point for cesta — bulletin ingestion, wage import, stats and reports.
// Command cesta ingests basket-price bulletins and minimum-wage tables
// into the prices database.
//
// Usage:
//
//	cesta -config cesta.yaml -ingest        # process configured sources
//	cesta -db prices.db -wage salario.html  # import a saved wage table
//	cesta -db prices.db -stats              # show row counts and exit
//	cesta -db prices.db -variation          # year-over-year report
//	cesta -db prices.db -clean              # wipe basket_prices (careful)
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/cestalab/cesta/pipeline"
	"github.com/cestalab/cesta/store"
)

func main() {
	configPath := flag.String("config", "", "path to cesta.yaml config file")
	dbPath := flag.String("db", "", "path to SQLite database")
	ingest := flag.Bool("ingest", false, "process configured source directories")
	wagePath := flag.String("wage", "", "path to a saved minimum-wage HTML table to import")
	showStats := flag.Bool("stats", false, "show row counts and exit")
	variation := flag.Bool("variation", false, "print the year-over-year report and exit")
	clean := flag.Bool("clean", false, "delete all basket-price rows and exit")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *dbPath, *wagePath, *ingest, *showStats, *variation, *clean); err != nil {
		logger.Error("cesta: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, dbPath, wagePath string, ingest, showStats, variation, clean bool) error {
	cfg, err := resolveConfig(configPath, dbPath)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath, store.WithMkdirAll())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()
	st := store.New(db)

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	switch {
	case ingest:
		runner := pipeline.New(*cfg, st, logger)
		report, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}
		return out.Encode(report)

	case wagePath != "":
		f, err := os.Open(wagePath)
		if err != nil {
			return fmt.Errorf("open wage table: %w", err)
		}
		defer f.Close()
		runner := pipeline.New(*cfg, st, logger)
		n, err := runner.RunWage(ctx, f)
		if err != nil {
			return fmt.Errorf("wage import: %w", err)
		}
		return out.Encode(map[string]int{"rows": n})

	case showStats:
		stats, err := st.Stats(ctx)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		return out.Encode(stats)

	case variation:
		rows, err := st.YearOverYear(ctx)
		if err != nil {
			return fmt.Errorf("variation: %w", err)
		}
		return out.Encode(rows)

	case clean:
		if err := st.ClearPrices(ctx); err != nil {
			return fmt.Errorf("clean: %w", err)
		}
		logger.Info("cesta: basket_prices cleared")
		return nil
	}

	fmt.Fprintln(os.Stderr, "usage: cesta (-config <file> | -db <path>) -ingest | -wage <file> | -stats | -variation | -clean")
	return nil
}

func resolveConfig(configPath, dbPath string) (*pipeline.Config, error) {
	if configPath != "" {
		cfg, err := pipeline.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		return cfg, nil
	}

	cfg := &pipeline.Config{DBPath: dbPath}
	cfg.Defaults()
	return cfg, nil
}
