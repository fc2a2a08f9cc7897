package main

import (
	"flag"
	"log/slog"
	"os"

	"mortality/internal/config"
	"mortality/internal/infrastructure"
	"mortality/internal/pipeline"
)

func main() {
	era1 := flag.String("era1", "", "path to the 2004-2017 export (overrides config)")
	era2 := flag.String("era2", "", "path to the 2018-2023 export (overrides config)")
	out := flag.String("out", "", "path for the cleaned output CSV (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags win over environment and file config.
	if *era1 != "" {
		cfg.Inputs.Era1Path = *era1
	}
	if *era2 != "" {
		cfg.Inputs.Era2Path = *era2
	}
	if *out != "" {
		cfg.Output.Path = *out
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	summary, err := pipeline.Run(cfg, logger)
	if err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Saved cleaned dataset",
		slog.String("path", summary.OutputPath),
		slog.Int("rows", summary.RowsWritten))
}
