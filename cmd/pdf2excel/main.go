package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jeffery5bai/pdf2excel/internal/batch"
	"github.com/jeffery5bai/pdf2excel/internal/config"
	"github.com/jeffery5bai/pdf2excel/internal/export"
	"github.com/jeffery5bai/pdf2excel/internal/parse"
	"github.com/jeffery5bai/pdf2excel/internal/pdfx"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

// setupLogging configures the structured logger from the configured level.
func setupLogging(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// discoverInputs lists the PDF files of the input directory in name order.
func discoverInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func dateFormatFor(cfg *config.Config) export.DateFormat {
	if cfg.DateFormat == config.DateFormatSlash {
		return export.DateFormatSlash
	}
	return export.DateFormatDash
}

func run() error {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		return err
	}

	logger := setupLogging(cfg)
	logger.Debug("configuration loaded", "config", cfg.String(), "version", version, "build_time", buildTime)

	template, err := parse.TemplateFor(cfg.Template)
	if err != nil {
		return err
	}

	paths, err := discoverInputs(cfg.InputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in %s", cfg.InputDir)
	}

	processor := batch.NewProcessor(
		template,
		pdfx.NewExtractor(cfg.MaxFileSize),
		pdfx.NewValidator(cfg.MaxFileSize),
		logger,
	)

	dateFormat := dateFormatFor(cfg)

	result, err := processor.Run(paths)
	if err != nil {
		if errors.Is(err, batch.ErrNoDocumentsParsed) {
			fmt.Print(result.Report(template.Schema, dateFormat.Layout, cfg.PreviewRows))
			return fmt.Errorf("no files parsed, no report generated")
		}
		return err
	}

	writer := export.NewWriter(template.Schema, dateFormat, template.WidthPadding, logger)
	workbook, err := writer.Write(result.Records)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.OutputDir, export.Filename(string(template.Family), time.Now()))
	if err := os.WriteFile(outPath, workbook, 0o644); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}

	fmt.Print(result.Report(template.Schema, dateFormat.Layout, cfg.PreviewRows))
	fmt.Printf("\nreport written to %s\n", outPath)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
