package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/regboard/internal/app"
	"github.com/okian/regboard/internal/config"
	"github.com/okian/regboard/internal/report"
	"github.com/okian/regboard/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		format = flag.String("format", report.FormatCSV, "Output format: csv or json")
		output = flag.String("output", "", "Output file (default: stdout)")
		help   = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		report.ShowHelp(os.Stdout)
		return 0
	}

	// Logs go to stderr so stdout carries only the report.
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	svc, cleanup, err := app.Build(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("failed to build pipeline: " + err.Error() + "\n")
		return 1
	}
	defer cleanup()

	rc := &report.Config{
		Format: *format,
		Output: *output,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	if err := report.Run(ctx, rc, svc); err != nil {
		os.Stderr.WriteString("report failed: " + err.Error() + "\n")
		return 1
	}
	return 0
}
