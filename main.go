package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/damonto/ofono-i3blocklet/internal/pkg/blocklet"
	"github.com/damonto/ofono-i3blocklet/internal/pkg/config"
	"github.com/damonto/ofono-i3blocklet/internal/pkg/ofono"
)

func init() {
	config.LoadEnv()
	flag.StringVar(&config.C.Bus, "bus", config.C.Bus, "D-Bus to connect to (system or session)")
	flag.StringVar(&config.C.LogFile, "log-file", config.C.LogFile, "Write logs to this file instead of stderr")
	flag.BoolVar(&config.C.Verbose, "verbose", config.C.Verbose, "Enable verbose output")
	flag.Parse()
}

func initLogger() {
	var w io.Writer = os.Stderr
	if config.C.LogFile != "" {
		w = &lumberjack.Logger{
			Filename:   config.C.LogFile,
			MaxSize:    1,
			MaxBackups: 3,
		}
	}
	level := slog.LevelInfo
	if config.C.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.C.IsValid(); err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}
	initLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := ofono.Dial(config.C.Bus)
	if err != nil {
		slog.Error("failed to connect to bus", "bus", config.C.Bus, "error", err)
		return 1
	}
	defer conn.Close()

	tracker := ofono.NewTracker(conn, blocklet.NewPrinter(os.Stdout))
	if err := tracker.Run(ctx); err != nil {
		slog.Error("failed to watch modems", "error", err)
		return 1
	}
	return 0
}
