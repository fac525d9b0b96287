package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mad-sand/internal/config"
	"mad-sand/internal/render"
	"mad-sand/internal/sandbox"
	"mad-sand/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	flags := config.NewFlags()
	quiet := flag.Bool("mute", false, "disable save/load tones")
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
	flags.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if flags.Verbose {
		level = slog.LevelDebug
	}
	out := os.Stderr
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	sandbox.SetLogger(logger)

	cfg, src, err := config.Load(flags.Path)
	if err != nil {
		logger.Warn("settings replaced with defaults", "path", flags.Path, "source", src, "err", err)
	} else {
		logger.Debug("settings loaded", "path", flags.Path, "source", src)
	}
	flags.Apply(&cfg)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// A terminal cell is one grid cell; shrink the grid to what fits.
	if tw, th := screen.Size(); tw > 0 && th > 2 {
		cfg.Sandbox.Width = min(cfg.Sandbox.Width, tw)
		cfg.Sandbox.Height = min(cfg.Sandbox.Height, th-2)
	}

	var tone term.Tone
	if !*quiet {
		beeper, err := term.NewBeeper()
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer beeper.Close()
			tone = beeper
		}
	}

	session := sandbox.NewFromConfig(cfg, flags.Seed)
	frontend := term.New(screen, session, render.NewPalette(cfg), tone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = frontend.Run(ctx)
	screen.Fini()
	if err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
