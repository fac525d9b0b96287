//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"mad-sand/internal/app"
	"mad-sand/internal/config"
	"mad-sand/internal/sandbox"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flags := config.NewFlags()
	flags.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if flags.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	sandbox.SetLogger(logger)

	cfg, src, err := config.Load(flags.Path)
	if err != nil {
		logger.Warn("settings replaced with defaults", "path", flags.Path, "source", src, "err", err)
	} else {
		logger.Debug("settings loaded", "path", flags.Path, "source", src)
	}
	flags.Apply(&cfg)

	session := sandbox.NewFromConfig(cfg, flags.Seed)
	game := app.New(session, cfg)

	ebiten.SetWindowTitle(session.Status(0, float64(session.TickRate())))
	ebiten.SetTPS(session.TickRate())
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
