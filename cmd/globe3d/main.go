package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"Globe3D/internal/config"
	"Globe3D/internal/engine"
	"Globe3D/internal/globe"
	"Globe3D/internal/logger"
	"Globe3D/internal/renderer"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (yaml, json or toml); defaults to ./globe3d.*")
	debug := flag.Bool("debug", false, "enable debug logging")
	wireframe := flag.Bool("wireframe", false, "draw every model as wireframe")
	flag.Parse()

	logger.Init()
	defer logger.Sync()

	if err := run(*configPath, *debug, *wireframe); err != nil {
		logger.Log.Error("globe3d failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(configPath string, debug, wireframe bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel)
	if debug {
		logger.SetLevel("debug")
	}

	// Only the log level is safe to change while the window is open.
	config.Watch(func(c *config.Viewer) {
		if !debug {
			logger.SetLevel(c.LogLevel)
		}
	})

	width, height := int32(cfg.Window.Width), int32(cfg.Window.Height)
	g := globe.New(cfg.Markers, cfg.Globe,
		globe.WithViewport(width, height),
		globe.OnMarkerHover(func(m *globe.Marker) {
			if m == nil {
				logger.Log.Debug("Marker hover ended")
				return
			}
			logger.Log.Info("Marker hovered", zap.String("marker", m.String()))
		}),
		globe.OnMarkerClick(func(m globe.Marker) {
			logger.Log.Info("Marker clicked",
				zap.String("marker", m.String()),
				zap.Float32("lat", m.Lat),
				zap.Float32("lng", m.Lng),
				zap.String("src", m.Src))
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewer := engine.NewViewer(width, height, cfg.Window.Title)
	viewer.VSync = cfg.Window.VSync
	viewer.Transparent = cfg.Window.Transparent || g.Config.BackgroundColor == nil
	viewer.SetWireframe(wireframe)
	viewer.Scene = g
	viewer.Input = g
	viewer.Behaviours.Add(g)
	viewer.OnReady = func(rend renderer.Render) error {
		if err := g.Mount(ctx, rend, nil); err != nil {
			return fmt.Errorf("mount globe: %w", err)
		}
		return nil
	}
	viewer.OnClose = g.Unmount

	logger.Log.Info("Starting globe3d",
		zap.Int("markers", len(cfg.Markers)),
		zap.Bool("debug", debug),
		zap.Bool("wireframe", wireframe))
	return viewer.Run(ctx)
}
