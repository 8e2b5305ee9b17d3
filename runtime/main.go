package main

import (
	"flag"
	"os"
	"runtime"

	behaviour "Craftmine/internal/behaviour"
	"Craftmine/internal/config"
	"Craftmine/internal/engine"
	"Craftmine/internal/logger"

	"go.uber.org/zap"
)

func main() {
	runtime.LockOSThread()

	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger.Init()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatal("Loading config failed", zap.String("path", *configPath), zap.Error(err))
	}
	if err := logger.Configure(cfg.Log.Level, cfg.Log.Development); err != nil {
		logger.Log.Fatal("Configuring logger failed", zap.Error(err))
	}
	defer logger.Sync()

	logger.Log.Info("Starting Craftmine",
		zap.Int("chunkSize", cfg.ChunkSize),
		zap.Int("workers", cfg.Workers),
		zap.Int64("seed", cfg.Seed))

	gameEngine := engine.NewGopher(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.ChunkSize)
	gameEngine.FogDistance = float32(cfg.ChunkSize * cfg.RenderDistance)

	streamer := NewStreamer(cfg, gameEngine)
	behaviour.GlobalBehaviourManager.Add(streamer)
	gameEngine.SetOnKeyPress(streamer.OnKey)
	gameEngine.SetOnRenderCallback(streamer.Draw)

	if err := gameEngine.Render(-1, -1); err != nil {
		logger.Log.Error("Render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
