package main

import (
	"SpaceBox/internal/config"
	"SpaceBox/internal/demo"
	"SpaceBox/internal/engine"
	"SpaceBox/internal/logger"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "spacebox.json", "settings file; defaults are used when it does not exist")
	seed := flag.Int64("seed", 0, "random seed, overrides the settings file when non-zero")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = config.DefaultAppConfig()
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.Debug = cfg.Debug || *debug

	if err := logger.Init(cfg.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("SpaceBox starting",
		zap.String("config", *configPath),
		zap.Int("cubeSize", cfg.Generator.CubeSize))

	app := demo.NewApp(cfg)
	gopher := engine.NewGopher(cfg.WindowWidth, cfg.WindowHeight)
	gopher.SetOnInit(app.Setup)

	if err := gopher.Render(cfg.WindowX, cfg.WindowY); err != nil {
		logger.Log.Error("SpaceBox stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
