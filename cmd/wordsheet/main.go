package main

import (
	"fmt"
	"os"

	"wordsheet/internal/config"
	"wordsheet/internal/grid"
	"wordsheet/internal/repository/sqlite"
	"wordsheet/internal/service"
	"wordsheet/internal/tui"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the screen, so logs go to a file
	logger, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Editor stopped with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	kv, err := sqlite.Open(cfg.SheetPath)
	if err != nil {
		return fmt.Errorf("failed to open sheet storage: %w", err)
	}
	defer kv.Close()

	sheets := service.NewSheetService(kv, logger)
	rows, err := sheets.Load()
	if err != nil {
		return err
	}

	engine := grid.NewEngine(grid.NewStore(nil, nil))
	engine.Load(rows)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	screen.EnableMouse()
	screen.Clear()
	defer screen.Fini()

	app := tui.New(screen, engine, logger, tui.Options{})

	saver := service.NewAutosaver(cfg.SaveDelay, sheets.Save, app.NotifySaved, logger)
	engine.Subscribe(saver.Schedule)

	logger.Info("Editor started",
		zap.String("sheet", cfg.SheetPath),
		zap.Int("rows", len(rows)),
	)

	app.Run()

	// Write whatever the debounce was still holding, then stop the timer
	saver.Flush()
	saver.Close()

	logger.Info("Editor stopped")
	return nil
}

func newLogger(path string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}
