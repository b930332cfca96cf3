package main

import (
	"flag"
	"log"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"nifti-gridview/internal/config"
	"nifti-gridview/internal/gui"
	"nifti-gridview/internal/logger"
	"nifti-gridview/internal/shutdown"
)

const (
	AppName    = "NIfTI Gridview"
	AppID      = "com.medimaging.nifti-gridview"
	AppVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Configuration loading failed: %v", err)
	}

	appLogger := buildLogger(cfg)
	appLogger.Info("main", "application starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"num_cpu":    runtime.NumCPU(),
		"config":     *configPath,
	})

	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	window.CenterOnScreen()

	view := gui.NewView(window, cfg.Display.Colormap, cfg.Display.Margin, cfg.Display.ContourThickness)
	controller := gui.NewController(view, cfg, appLogger)

	shutdownManager := shutdown.NewManager(appLogger)
	shutdownManager.Register(controller)
	shutdownManager.Listen()

	window.SetCloseIntercept(func() {
		shutdownManager.Shutdown()
		window.Close()
	})

	go func() {
		<-shutdownManager.Done()
		appLogger.Info("main", "shutdown complete", nil)
	}()

	view.Show()
	fyneApp.Run()
}

func buildLogger(cfg *config.Config) logger.Logger {
	level := logger.ParseLevel(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		return logger.NewFileLogger(cfg.Logging.File, level)
	}
	return logger.NewConsoleLogger(level)
}
