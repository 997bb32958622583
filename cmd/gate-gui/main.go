package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"fyne.io/fyne/v2/app"

	"jordanella.com/language-gates/internal/config"
	"jordanella.com/language-gates/internal/gui"
	"jordanella.com/language-gates/internal/logging"
	"jordanella.com/language-gates/internal/setup"
)

func main() {
	configPath := flag.String("config", "Settings.ini", "Path to settings file")
	flag.Parse()

	logger := logging.NewLogger("Main")

	// Load configuration, writing defaults on first run
	cfg, err := config.LoadFromINI(*configPath)
	if err != nil {
		if _, statErr := os.Stat(*configPath); !errors.Is(statErr, os.ErrNotExist) {
			log.Fatalf("Invalid config %s: %v", *configPath, err)
		}
		cfg = config.NewDefaultConfig()
		if saveErr := config.SaveToINI(cfg, *configPath); saveErr != nil {
			logger.Error("Failed to write default config", saveErr)
		}
	}

	logging.Configure(logging.ParseLevel(cfg.LogLevel))
	logger = logging.NewLogger("Main")

	catalogs, err := setup.OpenCatalogs(cfg)
	if err != nil {
		log.Fatalf("Failed to open catalog storage: %v", err)
	}
	defer catalogs.Close()

	myApp := app.NewWithID("com.jordanella.language-gates")
	myApp.Settings().SetTheme(&gui.GateTheme{})

	mainWindow := myApp.NewWindow("Language Gates")
	mainWindow.Resize(gui.DefaultWindowSize)

	controller := gui.NewController(cfg, myApp, mainWindow, catalogs.Store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchCatalogs {
		watcher, err := catalogs.NewWatcher(controller.OnCatalogChanged)
		if err != nil {
			logger.Error("Catalog watcher unavailable", err)
		} else if watcher != nil {
			if err := watcher.Start(ctx); err != nil {
				logger.Error("Failed to start catalog watcher", err)
				watcher.Stop()
			} else {
				controller.AttachWatcher(watcher)
			}
		}
	}

	mainWindow.SetContent(controller.BuildUI())
	mainWindow.SetMaster()
	mainWindow.ShowAndRun()

	controller.Shutdown()
}
