package main

import (
	"log"
	"path/filepath"

	"fyne.io/fyne/v2/app"

	"github.com/boxbuddy/boxbuddy/internal/config"
	"github.com/boxbuddy/boxbuddy/internal/dispatch"
	"github.com/boxbuddy/boxbuddy/internal/history/sqlite"
	"github.com/boxbuddy/boxbuddy/internal/logging"
	"github.com/boxbuddy/boxbuddy/internal/platform"
	"github.com/boxbuddy/boxbuddy/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "io.github.boxbuddy.BoxBuddy"
	AppName = "BoxBuddy"
)

func main() {
	closer, err := logging.Setup(logging.DefaultConfig())
	if err != nil {
		log.Printf("Logging to stderr only: %v", err)
	}
	defer func() { _ = closer.Close() }()

	log.Printf("%s v%s starting...", AppName, version)
	ui.Version = version

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(AppName)

	settings := config.NewSettings(myApp)
	distrobox := platform.NewDistrobox(settings.GetToolPath(), nil)
	service := dispatch.NewService(distrobox)

	historyPath := platform.DefaultHistoryPath()
	var store *sqlite.Store
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(historyPath)); err != nil {
		log.Printf("History disabled: %v", err)
	} else if store, err = sqlite.New(historyPath); err != nil {
		log.Printf("History disabled: %v", err)
	} else {
		defer func() { _ = store.Close() }()
		service.SetRecorder(store)
	}

	rootUI := ui.NewRootUI(myWindow, myApp, service, service)
	if store != nil {
		rootUI.SetHistory(store)
	}

	myWindow.ShowAndRun()
}
