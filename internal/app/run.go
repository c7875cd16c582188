package app

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"tweetmoji/internal/logging"
	"tweetmoji/predictor"
)

const fyneAppID = "studio.tweetmoji.predictor"

// Run loads configuration, brings up logging, loads the model behind a splash
// screen and starts the desktop UI. A non-nil error means the model failed to
// load and the process should exit non-zero.
func Run() error {
	cfg, err := predictor.EnsureConfig("")
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.Setup(nil)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting tweet emoji predictor", "modelDir", cfg.ModelDir, "imageDir", cfg.ImageDir)

	a := fyneapp.NewWithID(fyneAppID)
	assets := predictor.NewAssetCatalog(cfg.ImageDir)
	if icon := loadResource(assets.IconPath()); icon != nil {
		a.SetIcon(icon)
	}

	splash := newSplashScreen(a, assets.LogoPath())
	loader := predictor.NewLoader(cfg, logger)

	// The loader owns the pipeline until the success outcome hands it to the
	// prediction view; no window reference escapes this goroutine.
	var loadErr error
	go func() {
		for percent := range loader.Progress() {
			p := percent
			fyne.Do(func() { splash.SetProgress(p) })
		}
		out := <-loader.Outcome()
		fyne.Do(func() {
			splash.Close()
			if out.Err != nil {
				loadErr = out.Err
				showFatalError(a, fmt.Errorf("could not load the AI model: %w", out.Err))
				return
			}
			u := buildUI(a, out.Pipeline, assets, logger)
			u.w.SetOnClosed(func() {
				if err := out.Pipeline.Close(); err != nil {
					logger.Warn("pipeline close failed", "error", err)
				}
			})
			u.w.Show()
		})
	}()

	splash.Show()
	loader.Start()
	a.Run()

	if loadErr != nil {
		return fmt.Errorf("load model: %w", loadErr)
	}
	return nil
}

// showFatalError reports a fatal startup failure and quits the app once the
// dialog is dismissed.
func showFatalError(a fyne.App, err error) {
	win := a.NewWindow("Fatal Error")
	win.SetContent(widget.NewLabel(err.Error()))
	win.Resize(fyne.NewSize(420, 140))
	d := dialog.NewError(err, win)
	d.SetOnClosed(a.Quit)
	win.Show()
	d.Show()
}

func loadResource(path string) fyne.Resource {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return fyne.NewStaticResource(filepath.Base(path), data)
}
