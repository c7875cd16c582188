package app

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// splashScreen is the transient loading window. It only renders progress
// updates; the load outcome is handled by the caller.
type splashScreen struct {
	win    fyne.Window
	status *widget.Label
	bar    *widget.ProgressBar
}

func newSplashScreen(a fyne.App, logoPath string) *splashScreen {
	var win fyne.Window
	if drv, ok := a.Driver().(desktop.Driver); ok {
		win = drv.CreateSplashWindow()
	} else {
		win = a.NewWindow("Loading Application")
	}

	s := &splashScreen{
		win:    win,
		status: widget.NewLabel("Initializing, please wait..."),
		bar:    widget.NewProgressBar(),
	}
	s.bar.TextFormatter = func() string { return "" }

	items := make([]fyne.CanvasObject, 0, 3)
	if _, err := os.Stat(logoPath); err == nil {
		logo := canvas.NewImageFromFile(logoPath)
		logo.FillMode = canvas.ImageFillContain
		logo.SetMinSize(fyne.NewSize(128, 128))
		items = append(items, container.NewCenter(logo))
	}
	items = append(items, container.NewCenter(s.status), s.bar)

	win.SetContent(container.NewPadded(container.NewVBox(items...)))
	win.Resize(fyne.NewSize(400, 250))
	win.CenterOnScreen()
	return s
}

// SetProgress updates the bar with a percent clamped to [0,100].
func (s *splashScreen) SetProgress(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	s.bar.SetValue(float64(percent) / 100)
}

func (s *splashScreen) Show() { s.win.Show() }

func (s *splashScreen) Close() { s.win.Close() }
