package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tweetmoji/predictor"
)

const (
	topSlots      = 3
	emojiSlotSize = 56
)

var exampleTweets = []string{
	"That movie was so funny, I was in tears",
	"Missing the beach and sunshine right now",
	"Feeling absolutely ecstatic about this project!",
}

// resultSlot renders one of the top-3 predictions: an emoji image (or a
// placeholder glyph when the asset is unavailable) above a percentage label.
type resultSlot struct {
	holder  *fyne.Container
	percent *widget.Label
}

type uiState struct {
	w        fyne.Window
	pipeline *predictor.Pipeline
	assets   *predictor.AssetCatalog
	logger   *slog.Logger

	input       *widget.Entry
	predictBtn  *widget.Button
	placeholder *widget.Label
	resultsBox  *fyne.Container
	slots       [topSlots]resultSlot

	// Flips once, on the first successful prediction, and never reverts.
	hasShownFirstResult bool
}

func buildUI(a fyne.App, pipeline *predictor.Pipeline, assets *predictor.AssetCatalog, logger *slog.Logger) *uiState {
	if logger == nil {
		logger = slog.Default()
	}
	u := &uiState{
		w:        a.NewWindow("Tweet Emoji Predictor"),
		pipeline: pipeline,
		assets:   assets,
		logger:   logger,
	}
	if icon := loadResource(assets.IconPath()); icon != nil {
		u.w.SetIcon(icon)
	}

	title := widget.NewLabelWithStyle("Tweet Emoji Predictor", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	description := widget.NewLabel("Unlock the sentiment! This app uses a fine-tuned BERTweet model to predict the top 3 most likely emojis for your text. Just type or paste your tweet below and hit submit!")
	description.Wrapping = fyne.TextWrapWord

	u.input = widget.NewMultiLineEntry()
	u.input.SetPlaceHolder("Feeling absolutely ecstatic about this project!")
	u.input.Wrapping = fyne.TextWrapWord
	u.input.SetMinRowsVisible(4)

	u.predictBtn = widget.NewButtonWithIcon("Predict Emojis", theme.ConfirmIcon(), func() { u.onPredict() })

	examplesLabel := widget.NewLabelWithStyle("Or try an example:", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	exampleBox := container.NewVBox()
	for _, tweet := range exampleTweets {
		text := tweet
		exampleBox.Add(widget.NewButton(text, func() { u.loadExample(text) }))
	}

	resultsTitle := widget.NewLabelWithStyle("Top 3 Predictions", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	u.placeholder = widget.NewLabel("Your predictions will appear here ✨")

	slotViews := make([]fyne.CanvasObject, 0, topSlots)
	for i := range u.slots {
		holder := container.NewGridWrap(fyne.NewSize(emojiSlotSize, emojiSlotSize))
		percent := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		u.slots[i] = resultSlot{holder: holder, percent: percent}
		slotViews = append(slotViews, container.NewVBox(container.NewCenter(holder), percent))
	}
	u.resultsBox = container.NewGridWithColumns(topSlots, slotViews...)
	u.resultsBox.Hide()

	content := container.NewVBox(
		title,
		description,
		u.input,
		container.NewCenter(u.predictBtn),
		widget.NewSeparator(),
		examplesLabel,
		exampleBox,
		widget.NewSeparator(),
		resultsTitle,
		container.NewCenter(u.placeholder),
		u.resultsBox,
	)

	u.w.SetContent(container.NewPadded(content))
	u.w.Resize(fyne.NewSize(620, 720))
	return u
}

func (u *uiState) loadExample(text string) {
	u.input.SetText(text)
	u.onPredict()
}

// onPredict validates the input, runs inference synchronously and renders the
// normalized top-3 result. Failures leave the view unchanged.
func (u *uiState) onPredict() {
	text := strings.TrimSpace(u.input.Text)
	if text == "" {
		dialog.ShowInformation("Input Error", "Please enter some text to predict.", u.w)
		return
	}

	preds, err := u.pipeline.Predict(context.Background(), text)
	if err != nil {
		u.logger.Error("prediction failed", "error", err)
		showError(u.w, fmt.Errorf("an error occurred during prediction: %w", err))
		return
	}
	scores, err := predictor.Rank(preds)
	if err != nil {
		u.logger.Error("malformed model output", "error", err)
		showError(u.w, fmt.Errorf("an error occurred during prediction: %w", err))
		return
	}

	top := predictor.TopK(scores, topSlots)
	percentages := predictor.Percentages(top)
	u.renderResults(top, percentages)
	u.revealResults()
}

func (u *uiState) renderResults(top []predictor.RawScore, percentages []float64) {
	for i := range u.slots {
		if i < len(top) {
			u.setSlot(i, top[i].ClassID, percentages[i])
		} else {
			u.clearSlot(i)
		}
	}
}

func (u *uiState) setSlot(i, classID int, percentage float64) {
	slot := u.slots[i]
	if path, err := u.assets.ImagePath(classID); err == nil {
		img := canvas.NewImageFromFile(path)
		img.FillMode = canvas.ImageFillContain
		slot.holder.Objects = []fyne.CanvasObject{img}
	} else {
		u.logger.Warn("emoji image unavailable", "classId", classID, "error", err)
		slot.holder.Objects = []fyne.CanvasObject{placeholderGlyph()}
	}
	slot.holder.Refresh()
	slot.percent.SetText(formatPercent(percentage))
}

func (u *uiState) clearSlot(i int) {
	slot := u.slots[i]
	slot.holder.Objects = nil
	slot.holder.Refresh()
	slot.percent.SetText("")
}

// revealResults swaps the placeholder for the results region. One-way: once
// the first result is shown the placeholder never comes back.
func (u *uiState) revealResults() {
	if u.hasShownFirstResult {
		return
	}
	u.hasShownFirstResult = true
	u.placeholder.Hide()
	u.resultsBox.Show()
}

func placeholderGlyph() fyne.CanvasObject {
	return widget.NewLabelWithStyle("?", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
}

func formatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func showError(win fyne.Window, err error) {
	if err != nil {
		dialog.ShowError(err, win)
	}
}
