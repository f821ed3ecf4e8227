package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"focusboard/internal/core/model"
)

// Window handles the timer settings UI.
type Window struct {
	window     fyne.Window
	settings   model.TimerSettings
	onSave     func(model.TimerSettings) error
	work       *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	rounds     *widget.Entry
	errorLabel *widget.Label
}

// New creates a settings window. onSave persists and applies the settings;
// an error keeps the window open and is shown to the user.
func New(app fyne.App, settings model.TimerSettings, onSave func(model.TimerSettings) error) *Window {
	window := app.NewWindow("Timer Settings")

	prefs := &Window{
		window:     window,
		settings:   settings,
		onSave:     onSave,
		work:       widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		rounds:     widget.NewEntry(),
		errorLabel: widget.NewLabel(""),
	}
	prefs.errorLabel.Importance = widget.DangerImportance
	prefs.errorLabel.Wrapping = fyne.TextWrapWord
	prefs.fill(settings)

	form := widget.NewForm(
		widget.NewFormItem(FieldWork, prefs.work),
		widget.NewFormItem(FieldShortBreak, prefs.shortBreak),
		widget.NewFormItem(FieldLongBreak, prefs.longBreak),
		widget.NewFormItem(FieldRounds, prefs.rounds),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.fill(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, container.NewVBox(prefs.errorLabel, buttons), nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 260))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.TimerSettings) {
	prefs.settings = settings
	prefs.fill(settings)
}

func (prefs *Window) fill(settings model.TimerSettings) {
	work, shortBreak, longBreak, rounds := FormatSettings(settings)
	prefs.work.SetText(work)
	prefs.shortBreak.SetText(shortBreak)
	prefs.longBreak.SetText(longBreak)
	prefs.rounds.SetText(rounds)
	prefs.errorLabel.SetText("")
}

func (prefs *Window) handleSave() {
	settings, err := ParseSettings(prefs.work.Text, prefs.shortBreak.Text, prefs.longBreak.Text, prefs.rounds.Text)
	if err != nil {
		prefs.errorLabel.SetText(err.Error())
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(settings); err != nil {
			prefs.errorLabel.SetText(err.Error())
			return
		}
	}
	prefs.settings = settings
	prefs.errorLabel.SetText("")
	prefs.window.Hide()
}
