// Package overlay shows a small always-visible panel while a break is due or running.
package overlay

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"focusboard/internal/core/timer"
)

const defaultMessage = "Step away from the screen."

// Config defines overlay visuals.
type Config struct {
	Opacity uint8
	Title   string
}

// Window manages the break panel.
type Window struct {
	window       fyne.Window
	config       Config
	background   *canvas.Rectangle
	titleLabel   *canvas.Text
	messageLabel *canvas.Text
	timerLabel   *canvas.Text
	toggleButton *widget.Button
	skipButton   *widget.Button
	onToggle     func()
	onSkip       func()
	visible      bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the break panel, hidden.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(config.Title)
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	background := canvas.NewRectangle(color.NRGBA{A: config.Opacity})

	titleLabel := canvas.NewText("", white)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	messageLabel := canvas.NewText(defaultMessage, white)
	messageLabel.TextSize = 14

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 28

	overlay := &Window{
		window:       window,
		config:       config,
		background:   background,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
		timerLabel:   timerLabel,
	}
	overlay.toggleButton = widget.NewButton("Start", func() {
		if overlay.onToggle != nil {
			overlay.onToggle()
		}
	})
	overlay.skipButton = widget.NewButton("Skip", func() {
		if overlay.onSkip != nil {
			overlay.onSkip()
		}
	})

	panel := container.New(&panelLayout{}, titleLabel, messageLabel, timerLabel)
	buttons := container.NewGridWithColumns(2, overlay.toggleButton, overlay.skipButton)
	window.SetContent(container.NewStack(background, container.NewBorder(nil, buttons, nil, nil, panel)))
	window.SetCloseIntercept(overlay.Hide)
	window.Resize(fyne.NewSize(320, 180))

	return overlay
}

// SetOnToggle sets the Start/Pause handler.
func (overlay *Window) SetOnToggle(handler func()) {
	overlay.onToggle = handler
}

// SetOnSkip sets the Skip handler.
func (overlay *Window) SetOnSkip(handler func()) {
	overlay.onSkip = handler
}

// Update shows the panel during breaks and hides it during work.
// message replaces the panel text when non-empty.
func (overlay *Window) Update(state timer.State, message string) {
	if state.Mode == timer.ModeWork {
		overlay.Hide()
		return
	}

	overlay.titleLabel.Text = state.Mode.Label()
	overlay.titleLabel.Refresh()
	if message != "" {
		overlay.messageLabel.Text = message
		overlay.messageLabel.Refresh()
	}
	overlay.timerLabel.Text = formatSeconds(state.TimeLeft)
	overlay.timerLabel.Refresh()
	if state.IsRunning {
		overlay.toggleButton.SetText("Pause")
	} else {
		overlay.toggleButton.SetText("Start")
	}

	if !overlay.visible {
		overlay.visible = true
		overlay.window.Show()
		overlay.window.CenterOnScreen()
		overlay.window.RequestFocus()
	}
}

// Hide closes the panel.
func (overlay *Window) Hide() {
	if !overlay.visible {
		return
	}
	overlay.visible = false
	overlay.messageLabel.Text = defaultMessage
	overlay.window.Hide()
}

// Visible reports whether the panel is shown.
func (overlay *Window) Visible() bool {
	return overlay.visible
}

func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// panelLayout stacks title and message at the top and pins the countdown to the bottom.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	title := objects[0]
	message := objects[1]
	countdown := objects[2]

	pad := size.Height * 0.08
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	messageSize := message.MinSize()
	message.Move(fyne.NewPos(pad, pad+titleSize.Height+6))
	message.Resize(fyne.NewSize(availableWidth, messageSize.Height))

	countdownSize := countdown.MinSize()
	countdownY := size.Height - pad - countdownSize.Height
	if countdownY < 0 {
		countdownY = 0
	}
	countdown.Move(fyne.NewPos(pad, countdownY))
	countdown.Resize(countdownSize)
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	var width, height float32
	for _, object := range objects[:3] {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height+30)
}
