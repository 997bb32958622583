package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
)

// Card wraps content in a rounded, outlined panel
func Card(content fyne.CanvasObject) *fyne.Container {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	bg.CornerRadius = 6
	bg.StrokeColor = theme.Color(theme.ColorNameSeparator)
	bg.StrokeWidth = 1

	return container.NewStack(bg, container.NewPadded(content))
}

// LabelButtonsRow places labels on the left and buttons right-aligned
func LabelButtonsRow(labels fyne.CanvasObject, buttons ...fyne.CanvasObject) *fyne.Container {
	return container.NewBorder(
		nil, nil,
		labels,
		container.NewHBox(buttons...),
		layout.NewSpacer(),
	)
}
