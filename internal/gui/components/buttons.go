package components

import "fyne.io/fyne/v2/widget"

// PrimaryButton creates a high-importance button for the main action
func PrimaryButton(text string, tapped func()) *widget.Button {
	btn := widget.NewButton(text, tapped)
	btn.Importance = widget.HighImportance
	return btn
}
