package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	// DefaultWindowSize is the main window size
	DefaultWindowSize = fyne.NewSize(900, 600)

	// GateWindowSize is the size of a gate's learning center
	GateWindowSize = fyne.NewSize(800, 600)

	// LessonWindowSize is the size of a lesson window
	LessonWindowSize = fyne.NewSize(600, 400)

	ColorPrimary    = color.NRGBA{R: 31, G: 106, B: 165, A: 255}
	ColorSuccess    = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	ColorWarning    = color.NRGBA{R: 219, G: 154, B: 4, A: 255}
	ColorError      = color.NRGBA{R: 207, G: 34, B: 46, A: 255}
	ColorBackground = color.NRGBA{R: 24, G: 26, B: 27, A: 255}
)

// GateTheme is the application theme
type GateTheme struct{}

func (t *GateTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameButton:
		return ColorPrimary
	case theme.ColorNameBackground:
		return ColorBackground
	case theme.ColorNameSuccess:
		return ColorSuccess
	case theme.ColorNameWarning:
		return ColorWarning
	case theme.ColorNameError:
		return ColorError
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *GateTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *GateTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *GateTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	default:
		return theme.DefaultTheme().Size(name)
	}
}
