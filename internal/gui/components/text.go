package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Heading creates a large, bold heading
func Heading(text string) *widget.RichText {
	return styledText(text, theme.SizeNameHeadingText, true)
}

// Subheading creates a medium bold heading for card titles
func Subheading(text string) *widget.RichText {
	return styledText(text, theme.SizeNameSubHeadingText, true)
}

// Caption creates small secondary text
func Caption(text string) *widget.RichText {
	return styledText(text, theme.SizeNameCaptionText, false)
}

func styledText(text string, size fyne.ThemeSizeName, bold bool) *widget.RichText {
	return widget.NewRichText(
		&widget.TextSegment{
			Text: text,
			Style: widget.RichTextStyle{
				SizeName:  size,
				TextStyle: fyne.TextStyle{Bold: bold},
			},
		},
	)
}

// SetRichText replaces the text of a single-segment RichText created by
// this package
func SetRichText(rt *widget.RichText, text string) {
	if len(rt.Segments) == 0 {
		return
	}
	if seg, ok := rt.Segments[0].(*widget.TextSegment); ok {
		seg.Text = text
		rt.Refresh()
	}
}
