package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"jordanella.com/language-gates/internal/config"
	"jordanella.com/language-gates/internal/gui/components"
	"jordanella.com/language-gates/internal/lessons"
)

// GateWindowTitle is the title of a gate's learning center window
func GateWindowTitle(gate config.Gate) string {
	return fmt.Sprintf("%s - Learning Center", gate.Name)
}

// LessonLabel is the row label of a lesson in a tier list
func LessonLabel(lesson lessons.Lesson) string {
	return fmt.Sprintf("%s (%s)", lesson.Title, lesson.Type)
}

// buildTierTabs creates one tab per tier listing its lessons in order
func buildTierTabs(cat *lessons.Catalog, onStart func(lessons.Lesson)) *container.AppTabs {
	tabs := container.NewAppTabs()
	for _, tier := range lessons.Tiers() {
		tabs.Append(container.NewTabItem(tier.Title(), buildLessonList(cat.Lessons(tier), onStart)))
	}
	return tabs
}

func buildLessonList(list []lessons.Lesson, onStart func(lessons.Lesson)) fyne.CanvasObject {
	if len(list) == 0 {
		return container.NewCenter(components.Caption("No lessons in this tier yet"))
	}

	rows := container.NewVBox()
	for _, lesson := range list {
		lesson := lesson
		startBtn := components.PrimaryButton("Start Lesson", func() {
			if onStart != nil {
				onStart(lesson)
			}
		})
		rows.Add(components.Card(components.LabelButtonsRow(widget.NewLabel(LessonLabel(lesson)), startBtn)))
	}
	return container.NewVScroll(rows)
}

// openGateWindow shows the learning center for a gate
func (c *Controller) openGateWindow(gate config.Gate, cat *lessons.Catalog) fyne.Window {
	win := c.app.NewWindow(GateWindowTitle(gate))
	win.Resize(GateWindowSize)
	win.SetContent(container.NewPadded(buildTierTabs(cat, c.openLessonWindow)))
	win.Show()

	c.logger.InfoWithContext("Gate entered", map[string]interface{}{"gate": gate.Code})
	return win
}
