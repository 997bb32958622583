package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"jordanella.com/language-gates/internal/gui/components"
	"jordanella.com/language-gates/internal/lessons"
)

// LessonPresenter builds the content pane of a lesson window
type LessonPresenter interface {
	Heading() string
	Build(lesson lessons.Lesson) fyne.CanvasObject
}

// placeholderPresenter shows a single heading until real lesson content
// exists for the type
type placeholderPresenter struct {
	heading string
}

func (p placeholderPresenter) Heading() string {
	return p.heading
}

func (p placeholderPresenter) Build(lesson lessons.Lesson) fyne.CanvasObject {
	return container.NewPadded(container.NewVBox(
		container.NewCenter(components.Heading(p.heading)),
		container.NewCenter(components.Caption(lesson.Title)),
	))
}

// PresenterFor maps every lesson type to its presenter. Adding a
// LessonType requires a case here; TestEveryLessonTypeHasPresenter fails
// otherwise.
func PresenterFor(lessonType lessons.LessonType) (LessonPresenter, error) {
	switch lessonType {
	case lessons.LessonTypeVocabulary:
		return placeholderPresenter{heading: "Vocabulary Lesson Content"}, nil
	case lessons.LessonTypeGrammar:
		return placeholderPresenter{heading: "Grammar Lesson Content"}, nil
	case lessons.LessonTypeConversation:
		return placeholderPresenter{heading: "Conversation Practice Content"}, nil
	}
	return nil, fmt.Errorf("no presenter for lesson type %q", lessonType)
}

// LessonWindowTitle is the title of a lesson's window
func LessonWindowTitle(lesson lessons.Lesson) string {
	return fmt.Sprintf("Lesson: %s", lesson.Title)
}

// buildLessonContent returns the window content for a lesson
func buildLessonContent(lesson lessons.Lesson) (fyne.CanvasObject, error) {
	presenter, err := PresenterFor(lesson.Type)
	if err != nil {
		return nil, err
	}
	return presenter.Build(lesson), nil
}

// openLessonWindow shows a lesson in its own window
func (c *Controller) openLessonWindow(lesson lessons.Lesson) {
	content, err := buildLessonContent(lesson)
	if err != nil {
		c.reportError("Cannot open lesson", err, map[string]interface{}{"lesson": lesson.ID})
		return
	}

	win := c.app.NewWindow(LessonWindowTitle(lesson))
	win.Resize(LessonWindowSize)
	win.SetContent(container.NewBorder(nil, nil, nil, nil, widget.NewCard("", "", content)))
	win.Show()

	c.logger.InfoWithContext("Lesson started", map[string]interface{}{
		"lesson": lesson.ID,
		"type":   string(lesson.Type),
	})
}
