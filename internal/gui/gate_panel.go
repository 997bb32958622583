package gui

import (
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"jordanella.com/language-gates/internal/catalog"
	"jordanella.com/language-gates/internal/config"
	"jordanella.com/language-gates/internal/gui/components"
	"jordanella.com/language-gates/internal/lessons"
)

// GatePanel is the main-window entry point for one language
type GatePanel struct {
	ctrl    *Controller
	gate    config.Gate
	catalog *lessons.Catalog

	// UI elements that need dynamic updates
	container     *fyne.Container
	progressLabel *widget.Label
	summaryText   *widget.RichText
	enterBtn      *widget.Button
	gateWindow    fyne.Window
}

// NewGatePanel creates the panel for a gate
func NewGatePanel(ctrl *Controller, gate config.Gate) *GatePanel {
	p := &GatePanel{
		ctrl: ctrl,
		gate: gate,
	}
	p.container = p.build()
	return p
}

// HeaderText is the flag and name shown at the top of the panel
func (p *GatePanel) HeaderText() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", p.gate.Flag, p.gate.Name))
}

func (p *GatePanel) build() *fyne.Container {
	header := components.Subheading(p.HeaderText())
	p.progressLabel = widget.NewLabel("Level: 0")
	p.summaryText = components.Caption("Loading lessons...")

	p.enterBtn = components.PrimaryButton("Enter Gate", p.enterGate)
	p.enterBtn.Disable()

	return components.Card(container.NewVBox(
		components.LabelButtonsRow(header, p.progressLabel),
		p.summaryText,
		p.enterBtn,
	))
}

// Container returns the panel's root object
func (p *GatePanel) Container() fyne.CanvasObject {
	return p.container
}

// Catalog returns the loaded catalog, or nil if loading failed
func (p *GatePanel) Catalog() *lessons.Catalog {
	return p.catalog
}

// Load reads the gate's catalog through the store
func (p *GatePanel) Load() {
	cat, err := p.ctrl.store.Load(p.gate.Code)
	if err != nil {
		p.ShowError(err)
		return
	}
	p.SetCatalog(cat)
}

// SetCatalog displays a (re)loaded catalog
func (p *GatePanel) SetCatalog(cat *lessons.Catalog) {
	p.catalog = cat
	components.SetRichText(p.summaryText, CatalogSummary(cat))
	p.enterBtn.Enable()

	if p.gateWindow != nil {
		p.gateWindow.SetContent(container.NewPadded(buildTierTabs(cat, p.ctrl.openLessonWindow)))
	}
}

// ShowError marks the gate unavailable and reports why. A malformed catalog
// offers to restore the defaults.
func (p *GatePanel) ShowError(err error) {
	p.catalog = nil
	p.enterBtn.Disable()
	components.SetRichText(p.summaryText, "Lessons unavailable")

	if p.gateWindow != nil {
		p.gateWindow.Close()
	}

	context := map[string]interface{}{"gate": p.gate.Code}
	if errors.Is(err, catalog.ErrMalformedCatalog) {
		p.ctrl.reportCatalogError("Lesson catalog is malformed", err, context)
		p.confirmReset(err)
		return
	}
	p.ctrl.reportError("Failed to load lessons", err, context)
}

func (p *GatePanel) confirmReset(err error) {
	if p.ctrl.window == nil {
		return
	}
	msg := fmt.Sprintf("The %s lessons could not be read:\n%v\n\nRestore the default lessons?", p.gate.Name, err)
	dialog.ShowConfirm("Malformed lessons", msg, func(ok bool) {
		if !ok {
			return
		}
		cat, resetErr := p.ctrl.store.Reset(p.gate.Code)
		if resetErr != nil {
			p.ctrl.reportError("Failed to restore default lessons", resetErr, map[string]interface{}{"gate": p.gate.Code})
			return
		}
		p.SetCatalog(cat)
	}, p.ctrl.window)
}

func (p *GatePanel) enterGate() {
	if p.catalog == nil {
		return
	}
	if p.gateWindow != nil {
		p.gateWindow.RequestFocus()
		return
	}

	win := p.ctrl.openGateWindow(p.gate, p.catalog)
	win.SetOnClosed(func() {
		p.gateWindow = nil
	})
	p.gateWindow = win
}

// CatalogSummary describes how many lessons each tier holds
func CatalogSummary(cat *lessons.Catalog) string {
	parts := make([]string, 0, len(lessons.Tiers()))
	for _, tier := range lessons.Tiers() {
		parts = append(parts, fmt.Sprintf("%s %d", tier.Title(), len(cat.Lessons(tier))))
	}
	return strings.Join(parts, " · ")
}
