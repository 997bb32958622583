package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"jordanella.com/language-gates/internal/catalog"
	"jordanella.com/language-gates/internal/config"
	"jordanella.com/language-gates/internal/gui/components"
	"jordanella.com/language-gates/internal/lessons"
	"jordanella.com/language-gates/internal/logging"
)

// Controller owns the main window and one GatePanel per configured gate
type Controller struct {
	config *config.Config
	app    fyne.App
	window fyne.Window
	store  *catalog.Store

	logger   *logging.Logger
	reporter *logging.ErrorReporter
	eventBus *EventBus

	gates     map[string]*GatePanel
	gateOrder []string

	watcher *catalog.Watcher
}

// NewController creates a new GUI controller
func NewController(cfg *config.Config, app fyne.App, window fyne.Window, store *catalog.Store) *Controller {
	return newController(cfg, app, window, store, fyne.Do)
}

// newController lets tests replace the UI-thread dispatcher. window may be
// nil, in which case no dialogs are shown.
func newController(cfg *config.Config, app fyne.App, window fyne.Window, store *catalog.Store, dispatch func(func())) *Controller {
	ctrl := &Controller{
		config:   cfg,
		app:      app,
		window:   window,
		store:    store,
		logger:   logging.NewLogger("GUI"),
		eventBus: NewEventBus(dispatch),
		gates:    make(map[string]*GatePanel),
	}
	ctrl.reporter = logging.NewErrorReporter(ctrl.logger)

	for _, gate := range cfg.Gates {
		code, err := catalog.NormalizeCode(gate.Code)
		if err != nil {
			// Config.Validate rejects these; skip rather than crash
			ctrl.logger.Error("Skipping gate with invalid code", err)
			continue
		}
		ctrl.gates[code] = NewGatePanel(ctrl, gate)
		ctrl.gateOrder = append(ctrl.gateOrder, code)
	}

	ctrl.setupEventHandlers()
	return ctrl
}

// setupEventHandlers subscribes UI updates to background events
func (c *Controller) setupEventHandlers() {
	c.reporter.OnError(func(report *logging.ErrorReport) {
		if report.Severity == logging.ErrorSeverityHigh || report.Severity == logging.ErrorSeverityCritical {
			c.eventBus.Publish(Event{Type: EventTypeErrorReported, Err: report.Error, Message: report.Message})
		}
	})

	c.eventBus.Subscribe(EventTypeErrorReported, func(e Event) {
		if c.window != nil && e.Err != nil {
			dialog.ShowError(e.Err, c.window)
		}
	})

	c.eventBus.Subscribe(EventTypeCatalogReloaded, func(e Event) {
		if panel, ok := c.gates[e.Code]; ok {
			panel.SetCatalog(e.Catalog)
		}
	})

	c.eventBus.Subscribe(EventTypeCatalogFailed, func(e Event) {
		if panel, ok := c.gates[e.Code]; ok {
			panel.ShowError(e.Err)
		}
	})
}

// BuildUI loads every gate and lays the panels out in a grid
func (c *Controller) BuildUI() fyne.CanvasObject {
	panels := make([]fyne.CanvasObject, 0, len(c.gateOrder))
	for _, code := range c.gateOrder {
		panel := c.gates[code]
		panel.Load()
		panels = append(panels, panel.Container())
	}

	columns := 2
	if len(panels) < columns {
		columns = 1
	}

	return container.NewBorder(
		components.Heading("Language Gates"),
		nil, nil, nil,
		container.NewVScroll(container.NewGridWithColumns(columns, panels...)),
	)
}

// Gate returns the panel for a language code
func (c *Controller) Gate(code string) (*GatePanel, bool) {
	normalized, err := catalog.NormalizeCode(code)
	if err != nil {
		return nil, false
	}
	panel, ok := c.gates[normalized]
	return panel, ok
}

// OnCatalogChanged is the catalog.ChangeFunc wired to the file watcher. It
// may be called from any goroutine.
func (c *Controller) OnCatalogChanged(code string, cat *lessons.Catalog, err error) {
	c.eventBus.Publish(CatalogChanged(code, cat, err))
}

func (c *Controller) reportError(message string, err error, context map[string]interface{}) {
	c.reporter.ReportError(logging.ErrorCategoryStorage, logging.ErrorSeverityHigh, "GUI", message, err, context)
}

// reportCatalogError records a malformed catalog without the generic error
// dialog; the gate panel asks the user directly
func (c *Controller) reportCatalogError(message string, err error, context map[string]interface{}) {
	c.reporter.ReportError(logging.ErrorCategoryCatalog, logging.ErrorSeverityMedium, "GUI", message, err, context)
}

// AttachWatcher hands the catalog watcher to the controller so it is
// stopped on shutdown
func (c *Controller) AttachWatcher(w *catalog.Watcher) {
	c.watcher = w
}

// Shutdown stops background work
func (c *Controller) Shutdown() {
	if c.watcher != nil {
		c.watcher.Stop()
	}
	c.logger.Info("Shutting down")
}
