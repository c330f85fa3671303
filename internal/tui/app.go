// internal/tui/app.go
//
// This is the main TUI for staffdesk. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: the App struct below (store, form, pages, status)
// 2. Update: turns key presses and command results into state changes
// 3. View: renders the current state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingrea/staffdesk/internal/config"
	"github.com/kingrea/staffdesk/internal/export"
	"github.com/kingrea/staffdesk/internal/logbook"
	"github.com/kingrea/staffdesk/internal/logging"
	"github.com/kingrea/staffdesk/internal/staff"
)

// page represents which screen is showing.
type page int

const (
	pageEntry   page = iota // staff entry form
	pageRecords             // records table with search
	pageCharts              // aggregate charts
	pageCount
)

var pageTitles = [pageCount]string{
	pageEntry:   "Add Staff",
	pageRecords: "Records",
	pageCharts:  "Charts",
}

const (
	exportTimeout  = 30 * time.Second
	logPanelLines  = 6
	sidePanelWidth = 34
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarn
	statusError
)

type exportFinishedMsg struct {
	result export.Result
	err    error
}

type configChangedMsg struct{}

type configWatchErrMsg struct {
	err error
}

type configWatchClosedMsg struct{}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithLogger routes diagnostics to logger.
func WithLogger(logger *logging.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLogbook overrides the session journal.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		if lb != nil {
			a.logbook = lb
		}
	}
}

// WithConfigWatcher enables live reload from w. The caller owns w and
// closes it after the program exits.
func WithConfigWatcher(w *config.Watcher) AppOption {
	return func(a *App) {
		a.watcher = w
	}
}

// WithStore seeds the app with an existing store.
func WithStore(store *staff.Store) AppOption {
	return func(a *App) {
		if store != nil {
			a.store = store
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	page    page
	config  *config.Config
	store   *staff.Store
	logbook *logbook.Logbook
	logger  *logging.Logger
	watcher *config.Watcher

	// UI components
	form    staffForm
	records recordsView
	charts  chartsView
	keys    keyMap
	help    help.Model
	styles  styles

	statusMsg  string
	statusKind statusKind
	exporting  bool

	// Activity panel cache
	logTail  []string
	logTotal int

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App instance over cfg.
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, errors.New("tui: config is required")
	}
	app := &App{
		page:   pageEntry,
		config: cfg,
		store:  staff.NewStore(),
		logger: logging.Nop(),
		form:   newStaffForm(),
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.logbook == nil {
		lb, err := logbook.New(cfg.JournalPath(), uuid.NewString())
		if err != nil {
			return nil, fmt.Errorf("tui: open journal: %w", err)
		}
		app.logbook = lb
	}
	app.styles = newStyles(cfg.Project.UI.Theme)
	app.records = newRecordsView(cfg.Project.UI.TableHeight)
	app.charts = newChartsView(80, 20, cfg.Project.Charts.HistogramBins, cfg.Project.Charts.BarWidth)
	app.refreshData()

	app.logInfo("Session opened · %s", app.logbook.Session())
	app.logger.Info("session opened",
		zap.String("session", app.logbook.Session()),
		zap.String("work_dir", cfg.WorkDir),
	)
	app.setStatus(statusInfo, "Fill in the form and press ctrl+s to add a staff member")
	return app, nil
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
	a.refreshLogTail()
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
	a.refreshLogTail()
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
	a.refreshLogTail()
}

// refreshLogTail re-reads the journal tail shown in the activity panel. It
// runs only after the app writes an entry, never from View.
func (a *App) refreshLogTail() {
	a.logTail, a.logTotal = a.logbook.Tail(logPanelLines)
}

func (a *App) setStatus(kind statusKind, format string, args ...any) {
	a.statusKind = kind
	a.statusMsg = fmt.Sprintf(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("staffdesk"), waitForConfigChange(a.watcher))
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case exportFinishedMsg:
		a.exporting = false
		a.handleExportResult(msg)
		return a, nil

	case configChangedMsg:
		a.applyConfigReload()
		return a, waitForConfigChange(a.watcher)

	case configWatchErrMsg:
		a.logger.Warn("config watcher error", zap.Error(msg.err))
		return a, waitForConfigChange(a.watcher)

	case configWatchClosedMsg:
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.logInfo("Session closed · %d record(s) discarded", a.store.Len())
			return a, tea.Quit
		case key.Matches(msg, a.keys.Entry):
			return a, a.switchPage(pageEntry)
		case key.Matches(msg, a.keys.Records):
			return a, a.switchPage(pageRecords)
		case key.Matches(msg, a.keys.Charts):
			return a, a.switchPage(pageCharts)
		case key.Matches(msg, a.keys.NextPage):
			return a, a.switchPage((a.page + 1) % pageCount)
		case key.Matches(msg, a.keys.Export):
			return a, a.startExport()
		case key.Matches(msg, a.keys.Clear):
			a.clearRecords()
			return a, nil
		}
		switch a.page {
		case pageEntry:
			return a, a.updateEntryKeys(msg)
		case pageRecords:
			return a, a.updateRecordsKeys(msg)
		}
	}

	switch a.page {
	case pageEntry:
		return a, a.form.update(msg)
	case pageRecords:
		cmd, changed := a.records.update(msg)
		if changed {
			a.records.refresh(a.store)
		}
		return a, cmd
	case pageCharts:
		return a, a.charts.update(msg)
	}
	return a, nil
}

func (a *App) updateEntryKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Submit):
		return a.submit()
	case key.Matches(msg, a.keys.Next):
		return a.form.next()
	case key.Matches(msg, a.keys.Prev):
		return a.form.prev()
	case msg.Type == tea.KeyEnter:
		switch a.form.focus {
		case fieldSubmit:
			return a.submit()
		case fieldExtra, fieldNonProductive:
		default:
			return a.form.next()
		}
	}
	return a.form.update(msg)
}

func (a *App) updateRecordsKeys(msg tea.KeyMsg) tea.Cmd {
	if a.records.searching {
		if key.Matches(msg, a.keys.Back) || msg.Type == tea.KeyEnter {
			a.records.blurSearch()
			return nil
		}
	} else if key.Matches(msg, a.keys.Search) {
		return a.records.focusSearch()
	}
	cmd, changed := a.records.update(msg)
	if changed {
		a.records.refresh(a.store)
	}
	return cmd
}

func (a *App) switchPage(p page) tea.Cmd {
	if p == a.page {
		return nil
	}
	a.page = p
	switch p {
	case pageEntry:
		return a.form.setFocus(a.form.focus)
	case pageRecords:
		a.records.refresh(a.store)
	case pageCharts:
		a.charts.refresh(a.store.All(), a.styles)
	}
	return nil
}

// submit validates the form and appends one record. Nothing is stored when
// any field fails.
func (a *App) submit() tea.Cmd {
	rec, err := a.form.record()
	if err != nil {
		a.setStatus(statusError, "⚠ %v", err)
		a.logWarn("Entry rejected · %v", err)
		a.logger.Debug("entry rejected", zap.Error(err))
		return nil
	}
	stored := a.store.Append(rec)
	a.refreshData()
	a.setStatus(statusSuccess, "✓ Staff member added: %s (score %.1f)", displayName(stored), stored.ProductiveScore)
	a.logInfo("Added %s · ID %d · score %.1f", displayName(stored), stored.StaffID, stored.ProductiveScore)
	a.logger.Info("record appended",
		zap.Int("staff_id", stored.StaffID),
		zap.String("role", string(stored.Role)),
		zap.Float64("score", stored.ProductiveScore),
		zap.Int("records", a.store.Len()),
	)
	return a.form.reset()
}

func (a *App) startExport() tea.Cmd {
	if a.exporting {
		a.setStatus(statusInfo, "Export already running...")
		return nil
	}
	records := a.store.All()
	if len(records) == 0 {
		a.setStatus(statusWarn, "Nothing to export yet. Add a staff member first.")
		a.logWarn("Export skipped · no records")
		return nil
	}
	a.exporting = true
	a.setStatus(statusInfo, "Exporting %d record(s)...", len(records))
	return exportCmd(export.Request{
		Dir:      a.config.ExportDir(),
		BaseName: a.config.Project.Export.FileName,
		Formats:  a.config.ExportFormats(),
		Records:  records,
	})
}

func exportCmd(req export.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()
		result, err := export.Run(ctx, req)
		return exportFinishedMsg{result: result, err: err}
	}
}

func (a *App) handleExportResult(msg exportFinishedMsg) {
	switch {
	case errors.Is(msg.err, export.ErrNoRecords):
		a.setStatus(statusWarn, "Nothing to export yet. Add a staff member first.")
		a.logWarn("Export skipped · no records")
	case msg.err != nil:
		a.setStatus(statusError, "⚠ Export failed: %v", msg.err)
		a.logError("Export failed · %v", msg.err)
		a.logger.Error("export failed", zap.Error(msg.err))
	default:
		names := make([]string, len(msg.result.Paths))
		for i, path := range msg.result.Paths {
			names[i] = filepath.Base(path)
		}
		a.setStatus(statusSuccess, "✓ Exported %d record(s) to %s", msg.result.Count, strings.Join(names, ", "))
		a.logInfo("Exported %d record(s) · %s", msg.result.Count, strings.Join(names, ", "))
		a.logger.Info("export written",
			zap.Int("records", msg.result.Count),
			zap.Strings("paths", msg.result.Paths),
		)
	}
}

// clearRecords empties the store. There is no confirmation and no undo.
func (a *App) clearRecords() {
	dropped := a.store.Clear()
	a.refreshData()
	a.setStatus(statusWarn, "All data cleared (%d record(s) removed)", dropped)
	a.logWarn("Cleared all data · %d record(s) removed", dropped)
	a.logger.Warn("store cleared", zap.Int("dropped", dropped))
}

// refreshData re-derives the table and charts from the store.
func (a *App) refreshData() {
	a.records.refresh(a.store)
	if a.page == pageCharts {
		a.charts.refresh(a.store.All(), a.styles)
	}
}

func (a *App) applyConfigReload() {
	if err := a.config.Reload(); err != nil {
		a.setStatus(statusError, "⚠ Config not reloaded: %v", err)
		a.logWarn("Config reload failed · %v", err)
		a.logger.Warn("config reload failed", zap.Error(err))
		return
	}
	project := a.config.Project
	a.styles = newStyles(project.UI.Theme)
	a.charts.setShape(project.Charts.HistogramBins, project.Charts.BarWidth)
	a.resize()
	a.refreshData()
	a.setStatus(statusInfo, "Config reloaded")
	a.logInfo("Config reloaded · theme %s · %d bins", project.UI.Theme, project.Charts.HistogramBins)
	a.logger.Info("config reloaded", zap.String("path", a.config.ConfigPath()))
}

func waitForConfigChange(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return configWatchClosedMsg{}
			}
			return configChangedMsg{}
		case err := <-w.Errors():
			return configWatchErrMsg{err: err}
		}
	}
}

func (a *App) resize() {
	mainWidth, _ := a.layoutWidths()
	a.form.setWidth(mainWidth - 4)
	tableHeight := a.config.Project.UI.TableHeight
	if a.height > 0 {
		tableHeight = min(tableHeight, max(3, a.height-22))
	}
	a.records.setSize(mainWidth-4, tableHeight)
	chartsHeight := 20
	if a.height > 0 {
		chartsHeight = max(5, a.height-18)
	}
	a.charts.setSize(mainWidth-4, chartsHeight)
	a.help.Width = a.width
	if a.page == pageCharts {
		a.charts.refresh(a.store.All(), a.styles)
	}
}

func (a *App) layoutWidths() (int, int) {
	width := a.width
	if width <= 0 {
		width = 120
	}
	rightWidth := sidePanelWidth
	leftWidth := width - rightWidth - 4
	if leftWidth < 60 {
		return width - 2, 0
	}
	return leftWidth, rightWidth
}

// View renders the current state to a string.
func (a *App) View() string {
	leftWidth, rightWidth := a.layoutWidths()
	var content string
	switch a.page {
	case pageEntry:
		content = a.form.view(a.styles)
	case pageRecords:
		content = a.records.view(a.styles)
	case pageCharts:
		content = a.charts.view()
	}
	return a.renderStatusBoard(content, leftWidth, rightWidth)
}

func (a *App) renderStatusBoard(mainContent string, leftWidth, rightWidth int) string {
	st := a.styles
	header := st.Header.Render("◆ STAFFDESK · Staff Productivity")
	leftBox := st.Box.
		Width(max(20, leftWidth)).
		Render(lipgloss.JoinVertical(lipgloss.Left, a.renderTabs(), "", mainContent))
	body := leftBox
	if rightWidth > 0 {
		rightBox := st.Box.
			Width(rightWidth).
			Render(a.renderSessionPanel(rightWidth - 4))
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	}
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderStatusLine(), a.help.View(pageKeys{keys: a.keys, page: a.page}))
	return strings.Join(sections, "\n")
}

func (a *App) renderTabs() string {
	tabs := make([]string, pageCount)
	for p := page(0); p < pageCount; p++ {
		label := fmt.Sprintf("F%d %s", p+1, pageTitles[p])
		if p == a.page {
			tabs[p] = a.styles.TabOn.Render(label)
		} else {
			tabs[p] = a.styles.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a *App) renderSessionPanel(width int) string {
	st := a.styles
	records := a.store.All()
	summary := staff.Summarize(records)
	session := a.logbook.Session()
	if len(session) > 8 {
		session = session[:8]
	}
	formats := make([]string, 0, 2)
	for _, f := range a.config.ExportFormats() {
		formats = append(formats, string(f))
	}
	lines := []string{
		st.Title.Render("SESSION"),
		fmt.Sprintf("ID: %s", session),
		fmt.Sprintf("Records: %d", summary.Count),
	}
	if summary.Count > 0 {
		lines = append(lines,
			fmt.Sprintf("Mean score: %.1f", summary.MeanScore),
			fmt.Sprintf("Best score: %.1f", summary.MaxScore),
		)
	}
	lines = append(lines,
		"",
		st.Title.Render("EXPORT"),
		fmt.Sprintf("Dir: %s", a.relativeToWorkDir(a.config.ExportDir())),
		fmt.Sprintf("File: %s.{%s}", a.config.Project.Export.FileName, strings.Join(formats, ",")),
	)
	if a.exporting {
		lines = append(lines, st.Warning.Render("Export running..."))
	}
	if a.store.Len() == 0 {
		lines = append(lines, st.Muted.Render("Export unavailable: no records"))
	}
	return lipgloss.NewStyle().Width(max(20, width)).Render(strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logTail, a.logTotal
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "journal"
	}
	head := a.styles.Title.Render(fmt.Sprintf("LOG · %s · %d entr(ies) this session", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(a.styles.colors.Text).
		Render(strings.Join(lines, "\n"))
	return a.styles.Box.Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderStatusLine() string {
	style := a.styles.Muted
	switch a.statusKind {
	case statusSuccess:
		style = a.styles.Success
	case statusWarn:
		style = a.styles.Warning
	case statusError:
		style = a.styles.Error
	}
	return style.MarginTop(1).Render(a.statusMsg)
}

func (a *App) relativeToWorkDir(path string) string {
	if rel, err := filepath.Rel(a.config.WorkDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func displayName(r staff.Record) string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	return "(unnamed)"
}
