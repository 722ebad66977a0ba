package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/sadopc/linkscan/internal/model"
	"github.com/sadopc/linkscan/internal/ops"
	"github.com/sadopc/linkscan/internal/ui/components"
	"github.com/sadopc/linkscan/internal/ui/style"
	"github.com/sadopc/linkscan/internal/walker"
)

// AppState represents the application state.
type AppState int

const (
	StateScanning AppState = iota
	StateBrowsing
	StateHelp
	StateExporting
)

// ScanDoneMsg is sent when scanning completes.
type ScanDoneMsg struct {
	Report *model.Report
	Err    error
}

// ExportDoneMsg is sent when export completes.
type ExportDoneMsg struct {
	Path string
	Err  error
}

type tickMsg time.Time

// App is the root Bubble Tea model.
type App struct {
	ScanPath    string
	ScanOptions walker.Options
	ImportPath  string
	ExportPath  string
	Version     string
	Log         zerolog.Logger

	state    AppState
	viewMode int
	width    int
	height   int

	report     *model.Report
	sortConfig model.SortConfig

	cursor int
	offset int

	imported bool

	scanProgress   walker.Progress
	progressMu     sync.Mutex
	latestProgress walker.Progress
	scanCancel     context.CancelFunc
	scanCancelMu   sync.Mutex
	spinnerFrame   int

	theme  style.Theme
	keys   KeyMap
	layout style.Layout

	statusMsg string
	fatalErr  error
}

func (a *App) setScanCancel(cancel context.CancelFunc) {
	a.scanCancelMu.Lock()
	a.scanCancel = cancel
	a.scanCancelMu.Unlock()
}

func (a *App) callScanCancel() {
	a.scanCancelMu.Lock()
	if a.scanCancel != nil {
		a.scanCancel()
	}
	a.scanCancelMu.Unlock()
}

// NewApp creates a new App model that scans scanPath.
func NewApp(scanPath string, opts walker.Options, log zerolog.Logger) *App {
	return &App{
		ScanPath:    scanPath,
		ScanOptions: opts,
		Log:         log,
		state:       StateScanning,
		viewMode:    components.ModeCycles,
		sortConfig:  model.DefaultSort(),
		theme:       style.DefaultTheme(),
		keys:        DefaultKeyMap(),
	}
}

// NewAppFromImport creates an App that loads a previously exported report.
func NewAppFromImport(importPath string, log zerolog.Logger) *App {
	return &App{
		ImportPath: importPath,
		Log:        log,
		state:      StateScanning,
		viewMode:   components.ModeCycles,
		sortConfig: model.DefaultSort(),
		imported:   true,
		theme:      style.DefaultTheme(),
		keys:       DefaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	if a.ImportPath != "" {
		return a.importCmd()
	}
	// Start both the scan AND the progress ticker simultaneously
	return tea.Batch(a.scanCmd(), a.tickCmd())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = style.NewLayout(msg.Width, msg.Height)
		return a, nil

	case ScanDoneMsg:
		if msg.Err != nil {
			// A canceled walk means the user already asked to quit; exiting
			// with an error would turn a deliberate q into exit code 1.
			if !errors.Is(msg.Err, context.Canceled) {
				a.fatalErr = msg.Err
			}
			return a, tea.Quit
		}
		a.fatalErr = nil
		a.report = msg.Report
		a.cursor = 0
		a.offset = 0
		a.state = StateBrowsing
		a.refreshSorted()
		return a, tea.ClearScreen

	case tickMsg:
		if a.state == StateScanning {
			// Read latest progress snapshot
			a.progressMu.Lock()
			a.scanProgress = a.latestProgress
			a.progressMu.Unlock()
			a.spinnerFrame++
			// Keep ticking while scanning
			return a, a.tickCmd()
		}
		return a, nil

	case ExportDoneMsg:
		a.state = StateBrowsing
		if msg.Err != nil {
			a.statusMsg = fmt.Sprintf("Export failed: %v", msg.Err)
		} else {
			a.statusMsg = fmt.Sprintf("Exported to %s", msg.Path)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.callScanCancel()
		return a, tea.Quit
	}

	switch a.state {
	case StateScanning:
		if key.Matches(msg, a.keys.Quit) {
			a.callScanCancel()
			return a, tea.Quit
		}
		return a, nil

	case StateHelp:
		if key.Matches(msg, a.keys.Help) || msg.String() == "esc" {
			a.state = StateBrowsing
			return a, tea.ClearScreen
		}
		return a, nil

	case StateBrowsing:
		return a.handleBrowsingKey(msg)
	}

	return a, nil
}

func (a *App) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.statusMsg = ""
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.state = StateHelp
		return a, tea.ClearScreen

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(msg, a.keys.PageUp):
		a.moveCursor(-a.layout.ContentHeight())
	case key.Matches(msg, a.keys.PageDown):
		a.moveCursor(a.layout.ContentHeight())

	case key.Matches(msg, a.keys.ViewCycles):
		a.viewMode = components.ModeCycles
		a.cursor = 0
		a.offset = 0
		return a, tea.ClearScreen
	case key.Matches(msg, a.keys.ViewGroups):
		a.viewMode = components.ModeGroups
		a.cursor = 0
		a.offset = 0
		return a, tea.ClearScreen

	case key.Matches(msg, a.keys.SortPath):
		a.toggleSort(model.SortByPath)
	case key.Matches(msg, a.keys.SortSize):
		a.toggleSort(model.SortBySize)
	case key.Matches(msg, a.keys.SortCount):
		if a.viewMode == components.ModeCycles {
			a.toggleSort(model.SortByDepth)
		} else {
			a.toggleSort(model.SortByCount)
		}

	case key.Matches(msg, a.keys.Export):
		return a, a.exportCmd()

	case key.Matches(msg, a.keys.Rescan):
		if a.imported {
			a.statusMsg = "Rescan is disabled in import mode"
			return a, nil
		}
		a.cursor = 0
		a.offset = 0
		a.state = StateScanning
		return a, tea.Batch(tea.ClearScreen, a.scanCmd(), a.tickCmd())
	}

	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	switch a.state {
	case StateScanning:
		return components.RenderScanProgress(a.theme, a.layout, a.ScanPath, a.scanProgress, a.spinnerFrame)

	case StateHelp:
		return components.RenderHelp(a.theme, a.layout)

	case StateBrowsing, StateExporting:
		return a.renderBrowsing()
	}

	return ""
}

func (a *App) renderBrowsing() string {
	if a.report == nil {
		return "Loading..."
	}

	header := components.RenderHeader(a.theme, a.layout, a.report.Root, a.report.Stats)
	tabBar := components.RenderTabBar(a.theme, a.layout, a.viewMode,
		len(a.report.Cycles), len(a.report.Groups))

	fl := &components.FindingList{
		Theme:  a.theme,
		Layout: a.layout,
		Cycles: a.report.Cycles,
		Groups: a.report.Groups,
		Mode:   a.viewMode,
		Cursor: a.cursor,
		Offset: a.offset,
	}
	fl.EnsureVisible()
	a.offset = fl.Offset
	content := fl.Render()

	statusBar := components.RenderStatusBar(a.theme, a.layout, a.cursor, fl.Len(), a.statusMsg)

	return header + "\n" + tabBar + "\n" + content + "\n" + statusBar
}

func (a *App) listLen() int {
	if a.report == nil {
		return 0
	}
	if a.viewMode == components.ModeGroups {
		return len(a.report.Groups)
	}
	return len(a.report.Cycles)
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	if a.cursor >= a.listLen() {
		a.cursor = a.listLen() - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) toggleSort(field model.SortField) {
	if a.sortConfig.Field == field {
		if a.sortConfig.Order == model.SortDesc {
			a.sortConfig.Order = model.SortAsc
		} else {
			a.sortConfig.Order = model.SortDesc
		}
	} else {
		a.sortConfig.Field = field
		a.sortConfig.Order = model.SortDesc
		if field == model.SortByPath {
			a.sortConfig.Order = model.SortAsc
		}
	}
	a.refreshSorted()
}

func (a *App) refreshSorted() {
	if a.report == nil {
		return
	}
	model.SortCycles(a.report.Cycles, a.sortConfig)
	model.SortGroups(a.report.Groups, a.sortConfig)
}

// scanCmd runs the walk in a background goroutine.
// Progress is communicated via a.latestProgress (mutex-protected).
func (a *App) scanCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		a.setScanCancel(cancel)

		progressCh := make(chan walker.Progress, 10)

		// Relay progress updates to shared state (read by tickMsg handler)
		go func() {
			for p := range progressCh {
				a.progressMu.Lock()
				a.latestProgress = p
				a.progressMu.Unlock()
			}
		}()

		w := walker.New(a.Log)
		report, err := w.Walk(ctx, a.ScanPath, a.ScanOptions, progressCh)
		close(progressCh)

		return ScanDoneMsg{Report: report, Err: err}
	}
}

func (a *App) importCmd() tea.Cmd {
	return func() tea.Msg {
		imp, err := ops.ImportJSON(a.ImportPath)
		if err != nil {
			return ScanDoneMsg{Err: err}
		}
		return ScanDoneMsg{Report: imp.Report}
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(60*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) exportCmd() tea.Cmd {
	if a.report == nil {
		return nil
	}

	exportPath := a.ExportPath
	if exportPath == "" {
		exportPath = "linkscan-report.json"
	}

	a.state = StateExporting
	report := a.report

	version := a.Version
	return func() tea.Msg {
		err := ops.ExportJSON(report, exportPath, version)
		return ExportDoneMsg{Path: exportPath, Err: err}
	}
}

// FatalError returns a fatal scan/import error, if any.
func (a *App) FatalError() error { return a.fatalErr }
