package tui

import (
	"context"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geotoggle/internal/asset"
	"geotoggle/internal/click"
	"geotoggle/internal/config"
	"geotoggle/internal/feature"
	"geotoggle/internal/render"
	"geotoggle/internal/style"
)

// stage tracks the map's two-phase initialisation.
type stage int

const (
	stageInitializing stage = iota
	stageMapReady
	stageStyleReady
)

func (s stage) String() string {
	switch s {
	case stageInitializing:
		return "initializing"
	case stageMapReady:
		return "map ready"
	case stageStyleReady:
		return "style ready"
	}
	return "unknown"
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string
	stage  stage
	// err is a fatal setup failure; the program quits when it is set.
	err error

	cfg      config.Config
	loader   *asset.Loader
	store    *feature.Store
	renderer *render.Renderer
	binder   *style.Binder
	router   *click.Router

	// pending asset load; cancelled on reload, paste and quit
	loadCtx    context.Context
	cancelLoad context.CancelFunc

	// feature sidebar
	l list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverName   string

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New wires the controller: store, renderer, style binder and click router.
// Nothing is loaded until the style is ready.
func New(cfg config.Config, loader *asset.Loader) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		status:      "geotoggle starting",
		cfg:         cfg,
		loader:      loader,
	}
	m.store = feature.NewStore(cfg.NameProperty)
	m.renderer = render.New()
	m.binder = style.NewBinder(m.renderer, cfg.Style.Rule())
	mode, _ := click.ParseMatchMode(cfg.MatchBy)
	m.router = click.NewRouter(m.renderer, m.store, m.binder, style.FillLayerID, mode)

	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Neighborhoods"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a GeoJSON FeatureCollection here. Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns are inferred from the features)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

// Init starts phase one of the map handshake.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return mapReadyMsg{} }
}

// Err returns the failure that stopped the program, if any.
func (m Model) Err() error { return m.err }

// Store exposes the selection state, mainly for the caller after exit.
func (m Model) Store() *feature.Store { return m.store }
