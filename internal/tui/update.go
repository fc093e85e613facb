package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"geotoggle/internal/render"
	"geotoggle/internal/style"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mapReadyMsg:
		if m.stage != stageInitializing {
			return m, nil
		}
		m.stage = stageMapReady
		m.status = "map ready, loading style"
		return m, loadStyle
	case styleReadyMsg:
		if m.stage != stageMapReady {
			return m, nil
		}
		m.stage = stageStyleReady
		m.status = "tap on a neighborhood"
		log.Debug().Msg("Style ready")
		return m, m.startLoad()
	case assetLoadedMsg:
		return m, m.onAssetLoaded(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			lay := m.layout()
			m.l.SetSize(sidebarWidth-2, lay.contentH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelPending()
			return m, tea.Quit
		case "2":
			m.toggleLayer(style.LineLayerID, "outlines")
		case "3":
			m.toggleLayer(style.FillLayerID, "fills")
		case "l":
			// toggle both layers together
			fill := m.renderer.Layer(style.FillLayerID)
			line := m.renderer.Layer(style.LineLayerID)
			if fill == nil || line == nil {
				m.status = "no layers yet"
				break
			}
			show := fill.Hidden || line.Hidden
			m.renderer.SetVisible(style.FillLayerID, show)
			m.renderer.SetVisible(style.LineLayerID, show)
			m.status = fmt.Sprintf("layers: %v", show)
		case "+", "=":
			if m.renderer.Viewport().ZoomIn() {
				m.status = fmt.Sprintf("zoom: %.2fx", m.renderer.Viewport().Zoom)
			}
		case "-", "_":
			if m.renderer.Viewport().ZoomOut() {
				m.status = fmt.Sprintf("zoom: %.2fx", m.renderer.Viewport().Zoom)
			}
		case "f":
			if m.renderer.FitBounds() {
				m.status = "fit to neighborhoods"
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshFeatureList()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			if m.stage != stageStyleReady {
				m.status = "map not ready"
				break
			}
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "r":
			if m.stage != stageStyleReady {
				m.status = "map not ready"
				break
			}
			m.status = "reloading " + m.cfg.Asset
			return m, m.startLoad()
		case "esc":
			m.inspectPopup = ""
			m.showAttrs = false
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			if m.inspectPopup != "" {
				m.inspectPopup = ""
				break
			}
			m.inspectPopup = m.buildInspect()
			m.status = "inspect popup"
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(featureItem); ok {
					m.applyResult(m.router.Apply(render.Hit{Index: it.index}))
				}
			}
		case "up":
			m.renderer.Viewport().Pan(0, -1)
		case "down":
			m.renderer.Viewport().Pan(0, 1)
		case "left":
			m.renderer.Viewport().Pan(-2, 0)
		case "right":
			m.renderer.Viewport().Pan(2, 0)
		}
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.ta.Value())
		if text == "" {
			m.status = "paste: empty"
			return m, nil
		}
		// a pasted collection supersedes any pending asset read
		m.cancelPending()
		if err := m.applyData(text, "pasted GeoJSON"); err != nil {
			m.status = "geojson error: " + err.Error()
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	if cx < 0 || cx >= lay.mapW || cy < 0 || cy >= lay.mapH || m.pasteMode || m.showAttrs || m.inspectPopup != "" {
		m.hoverHasGeo = false
		m.hoverName = ""
		return
	}
	lon, lat, ok := m.renderer.Viewport().CellToLonLat(cx, cy, lay.mapW, lay.mapH)
	m.hoverHasGeo = ok
	m.hoverLon, m.hoverLat = lon, lat
	m.hoverName = ""
	if !ok {
		return
	}
	pt := orb.Point{lon, lat}
	if hits := m.renderer.QueryRenderedFeatures(pt, style.FillLayerID); len(hits) > 0 {
		m.hoverName = hits[0].Feature.Properties.MustString(m.store.NameProperty(), "")
	}

	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.renderer.Viewport().ZoomIn()
	case tea.MouseButtonWheelDown:
		m.renderer.Viewport().ZoomOut()
	case tea.MouseButtonLeft:
		if m.stage != stageStyleReady || !m.binder.Bound() {
			m.status = "map not ready"
			return
		}
		res := m.router.Tap(pt)
		if !res.Handled {
			m.status = fmt.Sprintf("no neighborhood at lon=%.5f lat=%.5f", lon, lat)
			return
		}
		m.applyResult(res)
	}
}

func (m *Model) toggleLayer(id, label string) {
	l := m.renderer.Layer(id)
	if l == nil {
		m.status = "no layers yet"
		return
	}
	m.renderer.SetVisible(id, l.Hidden)
	m.status = fmt.Sprintf("%s: %v", label, !l.Hidden)
}
