package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW int
	contentH int
	mapX     int
	mapY     int
	mapW     int
	mapH     int
}

func (m Model) layout() layout {
	var lay layout
	lay.contentH = max(4, m.height-headerHeight-footerHeight)
	lay.contentW = max(10, m.width)
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		lay.mapX = sidebarWidth + 1
	}
	lay.mapY = headerHeight
	lay.mapW = max(10, lay.contentW-sw-1)
	lay.mapH = lay.contentH
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	// Header
	header := titleStyle.Render(" geotoggle ─ neighborhood selection ")
	header = lipgloss.NewStyle().Width(lay.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		// Render attributes table centered in the map area
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lay.contentW-6)
		}
		maxW := min(lay.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.inspectPopup != "":
		maxPopupW := max(20, min(48, lay.mapW))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Left, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	case m.stage != stageStyleReady:
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, dimStyle.Render(m.stage.String()+"…"))
	default:
		// plain map canvas: no border, no background highlight
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.renderer.Draw(lay.mapW, lay.mapH))
	}

	// Body row
	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	// hovered neighborhood and mouse coords at bottom-right
	coords := ""
	if m.hoverHasGeo {
		where := fmt.Sprintf("lon=%.5f lat=%.5f", m.hoverLon, m.hoverLat)
		if m.hoverName != "" {
			where = m.hoverName + "  " + where
		}
		coords = dimStyle.Render("  " + where + "  ")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, lay.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lay.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click select",
		"↑↓←→ pan",
		"+/- zoom",
		"Tab list",
		"Enter toggle",
		"p paste",
		"a attrs",
		"i inspect",
		"l layers",
		"r reload",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
