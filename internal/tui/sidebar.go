package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/rs/zerolog/log"

	"geotoggle/internal/click"
)

type featureItem struct {
	index    int
	name     string
	selected bool
}

func (f featureItem) Title() string {
	if f.selected {
		return "● " + f.name
	}
	return "○ " + f.name
}
func (f featureItem) Description() string { return fmt.Sprintf("#%d", f.index+1) }
func (f featureItem) FilterValue() string { return f.name }

// refreshFeatureList mirrors the store into the sidebar in store order.
func (m *Model) refreshFeatureList() {
	items := make([]list.Item, 0, m.store.Len())
	for i := 0; i < m.store.Len(); i++ {
		name := m.store.Name(i)
		if name == "" {
			name = "<unnamed>"
		}
		items = append(items, featureItem{index: i, name: name, selected: m.store.SelectedAt(i)})
	}
	m.l.SetItems(items)
}

// applyResult reports a toggle the way the map shows it: status line, sidebar
// markers and, when open, the attribute table.
func (m *Model) applyResult(res click.Result) {
	if !res.Handled {
		return
	}
	state := "deselected"
	if res.Selected {
		state = "selected"
	}
	m.status = fmt.Sprintf("%s %s", res.Name, state)
	if res.Toggled > 1 {
		m.status += fmt.Sprintf(" (%d features share this name)", res.Toggled)
	}
	m.refreshFeatureList()
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
	log.Info().Str("name", res.Name).Bool("selected", res.Selected).Msg("Selection changed")
}

// buildInspect summarises the collection and the current selection.
func (m Model) buildInspect() string {
	if m.store.Len() == 0 {
		return "no neighborhoods loaded"
	}
	b := m.store.Bound()
	sel := m.store.Selected()
	selText := "none"
	if len(sel) > 0 {
		selText = strings.Join(sel, ", ")
	}
	meta := []string{
		fmt.Sprintf("asset: %s", m.cfg.Asset),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.Min[0], b.Min[1], b.Max[0], b.Max[1]),
		fmt.Sprintf("neighborhoods: %d", m.store.Len()),
		fmt.Sprintf("match by: %s", m.cfg.MatchBy),
		fmt.Sprintf("selected: %s", selText),
	}
	if dups := m.store.Duplicates(); len(dups) > 0 {
		meta = append(meta, "shared names: "+strings.Join(dups, ", "))
	}
	return strings.Join(meta, "\n")
}
