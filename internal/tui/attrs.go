package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"

	"geotoggle/internal/feature"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the store
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// If there are no columns or rows, disable attributes view to avoid rendering panics
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for ci, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			w = max(w, len(r[ci])+2)
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, fmt.Sprintf("%d", i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes unions property keys across features. The name and
// selection columns lead; the rest are sorted.
func (m *Model) buildAttributes() ([]string, [][]string) {
	n := m.store.Len()
	if n == 0 {
		return nil, nil
	}
	nameProp := m.store.NameProperty()
	seen := map[string]bool{nameProp: true, feature.PropSelected: true}
	var rest []string
	for i := 0; i < n; i++ {
		for k := range m.store.Properties(i) {
			if !seen[k] {
				seen[k] = true
				rest = append(rest, k)
			}
		}
	}
	sort.Strings(rest)
	order := append([]string{nameProp, feature.PropSelected}, rest...)

	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		pm := m.store.Properties(i)
		vals := make([]string, 0, len(order))
		for _, k := range order {
			vals = append(vals, formatValue(pm[k]))
		}
		rows = append(rows, vals)
	}
	return order, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
