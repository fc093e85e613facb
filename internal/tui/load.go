package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// mapReadyMsg ends phase one: the renderer exists and can take a style.
type mapReadyMsg struct{}

// styleReadyMsg ends phase two: sources and layers may now be added.
type styleReadyMsg struct{}

// assetLoadedMsg carries a finished read back to Update. ctx identifies the
// load it belongs to so stale results can be dropped.
type assetLoadedMsg struct {
	ctx  context.Context
	name string
	text string
	err  error
}

func loadStyle() tea.Msg { return styleReadyMsg{} }

// startLoad cancels any pending read and starts a new one off the UI loop.
func (m *Model) startLoad() tea.Cmd {
	m.cancelPending()
	ctx, cancel := context.WithCancel(context.Background())
	m.loadCtx, m.cancelLoad = ctx, cancel
	loader, name := m.loader, m.cfg.Asset
	log.Debug().Str("asset", name).Msg("Loading asset")
	return func() tea.Msg {
		text, err := loader.Load(ctx, name)
		return assetLoadedMsg{ctx: ctx, name: name, text: text, err: err}
	}
}

func (m *Model) cancelPending() {
	if m.cancelLoad != nil {
		m.cancelLoad()
		m.cancelLoad = nil
	}
}

// onAssetLoaded applies a finished read unless it was cancelled or superseded.
func (m *Model) onAssetLoaded(msg assetLoadedMsg) tea.Cmd {
	if msg.ctx != m.loadCtx || msg.ctx.Err() != nil {
		log.Debug().Str("asset", msg.name).Msg("Dropping stale asset load")
		return nil
	}
	m.cancelPending()
	if msg.err == nil {
		msg.err = m.applyData(msg.text, msg.name)
	}
	if msg.err == nil {
		return nil
	}
	log.Error().Err(msg.err).Str("asset", msg.name).Bool("strict", m.cfg.StrictLoad).Msg("Failed to load neighborhoods")
	if m.cfg.StrictLoad {
		m.err = fmt.Errorf("load %s: %w", msg.name, msg.err)
		return tea.Quit
	}
	m.status = "load error: " + msg.err.Error()
	return nil
}

// applyData replaces the collection and pushes it to the renderer. The
// renderer must have reached the style-ready stage.
func (m *Model) applyData(text, label string) error {
	if m.stage != stageStyleReady {
		return fmt.Errorf("map is %s", m.stage)
	}
	if err := m.store.LoadFrom(text); err != nil {
		return err
	}
	if dups := m.store.Duplicates(); len(dups) > 0 {
		log.Warn().Strs("names", dups).Str("match_by", m.cfg.MatchBy).Msg("Neighborhood names are not unique")
	}
	if err := m.binder.Bind(m.store); err != nil {
		return err
	}
	m.renderer.FitBounds()
	m.refreshFeatureList()
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
	m.status = fmt.Sprintf("loaded: %s  neighborhoods=%d  tap one to select it", label, m.store.Len())
	log.Info().Str("source", label).Int("features", m.store.Len()).Msg("Neighborhoods loaded")
	return nil
}
