package display

import "strings"

// Panel is the terminal backend for one live region. Start is called once,
// Update with the full (already line-limited) text to draw, Stop when the
// region is done. Tests substitute a recording implementation.
type Panel interface {
	Start(title string)
	Update(text string)
	Stop()
}

// PanelFactory builds panels; the production factory returns ANSI panels
// bound to the renderer's writer.
type PanelFactory func() Panel

const defaultRegionTitle = "Content"

// RegionManager owns the live-updating display regions, keyed by tool block
// id. All operations are total over the key space: unknown keys mean "not
// yet open", never an error.
type RegionManager struct {
	factory PanelFactory
	regions map[string]*region
}

type region struct {
	panel     Panel
	full      strings.Builder
	lastDrawn string
	drawn     bool
}

func NewRegionManager(factory PanelFactory) *RegionManager {
	return &RegionManager{
		factory: factory,
		regions: map[string]*region{},
	}
}

// Open starts an empty region for key; a no-op if one already exists.
func (m *RegionManager) Open(key, title string) {
	if _, ok := m.regions[key]; ok {
		return
	}
	reg := &region{panel: m.factory()}
	reg.panel.Start(title)
	m.regions[key] = reg
}

// Append adds chunk to the region's accumulated text and redraws, opening
// the region with a default title first if needed. The redraw is suppressed
// when the limited view is unchanged, e.g. growth confined to lines already
// hidden by the limit.
func (m *RegionManager) Append(key, chunk string, maxLines int) {
	reg, ok := m.regions[key]
	if !ok {
		m.Open(key, defaultRegionTitle)
		reg = m.regions[key]
	}
	reg.full.WriteString(chunk)
	limited := ApplyLimit(reg.full.String(), maxLines)
	if reg.drawn && limited == reg.lastDrawn {
		return
	}
	reg.lastDrawn = limited
	reg.drawn = true
	reg.panel.Update(limited)
}

// Close stops and discards the region for key; safe when key is absent.
func (m *RegionManager) Close(key string) {
	reg, ok := m.regions[key]
	if !ok {
		return
	}
	reg.panel.Stop()
	delete(m.regions, key)
}

// CloseAll tears down every open region; used as turn-end cleanup.
func (m *RegionManager) CloseAll() {
	for key := range m.regions {
		m.Close(key)
	}
}

func (m *RegionManager) IsOpen(key string) bool {
	_, ok := m.regions[key]
	return ok
}
