package view

import "sync"

// Component is anything the Host can drive. Change and Update report whether
// the component wants a fresh render pass.
type Component[P any] interface {
	Change(props P) bool
	Update(msg Msg) bool
	View() Node
}

// Host owns one component instance and serializes every entry point into it
// the way a UI render loop would.
type Host[P any] struct {
	mu      sync.Mutex
	comp    Component[P]
	tree    Node
	renders int
}

// Mount renders c once and returns its host.
func Mount[P any](c Component[P]) *Host[P] {
	h := &Host[P]{comp: c}
	h.render()
	return h
}

func (h *Host[P]) render() {
	h.tree = h.comp.View()
	h.renders++
}

// SetProps delivers new props from the parent.
func (h *Host[P]) SetProps(props P) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.comp.Change(props) {
		h.render()
	}
}

// Send delivers a message to the component.
func (h *Host[P]) Send(msg Msg) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.comp.Update(msg) {
		h.render()
	}
}

// Invalidate forces a redraw regardless of what the component reports.
func (h *Host[P]) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.render()
}

// Tree returns the most recently rendered tree.
func (h *Host[P]) Tree() Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tree
}

// Renders returns how many render passes have run.
func (h *Host[P]) Renders() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renders
}

// Dispatch delivers an event against the current tree. Handlers run outside
// the host lock so they may call back into the host.
func (h *Host[P]) Dispatch(p Path, kind EventKind) (bool, error) {
	return Dispatch(h.Tree(), p, kind)
}
