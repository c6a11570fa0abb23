// Package inventory is the container controller: it mirrors the open modal
// container's slot collections from the authoritative server, predicts slot
// clicks locally for instant feedback, and reconciles server pushes back
// into the mirror with per-slot redraws.
package inventory

import (
	"sync"

	"github.com/voxelgate/client/pkg/client"
	"github.com/voxelgate/client/pkg/client/modules/pointer"
	"github.com/voxelgate/client/pkg/items"
	"github.com/voxelgate/client/pkg/wire"
)

// Renderer is the opaque rendering backend. Implementations draw one slot
// widget at a time; layout and styling live entirely behind this interface.
// Indices are 0-based within their collection.
type Renderer interface {
	RenderSlot(kind wire.SourceKind, index int, stack items.ItemStack)
	RenderCursor(stack items.ItemStack)
	// Refresh redraws everything, called after a full rehydrate.
	Refresh()
	// Clear tears the container view down.
	Clear()
}

// overlayController is the capability the input module provides for scoped
// cursor-mode + gameplay-lock acquisition.
type overlayController interface {
	BeginOverlay(source string, opts pointer.Options) func()
}

type Module struct {
	client *client.Client
	mu     sync.RWMutex

	container *containerState
	cursor    items.ItemStack
	renderer  Renderer

	onContainerOpen  []func(id int64, menu wire.Menu)
	onContainerClose []func(id int64)
	onSlotUpdate     []func(kind wire.SourceKind, index int, stack items.ItemStack)
}

func New() *Module { return &Module{} }

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) { m.client = c }

func (m *Module) Reset() {
	m.mu.Lock()
	release := func() {}
	if m.container != nil {
		release = m.container.release
	}
	m.container = nil
	m.cursor = items.ItemStack{}
	m.mu.Unlock()

	release()
	m.render().Clear()
}

// From returns the registered inventory module, or nil.
func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

// SetRenderer installs the rendering backend. A nil renderer is valid for
// headless use.
func (m *Module) SetRenderer(r Renderer) {
	m.mu.Lock()
	m.renderer = r
	m.mu.Unlock()
}

// events

func (m *Module) OnContainerOpen(cb func(id int64, menu wire.Menu)) {
	m.onContainerOpen = append(m.onContainerOpen, cb)
}

func (m *Module) OnContainerClose(cb func(id int64)) {
	m.onContainerClose = append(m.onContainerClose, cb)
}

func (m *Module) OnSlotUpdate(cb func(kind wire.SourceKind, index int, stack items.ItemStack)) {
	m.onSlotUpdate = append(m.onSlotUpdate, cb)
}

func (m *Module) HandlePush(p *wire.Push) {
	switch p.Type {
	case wire.TypeContainerOpened:
		m.handleOpened(p)
	case wire.TypeContainerUpdated:
		m.handleUpdated(p)
	case wire.TypeContainerActionResult:
		m.handleActionResult(p)
	case wire.TypeContainerClosed:
		m.handleClosed(p)
	case wire.TypeContainerContentsUpdate:
		m.handleContentsUpdate(p)
	}
}

// render returns the current renderer, or a no-op one.
func (m *Module) render() Renderer {
	m.mu.RLock()
	r := m.renderer
	m.mu.RUnlock()
	if r == nil {
		return nopRenderer{}
	}
	return r
}

// renderSlot draws one slot and fires the slot-update callbacks.
func (m *Module) renderSlot(kind wire.SourceKind, index int, stack items.ItemStack) {
	m.render().RenderSlot(kind, index, stack)
	for _, cb := range m.onSlotUpdate {
		cb(kind, index, stack)
	}
}

type nopRenderer struct{}

func (nopRenderer) RenderSlot(wire.SourceKind, int, items.ItemStack) {}
func (nopRenderer) RenderCursor(items.ItemStack)                     {}
func (nopRenderer) Refresh()                                         {}
func (nopRenderer) Clear()                                           {}

// beginOverlay acquires the paired pointer-mode and gameplay-lock entries
// for an opening modal via the input module, falling back to a no-op release
// when the module is absent.
func (m *Module) beginOverlay(source string) func() {
	if mod := m.client.Module("input"); mod != nil {
		if oc, ok := mod.(overlayController); ok {
			show := true
			return oc.BeginOverlay(source, pointer.Options{ShowIcon: &show})
		}
	}
	m.client.Logger.Printf("inventory: no input module, %s opens without pointer arbitration", source)
	return func() {}
}
