package inventory

import (
	"github.com/voxelgate/client/pkg/items"
	"github.com/voxelgate/client/pkg/wire"
)

// containerState is the mirror of one open modal container. Only one modal
// is ever open at a time; opening a new one tears the previous mirror down.
type containerState struct {
	id        int64
	menu      wire.Menu
	contents  []items.ItemStack
	inventory [InventorySlots]items.ItemStack
	hotbar    [HotbarSlots]items.ItemStack

	// release pops the cursor-mode and gameplay-lock entries acquired when
	// the modal opened. Safe to call more than once.
	release func()
}

// collection returns the backing slice for a named collection, or nil for an
// unknown kind. Must be called under m.mu.
func (c *containerState) collection(kind wire.SourceKind) []items.ItemStack {
	switch kind {
	case wire.SourceContainer:
		return c.contents
	case wire.SourceInventory:
		return c.inventory[:]
	case wire.SourceHotbar:
		return c.hotbar[:]
	}
	return nil
}

// accessors

// Open reports whether a container is currently open.
func (m *Module) Open() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.container != nil
}

// ContainerID returns the open container's id, or -1 if none.
func (m *Module) ContainerID() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.container == nil {
		return -1
	}
	return m.container.id
}

// Menu returns the open container's menu kind, or "" if none.
func (m *Module) Menu() wire.Menu {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.container == nil {
		return ""
	}
	return m.container.menu
}

// ContainerSlotCount returns the container-side slot count, or 0 if none is
// open.
func (m *Module) ContainerSlotCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.container == nil {
		return 0
	}
	return len(m.container.contents)
}

// Slot returns the stack at a 0-based index of the named collection. The
// empty stack is returned for out-of-range indices or when no container is
// open.
func (m *Module) Slot(kind wire.SourceKind, index int) items.ItemStack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.container == nil {
		return items.ItemStack{}
	}
	col := m.container.collection(kind)
	if index < 0 || index >= len(col) {
		return items.ItemStack{}
	}
	return col[index]
}

// Slots returns a copy of the named collection.
func (m *Module) Slots(kind wire.SourceKind) []items.ItemStack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.container == nil {
		return nil
	}
	col := m.container.collection(kind)
	out := make([]items.ItemStack, len(col))
	copy(out, col)
	return out
}

// Cursor returns the held drag stack.
func (m *Module) Cursor() items.ItemStack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cursor
}
