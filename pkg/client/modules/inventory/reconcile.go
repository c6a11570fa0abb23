package inventory

import (
	"github.com/voxelgate/client/pkg/items"
	"github.com/voxelgate/client/pkg/wire"
)

// slotRef records one slot whose visible state changed during
// reconciliation, so redraws touch only those indices.
type slotRef struct {
	kind  wire.SourceKind
	index int
	stack items.ItemStack
}

func decodeSlot(s *wire.Slot) items.ItemStack {
	if s == nil {
		return items.ItemStack{}
	}
	return items.NewStack(items.ID(s.ItemID), s.Count)
}

// applyDense overwrites dst from a dense snapshot. Entries beyond the end of
// dst are ignored; missing trailing entries mean empty. Returns the indices
// whose item identity or count actually changed. Must be called under m.mu.
func applyDense(kind wire.SourceKind, dst []items.ItemStack, src []*wire.Slot) []slotRef {
	var changed []slotRef
	for i := range dst {
		var next items.ItemStack
		if i < len(src) {
			next = decodeSlot(src[i])
		}
		if dst[i] != next {
			changed = append(changed, slotRef{kind: kind, index: i, stack: next})
		}
		dst[i] = next
	}
	return changed
}

// applyDelta overwrites dst from a sparse delta map keyed by 1-based wire
// index. Malformed keys and out-of-range indices are skipped; the rest of
// the payload still applies. Must be called under m.mu.
func applyDelta(kind wire.SourceKind, dst []items.ItemStack, delta wire.DeltaMap) []slotRef {
	var changed []slotRef
	for key, slot := range delta {
		wireIdx, ok := delta.Index(key)
		if !ok {
			continue
		}
		i := wireIdx - 1
		if i >= len(dst) {
			continue
		}
		next := decodeSlot(slot)
		if dst[i] != next {
			changed = append(changed, slotRef{kind: kind, index: i, stack: next})
		}
		dst[i] = next
	}
	return changed
}

func (m *Module) handleOpened(p *wire.Push) {
	var d wire.ContainerOpened
	if err := p.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory:", err)
		return
	}

	// only one modal at a time: tear down any previous mirror first
	m.mu.Lock()
	var prevRelease func()
	var prevID int64
	if m.container != nil {
		prevRelease = m.container.release
		prevID = m.container.id
		m.container = nil
	}
	m.mu.Unlock()
	if prevRelease != nil {
		prevRelease()
		for _, cb := range m.onContainerClose {
			cb(prevID)
		}
	}

	release := m.beginOverlay(string(d.Menu))

	c := &containerState{
		id:       d.ContainerID,
		menu:     d.Menu,
		contents: make([]items.ItemStack, len(d.Contents)),
		release:  release,
	}
	applyDense(wire.SourceContainer, c.contents, d.Contents)
	applyDense(wire.SourceInventory, c.inventory[:], d.PlayerInventory)
	applyDense(wire.SourceHotbar, c.hotbar[:], d.Hotbar)

	m.mu.Lock()
	m.container = c
	m.mu.Unlock()

	m.render().Refresh()
	for _, cb := range m.onContainerOpen {
		cb(d.ContainerID, d.Menu)
	}
}

func (m *Module) handleUpdated(p *wire.Push) {
	var d wire.ContainerUpdated
	if err := p.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory:", err)
		return
	}

	m.mu.Lock()
	c := m.container
	if c == nil || c.id != d.ContainerID {
		m.mu.Unlock()
		return
	}
	var changed []slotRef
	if d.Contents != nil {
		changed = append(changed, applyDense(wire.SourceContainer, c.contents, d.Contents)...)
	}
	if d.PlayerInventory != nil {
		changed = append(changed, applyDense(wire.SourceInventory, c.inventory[:], d.PlayerInventory)...)
	}
	if d.Hotbar != nil {
		changed = append(changed, applyDense(wire.SourceHotbar, c.hotbar[:], d.Hotbar)...)
	}
	m.mu.Unlock()

	for _, ref := range changed {
		m.renderSlot(ref.kind, ref.index, ref.stack)
	}
}

func (m *Module) handleActionResult(p *wire.Push) {
	var d wire.ContainerActionResult
	if err := p.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory:", err)
		return
	}

	m.mu.Lock()
	c := m.container
	if c == nil || c.id != d.ContainerID {
		m.mu.Unlock()
		return
	}

	var changed []slotRef
	// deltas take priority over the dense fallback arrays
	if d.ContentsDelta != nil {
		changed = append(changed, applyDelta(wire.SourceContainer, c.contents, d.ContentsDelta)...)
	} else if d.Contents != nil {
		changed = append(changed, applyDense(wire.SourceContainer, c.contents, d.Contents)...)
	}
	if d.InventoryDelta != nil {
		changed = append(changed, applyDelta(wire.SourceInventory, c.inventory[:], d.InventoryDelta)...)
	} else if d.PlayerInventory != nil {
		changed = append(changed, applyDense(wire.SourceInventory, c.inventory[:], d.PlayerInventory)...)
	}
	if d.HotbarDelta != nil {
		changed = append(changed, applyDelta(wire.SourceHotbar, c.hotbar[:], d.HotbarDelta)...)
	} else if d.Hotbar != nil {
		changed = append(changed, applyDense(wire.SourceHotbar, c.hotbar[:], d.Hotbar)...)
	}

	// cursor is a single global slot, cheap to redraw: replace wholesale
	m.cursor = decodeSlot(d.CursorItem)
	cursor := m.cursor
	m.mu.Unlock()

	for _, ref := range changed {
		m.renderSlot(ref.kind, ref.index, ref.stack)
	}
	m.render().RenderCursor(cursor)
}

func (m *Module) handleContentsUpdate(p *wire.Push) {
	var d wire.ContainerContentsUpdate
	if err := p.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory:", err)
		return
	}

	m.mu.Lock()
	c := m.container
	if c == nil || c.id != d.ContainerID {
		m.mu.Unlock()
		return
	}
	var changed []slotRef
	changed = append(changed, applyDense(wire.SourceContainer, c.contents, d.Contents)...)
	changed = append(changed, applyDense(wire.SourceInventory, c.inventory[:], d.PlayerInventory)...)
	changed = append(changed, applyDense(wire.SourceHotbar, c.hotbar[:], d.Hotbar)...)
	m.cursor = decodeSlot(d.CursorItem)
	cursor := m.cursor
	m.mu.Unlock()

	for _, ref := range changed {
		m.renderSlot(ref.kind, ref.index, ref.stack)
	}
	m.render().RenderCursor(cursor)
}

func (m *Module) handleClosed(p *wire.Push) {
	var d wire.ContainerClosed
	if err := p.ReadInto(&d); err != nil {
		m.client.Logger.Println("inventory:", err)
		return
	}

	m.mu.Lock()
	c := m.container
	if c == nil || c.id != d.ContainerID {
		m.mu.Unlock()
		return
	}
	m.container = nil
	m.cursor = items.ItemStack{}
	m.mu.Unlock()

	c.release()
	m.render().Clear()
	for _, cb := range m.onContainerClose {
		cb(d.ContainerID)
	}
}
