package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voxelgate/client/pkg/items"
	"github.com/voxelgate/client/pkg/wire"
)

// Click predicts a slot click locally, redraws the touched slot and the
// cursor, and reports the click to the server. index is 0-based within the
// named collection.
func (m *Module) Click(kind wire.SourceKind, index int, click items.ClickKind) error {
	m.mu.Lock()
	c := m.container
	if c == nil {
		m.mu.Unlock()
		return fmt.Errorf("no container open")
	}
	col := c.collection(kind)
	if col == nil || index < 0 || index >= len(col) {
		m.mu.Unlock()
		return fmt.Errorf("slot %s[%d] out of range", kind, index)
	}

	oldSlot, oldCursor := col[index], m.cursor
	if oldSlot.IsEmpty() && oldCursor.IsEmpty() {
		m.mu.Unlock()
		return nil
	}

	newSlot, newCursor := items.Simulate(oldSlot, oldCursor, click)
	col[index] = newSlot
	m.cursor = newCursor

	req := wire.ContainerSlotClick{
		ContainerID:     c.id,
		IsContainerSlot: kind == wire.SourceContainer,
		ClickKind:       click.String(),
	}
	if kind == wire.SourceContainer {
		req.SlotIndex = index + 1
	} else {
		req.SlotIndex = playerWireIndex(kind, index)
	}
	slotChanged := newSlot != oldSlot
	cursorChanged := newCursor != oldCursor
	m.mu.Unlock()

	// local redraw happens before the request goes out
	if slotChanged {
		m.renderSlot(kind, index, newSlot)
	}
	if cursorChanged {
		m.render().RenderCursor(newCursor)
	}
	return m.client.WriteMessage(req)
}

// QuickTransfer asks the server to bulk-move the stack at the given slot
// (shift-click). The destination depends on server-side stacking across many
// slots, so nothing is predicted locally; the ContainerActionResult push
// carries the authoritative outcome.
func (m *Module) QuickTransfer(kind wire.SourceKind, index int) error {
	m.mu.Lock()
	c := m.container
	if c == nil {
		m.mu.Unlock()
		return fmt.Errorf("no container open")
	}
	col := c.collection(kind)
	if col == nil || index < 0 || index >= len(col) {
		m.mu.Unlock()
		return fmt.Errorf("slot %s[%d] out of range", kind, index)
	}
	if col[index].IsEmpty() {
		m.mu.Unlock()
		return nil
	}
	id := c.id
	m.mu.Unlock()

	return m.client.WriteMessage(wire.ContainerQuickTransfer{
		ContainerID: id,
		SlotIndex:   index + 1,
		SourceKind:  kind,
	})
}

// Close closes the open container locally and notifies the server. A held
// cursor stack is returned to the first empty inventory slot, else the first
// empty container slot, before the view is torn down; the overlay entries
// acquired at open are popped exactly once.
func (m *Module) Close() error {
	m.mu.Lock()
	c := m.container
	if c == nil {
		m.mu.Unlock()
		return fmt.Errorf("no container open")
	}

	var returned *slotRef
	if !m.cursor.IsEmpty() {
		if i := firstEmpty(c.inventory[:]); i >= 0 {
			c.inventory[i] = m.cursor
			returned = &slotRef{kind: wire.SourceInventory, index: i, stack: m.cursor}
		} else if i := firstEmpty(c.contents); i >= 0 {
			c.contents[i] = m.cursor
			returned = &slotRef{kind: wire.SourceContainer, index: i, stack: m.cursor}
		}
		// nowhere to put it: clear anyway, the server owns the truth
		m.cursor = items.ItemStack{}
	}

	id := c.id
	m.container = nil
	m.mu.Unlock()

	if returned != nil {
		m.renderSlot(returned.kind, returned.index, returned.stack)
	}
	m.render().RenderCursor(items.ItemStack{})

	err := m.client.WriteMessage(wire.RequestCloseContainer{ContainerID: id})

	c.release()
	m.render().Clear()
	for _, cb := range m.onContainerClose {
		cb(id)
	}
	return err
}

func firstEmpty(col []items.ItemStack) int {
	for i, s := range col {
		if s.IsEmpty() {
			return i
		}
	}
	return -1
}

// HandleCommand implements the console command surface:
//
//	click c3    left-click container slot 3
//	rclick i12  right-click inventory slot 12
//	shift h1    quick-transfer hotbar slot 1
//	close       close the open container
//
// Slot references are 1-based, matching the wire indices.
func (m *Module) HandleCommand(cmd string) (bool, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "close":
		return true, m.Close()
	case "click", "rclick", "shift":
		if len(fields) != 2 {
			return true, fmt.Errorf("usage: %s <c|i|h><slot>", fields[0])
		}
		kind, index, err := parseSlotRef(fields[1])
		if err != nil {
			return true, err
		}
		switch fields[0] {
		case "click":
			return true, m.Click(kind, index, items.ClickLeft)
		case "rclick":
			return true, m.Click(kind, index, items.ClickRight)
		default:
			return true, m.QuickTransfer(kind, index)
		}
	}
	return false, nil
}

func parseSlotRef(ref string) (wire.SourceKind, int, error) {
	if len(ref) < 2 {
		return "", 0, fmt.Errorf("bad slot reference %q", ref)
	}
	var kind wire.SourceKind
	switch ref[0] {
	case 'c':
		kind = wire.SourceContainer
	case 'i':
		kind = wire.SourceInventory
	case 'h':
		kind = wire.SourceHotbar
	default:
		return "", 0, fmt.Errorf("bad slot reference %q", ref)
	}
	n, err := strconv.Atoi(ref[1:])
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("bad slot reference %q", ref)
	}
	return kind, n - 1, nil
}
