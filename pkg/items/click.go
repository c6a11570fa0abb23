package items

// ClickKind distinguishes the two pointer buttons on a slot widget.
type ClickKind uint8

const (
	ClickLeft ClickKind = iota
	ClickRight
)

func (k ClickKind) String() string {
	if k == ClickRight {
		return "right"
	}
	return "left"
}

// Simulate applies one slot click to a (slot, cursor) pair and returns the
// resulting pair. It mirrors the authoritative server's click rules so the
// result can be shown immediately, before the server confirms.
//
// Branch order matters: merge is tried before swap, and the two are not
// interchangeable for same-item pairs at the ceiling.
func Simulate(slot, cursor ItemStack, kind ClickKind) (newSlot, newCursor ItemStack) {
	switch kind {
	case ClickLeft:
		if cursor.IsEmpty() {
			if slot.IsEmpty() {
				return slot, cursor
			}
			// pick up the whole stack
			return ItemStack{}, slot
		}
		if slot.IsEmpty() {
			// place the whole stack
			return cursor, ItemStack{}
		}
		if slot.ID == cursor.ID {
			// moves zero when the slot is already full
			return slot.Merge(cursor)
		}
		// different item types: swap
		return cursor, slot

	case ClickRight:
		if cursor.IsEmpty() {
			if slot.IsEmpty() {
				return slot, cursor
			}
			taken, rest := slot.SplitHalf()
			return rest, taken
		}
		if slot.IsEmpty() {
			one, rest := cursor.TakeOne()
			return one, rest
		}
		if slot.ID == cursor.ID {
			if slot.IsFull() {
				return slot, cursor
			}
			return slot.AddCount(1), cursor.RemoveCount(1)
		}
		// different item types: swap, same as left click
		return cursor, slot
	}

	return slot, cursor
}
