// Package items defines the ItemStack value type and its stacking rules.
// Stacks are plain values; every operation returns new stacks and never
// mutates its receiver or arguments.
package items

// ID identifies an item type. 0 is reserved for "no item".
type ID int32

// Empty is the sentinel item ID of an empty stack.
const Empty ID = 0

// DefaultMaxStack is the stack ceiling for items without a registry override.
const DefaultMaxStack = 64

var maxStackOverrides = map[ID]int{}

// RegisterMaxStack sets a per-item stack ceiling (e.g. 16 for thrown items,
// 1 for tools). Intended to be called during startup, before any stacks for
// that item exist.
func RegisterMaxStack(id ID, max int) {
	if max < 1 {
		max = 1
	}
	maxStackOverrides[id] = max
}

// MaxStackSize returns the stack ceiling for the given item ID.
func MaxStackSize(id ID) int {
	if max, ok := maxStackOverrides[id]; ok {
		return max
	}
	return DefaultMaxStack
}

// ItemStack is a quantity of one item type occupying one slot.
// The zero value is the empty stack. Invariant: ID == Empty ⇔ Count == 0.
type ItemStack struct {
	ID    ID
	Count int
}

// EmptyStack returns the empty stack.
func EmptyStack() ItemStack { return ItemStack{} }

// NewStack builds a stack, clamping Count to [0, MaxStackSize] and
// normalizing to the empty sentinel when either field is zero.
func NewStack(id ID, count int) ItemStack {
	return ItemStack{ID: id, Count: count}.normalize()
}

func (s ItemStack) normalize() ItemStack {
	if s.ID == Empty || s.Count <= 0 {
		return ItemStack{}
	}
	if max := MaxStackSize(s.ID); s.Count > max {
		s.Count = max
	}
	return s
}

// IsEmpty reports whether the stack holds nothing.
func (s ItemStack) IsEmpty() bool { return s.ID == Empty }

// IsFull reports whether the stack is at its item's ceiling.
func (s ItemStack) IsFull() bool {
	return !s.IsEmpty() && s.Count >= MaxStackSize(s.ID)
}

// CanStackWith reports whether other can be combined into s: same item type
// and s is below its ceiling. An empty stack accepts nothing via merging
// (placement into an empty slot is a distinct operation).
func (s ItemStack) CanStackWith(other ItemStack) bool {
	return !s.IsEmpty() && !other.IsEmpty() && s.ID == other.ID && !s.IsFull()
}

// Merge moves as much of src into s as the ceiling allows. Returns the
// grown stack and whatever is left of src.
func (s ItemStack) Merge(src ItemStack) (merged, rest ItemStack) {
	if s.IsEmpty() {
		return src, ItemStack{}
	}
	if src.IsEmpty() || s.ID != src.ID {
		return s, src
	}
	room := MaxStackSize(s.ID) - s.Count
	if room <= 0 {
		return s, src
	}
	moved := src.Count
	if moved > room {
		moved = room
	}
	s.Count += moved
	src.Count -= moved
	return s, src.normalize()
}

// SplitHalf removes half of the stack, rounding the taken half up on odd
// counts (a stack of 7 yields taken 4, rest 3).
func (s ItemStack) SplitHalf() (taken, rest ItemStack) {
	if s.IsEmpty() {
		return ItemStack{}, ItemStack{}
	}
	n := (s.Count + 1) / 2
	taken = ItemStack{ID: s.ID, Count: n}
	rest = ItemStack{ID: s.ID, Count: s.Count - n}.normalize()
	return taken, rest
}

// TakeOne removes a single item from the stack.
func (s ItemStack) TakeOne() (one, rest ItemStack) {
	if s.IsEmpty() {
		return ItemStack{}, ItemStack{}
	}
	one = ItemStack{ID: s.ID, Count: 1}
	rest = ItemStack{ID: s.ID, Count: s.Count - 1}.normalize()
	return one, rest
}

// AddCount returns the stack grown by n, clamped at the item's ceiling.
func (s ItemStack) AddCount(n int) ItemStack {
	if s.IsEmpty() {
		return s
	}
	s.Count += n
	return s.normalize()
}

// RemoveCount returns the stack shrunk by n, emptying at zero.
func (s ItemStack) RemoveCount(n int) ItemStack {
	if s.IsEmpty() {
		return s
	}
	s.Count -= n
	return s.normalize()
}
