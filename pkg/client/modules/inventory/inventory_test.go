package inventory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/voxelgate/client/pkg/client"
	"github.com/voxelgate/client/pkg/client/modules/input"
	"github.com/voxelgate/client/pkg/client/modules/pointer"
	"github.com/voxelgate/client/pkg/items"
	"github.com/voxelgate/client/pkg/wire"
)

type fakeConn struct {
	sent []wire.Message
}

func (f *fakeConn) WriteMessage(msg wire.Message) error { f.sent = append(f.sent, msg); return nil }
func (f *fakeConn) ReadPush() (*wire.Push, error)       { select {} }
func (f *fakeConn) Close() error                        { return nil }

type recordingRenderer struct {
	slots     []slotRef
	cursors   []items.ItemStack
	refreshes int
	clears    int
}

func (r *recordingRenderer) RenderSlot(kind wire.SourceKind, index int, stack items.ItemStack) {
	r.slots = append(r.slots, slotRef{kind: kind, index: index, stack: stack})
}
func (r *recordingRenderer) RenderCursor(stack items.ItemStack) { r.cursors = append(r.cursors, stack) }
func (r *recordingRenderer) Refresh()                           { r.refreshes++ }
func (r *recordingRenderer) Clear()                             { r.clears++ }

func (r *recordingRenderer) reset() { *r = recordingRenderer{} }

type harness struct {
	client   *client.Client
	conn     *fakeConn
	inv      *Module
	ptr      *pointer.Module
	renderer *recordingRenderer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	conn := &fakeConn{}
	c := client.New("test", func(context.Context) (client.Conn, error) { return conn, nil })
	c.UseConn(conn)

	ptr := pointer.New(nil, nil)
	c.Register(ptr)
	c.Register(input.New())
	inv := New()
	c.Register(inv)

	r := &recordingRenderer{}
	inv.SetRenderer(r)
	return &harness{client: c, conn: conn, inv: inv, ptr: ptr, renderer: r}
}

func push(t *testing.T, typ string, payload any) *wire.Push {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", typ, err)
	}
	return &wire.Push{Type: typ, Data: data}
}

func slot(id int32, count int) *wire.Slot { return &wire.Slot{ItemID: id, Count: count} }

func openChest(t *testing.T, h *harness) {
	t.Helper()
	contents := make([]*wire.Slot, 27)
	contents[0] = slot(5, 3)
	contents[3] = slot(7, 10)
	playerInv := make([]*wire.Slot, 27)
	playerInv[1] = slot(5, 61)
	hotbar := make([]*wire.Slot, 9)
	hotbar[2] = slot(9, 1)

	h.inv.HandlePush(push(t, wire.TypeContainerOpened, wire.ContainerOpened{
		ContainerID:     42,
		Menu:            wire.MenuChest,
		Contents:        contents,
		PlayerInventory: playerInv,
		Hotbar:          hotbar,
	}))
}

func TestOpenRehydratesAndAcquiresOverlay(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	if !h.inv.Open() || h.inv.ContainerID() != 42 {
		t.Fatalf("container not open: open=%v id=%d", h.inv.Open(), h.inv.ContainerID())
	}
	if got := h.inv.Slot(wire.SourceContainer, 0); got != items.NewStack(5, 3) {
		t.Errorf("container slot 0 = %v, want {5,3}", got)
	}
	if got := h.inv.Slot(wire.SourceInventory, 1); got != items.NewStack(5, 61) {
		t.Errorf("inventory slot 1 = %v, want {5,61}", got)
	}
	if got := h.inv.Slot(wire.SourceHotbar, 2); got != items.NewStack(9, 1) {
		t.Errorf("hotbar slot 2 = %v, want {9,1}", got)
	}
	if h.renderer.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", h.renderer.refreshes)
	}

	// opening the modal pushed one cursor-mode entry and one lock entry
	if st := h.ptr.Cursor.Effective(); st.Mode != pointer.ModeUIOverlay || st.Source != "chest" {
		t.Errorf("effective cursor mode = %v/%s, want ui-overlay/chest", st.Mode, st.Source)
	}
	if !h.ptr.Lock.Locked() {
		t.Error("gameplay not locked while chest open")
	}
}

func TestClickPredictsAndSendsRequest(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)
	h.renderer.reset()

	if err := h.inv.Click(wire.SourceContainer, 0, items.ClickLeft); err != nil {
		t.Fatal(err)
	}

	// local prediction: picked up the whole stack
	if got := h.inv.Slot(wire.SourceContainer, 0); !got.IsEmpty() {
		t.Errorf("slot after pickup = %v, want empty", got)
	}
	if got := h.inv.Cursor(); got != items.NewStack(5, 3) {
		t.Errorf("cursor after pickup = %v, want {5,3}", got)
	}

	// only the touched slot and the cursor were redrawn
	if len(h.renderer.slots) != 1 || h.renderer.slots[0].index != 0 {
		t.Errorf("slot redraws = %v, want exactly index 0", h.renderer.slots)
	}
	if len(h.renderer.cursors) != 1 {
		t.Errorf("cursor redraws = %d, want 1", len(h.renderer.cursors))
	}

	// authoritative request carries the wire index
	if len(h.conn.sent) != 1 {
		t.Fatalf("sent %d requests, want 1", len(h.conn.sent))
	}
	req, ok := h.conn.sent[0].(wire.ContainerSlotClick)
	if !ok {
		t.Fatalf("sent %T, want ContainerSlotClick", h.conn.sent[0])
	}
	want := wire.ContainerSlotClick{ContainerID: 42, SlotIndex: 1, IsContainerSlot: true, ClickKind: "left"}
	if req != want {
		t.Errorf("request = %+v, want %+v", req, want)
	}
}

func TestClickHotbarUsesCombinedPlayerIndex(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	if err := h.inv.Click(wire.SourceHotbar, 2, items.ClickRight); err != nil {
		t.Fatal(err)
	}
	req := h.conn.sent[0].(wire.ContainerSlotClick)
	if req.IsContainerSlot || req.SlotIndex != 30 || req.ClickKind != "right" {
		t.Errorf("request = %+v, want player index 30, right click", req)
	}
}

func TestClickOnEmptyPairSendsNothing(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	if err := h.inv.Click(wire.SourceContainer, 5, items.ClickLeft); err != nil {
		t.Fatal(err)
	}
	if len(h.conn.sent) != 0 {
		t.Errorf("empty-on-empty click sent %d requests", len(h.conn.sent))
	}
}

func TestClickWithoutContainerAborted(t *testing.T) {
	h := newHarness(t)
	if err := h.inv.Click(wire.SourceContainer, 0, items.ClickLeft); err == nil {
		t.Error("click with no container open did not error")
	}
	if len(h.conn.sent) != 0 {
		t.Error("aborted click still sent a request")
	}
}

func TestQuickTransferSendsWithoutPrediction(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)
	h.renderer.reset()

	if err := h.inv.QuickTransfer(wire.SourceContainer, 3); err != nil {
		t.Fatal(err)
	}

	// no local mutation, no redraw: the server decides the destination
	if got := h.inv.Slot(wire.SourceContainer, 3); got != items.NewStack(7, 10) {
		t.Errorf("slot mutated by quick transfer: %v", got)
	}
	if len(h.renderer.slots) != 0 {
		t.Errorf("quick transfer redrew %d slots", len(h.renderer.slots))
	}
	req := h.conn.sent[0].(wire.ContainerQuickTransfer)
	want := wire.ContainerQuickTransfer{ContainerID: 42, SlotIndex: 4, SourceKind: wire.SourceContainer}
	if req != want {
		t.Errorf("request = %+v, want %+v", req, want)
	}
}

func TestDenseReconcileIsIdempotent(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	contents := make([]*wire.Slot, 27)
	contents[0] = slot(5, 64)
	upd := wire.ContainerUpdated{ContainerID: 42, Contents: contents}

	h.renderer.reset()
	h.inv.HandlePush(push(t, wire.TypeContainerUpdated, upd))

	// first application: slot 0 changed count, slot 3 became empty
	if len(h.renderer.slots) != 2 {
		t.Fatalf("first application redrew %d slots, want 2", len(h.renderer.slots))
	}
	if got := h.inv.Slot(wire.SourceContainer, 0); got != items.NewStack(5, 64) {
		t.Errorf("slot 0 = %v, want {5,64}", got)
	}

	h.renderer.reset()
	h.inv.HandlePush(push(t, wire.TypeContainerUpdated, upd))
	if len(h.renderer.slots) != 0 {
		t.Errorf("second application redrew %d slots, want 0", len(h.renderer.slots))
	}
}

func TestActionResultPrefersDelta(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)
	h.renderer.reset()

	dense := make([]*wire.Slot, 27)
	dense[0] = slot(11, 1) // stale fallback, must be ignored
	h.inv.HandlePush(push(t, wire.TypeContainerActionResult, wire.ContainerActionResult{
		ContainerID:   42,
		ContentsDelta: wire.DeltaMap{"1": slot(5, 2)},
		Contents:      dense,
		CursorItem:    slot(5, 1),
	}))

	if got := h.inv.Slot(wire.SourceContainer, 0); got != items.NewStack(5, 2) {
		t.Errorf("slot 0 = %v, want delta value {5,2}", got)
	}
	if got := h.inv.Slot(wire.SourceContainer, 3); got != items.NewStack(7, 10) {
		t.Errorf("slot 3 = %v, want untouched {7,10}", got)
	}
	if got := h.inv.Cursor(); got != items.NewStack(5, 1) {
		t.Errorf("cursor = %v, want replaced {5,1}", got)
	}
	// cursor is replaced wholesale, always redrawn
	if len(h.renderer.cursors) != 1 {
		t.Errorf("cursor redraws = %d, want 1", len(h.renderer.cursors))
	}
}

func TestDeltaSkipsBadIndices(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	h.inv.HandlePush(push(t, wire.TypeContainerActionResult, wire.ContainerActionResult{
		ContainerID: 42,
		ContentsDelta: wire.DeltaMap{
			"0":    slot(9, 9), // below range
			"999":  slot(9, 9), // above range
			"nope": slot(9, 9), // malformed
			"4":    nil,        // valid: clears slot 3
		},
	}))

	if got := h.inv.Slot(wire.SourceContainer, 3); !got.IsEmpty() {
		t.Errorf("slot 3 = %v, want cleared by valid delta entry", got)
	}
	for i, s := range h.inv.Slots(wire.SourceContainer) {
		if s.ID == 9 {
			t.Errorf("bad delta index landed in slot %d", i)
		}
	}
}

func TestIdentityMismatchIgnoresPayload(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)
	h.renderer.reset()

	h.inv.HandlePush(push(t, wire.TypeContainerActionResult, wire.ContainerActionResult{
		ContainerID:   99, // not the open container
		ContentsDelta: wire.DeltaMap{"1": slot(11, 11)},
		CursorItem:    slot(11, 11),
	}))

	if got := h.inv.Slot(wire.SourceContainer, 0); got != items.NewStack(5, 3) {
		t.Errorf("slot 0 = %v, payload for wrong container applied", got)
	}
	if !h.inv.Cursor().IsEmpty() {
		t.Error("cursor replaced from wrong-container payload")
	}
	if len(h.renderer.slots) != 0 || len(h.renderer.cursors) != 0 {
		t.Error("wrong-container payload triggered redraws")
	}
}

func TestCloseReturnsCursorAndReleasesOverlay(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	// pick up a stack so the cursor is non-empty at close
	if err := h.inv.Click(wire.SourceContainer, 0, items.ClickLeft); err != nil {
		t.Fatal(err)
	}
	h.conn.sent = nil

	if err := h.inv.Close(); err != nil {
		t.Fatal(err)
	}

	if h.inv.Open() {
		t.Fatal("container still open after Close")
	}
	if !h.inv.Cursor().IsEmpty() {
		t.Error("cursor not cleared on close")
	}
	if len(h.conn.sent) != 1 {
		t.Fatalf("sent %d requests, want close notification", len(h.conn.sent))
	}
	if req := h.conn.sent[0].(wire.RequestCloseContainer); req.ContainerID != 42 {
		t.Errorf("close request = %+v", req)
	}

	// both stack entries popped: pointer back to gameplay, input unlocked
	if st := h.ptr.Cursor.Effective(); st.Source != "gameplay" {
		t.Errorf("effective cursor source = %s, want gameplay", st.Source)
	}
	if h.ptr.Lock.Locked() {
		t.Error("gameplay still locked after close")
	}
}

func TestServerForcedClose(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	h.inv.HandlePush(push(t, wire.TypeContainerClosed, wire.ContainerClosed{ContainerID: 42}))

	if h.inv.Open() {
		t.Fatal("container still open after forced close")
	}
	if h.ptr.Lock.Locked() {
		t.Error("gameplay still locked after forced close")
	}
	if h.renderer.clears != 1 {
		t.Errorf("clears = %d, want 1", h.renderer.clears)
	}
	// second forced close for the same id is a no-op
	h.inv.HandlePush(push(t, wire.TypeContainerClosed, wire.ContainerClosed{ContainerID: 42}))
	if h.renderer.clears != 1 {
		t.Error("repeated forced close cleared again")
	}
}

func TestLegacyContentsUpdateAccepted(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	contents := make([]*wire.Slot, 27)
	contents[6] = slot(13, 13)
	h.inv.HandlePush(push(t, wire.TypeContainerContentsUpdate, wire.ContainerContentsUpdate{
		ContainerID:     42,
		Contents:        contents,
		PlayerInventory: make([]*wire.Slot, 27),
		Hotbar:          make([]*wire.Slot, 9),
		CursorItem:      slot(13, 1),
	}))

	if got := h.inv.Slot(wire.SourceContainer, 6); got != items.NewStack(13, 13) {
		t.Errorf("slot 6 = %v, want {13,13}", got)
	}
	if got := h.inv.Cursor(); got != items.NewStack(13, 1) {
		t.Errorf("cursor = %v, want {13,1}", got)
	}
	// dense everything: previously filled slots now empty
	if got := h.inv.Slot(wire.SourceInventory, 1); !got.IsEmpty() {
		t.Errorf("inventory slot 1 = %v, want cleared by bulk sync", got)
	}
}

func TestReopenReplacesPreviousModal(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	h.inv.HandlePush(push(t, wire.TypeContainerOpened, wire.ContainerOpened{
		ContainerID: 43,
		Menu:        wire.MenuFurnace,
		Contents:    make([]*wire.Slot, 3),
	}))

	if h.inv.ContainerID() != 43 || h.inv.Menu() != wire.MenuFurnace {
		t.Fatalf("open container = %d/%s, want 43/furnace", h.inv.ContainerID(), h.inv.Menu())
	}
	if st := h.ptr.Cursor.Effective(); st.Source != "furnace" {
		t.Errorf("effective source = %s, want furnace", st.Source)
	}
	// chest overlay released, furnace overlay held: exactly one lock entry
	if got := h.ptr.Lock.Depth(); got != 1 {
		t.Errorf("lock depth = %d, want 1", got)
	}
}

func TestHandleCommand(t *testing.T) {
	h := newHarness(t)
	openChest(t, h)

	handled, err := h.inv.HandleCommand("click c1")
	if !handled || err != nil {
		t.Fatalf("click c1: handled=%v err=%v", handled, err)
	}
	if got := h.inv.Cursor(); got != items.NewStack(5, 3) {
		t.Errorf("cursor = %v after click c1", got)
	}

	if handled, _ := h.inv.HandleCommand("worlds mine"); handled {
		t.Error("inventory claimed a foreign command")
	}
	if _, err := h.inv.HandleCommand("click zz"); err == nil {
		t.Error("bad slot reference accepted")
	}
}
