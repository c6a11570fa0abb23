package input

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelgate/client/pkg/client"
	"github.com/voxelgate/client/pkg/client/modules/pointer"
)

func newHarness(t *testing.T) (*Module, *pointer.Module) {
	t.Helper()
	c := client.New("test", func(context.Context) (client.Conn, error) { return nil, nil })
	ptr := pointer.New(nil, nil)
	c.Register(ptr)
	m := New()
	c.Register(m)
	return m, ptr
}

func TestSignalMapping(t *testing.T) {
	m, _ := newHarness(t)

	var got []Signal
	m.OnSignal(func(s Signal) { got = append(got, s) })

	m.Process(RawEvent{Device: DeviceMouse, Code: CodeMouseLeft, Pressed: true})
	m.Process(RawEvent{Device: DeviceMouse, Code: CodeMouseLeft, Pressed: false})
	m.Process(RawEvent{Device: DeviceMouse, Code: CodeMouseRight, Pressed: true})
	m.Process(RawEvent{Device: DeviceKeyboard, Code: CodeKeyInteract, Pressed: true})
	m.Process(RawEvent{Device: DeviceKeyboard, Code: CodeKeyInteract, Pressed: false}) // no up signal bound

	assert.Equal(t, []Signal{SignalPrimaryDown, SignalPrimaryUp, SignalSecondaryDown, SignalInteract}, got)
}

func TestUnboundCodeIgnored(t *testing.T) {
	m, _ := newHarness(t)
	var got []Signal
	m.OnSignal(func(s Signal) { got = append(got, s) })
	m.Process(RawEvent{Device: DeviceKeyboard, Code: CodeNone, Pressed: true})
	assert.Empty(t, got)
}

func TestSignalsDroppedWhileLocked(t *testing.T) {
	m, ptr := newHarness(t)
	var got []Signal
	m.OnSignal(func(s Signal) { got = append(got, s) })

	token := ptr.Lock.PushLock("chest")
	m.Process(RawEvent{Device: DeviceMouse, Code: CodeMouseLeft, Pressed: true})
	m.Process(RawEvent{Device: DeviceKeyboard, Code: CodeKeyInteract, Pressed: true})
	assert.Empty(t, got, "gameplay signals must be dropped while locked")

	ptr.Lock.PopLock(token)
	m.Process(RawEvent{Device: DeviceMouse, Code: CodeMouseLeft, Pressed: true})
	assert.Equal(t, []Signal{SignalPrimaryDown}, got)
}

func TestInputModeDerivation(t *testing.T) {
	m, _ := newHarness(t)

	var modes []InputMode
	m.OnInputModeChange(func(mode InputMode) { modes = append(modes, mode) })

	assert.Equal(t, InputPointerKeyboard, m.Mode())

	m.Process(RawEvent{Device: DeviceGamepad, Code: CodePadTriggerRight, Pressed: true})
	assert.Equal(t, InputGamepad, m.Mode())

	// keyboard and mouse both map back to pointer+keyboard
	m.Process(RawEvent{Device: DeviceKeyboard, Code: CodeKeyInteract, Pressed: true})
	assert.Equal(t, InputPointerKeyboard, m.Mode())
	m.Process(RawEvent{Device: DeviceMouse, Code: CodeMouseLeft, Pressed: true})
	assert.Equal(t, InputPointerKeyboard, m.Mode())

	m.Process(RawEvent{Device: DeviceTouch, Code: CodeTouchTap, Pressed: true})
	assert.Equal(t, InputTouch, m.Mode())

	// callback fired only on actual changes
	assert.Equal(t, []InputMode{InputGamepad, InputPointerKeyboard, InputTouch}, modes)
}

func TestInputModeStillDerivedWhileLocked(t *testing.T) {
	m, ptr := newHarness(t)
	token := ptr.Lock.PushLock("pause-menu")
	defer ptr.Lock.PopLock(token)

	m.Process(RawEvent{Device: DeviceGamepad, Code: CodePadTriggerRight, Pressed: true})
	assert.Equal(t, InputGamepad, m.Mode(), "cosmetic mode derivation must survive the lock")
}

func TestBeginOverlayPairsAndReleasesOnce(t *testing.T) {
	m, ptr := newHarness(t)

	require.False(t, ptr.Lock.Locked())
	base := ptr.Cursor.Effective()

	release := m.BeginOverlay("chest", pointer.Options{})
	assert.True(t, ptr.Lock.Locked())
	assert.Equal(t, pointer.ModeUIOverlay, ptr.Cursor.Effective().Mode)
	assert.Equal(t, "chest", ptr.Cursor.Effective().Source)

	release()
	assert.False(t, ptr.Lock.Locked())
	assert.Equal(t, base, ptr.Cursor.Effective())

	// double release must not disturb a later acquisition
	other := m.BeginOverlay("furnace", pointer.Options{})
	release()
	assert.True(t, ptr.Lock.Locked(), "stale release popped a foreign token")
	assert.Equal(t, "furnace", ptr.Cursor.Effective().Source)
	other()
	assert.False(t, ptr.Lock.Locked())
}

func TestBeginOverlayWithoutPointerModule(t *testing.T) {
	c := client.New("test", func(context.Context) (client.Conn, error) { return nil, nil })
	m := New()
	c.Register(m)

	release := m.BeginOverlay("chest", pointer.Options{})
	release() // must be a safe no-op
}

func TestNestedOverlaysRestoreInOrder(t *testing.T) {
	m, ptr := newHarness(t)

	releaseA := m.BeginOverlay("chest", pointer.Options{})
	releaseB := m.BeginOverlay("furnace", pointer.Options{})
	assert.Equal(t, "furnace", ptr.Cursor.Effective().Source)

	releaseB()
	assert.Equal(t, "chest", ptr.Cursor.Effective().Source)
	assert.True(t, ptr.Lock.Locked())

	releaseA()
	assert.Equal(t, "gameplay", ptr.Cursor.Effective().Source)
	assert.False(t, ptr.Lock.Locked())
}

func TestRebind(t *testing.T) {
	m, _ := newHarness(t)
	var got []Signal
	m.OnSignal(func(s Signal) { got = append(got, s) })

	m.Bind(CodeKeyInteract, SignalNone, SignalNone) // unbind
	m.Process(RawEvent{Device: DeviceKeyboard, Code: CodeKeyInteract, Pressed: true})
	assert.Empty(t, got)

	m.Bind(CodeKeyInteract, SignalSecondaryDown, SignalSecondaryUp)
	m.Process(RawEvent{Device: DeviceKeyboard, Code: CodeKeyInteract, Pressed: true})
	assert.Equal(t, []Signal{SignalSecondaryDown}, got)
}
