// Package input normalizes heterogeneous device events into semantic game
// signals and gates them on the gameplay-lock stack. It also provides the
// scoped overlay acquisition used by modal panels, pairing one cursor-mode
// push with one gameplay-lock push behind a single release closure.
package input

import (
	"sync"

	"github.com/voxelgate/client/pkg/client"
	"github.com/voxelgate/client/pkg/client/modules/pointer"
	"github.com/voxelgate/client/pkg/wire"
)

const ModuleName = "input"

// Signal is a semantic gameplay input event.
type Signal uint8

const (
	SignalNone Signal = iota
	SignalPrimaryDown
	SignalPrimaryUp
	SignalSecondaryDown
	SignalSecondaryUp
	SignalInteract
)

func (s Signal) String() string {
	switch s {
	case SignalPrimaryDown:
		return "primary-down"
	case SignalPrimaryUp:
		return "primary-up"
	case SignalSecondaryDown:
		return "secondary-down"
	case SignalSecondaryUp:
		return "secondary-up"
	case SignalInteract:
		return "interact"
	}
	return "none"
}

// Device identifies the source hardware class of a raw event.
type Device uint8

const (
	DeviceKeyboard Device = iota
	DeviceMouse
	DeviceGamepad
	DeviceTouch
)

// InputMode is the derived control scheme, used only for cosmetic control
// hints (button glyphs, on-screen widgets).
type InputMode uint8

const (
	InputPointerKeyboard InputMode = iota
	InputGamepad
	InputTouch
)

func (m InputMode) String() string {
	switch m {
	case InputGamepad:
		return "gamepad"
	case InputTouch:
		return "touch"
	}
	return "pointer+keyboard"
}

// RawEvent is a normalized device event fed into Process by the platform
// layer (TUI, window host, gamepad poller).
type RawEvent struct {
	Device  Device
	Code    Code
	Pressed bool
}

// Module is the input dispatcher.
type Module struct {
	client *client.Client

	mu       sync.Mutex
	bindings map[Code]binding
	mode     InputMode

	onSignal     []func(Signal)
	onModeChange []func(InputMode)
}

// New creates the dispatcher with the default binding table.
func New() *Module {
	return &Module{
		bindings: defaultBindings(),
	}
}

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) { m.client = c }

// HandlePush is a no-op; input flows from the platform, not the server.
func (m *Module) HandlePush(p *wire.Push) {}

func (m *Module) Reset() {
	m.mu.Lock()
	m.mode = InputPointerKeyboard
	m.mu.Unlock()
}

// From returns the registered input module, or nil.
func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}

// events

// OnSignal registers a semantic-signal callback. Callbacks fire
// synchronously in registration order.
func (m *Module) OnSignal(cb func(Signal)) {
	m.onSignal = append(m.onSignal, cb)
}

// OnInputModeChange registers a cosmetic control-scheme callback.
func (m *Module) OnInputModeChange(cb func(InputMode)) {
	m.onModeChange = append(m.onModeChange, cb)
}

// Mode returns the current derived control scheme.
func (m *Module) Mode() InputMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Process consumes one raw device event. Gameplay signals are dropped while
// the gameplay-lock stack is non-empty; the input-mode derivation still runs
// so control hints stay current.
func (m *Module) Process(ev RawEvent) {
	m.mu.Lock()
	newMode := deriveMode(ev.Device)
	modeChanged := newMode != m.mode
	if modeChanged {
		m.mode = newMode
	}
	b, bound := m.bindings[ev.Code]
	m.mu.Unlock()

	if modeChanged {
		for _, cb := range m.onModeChange {
			cb(newMode)
		}
	}
	if !bound {
		return
	}

	sig := b.up
	if ev.Pressed {
		sig = b.down
	}
	if sig == SignalNone {
		return
	}
	if m.locked() {
		return
	}
	for _, cb := range m.onSignal {
		cb(sig)
	}
}

func (m *Module) locked() bool {
	p := pointer.From(m.client)
	if p == nil {
		return false
	}
	return p.Lock.Locked()
}

// BeginOverlay acquires the paired cursor-mode + gameplay-lock entries a
// modal panel needs, and returns the release closure that pops both. The
// closure is safe to call more than once; only the first call releases.
func (m *Module) BeginOverlay(source string, opts pointer.Options) func() {
	p := pointer.From(m.client)
	if p == nil {
		if m.client != nil {
			m.client.Logger.Printf("input: overlay %q requested before pointer module registered", source)
		}
		return func() {}
	}

	modeToken := p.Cursor.PushMode(source, pointer.ModeUIOverlay, opts)
	lockToken := p.Lock.PushLock(source)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.Lock.PopLock(lockToken)
			p.Cursor.PopMode(modeToken)
		})
	}
}

func deriveMode(d Device) InputMode {
	switch d {
	case DeviceGamepad:
		return InputGamepad
	case DeviceTouch:
		return InputTouch
	}
	return InputPointerKeyboard
}
