package input

// Code is a device-neutral control code. The platform layer translates its
// native events into these before calling Process.
type Code uint16

const (
	CodeNone Code = iota

	// pointer buttons
	CodeMouseLeft
	CodeMouseRight

	// keyboard
	CodeKeyInteract // "use / open" key

	// gamepad
	CodePadTriggerRight
	CodePadTriggerLeft
	CodePadButtonSouth

	// touch
	CodeTouchTap
	CodeTouchLongPress
)

// binding maps a control code to the signals it emits on press and release.
type binding struct {
	down Signal
	up   Signal
}

func defaultBindings() map[Code]binding {
	return map[Code]binding{
		CodeMouseLeft:   {down: SignalPrimaryDown, up: SignalPrimaryUp},
		CodeMouseRight:  {down: SignalSecondaryDown, up: SignalSecondaryUp},
		CodeKeyInteract: {down: SignalInteract},

		CodePadTriggerRight: {down: SignalPrimaryDown, up: SignalPrimaryUp},
		CodePadTriggerLeft:  {down: SignalSecondaryDown, up: SignalSecondaryUp},
		CodePadButtonSouth:  {down: SignalInteract},

		CodeTouchTap:       {down: SignalPrimaryDown, up: SignalPrimaryUp},
		CodeTouchLongPress: {down: SignalSecondaryDown, up: SignalSecondaryUp},
	}
}

// Bind replaces the binding for a code. Passing SignalNone for both
// directions unbinds it.
func (m *Module) Bind(code Code, down, up Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if down == SignalNone && up == SignalNone {
		delete(m.bindings, code)
		return
	}
	m.bindings[code] = binding{down: down, up: up}
}
