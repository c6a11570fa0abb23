// Package pointer arbitrates pointer behavior and world-input suppression
// between concurrently open UI surfaces. Two stacks do the work: the
// cursor-mode stack resolves the effective pointer lock/icon/sensitivity from
// its topmost entry, and the gameplay-lock stack suppresses movement input
// while any entry is present. All mutation goes through the push/pop API;
// tokens are minted per source and must be popped by the caller that pushed
// them.
package pointer

import (
	"fmt"

	"github.com/voxelgate/client/pkg/client"
	"github.com/voxelgate/client/pkg/wire"
)

const ModuleName = "pointer"

// Mode classifies a pointer-behavior request.
type Mode uint8

const (
	// ModeGameplayLock is mouselook: pointer locked to center and hidden.
	ModeGameplayLock Mode = iota
	// ModeGameplayFree is gameplay with a free pointer (e.g. RTS camera).
	ModeGameplayFree
	// ModeUIOverlay is a modal UI surface: free, visible pointer.
	ModeUIOverlay
	// ModeCinematic is cutscene playback: free pointer, default visible.
	ModeCinematic
)

func (m Mode) String() string {
	switch m {
	case ModeGameplayLock:
		return "gameplay-lock"
	case ModeGameplayFree:
		return "gameplay-free"
	case ModeUIOverlay:
		return "ui-overlay"
	case ModeCinematic:
		return "cinematic"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Behavior is the OS-level pointer constraint.
type Behavior uint8

const (
	BehaviorLocked Behavior = iota // locked to screen center
	BehaviorFree
)

// Options override the mode defaults per entry. Nil fields fall back to the
// mode's defaults.
type Options struct {
	ShowIcon    *bool
	Sensitivity *float64
	Behavior    *Behavior
}

// Host is the platform pointer API. Writes are short-circuited by the stack
// when the value did not change.
type Host interface {
	SetBehavior(b Behavior)
	SetIconVisible(visible bool)
	SetSensitivity(s float64)
}

// MovementSuppressor toggles the world-movement input bindings and any
// on-screen movement widget.
type MovementSuppressor interface {
	SuppressMovement()
	ResumeMovement()
}

type nopHost struct{}

func (nopHost) SetBehavior(Behavior)   {}
func (nopHost) SetIconVisible(bool)    {}
func (nopHost) SetSensitivity(float64) {}

type nopSuppressor struct{}

func (nopSuppressor) SuppressMovement() {}
func (nopSuppressor) ResumeMovement()   {}

// Module bundles the two stacks as a client module so they reset on
// reconnect alongside everything else.
type Module struct {
	client *client.Client

	Cursor *CursorStack
	Lock   *LockStack
}

// New creates the pointer module. host and suppressor may be nil for
// headless use.
func New(host Host, suppressor MovementSuppressor) *Module {
	if host == nil {
		host = nopHost{}
	}
	if suppressor == nil {
		suppressor = nopSuppressor{}
	}
	return &Module{
		Cursor: NewCursorStack(host),
		Lock:   NewLockStack(suppressor),
	}
}

func (m *Module) Name() string { return ModuleName }

func (m *Module) Init(c *client.Client) {
	m.client = c
	m.Cursor.logger = c.Logger
}

// HandlePush is a no-op; the pointer stacks are driven by local UI, not by
// the server.
func (m *Module) HandlePush(p *wire.Push) {}

func (m *Module) Reset() {
	m.Cursor.reset()
	m.Lock.reset()
}

// From returns the registered pointer module, or nil.
func From(c *client.Client) *Module {
	mod := c.Module(ModuleName)
	if mod == nil {
		return nil
	}
	return mod.(*Module)
}
