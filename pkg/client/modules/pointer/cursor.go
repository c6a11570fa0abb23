package pointer

import (
	"fmt"
	"log"
	"sync"
)

const gameplaySource = "gameplay"

// CursorEntry is one pointer-behavior request on the stack.
type CursorEntry struct {
	Token   string
	Source  string
	Mode    Mode
	Options Options
}

// EffectiveState is the resolved pointer state derived from the topmost
// stack entry.
type EffectiveState struct {
	Token       string
	Source      string
	Mode        Mode
	Behavior    Behavior
	IconVisible bool
	Sensitivity float64
}

// CursorStack is an ordered stack of pointer-behavior requests. Entry 0 is
// the permanent gameplay entry: it is never popped, only mutated in place via
// SetGameplayMode.
type CursorStack struct {
	mu      sync.Mutex
	host    Host
	logger  *log.Logger
	entries []CursorEntry
	tokens  map[string]uint64

	// last values written to the host, to skip redundant platform calls
	appliedValid bool
	applied      struct {
		behavior    Behavior
		iconVisible bool
		sensitivity float64
	}

	effective     EffectiveState
	onModeChanged []func(EffectiveState)
}

// NewCursorStack creates a stack holding only the base gameplay entry and
// applies its state to the host.
func NewCursorStack(host Host) *CursorStack {
	s := &CursorStack{
		host:   host,
		tokens: make(map[string]uint64),
	}
	s.entries = []CursorEntry{s.baseEntry()}
	s.recompute()
	return s
}

func (s *CursorStack) baseEntry() CursorEntry {
	return CursorEntry{
		Token:  s.mintToken(gameplaySource),
		Source: gameplaySource,
		Mode:   ModeGameplayLock,
	}
}

// mintToken must be called under s.mu (or before the stack is shared).
func (s *CursorStack) mintToken(source string) string {
	s.tokens[source]++
	return fmt.Sprintf("%s#%d", source, s.tokens[source])
}

// OnModeChanged registers a callback fired when the effective
// token/mode/source changes. It does not fire on pushes and pops that leave
// the effective entry in place.
func (s *CursorStack) OnModeChanged(cb func(EffectiveState)) {
	s.onModeChanged = append(s.onModeChanged, cb)
}

// PushMode appends a pointer-behavior request and returns the caller-owned
// token needed to pop it.
func (s *CursorStack) PushMode(source string, mode Mode, opts Options) string {
	s.mu.Lock()
	token := s.mintToken(source)
	s.entries = append(s.entries, CursorEntry{Token: token, Source: source, Mode: mode, Options: opts})
	changed, st := s.recompute()
	s.mu.Unlock()

	s.notify(changed, st)
	return token
}

// PopMode removes the entry matching token, searching from the top so the
// most recent push wins. Popping the base gameplay token reinitializes the
// base entry in place; an unknown token is a no-op.
func (s *CursorStack) PopMode(token string) {
	s.mu.Lock()
	for i := len(s.entries) - 1; i >= 1; i-- {
		if s.entries[i].Token != token {
			continue
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		changed, st := s.recompute()
		s.mu.Unlock()
		s.notify(changed, st)
		return
	}
	if s.entries[0].Token == token {
		if s.logger != nil {
			s.logger.Printf("pointer: refusing to pop base gameplay entry %s, reinitializing", token)
		}
		s.entries[0] = s.baseEntry()
		changed, st := s.recompute()
		s.mu.Unlock()
		s.notify(changed, st)
		return
	}
	s.mu.Unlock()
}

// SetGameplayMode mutates the base gameplay entry in place. Camera and
// movement systems use this; it is not a push/pop participant.
func (s *CursorStack) SetGameplayMode(mode Mode, opts Options) {
	s.mu.Lock()
	s.entries[0].Mode = mode
	s.entries[0].Options = opts
	changed, st := s.recompute()
	s.mu.Unlock()
	s.notify(changed, st)
}

// Effective returns the currently resolved pointer state.
func (s *CursorStack) Effective() EffectiveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effective
}

// Depth returns the number of entries, including the base gameplay entry.
func (s *CursorStack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *CursorStack) reset() {
	s.mu.Lock()
	s.entries = []CursorEntry{s.baseEntry()}
	changed, st := s.recompute()
	s.mu.Unlock()
	s.notify(changed, st)
}

// recompute resolves the effective state from the topmost entry and applies
// it to the host, skipping writes whose value did not change. Must be called
// under s.mu. Returns whether the effective token/mode/source changed.
func (s *CursorStack) recompute() (bool, EffectiveState) {
	top := s.entries[len(s.entries)-1]
	st := EffectiveState{
		Token:  top.Token,
		Source: top.Source,
		Mode:   top.Mode,
	}

	// mode defaults
	if top.Mode == ModeGameplayLock {
		st.Behavior = BehaviorLocked
		st.IconVisible = false
	} else {
		st.Behavior = BehaviorFree
		st.IconVisible = true
	}
	st.Sensitivity = 1.0

	// per-entry overrides
	if top.Options.Behavior != nil {
		st.Behavior = *top.Options.Behavior
	}
	if top.Options.ShowIcon != nil {
		st.IconVisible = *top.Options.ShowIcon
	}
	if top.Options.Sensitivity != nil {
		st.Sensitivity = *top.Options.Sensitivity
	}

	if !s.appliedValid || s.applied.behavior != st.Behavior {
		s.host.SetBehavior(st.Behavior)
		s.applied.behavior = st.Behavior
	}
	if !s.appliedValid || s.applied.iconVisible != st.IconVisible {
		s.host.SetIconVisible(st.IconVisible)
		s.applied.iconVisible = st.IconVisible
	}
	if !s.appliedValid || s.applied.sensitivity != st.Sensitivity {
		s.host.SetSensitivity(st.Sensitivity)
		s.applied.sensitivity = st.Sensitivity
	}
	s.appliedValid = true

	changed := st.Token != s.effective.Token ||
		st.Mode != s.effective.Mode ||
		st.Source != s.effective.Source
	s.effective = st
	return changed, st
}

func (s *CursorStack) notify(changed bool, st EffectiveState) {
	if !changed {
		return
	}
	for _, cb := range s.onModeChanged {
		cb(st)
	}
}
