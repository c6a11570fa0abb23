package pointer

import (
	"fmt"
	"sync"
)

// LockEntry is one "block world input" request.
type LockEntry struct {
	Token  string
	Source string
}

// LockStack is a reference-counted stack of gameplay-input suppression
// requests: world input is suppressed exactly while the stack is non-empty.
type LockStack struct {
	mu         sync.Mutex
	suppressor MovementSuppressor
	entries    []LockEntry
	tokens     map[string]uint64
	onChanged  []func(locked bool)
}

// NewLockStack creates an empty (unlocked) stack.
func NewLockStack(suppressor MovementSuppressor) *LockStack {
	return &LockStack{
		suppressor: suppressor,
		tokens:     make(map[string]uint64),
	}
}

// OnLockChanged registers a callback fired only on the locked/unlocked
// boolean transition, not on every push/pop.
func (s *LockStack) OnLockChanged(cb func(locked bool)) {
	s.onChanged = append(s.onChanged, cb)
}

// PushLock adds a suppression request and returns its token. The first push
// binds the movement suppressor.
func (s *LockStack) PushLock(source string) string {
	s.mu.Lock()
	s.tokens[source]++
	token := fmt.Sprintf("%s#%d", source, s.tokens[source])
	wasEmpty := len(s.entries) == 0
	s.entries = append(s.entries, LockEntry{Token: token, Source: source})
	if wasEmpty {
		s.suppressor.SuppressMovement()
	}
	s.mu.Unlock()

	if wasEmpty {
		s.fire(true)
	}
	return token
}

// PopLock removes the entry matching token, searching from the top. The last
// pop releases the movement suppressor. An unknown or already-removed token
// is a no-op.
func (s *LockStack) PopLock(token string) {
	s.mu.Lock()
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Token != token {
			continue
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		nowEmpty := len(s.entries) == 0
		if nowEmpty {
			s.suppressor.ResumeMovement()
		}
		s.mu.Unlock()
		if nowEmpty {
			s.fire(false)
		}
		return
	}
	s.mu.Unlock()
}

// Locked reports whether world input is currently suppressed.
func (s *LockStack) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries) > 0
}

// Depth returns the number of outstanding suppression requests.
func (s *LockStack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *LockStack) reset() {
	s.mu.Lock()
	wasLocked := len(s.entries) > 0
	s.entries = nil
	if wasLocked {
		s.suppressor.ResumeMovement()
	}
	s.mu.Unlock()
	if wasLocked {
		s.fire(false)
	}
}

func (s *LockStack) fire(locked bool) {
	for _, cb := range s.onChanged {
		cb(locked)
	}
}
