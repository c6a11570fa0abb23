package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSuppressor struct {
	suppressed bool
	calls      []bool
}

func (s *recordingSuppressor) SuppressMovement() {
	s.suppressed = true
	s.calls = append(s.calls, true)
}

func (s *recordingSuppressor) ResumeMovement() {
	s.suppressed = false
	s.calls = append(s.calls, false)
}

func TestLockStackBooleanTransition(t *testing.T) {
	sup := &recordingSuppressor{}
	s := NewLockStack(sup)

	var transitions []bool
	s.OnLockChanged(func(locked bool) { transitions = append(transitions, locked) })

	assert.False(t, s.Locked())

	t1 := s.PushLock("chest")
	t2 := s.PushLock("pause-menu")
	t3 := s.PushLock("chat")

	require.True(t, s.Locked())
	assert.True(t, sup.suppressed)
	// only the empty->non-empty transition fires
	assert.Equal(t, []bool{true}, transitions)

	s.PopLock(t2)
	s.PopLock(t1)
	assert.True(t, s.Locked(), "one entry remains")
	assert.Equal(t, []bool{true}, transitions)

	s.PopLock(t3)
	assert.False(t, s.Locked())
	assert.False(t, sup.suppressed)
	assert.Equal(t, []bool{true, false}, transitions)
}

func TestLockStackUnknownTokenNoop(t *testing.T) {
	sup := &recordingSuppressor{}
	s := NewLockStack(sup)

	token := s.PushLock("chest")
	s.PopLock("chest#42")
	s.PopLock(token)
	s.PopLock(token) // double pop
	assert.False(t, s.Locked())
	assert.Equal(t, []bool{true, false}, sup.calls)
}

func TestLockStackRepeatedCycles(t *testing.T) {
	s := NewLockStack(&recordingSuppressor{})
	for i := 0; i < 5; i++ {
		token := s.PushLock("chest")
		require.True(t, s.Locked())
		s.PopLock(token)
		require.False(t, s.Locked())
	}
}

func TestLockStackReset(t *testing.T) {
	sup := &recordingSuppressor{}
	s := NewLockStack(sup)
	s.PushLock("chest")
	s.PushLock("trade")

	s.reset()
	assert.False(t, s.Locked())
	assert.False(t, sup.suppressed)
	assert.Equal(t, 0, s.Depth())
}
