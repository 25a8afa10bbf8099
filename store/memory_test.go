package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hreis1/openai-cs-agents-demo/agent"
	"github.com/hreis1/openai-cs-agents-demo/types"
)

func TestMemoryStoreCreate(t *testing.T) {
	s := NewMemoryConversationStore()

	state := s.Create()
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, agent.TriageAgentName, state.CurrentAgent)
	assert.Empty(t, state.InputItems)
	assert.Regexp(t, `^[0-9]{8}$`, state.Context.AccountNumber)

	// Create does not persist; the state is only visible after Save.
	_, ok := s.Get(state.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())

	other := s.Create()
	assert.NotEqual(t, state.ID, other.ID)
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryConversationStore()

	state := s.Create()
	state.InputItems = append(state.InputItems, types.InputItem{Role: types.RoleUser, Content: "hi"})
	state.CurrentAgent = agent.FAQAgentName
	s.Save(state)

	got, ok := s.Get(state.ID)
	require.True(t, ok)
	assert.Equal(t, state, got)
	assert.Equal(t, 1, s.Len())

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestMemoryStoreAcquireSerializesSameConversation(t *testing.T) {
	s := NewMemoryConversationStore()
	state := s.Create()
	s.Save(state)

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)

	// Without the per-conversation lock these appends would race.
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := s.Acquire(state.ID)
			defer unlock()

			st, ok := s.Get(state.ID)
			if !ok {
				return
			}
			st.InputItems = append(st.InputItems, types.InputItem{Role: types.RoleUser, Content: "msg"})
			s.Save(st)
		}()
	}
	wg.Wait()

	got, ok := s.Get(state.ID)
	require.True(t, ok)
	assert.Len(t, got.InputItems, workers)
}

func TestMemoryStoreAcquireDistinctConversations(t *testing.T) {
	s := NewMemoryConversationStore()

	// Locks for different ids are independent: holding one must not block
	// acquiring the other.
	unlockA := s.Acquire("a")
	unlockB := s.Acquire("b")
	unlockB()
	unlockA()

	// Reacquiring after release works.
	unlock := s.Acquire("a")
	unlock()
}

func TestMemoryStorePingAndClose(t *testing.T) {
	s := NewMemoryConversationStore()

	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Ping(context.Background()), ErrStoreClosed)
}
