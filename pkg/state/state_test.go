package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManager_SetGetClear(t *testing.T) {
	m := New()

	assert.Equal(t, StateNormal, m.GetState(1))

	m.SetState(1, StateAwaitingIngredients)
	assert.Equal(t, StateAwaitingIngredients, m.GetState(1))
	assert.Equal(t, StateNormal, m.GetState(2))

	m.ClearState(1)
	assert.Equal(t, StateNormal, m.GetState(1))
}

func TestManager_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewWithTTL(10 * time.Minute)
	m.now = func() time.Time { return now }

	m.SetState(7, StateAwaitingIngredients)

	now = now.Add(9 * time.Minute)
	assert.Equal(t, StateAwaitingIngredients, m.GetState(7))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, StateNormal, m.GetState(7))
	assert.Empty(t, m.states)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := New()
	done := make(chan struct{})
	for i := int64(0); i < 8; i++ {
		go func(id int64) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				m.SetState(id, StateAwaitingIngredients)
				m.GetState(id)
				m.ClearState(id)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Empty(t, m.states)
}
