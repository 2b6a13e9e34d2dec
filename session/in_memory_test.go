package session

import (
	"sync"
	"testing"

	"github.com/hupe1980/matchday/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var _ core.Store = (*InMemoryStore)(nil)

func TestInMemoryStore_SetGet(t *testing.T) {
	s := NewInMemoryStore()

	v, err := s.Get("s1", core.KeyTeam)
	require.NoError(t, err)
	assert.Equal(t, "", v, "absent key reads as empty string")

	require.NoError(t, s.Set("s1", core.KeyTeam, "India"))
	require.NoError(t, s.Set("s1", core.KeyCity, "Kolkata"))

	v, err = s.Get("s1", core.KeyTeam)
	require.NoError(t, err)
	assert.Equal(t, "India", v)

	// sessions are isolated
	v, err = s.Get("s2", core.KeyTeam)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestInMemoryStore_Overwrite(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Set("s1", core.KeyCity, "Mumbai"))
	require.NoError(t, s.Set("s1", core.KeyCity, "Chennai"))

	v, err := s.Get("s1", core.KeyCity)
	require.NoError(t, err)
	assert.Equal(t, "Chennai", v)
}

func TestInMemoryStore_GetAllReturnsCopy(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Set("s1", core.KeyTeam, "Australia"))

	m, err := s.GetAll("s1")
	require.NoError(t, err)
	require.Equal(t, map[string]string{core.KeyTeam: "Australia"}, m)

	// mutating the returned map must not leak into the store
	m[core.KeyTeam] = "changed"
	v, _ := s.Get("s1", core.KeyTeam)
	assert.Equal(t, "Australia", v)
}

func TestInMemoryStore_Clear(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Set("s1", core.KeyTeam, "England"))
	require.NoError(t, s.Set("s2", core.KeyTeam, "Pakistan"))

	require.NoError(t, s.Clear("s1"))

	m, err := s.GetAll("s1")
	require.NoError(t, err)
	assert.Empty(t, m)

	// other sessions untouched
	v, _ := s.Get("s2", core.KeyTeam)
	assert.Equal(t, "Pakistan", v)

	// clearing an unknown session is a no-op
	assert.NoError(t, s.Clear("missing"))
}

func TestInMemoryStore_ConcurrentWrites(t *testing.T) {
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Set("s1", core.KeyTeam, "India")
				_, _ = s.Get("s1", core.KeyTeam)
				_, _ = s.GetAll("s1")
			}
		}()
	}
	wg.Wait()

	v, err := s.Get("s1", core.KeyTeam)
	require.NoError(t, err)
	assert.Equal(t, "India", v)
}
