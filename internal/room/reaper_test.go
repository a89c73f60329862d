package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReapPlayersEvictsDeadSender(t *testing.T) {
	r := New("r1", "Test Room")
	alive := &fakeSender{}
	dead := &fakeSender{closed: true}
	require.NoError(t, r.Join(1, "alice", alive))
	require.NoError(t, r.Join(2, "bob", dead))

	// Backdate bob's activity so the probe failing is what evicts him,
	// not a fresh join's LastActive.
	r.mu.Lock()
	for _, p := range r.Players {
		if p.UserID == 2 {
			p.LastActive = time.Now().Add(-time.Hour)
		}
	}
	r.mu.Unlock()

	r.reapPlayers(time.Minute)

	require.Len(t, r.Players, 1)
	require.Equal(t, uint64(1), r.Players[0].UserID)
	_, stillAssigned := r.State.ColorOf(2)
	require.False(t, stillAssigned)
}

func TestReapPlayersKeepsConesMidGame(t *testing.T) {
	r := New("r1", "Test Room")
	require.NoError(t, r.Join(1, "alice", &fakeSender{}))
	require.NoError(t, r.Join(2, "bob", &fakeSender{closed: true}))
	require.NoError(t, r.SetReadyAndChat(1, nil, boolPtr(true)))
	require.NoError(t, r.SetReadyAndChat(2, nil, boolPtr(true)))
	require.NoError(t, r.Start(1))

	r.mu.Lock()
	for _, p := range r.Players {
		if p.UserID == 2 {
			p.LastActive = time.Now().Add(-time.Hour)
		}
	}
	before := len(r.State.Cones)
	r.mu.Unlock()

	r.reapPlayers(time.Minute)

	require.Len(t, r.Players, 1)
	require.Equal(t, before, len(r.State.Cones), "mid-game cones are not cleared")
}

func TestRegistryReapDeletesEmptyStaleRooms(t *testing.T) {
	reg := NewRegistry(0, time.Millisecond, time.Minute)
	_, err := reg.Create("r1", "Test Room", 1)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	reg.reap()

	_, ok := reg.Get("r1")
	require.False(t, ok)
}

func TestRegistryKeepsOccupiedRooms(t *testing.T) {
	reg := NewRegistry(0, time.Millisecond, time.Minute)
	r, err := reg.Create("r1", "Test Room", 1)
	require.NoError(t, err)
	require.NoError(t, r.Join(1, "alice", &fakeSender{}))

	time.Sleep(2 * time.Millisecond)
	reg.reap()

	_, ok := reg.Get("r1")
	require.True(t, ok)
}
