package room

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"starboard/pkg/board"
	"starboard/pkg/protocol"
)

// fakeSender records every event it receives; it never refuses a send
// unless closed.
type fakeSender struct {
	mu     sync.Mutex
	events []protocol.Event
	closed bool
}

func (f *fakeSender) Send(e protocol.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.events = append(f.events, e)
	return true
}

func (f *fakeSender) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.EventName()
	}
	return out
}

func TestJoinAssignsLowestFreeColor(t *testing.T) {
	r := New("r1", "Test Room")
	s1, s2 := &fakeSender{}, &fakeSender{}

	require.NoError(t, r.Join(1, "alice", s1))
	require.NoError(t, r.Join(2, "bob", s2))

	colorOf := func(userID uint64) board.Color {
		c, _ := r.State.ColorOf(userID)
		return c
	}
	require.Equal(t, board.Purple, colorOf(1))
	require.Equal(t, board.Green, colorOf(2))
	require.Contains(t, s1.names(), "player_joined")
	require.Contains(t, s2.names(), "player_joined")
}

func TestJoinRejectsFullRoom(t *testing.T) {
	r := New("r1", "Test Room")
	for i := uint64(1); i <= MaxPlayers; i++ {
		require.NoError(t, r.Join(i, "p", &fakeSender{}))
	}
	err := r.Join(MaxPlayers+1, "overflow", &fakeSender{})
	require.Error(t, err)
}

func TestRejoinRebindsSenderWithoutDuplicating(t *testing.T) {
	r := New("r1", "Test Room")
	s1 := &fakeSender{}
	require.NoError(t, r.Join(1, "alice", s1))

	s2 := &fakeSender{}
	require.NoError(t, r.Join(1, "alice", s2))
	require.Len(t, r.Players, 1)
}

func TestStartRequiresCreatorAndAllReady(t *testing.T) {
	r := New("r1", "Test Room")
	require.NoError(t, r.Join(1, "alice", &fakeSender{}))
	require.NoError(t, r.Join(2, "bob", &fakeSender{}))

	err := r.Start(1)
	require.Error(t, err, "not all ready yet")

	err = r.Start(2)
	require.Error(t, err, "not the creator")

	require.NoError(t, r.SetReadyAndChat(1, nil, boolPtr(true)))
	require.NoError(t, r.SetReadyAndChat(2, nil, boolPtr(true)))

	require.NoError(t, r.Start(1))
	require.True(t, r.GameStarted)
}

func TestSetColorRejectsTakenColorAndReadyPlayers(t *testing.T) {
	r := New("r1", "Test Room")
	require.NoError(t, r.Join(1, "alice", &fakeSender{}))
	require.NoError(t, r.Join(2, "bob", &fakeSender{}))

	err := r.SetColor(2, board.Purple)
	require.Error(t, err)

	require.NoError(t, r.SetColor(2, board.Orange))
	color, _ := r.State.ColorOf(2)
	require.Equal(t, board.Orange, color)

	require.NoError(t, r.SetReadyAndChat(2, nil, boolPtr(true)))
	err = r.SetColor(2, board.Blue)
	require.Error(t, err)
}

func TestChatReflectsNewReadyStateInSameBroadcast(t *testing.T) {
	r := New("r1", "Test Room")
	s1 := &fakeSender{}
	require.NoError(t, r.Join(1, "alice", s1))

	msg := "gl hf"
	require.NoError(t, r.SetReadyAndChat(1, &msg, boolPtr(true)))

	s1.mu.Lock()
	last := s1.events[len(s1.events)-1].(protocol.ChatMessage)
	s1.mu.Unlock()
	require.NotNil(t, last.Ready)
	require.True(t, *last.Ready)
	require.Equal(t, "gl hf", *last.Message)
}

func TestMakeMoveRotatesTurnAndRejectsWrongPlayer(t *testing.T) {
	r := New("r1", "Test Room")
	require.NoError(t, r.Join(1, "alice", &fakeSender{}))
	require.NoError(t, r.Join(2, "bob", &fakeSender{}))
	require.NoError(t, r.SetReadyAndChat(1, nil, boolPtr(true)))
	require.NoError(t, r.SetReadyAndChat(2, nil, boolPtr(true)))
	require.NoError(t, r.Start(1))

	// alice is Purple (home rows 0-4); bob is Green. (4,0) steps into the
	// empty central cell (5,5).
	move := []board.Point{{Row: 4, Col: 0}, {Row: 5, Col: 5}}
	err := r.MakeMove(2, move)
	require.Error(t, err, "not bob's turn")

	require.NoError(t, r.MakeMove(1, move))
	require.Equal(t, 1, r.ActivePlayer)
}

func TestLeaveMidGameKeepsConesButClampsActive(t *testing.T) {
	r := New("r1", "Test Room")
	require.NoError(t, r.Join(1, "alice", &fakeSender{}))
	require.NoError(t, r.Join(2, "bob", &fakeSender{}))
	require.NoError(t, r.SetReadyAndChat(1, nil, boolPtr(true)))
	require.NoError(t, r.SetReadyAndChat(2, nil, boolPtr(true)))
	require.NoError(t, r.Start(1))

	before := len(r.State.Cones)
	r.Leave(2)
	require.Equal(t, before, len(r.State.Cones), "cones stay mid-game")
	require.Equal(t, 0, r.ActivePlayer)
	require.Len(t, r.Players, 1)
}

func TestLeaveInLobbyFreesColorAndCones(t *testing.T) {
	r := New("r1", "Test Room")
	require.NoError(t, r.Join(1, "alice", &fakeSender{}))
	before := len(r.State.Cones)
	require.Greater(t, before, 0)

	r.Leave(1)
	require.Equal(t, 0, len(r.State.Cones))
	require.True(t, r.Empty())
}

func TestStaleForRequiresEmptyAndOld(t *testing.T) {
	r := New("r1", "Test Room")
	require.False(t, r.StaleFor(time.Millisecond))
	require.NoError(t, r.Join(1, "alice", &fakeSender{}))
	r.Leave(1)
	time.Sleep(2 * time.Millisecond)
	require.True(t, r.StaleFor(time.Millisecond))
}

func boolPtr(b bool) *bool { return &b }
