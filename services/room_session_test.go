package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	roomCode string
	playerID string // empty for room-wide broadcasts
	event    EventType
	payload  interface{}
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeBroadcaster) BroadcastToRoom(roomCode string, event EventType, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{roomCode: roomCode, event: event, payload: payload})
}

func (f *fakeBroadcaster) SendToPlayer(roomCode, playerID string, event EventType, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{roomCode: roomCode, playerID: playerID, event: event, payload: payload})
}

func (f *fakeBroadcaster) ofType(event EventType) []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []recordedEvent
	for _, e := range f.events {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeBroadcaster) lastOfType(event EventType) (recordedEvent, bool) {
	matches := f.ofType(event)
	if len(matches) == 0 {
		return recordedEvent{}, false
	}
	return matches[len(matches)-1], true
}

type fakeRecorder struct {
	mu       sync.Mutex
	started  int
	rounds   []RoundArchive
	ended    []RoomStatus
	finals   []FinalScore
	deleted  []string
	snapshot *RoomSnapshot
}

func (f *fakeRecorder) RecordGameStarted(roomID, roomCode string, settings GameSettings) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return uint(f.started), nil
}

func (f *fakeRecorder) RecordRoundEnded(gameID uint, archive RoundArchive) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rounds = append(f.rounds, archive)
	return nil
}

func (f *fakeRecorder) RecordGameEnded(gameID uint, status RoomStatus, finals []FinalScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = append(f.ended, status)
	f.finals = finals
	return nil
}

func (f *fakeRecorder) SaveSnapshot(snapshot *RoomSnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = snapshot
	return nil
}

func (f *fakeRecorder) DeleteSnapshot(roomCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, roomCode)
	return nil
}

type fixedWordBank struct {
	word string
}

func (b fixedWordBank) NextWord(category, difficulty string) string { return b.word }

func newTestSession(settings GameSettings) (*RoomSession, *fakeBroadcaster, *fakeRecorder) {
	broadcaster := &fakeBroadcaster{}
	recorder := &fakeRecorder{}
	session := NewRoomSession("room-1", "abc123", settings, fixedWordBank{word: "ELEPHANT"}, recorder, broadcaster)
	return session, broadcaster, recorder
}

// advanceClock applies countdown ticks the way the round timer goroutine
// does, serialized under the room lock. The real ticker is cancelled first
// so a slow test cannot pick up an extra wall-clock decrement; a round
// transition mid-advance starts a fresh ticker, hence the cancel runs on
// every iteration.
func advanceClock(s *RoomSession, seconds int) {
	for i := 0; i < seconds; i++ {
		s.mu.Lock()
		if s.timerDone != nil {
			close(s.timerDone)
			s.timerDone = nil
		}
		if s.round == nil || s.round.IsEnded() {
			s.mu.Unlock()
			return
		}
		if outcome := s.round.Tick(); outcome != nil {
			s.finishRoundLocked(outcome)
		}
		s.mu.Unlock()
	}
}

func currentRound(s *RoomSession) *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

func TestRoomSession_FirstJoinerIsHostAndReady(t *testing.T) {
	session, _, _ := newTestSession(DefaultGameSettings())

	host, err := session.Join("a", "Alice", "🦕")
	require.NoError(t, err)

	assert.True(t, host.IsHost)
	assert.True(t, host.IsReady)

	second, err := session.Join("b", "Bob", "")
	require.NoError(t, err)
	assert.False(t, second.IsHost)
	assert.False(t, second.IsReady)
}

func TestRoomSession_JoinRejections(t *testing.T) {
	settings := DefaultGameSettings()
	settings.MaxPlayers = 2
	session, _, _ := newTestSession(settings)

	_, err := session.Join("a", "Alice", "")
	require.NoError(t, err)

	_, err = session.Join("a", "Alice again", "")
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	_, err = session.Join("b", "Bob", "")
	require.NoError(t, err)

	_, err = session.Join("c", "Cara", "")
	assert.ErrorIs(t, err, ErrRoomFull)

	require.NoError(t, session.Start("a"))
	_, err = session.Join("d", "Dave", "")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRoomSession_RosterInvariants(t *testing.T) {
	session, _, _ := newTestSession(DefaultGameSettings())

	// arbitrary join/leave sequence keeps ids unique and exactly one host
	steps := []struct {
		join bool
		id   string
	}{
		{true, "a"}, {true, "b"}, {true, "c"},
		{false, "b"}, {true, "d"}, {false, "a"},
		{true, "e"}, {false, "c"},
	}

	for _, step := range steps {
		if step.join {
			_, err := session.Join(step.id, "P-"+step.id, "")
			require.NoError(t, err)
		} else {
			require.NoError(t, session.Leave(step.id))
		}

		snap := session.Snapshot()
		seen := make(map[string]bool)
		hosts := 0
		for _, p := range snap.Players {
			assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
			if p.IsHost {
				hosts++
			}
		}
		if len(snap.Players) > 0 {
			assert.Equal(t, 1, hosts, "exactly one host expected")
		}
	}
}

func TestRoomSession_HostLeavePromotesEarliestJoiner(t *testing.T) {
	session, broadcaster, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	session.Join("c", "Cara", "")

	require.NoError(t, session.Leave("a"))

	snap := session.Snapshot()
	require.Len(t, snap.Players, 2)
	assert.True(t, snap.Players[0].IsHost)
	assert.Equal(t, "b", snap.Players[0].ID)

	event, ok := broadcaster.lastOfType(EventPlayerLeft)
	require.True(t, ok)
	assert.Equal(t, "b", event.payload.(PlayerLeftPayload).NewHostID)
}

func TestRoomSession_LastLeaveTearsRoomDown(t *testing.T) {
	session, broadcaster, recorder := newTestSession(DefaultGameSettings())

	var closedWith string
	session.SetOnClose(func(code string) { closedWith = code })

	session.Join("a", "Alice", "")
	require.NoError(t, session.Leave("a"))

	assert.Equal(t, StatusCancelled, session.Status())
	assert.Equal(t, "abc123", closedWith)
	assert.Contains(t, recorder.deleted, "abc123")

	_, cancelled := broadcaster.lastOfType(EventRoomCancelled)
	assert.True(t, cancelled)
}

func TestRoomSession_LeaveUnknownPlayer(t *testing.T) {
	session, _, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")

	assert.ErrorIs(t, session.Leave("ghost"), ErrNotFound)
}

func TestRoomSession_Kick(t *testing.T) {
	session, _, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	session.Join("c", "Cara", "")

	assert.ErrorIs(t, session.Kick("b", "c"), ErrForbidden, "only the host can kick")
	assert.ErrorIs(t, session.Kick("a", "a"), ErrForbidden, "the host cannot be removed")

	require.NoError(t, session.Kick("a", "b"))
	snap := session.Snapshot()
	assert.Len(t, snap.Players, 2)
}

func TestRoomSession_SetReadyOutsideLobbyIsNoOp(t *testing.T) {
	session, _, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")

	require.NoError(t, session.SetReady("b", true))
	require.NoError(t, session.Start("a"))

	// playing: silently ignored, ready flags frozen
	require.NoError(t, session.SetReady("b", false))
	for _, p := range session.Snapshot().Players {
		if p.ID == "b" {
			assert.True(t, p.IsReady)
		}
	}
}

func TestRoomSession_UpdateSettings(t *testing.T) {
	session, broadcaster, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")

	settings := DefaultGameSettings()
	settings.RoundTime = 90

	assert.ErrorIs(t, session.UpdateSettings("b", settings), ErrForbidden)

	bad := settings
	bad.RoundsPerGame = 0
	assert.ErrorIs(t, session.UpdateSettings("a", bad), ErrInvalidState)

	require.NoError(t, session.UpdateSettings("a", settings))
	assert.Equal(t, 90, session.Snapshot().Settings.RoundTime)
	_, ok := broadcaster.lastOfType(EventSettingsUpdated)
	assert.True(t, ok)

	require.NoError(t, session.Start("a"))
	assert.ErrorIs(t, session.UpdateSettings("a", settings), ErrInvalidState)
}

func TestRoomSession_StartValidation(t *testing.T) {
	session, _, recorder := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")

	assert.ErrorIs(t, session.Start("b"), ErrForbidden)
	assert.ErrorIs(t, session.Start("ghost"), ErrNotFound)

	require.NoError(t, session.Start("a"))
	assert.Equal(t, StatusPlaying, session.Status())
	assert.Equal(t, 1, recorder.started)

	assert.ErrorIs(t, session.Start("a"), ErrInvalidState)
}

func TestRoomSession_StartCreatesRoundOne(t *testing.T) {
	session, broadcaster, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")

	require.NoError(t, session.Start("a"))

	event, ok := broadcaster.lastOfType(EventRoundStarted)
	require.True(t, ok)
	payload := event.payload.(RoundStartedPayload)
	assert.Equal(t, 1, payload.RoundNumber)
	assert.Equal(t, "a", payload.DrawerID, "first joiner draws first")
	assert.Equal(t, 60, payload.TimeLeft)
	assert.NotContains(t, payload.Hint, "ELEPHANT", "hint is masked")

	// the word goes to the drawer only
	word, ok := broadcaster.lastOfType(EventWordAssigned)
	require.True(t, ok)
	assert.Equal(t, "a", word.playerID)
	assert.Equal(t, "ELEPHANT", word.payload.(WordAssignedPayload).Word)

	snap := session.Snapshot()
	assert.Equal(t, "a", snap.DrawerID)
	assert.Equal(t, 1, snap.RoundNumber)
}

func TestRoomSession_DrawerGuessForbidden(t *testing.T) {
	session, _, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	require.NoError(t, session.Start("a"))

	assert.ErrorIs(t, session.SubmitGuess("a", "ELEPHANT"), ErrForbidden)
}

func TestRoomSession_WrongGuessIsEchoedWithoutScore(t *testing.T) {
	session, broadcaster, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	require.NoError(t, session.Start("a"))

	require.NoError(t, session.SubmitGuess("b", "GIRAFFE"))

	event, ok := broadcaster.lastOfType(EventChatMessage)
	require.True(t, ok)
	msg := event.payload.(ChatMessagePayload)
	assert.Equal(t, MessageKindGuess, msg.Kind)
	assert.Equal(t, "GIRAFFE", msg.Text)

	for _, p := range session.Snapshot().Players {
		assert.Zero(t, p.Score)
	}
	assert.False(t, currentRound(session).IsEnded())
}

func TestRoomSession_CorrectGuessScoresBothSidesAndAdvances(t *testing.T) {
	settings := DefaultGameSettings()
	settings.RoundsPerGame = 3
	session, broadcaster, recorder := newTestSession(settings)
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	session.Join("c", "Cara", "")
	require.NoError(t, session.Start("a"))

	advanceClock(session, 10) // timeLeft now 50
	require.NoError(t, session.SubmitGuess("b", "elephant"))

	result, ok := broadcaster.lastOfType(EventGuessResult)
	require.True(t, ok)
	payload := result.payload.(GuessResultPayload)
	assert.True(t, payload.Correct)
	assert.Equal(t, 25, payload.PointsEarned) // max(10, 20 + 50/10)

	scores := map[string]int{}
	for _, p := range session.Snapshot().Players {
		scores[p.ID] = p.Score
	}
	assert.Equal(t, 25, scores["b"])
	assert.Equal(t, 10, scores["a"], "drawer bonus")
	assert.Equal(t, 0, scores["c"])

	ended, ok := broadcaster.lastOfType(EventRoundEnded)
	require.True(t, ok)
	assert.Equal(t, EndGuessed, ended.payload.(RoundEndedPayload).Reason)
	assert.Equal(t, "ELEPHANT", ended.payload.(RoundEndedPayload).Word)

	require.Len(t, recorder.rounds, 1)
	assert.Equal(t, EndGuessed, recorder.rounds[0].Reason)

	// round 2 started immediately, drawer rotated to b
	started, ok := broadcaster.lastOfType(EventRoundStarted)
	require.True(t, ok)
	assert.Equal(t, 2, started.payload.(RoundStartedPayload).RoundNumber)
	assert.Equal(t, "b", started.payload.(RoundStartedPayload).DrawerID)
}

func TestRoomSession_GuessAfterRoundEndIsDropped(t *testing.T) {
	settings := DefaultGameSettings()
	settings.RoundsPerGame = 1
	session, _, _ := newTestSession(settings)
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	require.NoError(t, session.Start("a"))

	require.NoError(t, session.Skip("a"))

	// game is over; a late guess is an invalid-state call now
	assert.ErrorIs(t, session.SubmitGuess("b", "ELEPHANT"), ErrInvalidState)
}

func TestRoomSession_PauseResumeSkipPermissions(t *testing.T) {
	session, broadcaster, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	require.NoError(t, session.Start("a"))

	assert.ErrorIs(t, session.Pause("b"), ErrForbidden)
	assert.ErrorIs(t, session.Skip("b"), ErrForbidden)

	require.NoError(t, session.Pause("a"))
	assert.True(t, session.Snapshot().Paused)

	// pausing again stays paused
	require.NoError(t, session.Pause("a"))
	assert.True(t, session.Snapshot().Paused)

	require.NoError(t, session.Resume("a"))
	assert.False(t, session.Snapshot().Paused)

	require.NoError(t, session.Skip("a"))
	ended, ok := broadcaster.lastOfType(EventRoundEnded)
	require.True(t, ok)
	assert.Equal(t, EndSkipped, ended.payload.(RoundEndedPayload).Reason)
}

func TestRoomSession_MarkCompleteOnlyDrawer(t *testing.T) {
	session, broadcaster, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	require.NoError(t, session.Start("a"))

	assert.ErrorIs(t, session.MarkComplete("b"), ErrForbidden)

	require.NoError(t, session.MarkComplete("a"))
	ended, ok := broadcaster.lastOfType(EventRoundEnded)
	require.True(t, ok)
	assert.Equal(t, EndDrawerComplete, ended.payload.(RoundEndedPayload).Reason)
}

func TestRoomSession_RevealHint(t *testing.T) {
	session, broadcaster, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	require.NoError(t, session.Start("a"))

	assert.ErrorIs(t, session.RevealHint("a"), ErrForbidden, "drawer already knows the word")

	require.NoError(t, session.RevealHint("b"))
	assert.True(t, session.Snapshot().HintShown)
	_, ok := broadcaster.lastOfType(EventHintRevealed)
	assert.True(t, ok)
	assert.False(t, currentRound(session).IsEnded())
}

func TestRoomSession_DrawerLeavingAbortsRoundAndAdvances(t *testing.T) {
	session, broadcaster, _ := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	session.Join("c", "Cara", "")
	require.NoError(t, session.Start("a"))

	require.NoError(t, session.Leave("a")) // host and drawer

	ended, ok := broadcaster.lastOfType(EventRoundEnded)
	require.True(t, ok)
	assert.Equal(t, EndDrawerLeft, ended.payload.(RoundEndedPayload).Reason)

	started, ok := broadcaster.lastOfType(EventRoundStarted)
	require.True(t, ok)
	payload := started.payload.(RoundStartedPayload)
	assert.Equal(t, 2, payload.RoundNumber)
	assert.Equal(t, "b", payload.DrawerID, "departed drawer is skipped")
}

func TestRoomSession_SnapshotNeverLeaksWord(t *testing.T) {
	session, _, recorder := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	require.NoError(t, session.Start("a"))

	snap := session.Snapshot()
	assert.NotEmpty(t, snap.Hint)
	assert.NotEqual(t, "E L E P H A N T", snap.Hint)
	require.NotNil(t, recorder.snapshot)
	assert.NotEqual(t, "E L E P H A N T", recorder.snapshot.Hint)
}

// Mirrors the canonical three-player walkthrough: a correct guess in round 1,
// a timeout in round 2, then final ranking.
func TestRoomSession_FullGame(t *testing.T) {
	settings := DefaultGameSettings()
	settings.RoundTime = 60
	settings.RoundsPerGame = 2
	session, broadcaster, recorder := newTestSession(settings)

	session.Join("a", "Alice", "") // host
	session.Join("b", "Bob", "")
	session.Join("c", "Cara", "")
	require.NoError(t, session.SetReady("b", true))
	require.NoError(t, session.SetReady("c", true))
	require.NoError(t, session.Start("a"))

	// round 1: drawer a; b guesses with 50 seconds left
	advanceClock(session, 10)
	require.NoError(t, session.SubmitGuess("b", "ELEPHANT"))

	// round 2: drawer b; nobody guesses, clock runs out
	started, ok := broadcaster.lastOfType(EventRoundStarted)
	require.True(t, ok)
	assert.Equal(t, 2, started.payload.(RoundStartedPayload).RoundNumber)
	assert.Equal(t, "b", started.payload.(RoundStartedPayload).DrawerID)

	advanceClock(session, 60)

	ended := broadcaster.ofType(EventRoundEnded)
	require.Len(t, ended, 2)
	assert.Equal(t, EndTimedOut, ended[1].payload.(RoundEndedPayload).Reason)

	// two rounds consumed the budget: game over, no third drawer
	assert.Equal(t, StatusCompleted, session.Status())

	gameEnded, ok := broadcaster.lastOfType(EventGameEnded)
	require.True(t, ok)
	finals := gameEnded.payload.(GameEndedPayload).FinalScores
	require.Len(t, finals, 3)

	assert.Equal(t, "b", finals[0].PlayerID)
	assert.Equal(t, 25, finals[0].TotalScore)
	assert.Equal(t, 1, finals[0].Rank)

	assert.Equal(t, "a", finals[1].PlayerID)
	assert.Equal(t, 10, finals[1].TotalScore)
	assert.Equal(t, 2, finals[1].Rank)

	assert.Equal(t, "c", finals[2].PlayerID)
	assert.Equal(t, 0, finals[2].TotalScore)
	assert.Equal(t, 3, finals[2].Rank)

	require.Len(t, recorder.rounds, 2)
	assert.Equal(t, []RoomStatus{StatusCompleted}, recorder.ended)
	assert.Equal(t, finals, recorder.finals)
}

func TestRoomSession_RoundBudgetProperty(t *testing.T) {
	// N players, R rounds: exactly R round numbers occur, drawers follow
	// strict rotation order
	settings := DefaultGameSettings()
	settings.RoundsPerGame = 5
	session, broadcaster, _ := newTestSession(settings)

	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	session.Join("c", "Cara", "")
	require.NoError(t, session.Start("a"))

	for session.Status() == StatusPlaying {
		require.NoError(t, session.Skip("a"))
	}

	started := broadcaster.ofType(EventRoundStarted)
	require.Len(t, started, 5)

	wantDrawers := []string{"a", "b", "c", "a", "b"}
	for i, event := range started {
		payload := event.payload.(RoundStartedPayload)
		assert.Equal(t, i+1, payload.RoundNumber)
		assert.Equal(t, wantDrawers[i], payload.DrawerID)
	}
}

func TestRoomSession_CancelDuringPlay(t *testing.T) {
	session, broadcaster, recorder := newTestSession(DefaultGameSettings())
	session.Join("a", "Alice", "")
	session.Join("b", "Bob", "")
	require.NoError(t, session.Start("a"))

	session.Cancel("torn down")

	assert.Equal(t, StatusCancelled, session.Status())
	assert.Equal(t, []RoomStatus{StatusCancelled}, recorder.ended)
	_, ok := broadcaster.lastOfType(EventRoomCancelled)
	assert.True(t, ok)

	// nothing works after cancellation
	assert.ErrorIs(t, session.SubmitGuess("b", "ELEPHANT"), ErrInvalidState)
	_, err := session.Join("d", "Dave", "")
	assert.ErrorIs(t, err, ErrInvalidState)
}
