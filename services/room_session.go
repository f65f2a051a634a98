package services

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// RoomStatus is the top-level room lifecycle.
type RoomStatus string

const (
	StatusWaiting   RoomStatus = "waiting"
	StatusPlaying   RoomStatus = "playing"
	StatusCompleted RoomStatus = "completed"
	StatusCancelled RoomStatus = "cancelled"
)

type Player struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Avatar         string    `json:"avatar"`
	IsHost         bool      `json:"is_host"`
	IsReady        bool      `json:"is_ready"`
	IsDrawing      bool      `json:"is_drawing"`
	Score          int       `json:"score"`
	CorrectGuesses int       `json:"correct_guesses"`
	JoinedAt       time.Time `json:"joined_at"`
}

type GameSettings struct {
	RoundTime        int      `json:"round_time"` // seconds per round
	RoundsPerGame    int      `json:"rounds_per_game"`
	WordDifficulty   string   `json:"word_difficulty"` // easy, medium, hard
	MaxPlayers       int      `json:"max_players"`
	Category         string   `json:"category"`
	AllowCustomWords bool     `json:"allow_custom_words"`
	CustomWords      []string `json:"custom_words,omitempty"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		RoundTime:      60,
		RoundsPerGame:  3,
		WordDifficulty: "medium",
		MaxPlayers:     8,
		Category:       "all",
	}
}

func (s GameSettings) Validate() error {
	if s.RoundTime <= 0 {
		return fmt.Errorf("%w: round time must be positive", ErrInvalidState)
	}
	if s.RoundsPerGame < 1 {
		return fmt.Errorf("%w: at least one round required", ErrInvalidState)
	}
	if s.MaxPlayers < 2 {
		return fmt.Errorf("%w: room needs capacity for at least two players", ErrInvalidState)
	}
	switch s.WordDifficulty {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidState, s.WordDifficulty)
	}
	return nil
}

// RoomSnapshot is the public room state pushed to late joiners and stored in
// Redis. It never contains the secret word.
type RoomSnapshot struct {
	RoomID      string       `json:"room_id"`
	RoomCode    string       `json:"room_code"`
	Status      RoomStatus   `json:"status"`
	Players     []Player     `json:"players"`
	Settings    GameSettings `json:"settings"`
	RoundNumber int          `json:"round_number"`
	DrawerID    string       `json:"drawer_id,omitempty"`
	Hint        string       `json:"hint,omitempty"`
	TimeLeft    int          `json:"time_left"`
	Paused      bool         `json:"paused"`
	HintShown   bool         `json:"hint_shown"`
}

// Broadcaster fans engine events out to a room's connected clients. The hub
// implements it; tests substitute a fake.
type Broadcaster interface {
	BroadcastToRoom(roomCode string, event EventType, payload interface{})
	SendToPlayer(roomCode, playerID string, event EventType, payload interface{})
}

// RoundArchive is what gets persisted when a round ends.
type RoundArchive struct {
	Number         int
	Word           string
	DrawerID       string
	DrawerName     string
	Reason         EndReason
	StartedAt      time.Time
	CorrectGuesses []CorrectGuess
}

// GameRecorder persists game, round and final-score records, plus the live
// room snapshot. Writes happen after a transition completes and never block
// or fail the engine.
type GameRecorder interface {
	RecordGameStarted(roomID, roomCode string, settings GameSettings) (uint, error)
	RecordRoundEnded(gameID uint, archive RoundArchive) error
	RecordGameEnded(gameID uint, status RoomStatus, finals []FinalScore) error
	SaveSnapshot(snapshot *RoomSnapshot) error
	DeleteSnapshot(roomCode string) error
}

// RoomSession owns one room: the roster, the settings and the sequence of
// rounds. Every mutating operation, timer ticks included, runs under one
// mutex so the room behaves as a single logical actor; rooms share no state
// with each other.
type RoomSession struct {
	mu sync.Mutex

	roomID   string
	roomCode string
	status   RoomStatus
	players  []*Player // join order defines turn rotation
	settings GameSettings

	wordBank    WordBank
	hints       *HintGenerator
	store       GameRecorder
	broadcaster Broadcaster

	rotator     *TurnRotator
	round       *Round
	roundNumber int
	gameID      uint
	timerDone   chan struct{}

	onClose func(roomCode string)
}

func NewRoomSession(roomID, roomCode string, settings GameSettings, bank WordBank, store GameRecorder, broadcaster Broadcaster) *RoomSession {
	return &RoomSession{
		roomID:      roomID,
		roomCode:    roomCode,
		status:      StatusWaiting,
		settings:    settings,
		wordBank:    bank,
		hints:       NewHintGenerator(),
		store:       store,
		broadcaster: broadcaster,
	}
}

// SetOnClose registers the callback invoked once the room is torn down.
func (s *RoomSession) SetOnClose(fn func(roomCode string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClose = fn
}

func (s *RoomSession) RoomID() string   { return s.roomID }
func (s *RoomSession) RoomCode() string { return s.roomCode }

func (s *RoomSession) Status() RoomStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Join adds a player to the roster. The first joiner becomes host and is
// automatically ready.
func (s *RoomSession) Join(playerID, name, avatar string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusWaiting {
		return nil, ErrInvalidState
	}
	if len(s.players) >= s.settings.MaxPlayers {
		return nil, ErrRoomFull
	}
	for _, p := range s.players {
		if p.ID == playerID {
			return nil, ErrDuplicatePlayer
		}
	}

	player := &Player{
		ID:       playerID,
		Name:     name,
		Avatar:   avatar,
		JoinedAt: time.Now(),
	}
	if len(s.players) == 0 {
		player.IsHost = true
		player.IsReady = true
	}
	s.players = append(s.players, player)

	log.Printf("Player %s (%s) joined room %s (%d/%d)", playerID, name, s.roomCode, len(s.players), s.settings.MaxPlayers)

	s.broadcast(EventPlayerJoined, PlayerJoinedPayload{Player: *player, Players: s.playersCopy()})
	s.saveSnapshot()

	joined := *player
	return &joined, nil
}

// Leave removes a player. A departing host hands the role to the earliest
// remaining joiner; a departing drawer aborts the round and the game
// advances; an emptied room is torn down.
func (s *RoomSession) Leave(playerID string) error {
	s.mu.Lock()
	closed, err := s.removePlayerLocked(playerID, "left")
	fn := s.onClose
	s.mu.Unlock()

	if closed && fn != nil {
		fn(s.roomCode)
	}
	return err
}

// Kick removes another player. Host-only; the host cannot be removed.
func (s *RoomSession) Kick(callerID, targetID string) error {
	s.mu.Lock()

	caller := s.findPlayer(callerID)
	if caller == nil {
		s.mu.Unlock()
		return ErrNotFound
	}
	if !caller.IsHost || callerID == targetID {
		s.mu.Unlock()
		return ErrForbidden
	}

	closed, err := s.removePlayerLocked(targetID, "kicked")
	fn := s.onClose
	s.mu.Unlock()

	if closed && fn != nil {
		fn(s.roomCode)
	}
	return err
}

func (s *RoomSession) removePlayerLocked(playerID, reason string) (closed bool, err error) {
	idx := -1
	for i, p := range s.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, ErrNotFound
	}

	departing := s.players[idx]
	s.players = append(s.players[:idx], s.players[idx+1:]...)
	log.Printf("Player %s (%s) %s room %s (%d remaining)", playerID, departing.Name, reason, s.roomCode, len(s.players))

	if len(s.players) == 0 {
		s.cancelLocked("room empty")
		return true, nil
	}

	newHostID := ""
	if departing.IsHost {
		// earliest-joined remaining player takes over
		s.players[0].IsHost = true
		s.players[0].IsReady = true
		newHostID = s.players[0].ID
		log.Printf("Host left room %s, promoted %s", s.roomCode, newHostID)
	}

	s.broadcast(EventPlayerLeft, PlayerLeftPayload{
		PlayerID:  playerID,
		Reason:    reason,
		NewHostID: newHostID,
		Players:   s.playersCopy(),
	})

	if s.status == StatusPlaying && s.round != nil && !s.round.IsEnded() && s.round.DrawerID == playerID {
		s.finishRoundLocked(s.round.Abort(EndDrawerLeft))
	} else {
		s.saveSnapshot()
	}

	return false, nil
}

// SetReady toggles a player's ready flag. Outside the lobby it is a no-op.
func (s *RoomSession) SetReady(playerID string, ready bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusWaiting {
		return nil
	}
	player := s.findPlayer(playerID)
	if player == nil {
		return ErrNotFound
	}

	player.IsReady = ready
	s.broadcast(EventPlayerReady, PlayerReadyPayload{PlayerID: playerID, Ready: ready})
	s.saveSnapshot()
	return nil
}

// UpdateSettings replaces the room settings. Host-only, lobby-only.
func (s *RoomSession) UpdateSettings(callerID string, settings GameSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.findPlayer(callerID)
	if caller == nil {
		return ErrNotFound
	}
	if !caller.IsHost {
		return ErrForbidden
	}
	if s.status != StatusWaiting {
		return ErrInvalidState
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	s.settings = settings
	s.broadcast(EventSettingsUpdated, SettingsUpdatedPayload{Settings: settings})
	s.saveSnapshot()
	return nil
}

// Start begins the game: the rotation order is frozen to the current join
// order and round 1 is created.
func (s *RoomSession) Start(callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller := s.findPlayer(callerID)
	if caller == nil {
		return ErrNotFound
	}
	if !caller.IsHost {
		return ErrForbidden
	}
	if s.status != StatusWaiting {
		return ErrInvalidState
	}

	ready := 0
	for _, p := range s.players {
		if p.IsReady || p.IsHost {
			ready++
		}
	}
	if ready == 0 {
		return ErrNotEnoughPlayers
	}

	order := make([]string, len(s.players))
	for i, p := range s.players {
		order[i] = p.ID
	}
	s.rotator = NewTurnRotator(order)
	s.roundNumber = 0
	s.status = StatusPlaying

	if s.store != nil {
		gameID, err := s.store.RecordGameStarted(s.roomID, s.roomCode, s.settings)
		if err != nil {
			log.Printf("Failed to persist game start for room %s: %v", s.roomCode, err)
		} else {
			s.gameID = gameID
		}
	}

	log.Printf("Game started in room %s with %d players", s.roomCode, len(s.players))
	s.broadcast(EventGameStarted, GameStartedPayload{GameID: s.gameID, Settings: s.settings})
	s.systemMessage("The game has started!")

	s.startNextRoundLocked()
	return nil
}

// SubmitGuess validates a guess from a non-drawing player. An incorrect
// guess is still echoed to the room as a guess-kind message; a correct one
// scores and ends the round.
func (s *RoomSession) SubmitGuess(playerID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPlaying || s.round == nil {
		return ErrInvalidState
	}
	player := s.findPlayer(playerID)
	if player == nil {
		return ErrNotFound
	}

	verdict, outcome, err := s.round.SubmitGuess(playerID, player.Name, text)
	if err != nil {
		if err == ErrInvalidState {
			// round already over, guess is silently dropped
			return nil
		}
		return err
	}

	kind := MessageKindGuess
	if verdict.Correct {
		kind = MessageKindCorrect
	}
	s.broadcast(EventChatMessage, ChatMessagePayload{
		PlayerID:   playerID,
		PlayerName: player.Name,
		Kind:       kind,
		Text:       text,
		Points:     verdict.Points,
		Timestamp:  time.Now(),
	})

	if verdict.Correct {
		s.broadcast(EventGuessResult, GuessResultPayload{
			PlayerID:     playerID,
			PlayerName:   player.Name,
			Correct:      true,
			PointsEarned: verdict.Points,
			DrawerBonus:  DrawerBonus,
		})
		s.systemMessage(fmt.Sprintf("%s guessed the word! +%d points", player.Name, verdict.Points))
		s.finishRoundLocked(outcome)
	}

	return nil
}

// Chat relays a plain chat message, no guess semantics.
func (s *RoomSession) Chat(playerID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := s.findPlayer(playerID)
	if player == nil {
		return ErrNotFound
	}

	s.broadcast(EventChatMessage, ChatMessagePayload{
		PlayerID:   playerID,
		PlayerName: player.Name,
		Kind:       MessageKindChat,
		Text:       text,
		Timestamp:  time.Now(),
	})
	return nil
}

// Pause halts the active round's countdown. Host-only, idempotent.
func (s *RoomSession) Pause(callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPlaying || s.round == nil {
		return ErrInvalidState
	}
	if err := s.round.Pause(s.isHost(callerID)); err != nil {
		return err
	}
	s.broadcast(EventRoundPaused, TimerTickPayload{RoundNumber: s.round.Number, TimeLeft: s.round.TimeLeft})
	s.saveSnapshot()
	return nil
}

// Resume restarts a paused round. Host-only, idempotent.
func (s *RoomSession) Resume(callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPlaying || s.round == nil {
		return ErrInvalidState
	}
	if err := s.round.Resume(s.isHost(callerID)); err != nil {
		return err
	}
	s.broadcast(EventRoundResumed, TimerTickPayload{RoundNumber: s.round.Number, TimeLeft: s.round.TimeLeft})
	s.saveSnapshot()
	return nil
}

// Skip ends the round immediately, revealing the word. Host-only.
func (s *RoomSession) Skip(callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPlaying || s.round == nil {
		return ErrInvalidState
	}
	outcome, err := s.round.Skip(s.isHost(callerID))
	if err != nil {
		return err
	}
	s.systemMessage(fmt.Sprintf("Round skipped by host. The word was %q", outcome.Word))
	s.finishRoundLocked(outcome)
	return nil
}

// MarkComplete lets the drawer end their own round early.
func (s *RoomSession) MarkComplete(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPlaying || s.round == nil {
		return ErrInvalidState
	}
	player := s.findPlayer(playerID)
	if player == nil {
		return ErrNotFound
	}
	outcome, err := s.round.MarkComplete(playerID)
	if err != nil {
		return err
	}
	s.systemMessage(fmt.Sprintf("%s marked the drawing as complete", player.Name))
	s.finishRoundLocked(outcome)
	return nil
}

// RevealHint shows the masked word to guessers. Any non-drawer may trigger
// it; it does not affect the clock or the score.
func (s *RoomSession) RevealHint(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusPlaying || s.round == nil {
		return ErrInvalidState
	}
	if err := s.round.RevealHint(playerID); err != nil {
		return err
	}
	s.broadcast(EventHintRevealed, HintRevealedPayload{Hint: s.round.Hint})
	s.saveSnapshot()
	return nil
}

// Cancel tears the room down explicitly.
func (s *RoomSession) Cancel(reason string) {
	s.mu.Lock()
	s.cancelLocked(reason)
	fn := s.onClose
	s.mu.Unlock()

	if fn != nil {
		fn(s.roomCode)
	}
}

// Snapshot returns the public room state.
func (s *RoomSession) Snapshot() RoomSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SyncClient pushes the current state to a single (re)connecting client.
func (s *RoomSession) SyncClient(playerID string) {
	s.mu.Lock()
	snap := s.snapshotLocked()
	isDrawer := s.round != nil && !s.round.IsEnded() && s.round.DrawerID == playerID
	var word string
	var number int
	if isDrawer {
		word = s.round.Word
		number = s.round.Number
	}
	s.mu.Unlock()

	if s.broadcaster == nil {
		return
	}
	s.broadcaster.SendToPlayer(s.roomCode, playerID, EventStateSync, snap)
	if isDrawer {
		s.broadcaster.SendToPlayer(s.roomCode, playerID, EventWordAssigned, WordAssignedPayload{RoundNumber: number, Word: word})
	}
}

// --- internals, all called with s.mu held ---

func (s *RoomSession) findPlayer(playerID string) *Player {
	for _, p := range s.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (s *RoomSession) isHost(playerID string) bool {
	p := s.findPlayer(playerID)
	return p != nil && p.IsHost
}

func (s *RoomSession) playersCopy() []Player {
	out := make([]Player, len(s.players))
	for i, p := range s.players {
		out[i] = *p
	}
	return out
}

// startNextRoundLocked assigns the next round number or finalizes the game.
// The game ends exactly when the next number would exceed roundsPerGame,
// regardless of whose turn it would have been.
func (s *RoomSession) startNextRoundLocked() {
	next := s.roundNumber + 1
	if next > s.settings.RoundsPerGame {
		s.finalizeGameLocked()
		return
	}

	present := make(map[string]bool, len(s.players))
	for _, p := range s.players {
		present[p.ID] = true
	}
	drawerID, wrapped, ok := s.rotator.Next(present)
	if !ok {
		// nobody left eligible to draw: end with whatever scores exist
		log.Printf("Room %s has no eligible drawer, finalizing game", s.roomCode)
		s.finalizeGameLocked()
		return
	}

	s.roundNumber = next
	s.startRoundLocked(next, drawerID, wrapped)
}

func (s *RoomSession) startRoundLocked(number int, drawerID string, wrapped bool) {
	drawer := s.findPlayer(drawerID)

	var custom []string
	if s.settings.AllowCustomWords {
		custom = s.settings.CustomWords
	}
	word := chooseWord(custom, s.wordBank, s.settings.Category, s.settings.WordDifficulty)
	hint := s.hints.Generate(word, s.settings.WordDifficulty)

	for _, p := range s.players {
		p.IsDrawing = p.ID == drawerID
	}

	s.round = NewRound(number, word, hint, drawerID, s.settings.RoundTime)

	done := make(chan struct{})
	s.timerDone = done
	go s.runRoundTimer(number, done)

	log.Printf("Round %d started in room %s, drawer %s", number, s.roomCode, drawerID)
	s.broadcast(EventRoundStarted, RoundStartedPayload{
		RoundNumber: number,
		DrawerID:    drawerID,
		DrawerName:  drawer.Name,
		Hint:        hint,
		TimeLeft:    s.settings.RoundTime,
		NewCycle:    wrapped,
	})
	if s.broadcaster != nil {
		s.broadcaster.SendToPlayer(s.roomCode, drawerID, EventWordAssigned, WordAssignedPayload{RoundNumber: number, Word: word})
	}
	s.systemMessage(fmt.Sprintf("%s is drawing now! Round %d of %d", drawer.Name, number, s.settings.RoundsPerGame))
	s.saveSnapshot()
}

// runRoundTimer drives the one-second countdown for a single round. The tick
// is just another serialized event: it takes the room lock like any player
// action, and the done channel cancels it on any terminal transition.
func (s *RoomSession) runRoundTimer(roundNumber int, done chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.round == nil || s.round.Number != roundNumber || s.round.IsEnded() {
				s.mu.Unlock()
				return
			}
			if s.round.Phase() == RoundPaused {
				s.mu.Unlock()
				continue
			}
			outcome := s.round.Tick()
			if outcome != nil {
				s.systemMessage(fmt.Sprintf("Time's up! The word was %q", outcome.Word))
				s.finishRoundLocked(outcome)
				s.mu.Unlock()
				return
			}
			s.broadcast(EventTimerTick, TimerTickPayload{RoundNumber: roundNumber, TimeLeft: s.round.TimeLeft})
			s.mu.Unlock()
		}
	}
}

// finishRoundLocked applies scores, reports the outcome, persists the round
// and advances the game.
func (s *RoomSession) finishRoundLocked(outcome *RoundOutcome) {
	if outcome == nil || s.round == nil {
		return
	}

	if s.timerDone != nil {
		close(s.timerDone)
		s.timerDone = nil
	}

	round := s.round
	drawer := s.findPlayer(round.DrawerID)
	for _, guess := range outcome.CorrectGuesses {
		if guesser := s.findPlayer(guess.PlayerID); guesser != nil {
			guesser.Score += guess.Points
			guesser.CorrectGuesses++
		}
		if drawer != nil {
			drawer.Score += DrawerBonus
		}
	}

	for _, p := range s.players {
		p.IsDrawing = false
	}

	log.Printf("Round %d ended in room %s: %s", round.Number, s.roomCode, outcome.Reason)
	s.broadcast(EventRoundEnded, RoundEndedPayload{
		RoundNumber:    round.Number,
		Reason:         outcome.Reason,
		Word:           outcome.Word,
		CorrectGuesses: outcome.CorrectGuesses,
		Players:        s.playersCopy(),
	})

	if s.store != nil && s.gameID != 0 {
		drawerName := ""
		if drawer != nil {
			drawerName = drawer.Name
		}
		archive := RoundArchive{
			Number:         round.Number,
			Word:           round.Word,
			DrawerID:       round.DrawerID,
			DrawerName:     drawerName,
			Reason:         outcome.Reason,
			StartedAt:      round.StartedAt,
			CorrectGuesses: outcome.CorrectGuesses,
		}
		if err := s.store.RecordRoundEnded(s.gameID, archive); err != nil {
			log.Printf("Failed to persist round %d for room %s: %v", round.Number, s.roomCode, err)
		}
	}

	s.round = nil

	if s.status == StatusPlaying {
		s.startNextRoundLocked()
	}
}

func (s *RoomSession) finalizeGameLocked() {
	finals := ComputeFinalScores(s.players)
	s.status = StatusCompleted
	s.round = nil

	log.Printf("Game completed in room %s", s.roomCode)
	s.broadcast(EventGameEnded, GameEndedPayload{FinalScores: finals})

	if s.store != nil && s.gameID != 0 {
		if err := s.store.RecordGameEnded(s.gameID, StatusCompleted, finals); err != nil {
			log.Printf("Failed to persist game end for room %s: %v", s.roomCode, err)
		}
	}
	s.saveSnapshot()
}

func (s *RoomSession) cancelLocked(reason string) {
	if s.status == StatusCancelled {
		return
	}

	if s.round != nil && !s.round.IsEnded() {
		s.round.Abort(EndAborted)
	}
	if s.timerDone != nil {
		close(s.timerDone)
		s.timerDone = nil
	}
	s.round = nil

	wasPlaying := s.status == StatusPlaying
	s.status = StatusCancelled

	log.Printf("Room %s cancelled: %s", s.roomCode, reason)
	s.broadcast(EventRoomCancelled, RoomCancelledPayload{Reason: reason})

	if s.store != nil {
		if wasPlaying && s.gameID != 0 {
			if err := s.store.RecordGameEnded(s.gameID, StatusCancelled, nil); err != nil {
				log.Printf("Failed to persist cancellation for room %s: %v", s.roomCode, err)
			}
		}
		if err := s.store.DeleteSnapshot(s.roomCode); err != nil {
			log.Printf("Failed to delete snapshot for room %s: %v", s.roomCode, err)
		}
	}
}

func (s *RoomSession) snapshotLocked() RoomSnapshot {
	snap := RoomSnapshot{
		RoomID:      s.roomID,
		RoomCode:    s.roomCode,
		Status:      s.status,
		Players:     s.playersCopy(),
		Settings:    s.settings,
		RoundNumber: s.roundNumber,
	}
	if s.round != nil && !s.round.IsEnded() {
		snap.DrawerID = s.round.DrawerID
		snap.Hint = s.round.Hint
		snap.TimeLeft = s.round.TimeLeft
		snap.Paused = s.round.Phase() == RoundPaused
		snap.HintShown = s.round.HintShown
	}
	return snap
}

func (s *RoomSession) saveSnapshot() {
	if s.store == nil {
		return
	}
	snap := s.snapshotLocked()
	if err := s.store.SaveSnapshot(&snap); err != nil {
		log.Printf("Failed to save snapshot for room %s: %v", s.roomCode, err)
	}
}

func (s *RoomSession) systemMessage(text string) {
	s.broadcast(EventChatMessage, ChatMessagePayload{
		PlayerName: "System",
		Kind:       MessageKindSystem,
		Text:       text,
		Timestamp:  time.Now(),
	})
}

func (s *RoomSession) broadcast(event EventType, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToRoom(s.roomCode, event, payload)
}
