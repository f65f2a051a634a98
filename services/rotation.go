package services

// TurnRotator decides who draws next. The order is fixed when the game
// starts (join order) and rotation wraps with modulo. Players who left the
// roster since the order was captured are skipped.
type TurnRotator struct {
	order     []string
	nextIndex int
	started   bool
}

func NewTurnRotator(playerIDs []string) *TurnRotator {
	order := make([]string, len(playerIDs))
	copy(order, playerIDs)
	return &TurnRotator{order: order}
}

// Next returns the next drawer still present in the roster. wrapped is true
// when the rotation passed index 0 again, marking a new cycle. ok is false
// when no eligible drawer remains, which ends the game with whatever scores
// exist rather than being an error.
func (t *TurnRotator) Next(present map[string]bool) (drawerID string, wrapped bool, ok bool) {
	if len(t.order) == 0 {
		return "", false, false
	}

	for scanned := 0; scanned < len(t.order); scanned++ {
		idx := (t.nextIndex + scanned) % len(t.order)
		if idx == 0 && t.started {
			wrapped = true
		}
		if present[t.order[idx]] {
			t.nextIndex = (idx + 1) % len(t.order)
			t.started = true
			return t.order[idx], wrapped, true
		}
	}

	return "", wrapped, false
}
