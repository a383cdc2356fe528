package models

import "time"

// GameStatus is derived from the stored fields on every read and is never
// persisted.
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusMoney      GameStatus = "money"
	StatusFail       GameStatus = "fail"
	StatusTimeout    GameStatus = "timeout"
)

// AidKind identifies one of the one-shot help actions.
type AidKind string

const (
	AidFiftyFifty   AidKind = "fifty_fifty"
	AidAudienceHelp AidKind = "audience_help"
	AidFriendCall   AidKind = "friend_call"
)

// AidKinds lists every help kind in display order.
var AidKinds = []AidKind{AidFiftyFifty, AidAudienceHelp, AidFriendCall}

// Game is one playthrough of the prize ladder.
type Game struct {
	ID           int64      `json:"id"`
	PlayerID     int64      `json:"player_id"`
	CurrentLevel int        `json:"current_level"`
	Prize        int        `json:"prize"`
	IsFailed     bool       `json:"is_failed"`
	FiftyFifty   bool       `json:"fifty_fifty_used"`
	AudienceHelp bool       `json:"audience_help_used"`
	FriendCall   bool       `json:"friend_call_used"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// Finished reports whether the game reached a terminal state.
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// PreviousLevel is the last level the player cleared, -1 before the first
// answer.
func (g *Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

// Status derives the game state. A failed game whose lifetime reached the
// time limit counts as timed out; the timeout label wins whenever both
// conditions hold.
func (g *Game) Status(lastLevel int, timeLimit time.Duration) GameStatus {
	if g.FinishedAt == nil {
		return StatusInProgress
	}
	switch {
	case g.IsFailed && g.FinishedAt.Sub(g.CreatedAt) >= timeLimit:
		return StatusTimeout
	case g.IsFailed:
		return StatusFail
	case g.CurrentLevel > lastLevel:
		return StatusWon
	default:
		return StatusMoney
	}
}

// AidUsed reports whether the given help kind was already spent.
func (g *Game) AidUsed(kind AidKind) bool {
	switch kind {
	case AidFiftyFifty:
		return g.FiftyFifty
	case AidAudienceHelp:
		return g.AudienceHelp
	case AidFriendCall:
		return g.FriendCall
	default:
		return false
	}
}

// MarkAidUsed records that a help kind was spent. It returns false for an
// unknown kind.
func (g *Game) MarkAidUsed(kind AidKind) bool {
	switch kind {
	case AidFiftyFifty:
		g.FiftyFifty = true
	case AidAudienceHelp:
		g.AudienceHelp = true
	case AidFriendCall:
		g.FriendCall = true
	default:
		return false
	}
	return true
}

// AidsUsed lists the help kinds already spent in this game.
func (g *Game) AidsUsed() []AidKind {
	var used []AidKind
	for _, kind := range AidKinds {
		if g.AidUsed(kind) {
			used = append(used, kind)
		}
	}
	return used
}
