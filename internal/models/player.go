package models

import "time"

// Player is a registered participant. Balance accumulates prizes from
// finished games.
type Player struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}
