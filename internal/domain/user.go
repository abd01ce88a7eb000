package domain

import "time"

// User represents a chat user of the bot
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle           UserState = "idle"
	StateWaitingWord    UserState = "waiting_word"
	StateWaitingMeaning UserState = "waiting_meaning"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State       UserState
	CurrentWord string
}
