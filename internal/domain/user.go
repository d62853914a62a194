package domain

import "time"

// User represents a registered learner
type User struct {
	UserID    int64
	Username  string
	CreatedAt time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle       UserState = "idle"
	StatePracticing UserState = "practicing"
	StatePlaying    UserState = "playing"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState
	Game  GameKind
}
