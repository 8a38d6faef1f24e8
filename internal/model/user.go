package model

import "time"

// User is a persisted account row: a claimed username and its Elo rating.
type User struct {
	Username  string
	Rating    int
	CreatedAt time.Time
	UpdatedAt time.Time
}
