package store

import (
	"context"
	"time"
)

// User represents an account in the system.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsGuest      bool
	CreatedAt    time.Time
}

// Message represents a persisted chat message. Private messages are
// stored alongside room messages with the room they defaulted to.
type Message struct {
	ID        int64
	Username  string
	Room      string
	Body      string
	CreatedAt time.Time
}

// UserStore defines user persistence operations.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	CreateGuestUser(ctx context.Context, username string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// MessageStore defines message persistence operations. RoomHistory
// returns messages in insertion order; that order is what history
// replay delivers to joining clients.
type MessageStore interface {
	SaveMessage(ctx context.Context, username, room, body string) (*Message, error)
	RoomHistory(ctx context.Context, room string, limit int) ([]Message, error)
}

// Store combines all persistence concerns.
type Store interface {
	UserStore
	MessageStore
	Close() error
}
