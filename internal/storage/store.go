// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/skinsgame/internal/models"
)

var (
	// ErrNotFound is returned by writes that reference a missing round or course.
	ErrNotFound = errors.New("record not found")
	// ErrInvalid is returned by writes whose values break a storage constraint.
	ErrInvalid = errors.New("invalid record")
)

// RoundReader is the read surface used by the skins calculator.
// GetRound and FindRoundParticipant return nil, nil when nothing matches.
type RoundReader interface {
	GetRound(ctx context.Context, roundID string) (*models.Round, error)
	// ListRoundPlayers returns players in join order.
	ListRoundPlayers(ctx context.Context, roundID string) ([]models.Player, error)
	ListRoundScores(ctx context.Context, roundID string) ([]models.Score, error)
	ListRoundPars(ctx context.Context, roundID string) ([]models.Par, error)
	FindRoundParticipant(ctx context.Context, roundID string, userID int64) (*models.Player, error)
}

// RoundWriter records rounds and scores.
// IDs and timestamps left empty are populated by the store.
type RoundWriter interface {
	CreateCourse(ctx context.Context, course *models.Course) error

	// CreateRound persists a round and enrols its creator as the first player.
	CreateRound(ctx context.Context, round *models.Round) (*models.Player, error)

	AddPlayer(ctx context.Context, player *models.Player) error

	// RecordScore inserts or replaces a player's strokes on a hole.
	RecordScore(ctx context.Context, roundID string, score models.Score) error

	// SetPar inserts or replaces the par of a hole.
	SetPar(ctx context.Context, roundID string, par models.Par) error
}

// UserStore persists user accounts.
// Lookups return nil, nil when the user does not exist.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Store defines every storage operation of the service.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	RoundReader
	RoundWriter
	UserStore

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
