package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user; the two cases are deliberately indistinguishable so that
// record existence is never leaked across accounts.
var ErrNotFound = errors.New("record not found")

// ErrInvalidInterval is returned when a write would persist an appointment
// whose end does not come after its start.
var ErrInvalidInterval = errors.New("end must be after start")

// ErrInvalidTransition is returned when an update requests a status change
// the appointment state machine does not allow.
var ErrInvalidTransition = errors.New("invalid status transition")

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
