package repository

import (
	"context"

	"documind/internal/model"
)

// TurnRepository persists conversation turns. Turns are append-only per session.
type TurnRepository interface {
	Append(ctx context.Context, turn *model.Turn) error
	// ListBySession returns the turns of a session, oldest first.
	ListBySession(ctx context.Context, sessionID string) ([]model.Turn, error)
	// DeleteSession clears a session and returns how many turns were removed.
	DeleteSession(ctx context.Context, sessionID string) (int64, error)
}
