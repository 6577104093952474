package postgres

import (
	"context"
	"database/sql"

	"documind/internal/model"
	"documind/internal/repository"
)

// TurnPostgres stores conversation turns in PostgreSQL.
type TurnPostgres struct {
	db *sql.DB
}

func NewTurnPostgres(db *sql.DB) *TurnPostgres {
	return &TurnPostgres{db: db}
}

var _ repository.TurnRepository = (*TurnPostgres)(nil)

func (r *TurnPostgres) Append(ctx context.Context, t *model.Turn) error {
	const q = `
		INSERT INTO conversation_turns (id, session_id, author, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, q, t.ID, t.SessionID, string(t.Author), t.Text, t.CreatedAt)
	return err
}

func (r *TurnPostgres) ListBySession(ctx context.Context, sessionID string) ([]model.Turn, error) {
	const q = `
		SELECT id, session_id, author, text, created_at
		FROM conversation_turns
		WHERE session_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := make([]model.Turn, 0)
	for rows.Next() {
		var t model.Turn
		var author string
		if err := rows.Scan(&t.ID, &t.SessionID, &author, &t.Text, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Author = model.Author(author)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

func (r *TurnPostgres) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM conversation_turns WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
