package postgres

import (
	"context"
	"testing"
	"time"

	"documind/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewTurnPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("append", func(t *testing.T) {
		turn := &model.Turn{ID: "t1", SessionID: "s1", Author: model.AuthorUser, Text: "What is the reserve price?", CreatedAt: now}
		mock.ExpectExec("INSERT INTO conversation_turns").
			WithArgs("t1", "s1", "user", turn.Text, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Append(ctx, turn))
	})

	t.Run("list by session", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "session_id", "author", "text", "created_at"}).
			AddRow("t1", "s1", "user", "hi", now).
			AddRow("t2", "s1", "assistant", "hello", now.Add(time.Second))
		mock.ExpectQuery(`SELECT (.+) FROM conversation_turns WHERE session_id = \$1 ORDER BY`).
			WithArgs("s1").
			WillReturnRows(rows)

		turns, err := repo.ListBySession(ctx, "s1")

		require.NoError(t, err)
		require.Len(t, turns, 2)
		assert.Equal(t, model.AuthorAssistant, turns[1].Author)
	})

	t.Run("delete session", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM conversation_turns WHERE session_id = \$1`).
			WithArgs("s1").
			WillReturnResult(sqlmock.NewResult(0, 2))

		n, err := repo.DeleteSession(ctx, "s1")

		assert.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
