package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avdeeva/task-tracker-bot/internal/model"
)

// UpsertUser records a user on first contact. Repeated calls refresh
// the name fields idempotently; created_at keeps its original value.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user model.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, first_name, last_name, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name`,
		user.ID, user.Username, user.FirstName, user.LastName, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting user %d: %w", user.ID, err)
	}
	return nil
}
