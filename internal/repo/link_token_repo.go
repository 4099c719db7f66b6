package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/diegogit03/roleplay-api/internal/db"
	"github.com/diegogit03/roleplay-api/internal/models"
)

type LinkTokenRepo struct {
	q       db.Querier
	timeout time.Duration
}

func NewLinkTokenRepo(q db.Querier, timeout time.Duration) *LinkTokenRepo {
	return &LinkTokenRepo{q: q, timeout: timeout}
}

// Upsert stores the reset token for the user, replacing any previous one.
// The created_at reset restarts the expiry window.
func (r *LinkTokenRepo) Upsert(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.q.Exec(ctx, `
		INSERT INTO link_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET token = EXCLUDED.token, created_at = NOW()
	`, userID, token)
	if err != nil {
		return fmt.Errorf("upsert link token: %w", err)
	}
	return nil
}

func (r *LinkTokenRepo) GetByToken(ctx context.Context, token string) (*models.LinkToken, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.q.QueryRow(ctx, `
		SELECT id, user_id, token, created_at FROM link_tokens WHERE token = $1
	`, token)

	var lt models.LinkToken
	if err := row.Scan(&lt.ID, &lt.UserID, &lt.Token, &lt.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &lt, nil
}

func (r *LinkTokenRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.q.Exec(ctx, `DELETE FROM link_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete link token: %w", err)
	}
	return nil
}
