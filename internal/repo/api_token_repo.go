package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/diegogit03/roleplay-api/internal/db"
)

// APITokenRepo keeps issued session tokens so sign-out can revoke them.
type APITokenRepo struct {
	q       db.Querier
	timeout time.Duration
}

func NewAPITokenRepo(q db.Querier, timeout time.Duration) *APITokenRepo {
	return &APITokenRepo{q: q, timeout: timeout}
}

func (r *APITokenRepo) Insert(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.q.Exec(ctx, `
		INSERT INTO api_tokens (user_id, token)
		VALUES ($1, $2)
	`, userID, token)
	if err != nil {
		return fmt.Errorf("insert api token: %w", err)
	}
	return nil
}

func (r *APITokenRepo) Exists(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM api_tokens WHERE token = $1)
	`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check api token: %w", err)
	}
	return exists, nil
}

func (r *APITokenRepo) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.q.Exec(ctx, `DELETE FROM api_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete api token: %w", err)
	}
	return nil
}
