package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/diegogit03/roleplay-api/internal/db"
	"github.com/diegogit03/roleplay-api/internal/models"
)

const requestColumns = "id, group_id, user_id, status, created_at, updated_at"

type GroupRequestRepo struct {
	q       db.Querier
	timeout time.Duration
}

func NewGroupRequestRepo(q db.Querier, timeout time.Duration) *GroupRequestRepo {
	return &GroupRequestRepo{q: q, timeout: timeout}
}

func (r *GroupRequestRepo) Create(ctx context.Context, groupID, userID int64) (*models.GroupRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.q.QueryRow(ctx, `
		INSERT INTO group_requests (group_id, user_id)
		VALUES ($1, $2)
		RETURNING `+requestColumns, groupID, userID)

	request, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("create group request: %w", err)
	}
	return request, nil
}

func (r *GroupRequestRepo) GetByID(ctx context.Context, id int64) (*models.GroupRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.q.QueryRow(ctx, `SELECT `+requestColumns+` FROM group_requests WHERE id = $1`, id)
	request, err := scanRequest(row)
	if err != nil {
		return nil, notFound(err)
	}
	return request, nil
}

// GetByIDAndGroup scopes the lookup by both the request id and its group, the
// stricter form used by rejection.
func (r *GroupRequestRepo) GetByIDAndGroup(ctx context.Context, id, groupID int64) (*models.GroupRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.q.QueryRow(ctx, `
		SELECT `+requestColumns+` FROM group_requests WHERE id = $1 AND group_id = $2
	`, id, groupID)
	request, err := scanRequest(row)
	if err != nil {
		return nil, notFound(err)
	}
	return request, nil
}

// FindByGroupAndUser returns any request for the pair, whatever its status.
func (r *GroupRequestRepo) FindByGroupAndUser(ctx context.Context, groupID, userID int64) (*models.GroupRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.q.QueryRow(ctx, `
		SELECT `+requestColumns+` FROM group_requests WHERE group_id = $1 AND user_id = $2
	`, groupID, userID)
	request, err := scanRequest(row)
	if err != nil {
		return nil, notFound(err)
	}
	return request, nil
}

// ListPendingByMaster returns every pending request whose group belongs to
// the master, enriched with the group's name/master and the requester's
// username.
func (r *GroupRequestRepo) ListPendingByMaster(ctx context.Context, masterID int64) ([]models.GroupRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.q.Query(ctx, `
		SELECT gr.id, gr.group_id, gr.user_id, gr.status, gr.created_at, gr.updated_at,
		       g.name, g.master, u.username
		FROM group_requests gr
		JOIN groups g ON g.id = gr.group_id
		JOIN users u ON u.id = gr.user_id
		WHERE g.master = $1 AND gr.status = $2
		ORDER BY gr.id
	`, masterID, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	requests := []models.GroupRequest{}
	for rows.Next() {
		var request models.GroupRequest
		var group models.RequestGroup
		var user models.RequestUser
		if err := rows.Scan(
			&request.ID,
			&request.GroupID,
			&request.UserID,
			&request.Status,
			&request.CreatedAt,
			&request.UpdatedAt,
			&group.Name,
			&group.Master,
			&user.Username,
		); err != nil {
			return nil, fmt.Errorf("scan pending request: %w", err)
		}
		request.Group = &group
		request.User = &user
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus runs inside the given unit of work; acceptance pairs it with
// the roster insert.
func (r *GroupRequestRepo) UpdateStatus(ctx context.Context, q db.Querier, id int64, status string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := q.Exec(ctx, `
		UPDATE group_requests SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

func (r *GroupRequestRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.q.Exec(ctx, `DELETE FROM group_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group request: %w", err)
	}
	return nil
}

func scanRequest(row rowScanner) (*models.GroupRequest, error) {
	var request models.GroupRequest
	if err := row.Scan(
		&request.ID,
		&request.GroupID,
		&request.UserID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &request, nil
}
