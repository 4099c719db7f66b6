package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/diegogit03/roleplay-api/internal/db"
	"github.com/diegogit03/roleplay-api/internal/models"
)

const groupColumns = "id, name, description, chronic, location, schedule, master, created_at, updated_at"

// GroupFilters narrows the group listing. Zero value lists everything.
type GroupFilters struct {
	// User keeps only groups this user plays in.
	User *int64
	// Text matches name or description, case-insensitively.
	Text string
}

type GroupRepo struct {
	q       db.Querier
	timeout time.Duration
}

func NewGroupRepo(q db.Querier, timeout time.Duration) *GroupRepo {
	return &GroupRepo{q: q, timeout: timeout}
}

// Create inserts the group inside the given unit of work so the master can be
// attached to the roster atomically.
func (r *GroupRepo) Create(ctx context.Context, q db.Querier, group *models.Group) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := q.QueryRow(ctx, `
		INSERT INTO groups (name, description, chronic, location, schedule, master)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+groupColumns,
		group.Name, group.Description, group.Chronic, group.Location, group.Schedule, group.Master)

	created, err := scanGroup(row)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return created, nil
}

func (r *GroupRepo) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.q.QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
	group, err := scanGroup(row)
	if err != nil {
		return nil, notFound(err)
	}
	return group, nil
}

func (r *GroupRepo) List(ctx context.Context, filters GroupFilters) ([]models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + groupColumns + ` FROM groups WHERE 1=1`
	args := []any{}

	if filters.User != nil {
		args = append(args, *filters.User)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM groups_users gu WHERE gu.group_id = groups.id AND gu.user_id = $%d)`, len(args))
	}
	if filters.Text != "" {
		args = append(args, "%"+filters.Text+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR description ILIKE $%d)`, len(args), len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, *group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (r *GroupRepo) Update(ctx context.Context, group *models.Group) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	row := r.q.QueryRow(ctx, `
		UPDATE groups
		SET name = $1, description = $2, chronic = $3, location = $4, schedule = $5, master = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+groupColumns,
		group.Name, group.Description, group.Chronic, group.Location, group.Schedule, group.Master, group.ID)

	updated, err := scanGroup(row)
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

// Delete removes the group. Roster rows go with it via the FK cascade;
// group requests are untouched.
func (r *GroupRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.q.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// AttachPlayer adds the user to the roster inside the given unit of work.
func (r *GroupRepo) AttachPlayer(ctx context.Context, q db.Querier, groupID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := q.Exec(ctx, `
		INSERT INTO groups_users (group_id, user_id)
		VALUES ($1, $2)
	`, groupID, userID)
	if err != nil {
		return fmt.Errorf("attach player: %w", err)
	}
	return nil
}

// DetachPlayer removes the user from the roster. Detaching a non-member is a
// no-op.
func (r *GroupRepo) DetachPlayer(ctx context.Context, groupID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.q.Exec(ctx, `
		DELETE FROM groups_users WHERE group_id = $1 AND user_id = $2
	`, groupID, userID)
	if err != nil {
		return fmt.Errorf("detach player: %w", err)
	}
	return nil
}

func (r *GroupRepo) IsPlayer(ctx context.Context, groupID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var isPlayer bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM groups_users WHERE group_id = $1 AND user_id = $2)
	`, groupID, userID).Scan(&isPlayer)
	if err != nil {
		return false, fmt.Errorf("check player: %w", err)
	}
	return isPlayer, nil
}

func (r *GroupRepo) ListPlayers(ctx context.Context, groupID int64) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.q.Query(ctx, `
		SELECT u.id, u.email, u.username, u.password_hash, u.avatar, u.created_at, u.updated_at
		FROM users u
		JOIN groups_users gu ON gu.user_id = u.id
		WHERE gu.group_id = $1
		ORDER BY u.id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	players := []models.User{}
	for rows.Next() {
		player, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func scanGroup(row rowScanner) (*models.Group, error) {
	var group models.Group
	if err := row.Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Chronic,
		&group.Location,
		&group.Schedule,
		&group.Master,
		&group.CreatedAt,
		&group.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &group, nil
}
