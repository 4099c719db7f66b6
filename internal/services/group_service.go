package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/diegogit03/roleplay-api/internal/db"
	"github.com/diegogit03/roleplay-api/internal/models"
	"github.com/diegogit03/roleplay-api/internal/repo"
	"github.com/diegogit03/roleplay-api/internal/utils"
)

type GroupStore interface {
	Create(ctx context.Context, q db.Querier, group *models.Group) (*models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	List(ctx context.Context, filters repo.GroupFilters) ([]models.Group, error)
	Update(ctx context.Context, group *models.Group) (*models.Group, error)
	Delete(ctx context.Context, id int64) error
	AttachPlayer(ctx context.Context, q db.Querier, groupID, userID int64) error
	DetachPlayer(ctx context.Context, groupID, userID int64) error
	IsPlayer(ctx context.Context, groupID, userID int64) (bool, error)
	ListPlayers(ctx context.Context, groupID int64) ([]models.User, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type GroupService struct {
	groups GroupStore
	users  UserLookup
	uow    db.UnitOfWork
}

func NewGroupService(groups GroupStore, users UserLookup, uow db.UnitOfWork) *GroupService {
	return &GroupService{groups: groups, users: users, uow: uow}
}

// Create stores the group and puts the master on the roster in one unit of
// work, then returns it with players and master loaded.
func (s *GroupService) Create(ctx context.Context, group *models.Group) (*models.Group, error) {
	var created *models.Group
	err := s.uow.WithTx(ctx, func(q db.Querier) error {
		var err error
		created, err = s.groups.Create(ctx, q, group)
		if err != nil {
			return err
		}
		return s.groups.AttachPlayer(ctx, q, created.ID, created.Master)
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, created)
}

func (s *GroupService) List(ctx context.Context, filters repo.GroupFilters) ([]models.Group, error) {
	groups, err := s.groups.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		loaded, err := s.load(ctx, &groups[i])
		if err != nil {
			return nil, err
		}
		groups[i] = *loaded
	}
	return groups, nil
}

// Update replaces every mutable field, master included.
func (s *GroupService) Update(ctx context.Context, group *models.Group) (*models.Group, error) {
	if _, err := s.groups.GetByID(ctx, group.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewBadRequest(http.StatusNotFound, "group not found")
		}
		return nil, err
	}

	updated, err := s.groups.Update(ctx, group)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, updated)
}

func (s *GroupService) Delete(ctx context.Context, id int64) error {
	if _, err := s.groups.GetByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return utils.NewBadRequest(http.StatusNotFound, "group not found")
		}
		return err
	}
	return s.groups.Delete(ctx, id)
}

// RemovePlayer detaches a roster member. The master is structurally protected
// from removal through this path.
func (s *GroupService) RemovePlayer(ctx context.Context, groupID, playerID int64) error {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return utils.NewBadRequest(http.StatusNotFound, "group not found")
		}
		return err
	}

	if playerID == group.Master {
		return utils.NewBadRequest(http.StatusBadRequest, "cannot remove master from group")
	}

	return s.groups.DetachPlayer(ctx, groupID, playerID)
}

func (s *GroupService) load(ctx context.Context, group *models.Group) (*models.Group, error) {
	players, err := s.groups.ListPlayers(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.Players = players

	master, err := s.users.GetByID(ctx, group.Master)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return group, nil
		}
		return nil, err
	}
	group.MasterUser = &models.UserRef{ID: master.ID, Username: master.Username}
	return group, nil
}
