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

type GroupRequestStore interface {
	Create(ctx context.Context, groupID, userID int64) (*models.GroupRequest, error)
	GetByID(ctx context.Context, id int64) (*models.GroupRequest, error)
	GetByIDAndGroup(ctx context.Context, id, groupID int64) (*models.GroupRequest, error)
	FindByGroupAndUser(ctx context.Context, groupID, userID int64) (*models.GroupRequest, error)
	ListPendingByMaster(ctx context.Context, masterID int64) ([]models.GroupRequest, error)
	UpdateStatus(ctx context.Context, q db.Querier, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

type GroupRequestService struct {
	requests GroupRequestStore
	groups   GroupStore
	uow      db.UnitOfWork
}

func NewGroupRequestService(requests GroupRequestStore, groups GroupStore, uow db.UnitOfWork) *GroupRequestService {
	return &GroupRequestService{requests: requests, groups: groups, uow: uow}
}

// ListPendingForMaster returns every pending request against the caller's
// groups. An empty result is a normal answer, not an error.
func (s *GroupRequestService) ListPendingForMaster(ctx context.Context, masterID int64) ([]models.GroupRequest, error) {
	requests, err := s.requests.ListPendingByMaster(ctx, masterID)
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Create opens a join request for the user. A request already on file for the
// pair answers 409 whatever its status; a user already on the roster answers
// 422.
func (s *GroupRequestService) Create(ctx context.Context, groupID, userID int64) (*models.GroupRequest, error) {
	existing, err := s.requests.FindByGroupAndUser(ctx, groupID, userID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewBadRequest(http.StatusConflict, "group request already exists")
	}

	isPlayer, err := s.groups.IsPlayer(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if isPlayer {
		return nil, utils.NewBadRequest(http.StatusUnprocessableEntity, "user is already in the group")
	}

	created, err := s.requests.Create(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	// Reload so server-assigned defaults (status, timestamps) are reflected.
	return s.requests.GetByID(ctx, created.ID)
}

// Accept flips the request to ACCEPTED and adds the requester to the roster,
// both inside one unit of work. The path group is verified to exist, but
// authorization runs against the request's own group.
func (s *GroupRequestService) Accept(ctx context.Context, groupID, requestID, actorID int64) (*models.GroupRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewBadRequest(http.StatusNotFound, "group request not found")
		}
		return nil, err
	}

	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewBadRequest(http.StatusNotFound, "group not found")
		}
		return nil, err
	}

	owning, err := s.groups.GetByID(ctx, request.GroupID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, utils.NewBadRequest(http.StatusNotFound, "group not found")
		}
		return nil, err
	}
	if owning.Master != actorID {
		return nil, utils.NewBadRequest(http.StatusForbidden, "only the group master can accept requests")
	}

	err = s.uow.WithTx(ctx, func(q db.Querier) error {
		if err := s.requests.UpdateStatus(ctx, q, request.ID, models.RequestStatusAccepted); err != nil {
			return err
		}
		return s.groups.AttachPlayer(ctx, q, request.GroupID, request.UserID)
	})
	if err != nil {
		return nil, err
	}

	return s.requests.GetByID(ctx, request.ID)
}

// Reject deletes the request. Unlike Accept, the lookup is scoped by both the
// request id and the path group.
func (s *GroupRequestService) Reject(ctx context.Context, groupID, requestID, actorID int64) error {
	request, err := s.requests.GetByIDAndGroup(ctx, requestID, groupID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return utils.NewBadRequest(http.StatusNotFound, "group request not found")
		}
		return err
	}

	owning, err := s.groups.GetByID(ctx, request.GroupID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return utils.NewBadRequest(http.StatusNotFound, "group not found")
		}
		return err
	}
	if owning.Master != actorID {
		return utils.NewBadRequest(http.StatusForbidden, "only the group master can reject requests")
	}

	return s.requests.Delete(ctx, request.ID)
}
