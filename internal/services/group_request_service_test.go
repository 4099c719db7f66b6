package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/diegogit03/roleplay-api/internal/models"
	"github.com/diegogit03/roleplay-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestService() (*GroupRequestService, *fakeRequestStore, *fakeGroupStore, *fakeUnitOfWork) {
	requests := newFakeRequestStore()
	groups := newFakeGroupStore()
	uow := &fakeUnitOfWork{}
	return NewGroupRequestService(requests, groups, uow), requests, groups, uow
}

func TestCreateRequest(t *testing.T) {
	service, _, groups, _ := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})

	request, err := service.Create(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.NotZero(t, request.ID)
	assert.Equal(t, int64(1), request.GroupID)
	assert.Equal(t, int64(2), request.UserID)
	assert.Equal(t, models.RequestStatusPending, request.Status)
}

func TestCreateRequestConflict(t *testing.T) {
	service, requests, groups, _ := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	requests.add(&models.GroupRequest{GroupID: 1, UserID: 2, Status: models.RequestStatusAccepted})

	_, err := service.Create(context.Background(), 1, 2)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "BAD_REQUEST", appErr.Code)
}

func TestCreateRequestAlreadyMember(t *testing.T) {
	service, _, groups, _ := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	groups.players[1] = []int64{2}

	_, err := service.Create(context.Background(), 1, 2)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
}

func TestListPendingForMasterEmpty(t *testing.T) {
	service, requests, _, _ := newRequestService()
	requests.pending = []models.GroupRequest{}

	result, err := service.ListPendingForMaster(context.Background(), 10)

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListPendingForMaster(t *testing.T) {
	service, requests, _, _ := newRequestService()
	requests.pending = []models.GroupRequest{{
		ID:      5,
		GroupID: 1,
		UserID:  2,
		Status:  models.RequestStatusPending,
		Group:   &models.RequestGroup{Name: "the lost mine", Master: 10},
		User:    &models.RequestUser{Username: "player2"},
	}}

	result, err := service.ListPendingForMaster(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "the lost mine", result[0].Group.Name)
	assert.Equal(t, "player2", result[0].User.Username)
}

func TestAcceptRequest(t *testing.T) {
	service, requests, groups, uow := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	requests.add(&models.GroupRequest{ID: 5, GroupID: 1, UserID: 2, Status: models.RequestStatusPending})

	accepted, err := service.Accept(context.Background(), 1, 5, 10)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, accepted.Status)
	assert.Equal(t, 1, uow.calls)
	assert.Equal(t, []int64{2}, groups.players[1])
	// Both writes must run inside the same unit of work.
	assert.Equal(t, txMarker, requests.lastUpdateQ)
	assert.Equal(t, txMarker, groups.lastAttachQ)
}

func TestAcceptRequestNotFound(t *testing.T) {
	service, _, groups, uow := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})

	_, err := service.Accept(context.Background(), 1, 99, 10)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Zero(t, uow.calls)
}

func TestAcceptGroupNotFound(t *testing.T) {
	service, requests, _, uow := newRequestService()
	requests.add(&models.GroupRequest{ID: 5, GroupID: 1, UserID: 2, Status: models.RequestStatusPending})

	_, err := service.Accept(context.Background(), 1, 5, 10)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Zero(t, uow.calls)
}

func TestAcceptForbidden(t *testing.T) {
	service, requests, groups, uow := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	requests.add(&models.GroupRequest{ID: 5, GroupID: 1, UserID: 2, Status: models.RequestStatusPending})

	_, err := service.Accept(context.Background(), 1, 5, 2)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.Zero(t, uow.calls)
}

func TestAcceptAuthorizesAgainstRequestGroup(t *testing.T) {
	// The path group only has to exist; authorization and the roster insert
	// both follow the request's own group.
	service, requests, groups, _ := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	groups.add(&models.Group{ID: 2, Master: 20})
	requests.add(&models.GroupRequest{ID: 5, GroupID: 2, UserID: 3, Status: models.RequestStatusPending})

	accepted, err := service.Accept(context.Background(), 1, 5, 20)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusAccepted, accepted.Status)
	assert.Empty(t, groups.players[1])
	assert.Equal(t, []int64{3}, groups.players[2])
}

func TestAcceptPropagatesAttachFailure(t *testing.T) {
	service, requests, groups, uow := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	requests.add(&models.GroupRequest{ID: 5, GroupID: 1, UserID: 2, Status: models.RequestStatusPending})
	groups.attachErr = errors.New("attach failed")

	accepted, err := service.Accept(context.Background(), 1, 5, 10)

	require.Error(t, err)
	assert.Nil(t, accepted)
	assert.Equal(t, 1, uow.calls)
	assert.Empty(t, groups.players[1])
}

func TestRejectRequest(t *testing.T) {
	service, requests, groups, _ := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	requests.add(&models.GroupRequest{ID: 5, GroupID: 1, UserID: 2, Status: models.RequestStatusPending})

	err := service.Reject(context.Background(), 1, 5, 10)

	require.NoError(t, err)
	assert.Equal(t, []int64{5}, requests.deleted)
}

func TestRejectScopedByGroup(t *testing.T) {
	service, requests, groups, _ := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	groups.add(&models.Group{ID: 2, Master: 10})
	requests.add(&models.GroupRequest{ID: 5, GroupID: 1, UserID: 2, Status: models.RequestStatusPending})

	err := service.Reject(context.Background(), 2, 5, 10)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Empty(t, requests.deleted)
}

func TestRejectForbidden(t *testing.T) {
	service, requests, groups, _ := newRequestService()
	groups.add(&models.Group{ID: 1, Master: 10})
	requests.add(&models.GroupRequest{ID: 5, GroupID: 1, UserID: 2, Status: models.RequestStatusPending})

	err := service.Reject(context.Background(), 1, 5, 2)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.Empty(t, requests.deleted)
}
