package services

import (
	"context"
	"time"

	"github.com/diegogit03/roleplay-api/internal/db"
	"github.com/diegogit03/roleplay-api/internal/models"
	"github.com/diegogit03/roleplay-api/internal/repo"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// txQuerier is the sentinel unit of work handed to fn by fakeUnitOfWork, so
// tests can check which writes ran inside the transaction.
type txQuerier struct{}

func (txQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (txQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (txQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

var txMarker db.Querier = txQuerier{}

type fakeUnitOfWork struct {
	beginErr error
	calls    int
}

func (f *fakeUnitOfWork) WithTx(ctx context.Context, fn func(q db.Querier) error) error {
	f.calls++
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(txMarker)
}

// --- group requests ---

type fakeRequestStore struct {
	requests map[int64]*models.GroupRequest
	pending  []models.GroupRequest
	nextID   int64

	updateStatusErr error
	lastUpdateQ     db.Querier
	deleted         []int64
}

func newFakeRequestStore() *fakeRequestStore {
	return &fakeRequestStore{requests: map[int64]*models.GroupRequest{}, nextID: 1}
}

func (f *fakeRequestStore) add(request *models.GroupRequest) *models.GroupRequest {
	if request.ID == 0 {
		request.ID = f.nextID
	}
	if request.ID >= f.nextID {
		f.nextID = request.ID + 1
	}
	f.requests[request.ID] = request
	return request
}

func (f *fakeRequestStore) Create(ctx context.Context, groupID, userID int64) (*models.GroupRequest, error) {
	now := time.Now()
	return f.add(&models.GroupRequest{
		GroupID:   groupID,
		UserID:    userID,
		Status:    models.RequestStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}), nil
}

func (f *fakeRequestStore) GetByID(ctx context.Context, id int64) (*models.GroupRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *request
	return &clone, nil
}

func (f *fakeRequestStore) GetByIDAndGroup(ctx context.Context, id, groupID int64) (*models.GroupRequest, error) {
	request, ok := f.requests[id]
	if !ok || request.GroupID != groupID {
		return nil, repo.ErrNotFound
	}
	clone := *request
	return &clone, nil
}

func (f *fakeRequestStore) FindByGroupAndUser(ctx context.Context, groupID, userID int64) (*models.GroupRequest, error) {
	for _, request := range f.requests {
		if request.GroupID == groupID && request.UserID == userID {
			clone := *request
			return &clone, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeRequestStore) ListPendingByMaster(ctx context.Context, masterID int64) ([]models.GroupRequest, error) {
	return f.pending, nil
}

func (f *fakeRequestStore) UpdateStatus(ctx context.Context, q db.Querier, id int64, status string) error {
	f.lastUpdateQ = q
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	if request, ok := f.requests[id]; ok {
		request.Status = status
	}
	return nil
}

func (f *fakeRequestStore) Delete(ctx context.Context, id int64) error {
	delete(f.requests, id)
	f.deleted = append(f.deleted, id)
	return nil
}

// --- groups ---

type fakeGroupStore struct {
	groups  map[int64]*models.Group
	players map[int64][]int64
	nextID  int64

	attachErr   error
	lastAttachQ db.Querier
	lastCreateQ db.Querier
	detached    [][2]int64
	deletedIDs  []int64
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: map[int64]*models.Group{}, players: map[int64][]int64{}, nextID: 1}
}

func (f *fakeGroupStore) add(group *models.Group) *models.Group {
	if group.ID == 0 {
		group.ID = f.nextID
	}
	if group.ID >= f.nextID {
		f.nextID = group.ID + 1
	}
	f.groups[group.ID] = group
	return group
}

func (f *fakeGroupStore) Create(ctx context.Context, q db.Querier, group *models.Group) (*models.Group, error) {
	f.lastCreateQ = q
	clone := *group
	return f.add(&clone), nil
}

func (f *fakeGroupStore) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *group
	return &clone, nil
}

func (f *fakeGroupStore) List(ctx context.Context, filters repo.GroupFilters) ([]models.Group, error) {
	groups := []models.Group{}
	for _, group := range f.groups {
		groups = append(groups, *group)
	}
	return groups, nil
}

func (f *fakeGroupStore) Update(ctx context.Context, group *models.Group) (*models.Group, error) {
	if _, ok := f.groups[group.ID]; !ok {
		return nil, repo.ErrNotFound
	}
	clone := *group
	f.groups[group.ID] = &clone
	return group, nil
}

func (f *fakeGroupStore) Delete(ctx context.Context, id int64) error {
	delete(f.groups, id)
	delete(f.players, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeGroupStore) AttachPlayer(ctx context.Context, q db.Querier, groupID, userID int64) error {
	f.lastAttachQ = q
	if f.attachErr != nil {
		return f.attachErr
	}
	f.players[groupID] = append(f.players[groupID], userID)
	return nil
}

func (f *fakeGroupStore) DetachPlayer(ctx context.Context, groupID, userID int64) error {
	f.detached = append(f.detached, [2]int64{groupID, userID})
	kept := []int64{}
	for _, id := range f.players[groupID] {
		if id != userID {
			kept = append(kept, id)
		}
	}
	f.players[groupID] = kept
	return nil
}

func (f *fakeGroupStore) IsPlayer(ctx context.Context, groupID, userID int64) (bool, error) {
	for _, id := range f.players[groupID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroupStore) ListPlayers(ctx context.Context, groupID int64) ([]models.User, error) {
	players := []models.User{}
	for _, id := range f.players[groupID] {
		players = append(players, models.User{ID: id})
	}
	return players, nil
}

// --- users ---

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
	}
	if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(ctx context.Context, email, username, passwordHash string) (*models.User, error) {
	now := time.Now()
	return f.add(&models.User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}), nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (f *fakeUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return nil, repo.ErrNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return user, nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// --- tokens ---

type fakeLinkTokenStore struct {
	tokens map[string]*models.LinkToken
	nextID int64
}

func newFakeLinkTokenStore() *fakeLinkTokenStore {
	return &fakeLinkTokenStore{tokens: map[string]*models.LinkToken{}, nextID: 1}
}

func (f *fakeLinkTokenStore) Upsert(ctx context.Context, userID int64, token string) error {
	for existing, lt := range f.tokens {
		if lt.UserID == userID {
			delete(f.tokens, existing)
		}
	}
	f.tokens[token] = &models.LinkToken{ID: f.nextID, UserID: userID, Token: token, CreatedAt: time.Now()}
	f.nextID++
	return nil
}

func (f *fakeLinkTokenStore) GetByToken(ctx context.Context, token string) (*models.LinkToken, error) {
	lt, ok := f.tokens[token]
	if !ok {
		return nil, repo.ErrNotFound
	}
	clone := *lt
	return &clone, nil
}

func (f *fakeLinkTokenStore) Delete(ctx context.Context, id int64) error {
	for token, lt := range f.tokens {
		if lt.ID == id {
			delete(f.tokens, token)
		}
	}
	return nil
}

type fakeAPITokenStore struct {
	tokens map[string]int64
}

func newFakeAPITokenStore() *fakeAPITokenStore {
	return &fakeAPITokenStore{tokens: map[string]int64{}}
}

func (f *fakeAPITokenStore) Insert(ctx context.Context, userID int64, token string) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeAPITokenStore) Exists(ctx context.Context, token string) (bool, error) {
	_, ok := f.tokens[token]
	return ok, nil
}

func (f *fakeAPITokenStore) Delete(ctx context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeMailer struct {
	sendErr error

	to       string
	username string
	resetURL string
	sent     int
}

func (f *fakeMailer) SendPasswordReset(ctx context.Context, to, username, resetURL string) error {
	f.sent++
	f.to = to
	f.username = username
	f.resetURL = resetURL
	return f.sendErr
}
