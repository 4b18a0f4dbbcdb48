package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manganova/api/internal/adapters/http/handlers"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/application/services"
	"github.com/manganova/api/internal/domain/entities"
)

type stubGroupRepository struct {
	FindByIDFunc    func(ctx context.Context, id int64) (*entities.Group, error)
	SaveFunc        func(ctx context.Context, group *entities.Group) error
	IsFollowingFunc func(ctx context.Context, groupID, userID int64) (bool, error)
}

func (s *stubGroupRepository) FindByID(ctx context.Context, id int64) (*entities.Group, error) {
	if s.FindByIDFunc != nil {
		return s.FindByIDFunc(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (s *stubGroupRepository) Save(ctx context.Context, group *entities.Group) error {
	if s.SaveFunc != nil {
		return s.SaveFunc(ctx, group)
	}
	return nil
}

func (s *stubGroupRepository) Delete(ctx context.Context, id int64) error { return nil }

func (s *stubGroupRepository) List(ctx context.Context, name string) ([]*entities.Group, error) {
	return nil, nil
}

func (s *stubGroupRepository) FindByOwner(ctx context.Context, ownerID int64) (*entities.Group, error) {
	return nil, ports.ErrNotFound
}

func (s *stubGroupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}

func (s *stubGroupRepository) Members(ctx context.Context, groupID int64) ([]*entities.User, error) {
	return nil, nil
}

func (s *stubGroupRepository) Followers(ctx context.Context, groupID int64) ([]*entities.User, error) {
	return nil, nil
}

func (s *stubGroupRepository) Follow(ctx context.Context, groupID, userID int64) error { return nil }

func (s *stubGroupRepository) Unfollow(ctx context.Context, groupID, userID int64) error { return nil }

func (s *stubGroupRepository) IsFollowing(ctx context.Context, groupID, userID int64) (bool, error) {
	if s.IsFollowingFunc != nil {
		return s.IsFollowingFunc(ctx, groupID, userID)
	}
	return false, nil
}

func testGroup(id int64) *entities.Group {
	return &entities.Group{
		ID:        id,
		Name:      "Night Owls",
		OwnerID:   2,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func newGroupEngine(t *testing.T, groups *stubGroupRepository) *handlers.GroupHandler {
	t.Helper()
	return handlers.NewGroupHandler(services.NewGroupService(groups, &stubUnitOfWork{}), newTranslator(t))
}

func TestGroupHandler_CreateOwnedByCaller(t *testing.T) {
	var saved *entities.Group
	groups := &stubGroupRepository{
		SaveFunc: func(ctx context.Context, group *entities.Group) error {
			saved = group
			group.ID = 1
			return nil
		},
	}

	handler := newGroupEngine(t, groups)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/group", `{"name": "Night Owls"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.Equal(t, int64(7), saved.OwnerID, "group must belong to the authenticated caller")
}

func TestGroupHandler_FollowCheck(t *testing.T) {
	groups := &stubGroupRepository{
		FindByIDFunc: func(ctx context.Context, id int64) (*entities.Group, error) {
			return testGroup(id), nil
		},
		IsFollowingFunc: func(ctx context.Context, groupID, userID int64) (bool, error) {
			return userID == 7, nil
		},
	}

	handler := newGroupEngine(t, groups)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/group/1/follow", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"following": true}`, w.Body.String())
}

func TestGroupHandler_FollowUnknownGroup(t *testing.T) {
	handler := newGroupEngine(t, &stubGroupRepository{})
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/group/99/follow", nil))

	body := assertErrorClass(t, w, http.StatusNotFound, "GroupNotFoundError")
	require.Len(t, body.Metadata, 1)
	assert.Equal(t, "groupId", body.Metadata[0].Key)
}

func TestGroupHandler_UnfollowIsIdempotent(t *testing.T) {
	groups := &stubGroupRepository{
		FindByIDFunc: func(ctx context.Context, id int64) (*entities.Group, error) {
			return testGroup(id), nil
		},
	}

	handler := newGroupEngine(t, groups)
	r := newEngine(t, handler.Routes())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/group/1/follow", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
