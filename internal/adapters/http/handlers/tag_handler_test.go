package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manganova/api/internal/adapters/http/handlers"
	"github.com/manganova/api/internal/application/services"
	"github.com/manganova/api/internal/domain/entities"
)

func newTagEngine(t *testing.T, tags *stubTagRepository) *handlers.TagHandler {
	t.Helper()
	return handlers.NewTagHandler(services.NewTagService(tags), newTranslator(t))
}

func TestTagHandler_CreateRejectsUnknownGroup(t *testing.T) {
	handler := newTagEngine(t, &stubTagRepository{})
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/tag", `{"name": "Isekai", "group": "MOOD"}`))

	body := assertErrorClass(t, w, http.StatusUnprocessableEntity, "RequestValidationError")
	require.Len(t, body.Metadata, 1)
	assert.Equal(t, "group", body.Metadata[0].Key)
}

func TestTagHandler_CreateSucceeds(t *testing.T) {
	tags := &stubTagRepository{
		SaveFunc: func(ctx context.Context, tag *entities.Tag) error {
			tag.ID = 12
			return nil
		},
	}

	handler := newTagEngine(t, tags)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/tag", `{"name": "Isekai", "group": "GENRE"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"isActive":true`)
}

func TestTagHandler_UpdateEmptyPatch(t *testing.T) {
	lookedUp := false
	tags := &stubTagRepository{
		FindByIDFunc: func(ctx context.Context, id int64) (*entities.Tag, error) {
			lookedUp = true
			return nil, nil
		},
	}

	handler := newTagEngine(t, tags)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPatch, "/tag/12", `{}`))

	assertErrorClass(t, w, http.StatusBadRequest, "MissingParamsError")
	assert.False(t, lookedUp, "empty patch must be rejected before the lookup")
}

func TestTagHandler_GetUnknownTag(t *testing.T) {
	handler := newTagEngine(t, &stubTagRepository{})
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tag/99", nil))

	body := assertErrorClass(t, w, http.StatusNotFound, "TagNotFoundError")
	require.Len(t, body.Metadata, 1)
	assert.Equal(t, "tagId", body.Metadata[0].Key)
}
