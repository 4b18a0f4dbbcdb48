package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manganova/api/internal/adapters/http/handlers"
	"github.com/manganova/api/internal/application/ports"
	"github.com/manganova/api/internal/application/services"
	"github.com/manganova/api/internal/domain/entities"
)

// pngBytes is a minimal valid PNG signature plus chunk padding, enough for
// content sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func newTitleHandler(t *testing.T, titles *stubTitleRepository, tags *stubTagRepository, storage *stubObjectStorage) *handlers.TitleHandler {
	t.Helper()
	if tags == nil {
		tags = &stubTagRepository{}
	}
	if storage == nil {
		storage = &stubObjectStorage{}
	}
	svc := services.NewTitleService(titles, tags, &stubUnitOfWork{}, storage)
	return handlers.NewTitleHandler(svc, newTranslator(t))
}

func TestTitleHandler_GetRejectsNonNumericID(t *testing.T) {
	handler := newTitleHandler(t, &stubTitleRepository{}, nil, nil)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/title/abc", nil))

	body := assertErrorClass(t, w, http.StatusUnprocessableEntity, "RequestValidationError")
	require.Len(t, body.Metadata, 1)
	assert.Equal(t, "titleId", body.Metadata[0].Key)
}

func TestTitleHandler_GetUnknownTitle(t *testing.T) {
	handler := newTitleHandler(t, &stubTitleRepository{}, nil, nil)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/title/9", nil))

	assertErrorClass(t, w, http.StatusNotFound, "TitleNotFoundError")
}

func TestTitleHandler_CreateRejectsUnknownContentType(t *testing.T) {
	handler := newTitleHandler(t, &stubTitleRepository{}, nil, nil)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/title", `{"name": "Steel Garden", "contentType": "PODCAST"}`))

	body := assertErrorClass(t, w, http.StatusUnprocessableEntity, "RequestValidationError")
	require.Len(t, body.Metadata, 1)
	assert.Equal(t, "contentType", body.Metadata[0].Key)
}

func TestTitleHandler_CreateSucceeds(t *testing.T) {
	titles := &stubTitleRepository{
		SaveFunc: func(ctx context.Context, title *entities.Title) error {
			title.ID = 3
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id int64) (*entities.Title, error) {
			return ratedTitle(id), nil
		},
	}

	handler := newTitleHandler(t, titles, nil, nil)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPost, "/title", `{"name": "Steel Garden", "contentType": "MANGA"}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"Steel Garden"`)
}

func TestTitleHandler_UpdateEmptyPatch(t *testing.T) {
	handler := newTitleHandler(t, &stubTitleRepository{}, nil, nil)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest(http.MethodPatch, "/title/3", `{}`))

	assertErrorClass(t, w, http.StatusBadRequest, "MissingParamsError")
}

func TestTitleHandler_UploadCoverStoresImage(t *testing.T) {
	var storedKey, storedContentType string
	storage := &stubObjectStorage{
		PutFunc: func(ctx context.Context, key string, data []byte, contentType string) error {
			storedKey = key
			storedContentType = contentType
			return nil
		},
	}
	titles := &stubTitleRepository{
		FindByIDFunc: func(ctx context.Context, id int64) (*entities.Title, error) {
			return ratedTitle(id), nil
		},
	}

	handler := newTitleHandler(t, titles, nil, storage)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/title/3/cover", "cover", "cover.png", pngBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "covers/3.png", storedKey)
	assert.Equal(t, "image/png", storedContentType)
}

func TestTitleHandler_UploadCoverRejectsNonImage(t *testing.T) {
	putCalled := false
	storage := &stubObjectStorage{
		PutFunc: func(ctx context.Context, key string, data []byte, contentType string) error {
			putCalled = true
			return nil
		},
	}
	titles := &stubTitleRepository{
		FindByIDFunc: func(ctx context.Context, id int64) (*entities.Title, error) {
			return ratedTitle(id), nil
		},
	}

	handler := newTitleHandler(t, titles, nil, storage)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/title/3/cover", "cover", "cover.txt", []byte("plain text, not an image")))

	assertErrorClass(t, w, http.StatusBadRequest, "InvalidMimeTypeError")
	assert.False(t, putCalled)
}

func TestTitleHandler_UploadCoverRequiresFile(t *testing.T) {
	handler := newTitleHandler(t, &stubTitleRepository{}, nil, nil)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/title/3/cover", nil)
	r.ServeHTTP(w, req)

	body := assertErrorClass(t, w, http.StatusUnprocessableEntity, "RequestValidationError")
	require.Len(t, body.Metadata, 1)
	assert.Equal(t, "cover", body.Metadata[0].Key)
}

func TestTitleHandler_DeleteUnknownTitle(t *testing.T) {
	titles := &stubTitleRepository{
		DeleteFunc: func(ctx context.Context, id int64) error {
			return ports.ErrNotFound
		},
	}

	handler := newTitleHandler(t, titles, nil, nil)
	r := newEngine(t, handler.Routes())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/title/9", nil))

	assertErrorClass(t, w, http.StatusNotFound, "TitleNotFoundError")
}
