package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manganova/api/internal/adapters/http/common"
	"github.com/manganova/api/internal/adapters/http/middleware"
	"github.com/manganova/api/internal/application/dtos"
	"github.com/manganova/api/internal/application/services"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/i18n"
)

// TitleHandler serves the catalog CRUD, tag association and cover upload.
type TitleHandler struct {
	titles     *services.TitleService
	translator *i18n.Translator
}

// NewTitleHandler creates a TitleHandler.
func NewTitleHandler(titles *services.TitleService, translator *i18n.Translator) *TitleHandler {
	return &TitleHandler{titles: titles, translator: translator}
}

// Routes returns the title route table.
func (h *TitleHandler) Routes() []common.Route {
	return []common.Route{
		{
			Method: http.MethodGet,
			Path:   "/title",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewRequestValidation(),
			},
			Handler: h.list,
		},
		{
			Method:        http.MethodPost,
			Path:          "/title",
			RequiresLogin: true,
			Status:        http.StatusCreated,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNameAlreadyExists(),
				apierrors.NewTagNotFound(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.create,
		},
		{
			Method: http.MethodGet,
			Path:   "/title/:titleId",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
			},
			Handler: h.get,
		},
		{
			Method:        http.MethodPatch,
			Path:          "/title/:titleId",
			RequiresLogin: true,
			Status:        http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
				apierrors.NewTitleNameAlreadyExists(),
				apierrors.NewMissingParams(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.update,
		},
		{
			Method:        http.MethodDelete,
			Path:          "/title/:titleId",
			RequiresLogin: true,
			Status:        http.StatusNoContent,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
			},
			Handler: h.delete,
		},
		{
			Method:        http.MethodPatch,
			Path:          "/title/:titleId/tags",
			RequiresLogin: true,
			Status:        http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
				apierrors.NewTagNotFound(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.addTags,
		},
		{
			Method:        http.MethodDelete,
			Path:          "/title/:titleId/tags",
			RequiresLogin: true,
			Status:        http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
				apierrors.NewRequestValidation(),
			},
			Handler: h.removeTags,
		},
		{
			Method:        http.MethodPost,
			Path:          "/title/:titleId/cover",
			RequiresLogin: true,
			Status:        http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
				apierrors.NewInvalidMimeType(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.uploadCover,
		},
	}
}

func (h *TitleHandler) list(c *gin.Context) {
	var query dtos.ListTitlesQuery
	if !BindQuery(c, h.translator, &query) {
		return
	}

	result, err := h.titles.List(c.Request.Context(), query)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TitleHandler) create(c *gin.Context) {
	var cmd dtos.CreateTitleCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.titles.Create(c.Request.Context(), cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *TitleHandler) get(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	result, err := h.titles.Get(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TitleHandler) update(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	var cmd dtos.UpdateTitleCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.titles.Update(c.Request.Context(), id, cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TitleHandler) delete(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	if err := h.titles.Delete(c.Request.Context(), id); err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TitleHandler) addTags(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	var cmd dtos.ModifyTitleTagsCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.titles.AddTags(c.Request.Context(), id, cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TitleHandler) removeTags(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	var cmd dtos.ModifyTitleTagsCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.titles.RemoveTags(c.Request.Context(), id, cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TitleHandler) uploadCover(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	file, err := c.FormFile("cover")
	if err != nil {
		common.WriteError(c, h.translator, apierrors.NewRequestValidation(
			apierrors.F("cover", "a cover file is required")))
		return
	}

	src, err := file.Open()
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	result, err := h.titles.UploadCover(c.Request.Context(), id, data)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	middleware.RecordCoverUpload(file.Header.Get("Content-Type"))
	c.JSON(http.StatusOK, result)
}
