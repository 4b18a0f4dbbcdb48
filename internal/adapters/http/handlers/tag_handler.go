package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manganova/api/internal/adapters/http/common"
	"github.com/manganova/api/internal/application/dtos"
	"github.com/manganova/api/internal/application/services"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/i18n"
)

// TagHandler serves tag CRUD.
type TagHandler struct {
	tags       *services.TagService
	translator *i18n.Translator
}

// NewTagHandler creates a TagHandler.
func NewTagHandler(tags *services.TagService, translator *i18n.Translator) *TagHandler {
	return &TagHandler{tags: tags, translator: translator}
}

// Routes returns the tag route table.
func (h *TagHandler) Routes() []common.Route {
	return []common.Route{
		{
			Method:  http.MethodGet,
			Path:    "/tag",
			Status:  http.StatusOK,
			Handler: h.list,
		},
		{
			Method: http.MethodGet,
			Path:   "/tag/:tagId",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewTagNotFound(apierrors.F("tagId", 1234)),
			},
			Handler: h.get,
		},
		{
			Method:        http.MethodPost,
			Path:          "/tag",
			RequiresLogin: true,
			Status:        http.StatusCreated,
			Errors: []*apierrors.Error{
				apierrors.NewRequestValidation(),
			},
			Handler: h.create,
		},
		{
			Method:        http.MethodPatch,
			Path:          "/tag/:tagId",
			RequiresLogin: true,
			Status:        http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewTagNotFound(apierrors.F("tagId", 1234)),
				apierrors.NewMissingParams(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.update,
		},
		{
			Method:        http.MethodDelete,
			Path:          "/tag/:tagId",
			RequiresLogin: true,
			Status:        http.StatusNoContent,
			Errors: []*apierrors.Error{
				apierrors.NewTagNotFound(apierrors.F("tagId", 1234)),
			},
			Handler: h.delete,
		},
	}
}

func (h *TagHandler) list(c *gin.Context) {
	var query dtos.ListTagsQuery
	if !BindQuery(c, h.translator, &query) {
		return
	}

	result, err := h.tags.List(c.Request.Context(), query)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TagHandler) get(c *gin.Context) {
	id, ok := PathID(c, h.translator, "tagId")
	if !ok {
		return
	}

	result, err := h.tags.Get(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TagHandler) create(c *gin.Context) {
	var cmd dtos.CreateTagCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.tags.Create(c.Request.Context(), cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *TagHandler) update(c *gin.Context) {
	id, ok := PathID(c, h.translator, "tagId")
	if !ok {
		return
	}

	var cmd dtos.UpdateTagCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.tags.Update(c.Request.Context(), id, cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *TagHandler) delete(c *gin.Context) {
	id, ok := PathID(c, h.translator, "tagId")
	if !ok {
		return
	}

	if err := h.tags.Delete(c.Request.Context(), id); err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}
