package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manganova/api/internal/adapters/http/common"
	"github.com/manganova/api/internal/adapters/http/middleware"
	"github.com/manganova/api/internal/application/dtos"
	"github.com/manganova/api/internal/application/services"
	"github.com/manganova/api/internal/domain/apierrors"
	"github.com/manganova/api/internal/i18n"
)

// RatingHandler serves per-title rating operations.
type RatingHandler struct {
	ratings    *services.RatingService
	translator *i18n.Translator
}

// NewRatingHandler creates a RatingHandler.
func NewRatingHandler(ratings *services.RatingService, translator *i18n.Translator) *RatingHandler {
	return &RatingHandler{ratings: ratings, translator: translator}
}

// Routes returns the rating route table.
func (h *RatingHandler) Routes() []common.Route {
	return []common.Route{
		{
			Method: http.MethodGet,
			Path:   "/title/:titleId/rating",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
			},
			Handler: h.summary,
		},
		{
			Method:        http.MethodPost,
			Path:          "/title/:titleId/rating",
			RequiresLogin: true,
			Status:        http.StatusCreated,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
				apierrors.NewRequestValidation(),
			},
			Handler: h.rate,
		},
		{
			Method:        http.MethodDelete,
			Path:          "/title/:titleId/rating",
			RequiresLogin: true,
			Status:        http.StatusNoContent,
			Errors: []*apierrors.Error{
				apierrors.NewTitleNotFound(apierrors.F("titleId", 1234)),
				apierrors.NewRatingNotFound(apierrors.F("titleId", 1234)),
			},
			Handler: h.delete,
		},
	}
}

func (h *RatingHandler) summary(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	result, err := h.ratings.Summary(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RatingHandler) rate(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	var cmd dtos.RateTitleCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	result, err := h.ratings.Rate(c.Request.Context(), principal.UserID, id, cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	middleware.RecordRating(cmd.Value)
	c.JSON(http.StatusCreated, result)
}

func (h *RatingHandler) delete(c *gin.Context) {
	id, ok := PathID(c, h.translator, "titleId")
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	if err := h.ratings.Delete(c.Request.Context(), principal.UserID, id); err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}
