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

// GroupHandler serves group CRUD, membership listing and following.
type GroupHandler struct {
	groups     *services.GroupService
	translator *i18n.Translator
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(groups *services.GroupService, translator *i18n.Translator) *GroupHandler {
	return &GroupHandler{groups: groups, translator: translator}
}

// Routes returns the group route table.
func (h *GroupHandler) Routes() []common.Route {
	return []common.Route{
		{
			Method:  http.MethodGet,
			Path:    "/group",
			Status:  http.StatusOK,
			Handler: h.list,
		},
		{
			Method:        http.MethodPost,
			Path:          "/group",
			RequiresLogin: true,
			Status:        http.StatusCreated,
			Errors: []*apierrors.Error{
				apierrors.NewGroupNameAlreadyExists(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.create,
		},
		{
			Method: http.MethodGet,
			Path:   "/group/:groupId",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewGroupNotFound(apierrors.F("groupId", 1234)),
			},
			Handler: h.get,
		},
		{
			Method: http.MethodGet,
			Path:   "/group/:groupId/members",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewGroupNotFound(apierrors.F("groupId", 1234)),
			},
			Handler: h.members,
		},
		{
			Method:        http.MethodGet,
			Path:          "/group/:groupId/follow",
			RequiresLogin: true,
			Status:        http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewGroupNotFound(apierrors.F("groupId", 1234)),
			},
			Handler: h.isFollowing,
		},
		{
			Method:        http.MethodPost,
			Path:          "/group/:groupId/follow",
			RequiresLogin: true,
			Status:        http.StatusCreated,
			Errors: []*apierrors.Error{
				apierrors.NewGroupNotFound(apierrors.F("groupId", 1234)),
			},
			Handler: h.follow,
		},
		{
			Method:        http.MethodDelete,
			Path:          "/group/:groupId/follow",
			RequiresLogin: true,
			Status:        http.StatusNoContent,
			Errors: []*apierrors.Error{
				apierrors.NewGroupNotFound(apierrors.F("groupId", 1234)),
			},
			Handler: h.unfollow,
		},
	}
}

func (h *GroupHandler) list(c *gin.Context) {
	result, err := h.groups.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GroupHandler) create(c *gin.Context) {
	var cmd dtos.CreateGroupCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	result, err := h.groups.Create(c.Request.Context(), principal.UserID, cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *GroupHandler) get(c *gin.Context) {
	id, ok := PathID(c, h.translator, "groupId")
	if !ok {
		return
	}

	result, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GroupHandler) members(c *gin.Context) {
	id, ok := PathID(c, h.translator, "groupId")
	if !ok {
		return
	}

	result, err := h.groups.Members(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GroupHandler) isFollowing(c *gin.Context) {
	id, ok := PathID(c, h.translator, "groupId")
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	following, err := h.groups.IsFollowing(c.Request.Context(), id, principal.UserID)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *GroupHandler) follow(c *gin.Context) {
	id, ok := PathID(c, h.translator, "groupId")
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	if err := h.groups.Follow(c.Request.Context(), id, principal.UserID); err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *GroupHandler) unfollow(c *gin.Context) {
	id, ok := PathID(c, h.translator, "groupId")
	if !ok {
		return
	}

	principal, _ := middleware.GetPrincipal(c)
	if err := h.groups.Unfollow(c.Request.Context(), id, principal.UserID); err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.Status(http.StatusNoContent)
}
