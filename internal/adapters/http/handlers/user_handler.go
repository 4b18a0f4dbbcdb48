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

// UserHandler serves account lookup and direct creation.
type UserHandler struct {
	users      *services.UserService
	translator *i18n.Translator
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *services.UserService, translator *i18n.Translator) *UserHandler {
	return &UserHandler{users: users, translator: translator}
}

// Routes returns the user route table.
func (h *UserHandler) Routes() []common.Route {
	return []common.Route{
		{
			Method: http.MethodGet,
			Path:   "/user/:userId",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewUserNotFound(apierrors.F("userId", 1234)),
			},
			Handler: h.getByID,
		},
		{
			Method: http.MethodPost,
			Path:   "/user",
			Status: http.StatusCreated,
			Errors: []*apierrors.Error{
				apierrors.NewEmailOrPassword(),
				apierrors.NewUsernameAlreadyExists(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.create,
		},
	}
}

func (h *UserHandler) getByID(c *gin.Context) {
	id, ok := PathID(c, h.translator, "userId")
	if !ok {
		return
	}

	result, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UserHandler) create(c *gin.Context) {
	var cmd dtos.CreateUserCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.users.Create(c.Request.Context(), cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
