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

// AuthHandler serves login, registration and password change.
type AuthHandler struct {
	auth       *services.AuthService
	translator *i18n.Translator
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth *services.AuthService, translator *i18n.Translator) *AuthHandler {
	return &AuthHandler{auth: auth, translator: translator}
}

// Routes returns the auth route table.
func (h *AuthHandler) Routes() []common.Route {
	return []common.Route{
		{
			Method: http.MethodPost,
			Path:   "/auth/login",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewEmailOrPassword(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.login,
		},
		{
			Method: http.MethodPost,
			Path:   "/auth/register",
			Status: http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewEmailOrPassword(),
				apierrors.NewUsernameAlreadyExists(),
				apierrors.NewInvalidUsername(),
				apierrors.NewInvalidEmail(),
				apierrors.NewInvalidPassword(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.register,
		},
		{
			Method:        http.MethodPost,
			Path:          "/auth/change-password",
			RequiresLogin: true,
			Status:        http.StatusOK,
			Errors: []*apierrors.Error{
				apierrors.NewEmailOrPassword(),
				apierrors.NewPasswordsDoNotMatch(),
				apierrors.NewPasswordAlreadyUsed(),
				apierrors.NewInvalidPassword(),
				apierrors.NewRequestValidation(),
			},
			Handler: h.changePassword,
		},
	}
}

func (h *AuthHandler) login(c *gin.Context) {
	var cmd dtos.LoginCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.auth.Login(c.Request.Context(), cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) register(c *gin.Context) {
	var cmd dtos.RegisterCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.auth.Register(c.Request.Context(), cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	middleware.RecordRegistration()
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) changePassword(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	var cmd dtos.ChangePasswordCommand
	if !BindJSON(c, h.translator, &cmd) {
		return
	}

	result, err := h.auth.ChangePassword(c.Request.Context(), principal.UserID, cmd)
	if err != nil {
		common.WriteError(c, h.translator, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
