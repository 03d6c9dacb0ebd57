package handler

import (
	"errors"
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/middleware"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	auth     *service.AuthService
	recorder *service.AuditRecorder
}

func NewAuthHandler(auth *service.AuthService, recorder *service.AuditRecorder) *AuthHandler {
	return &AuthHandler{auth: auth, recorder: recorder}
}

// Login maneja POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredencialesInvalidas):
			c.JSON(http.StatusUnauthorized, apierror.WithCode("Usuario o contrasena incorrectos", "INVALID_CREDENTIALS"))
		case errors.Is(err, service.ErrUsuarioInactivo):
			c.JSON(http.StatusUnauthorized, apierror.WithCode("Usuario desactivado", "USER_INACTIVE"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verify maneja GET /auth/verify: confirms the token still resolves to an
// active identity and returns it.
func (h *AuthHandler) Verify(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	c.JSON(http.StatusOK, gin.H{"valid": true, "user": actor})
}

// Logout maneja POST /auth/logout. Tokens are stateless; the endpoint exists
// for the audit record.
func (h *AuthHandler) Logout(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	h.recorder.Record(model.AuditLog{
		UserID:    actor.ID,
		Username:  actor.Username,
		Action:    model.AuditActionLogout,
		Module:    "auth",
		Details:   "Cierre de sesion de " + actor.Username,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	c.JSON(http.StatusOK, gin.H{"detail": "Sesion cerrada"})
}

// ChangePassword maneja PUT /auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	uid, err := uuid.Parse(actor.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Las cuentas legacy no pueden cambiar contrasena aqui"))
		return
	}

	var req dto.ChangePasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), uid, req); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordIncorrecta):
			c.JSON(http.StatusBadRequest, apierror.New("La contrasena actual no es correcta"))
		case errors.Is(err, service.ErrUsuarioNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Contrasena actualizada"})
}
