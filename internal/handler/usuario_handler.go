package handler

import (
	"errors"
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/middleware"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UsuarioHandler struct {
	auth     *service.AuthService
	permisos *service.PermisosService
	grants   repository.PermisoRepository
	users    repository.UsuarioRepository
}

func NewUsuarioHandler(auth *service.AuthService, permisos *service.PermisosService, grants repository.PermisoRepository, users repository.UsuarioRepository) *UsuarioHandler {
	return &UsuarioHandler{auth: auth, permisos: permisos, grants: grants, users: users}
}

// Crear maneja POST /admin/users.
func (h *UsuarioHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.auth.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioDuplicado) {
			c.JSON(http.StatusBadRequest, apierror.WithCode("El nombre de usuario ya existe", "DUPLICATE_USERNAME"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.Set(middleware.CreatedUsernameKey, resp.Username)
	c.JSON(http.StatusCreated, resp)
}

// Listar maneja GET /admin/users.
func (h *UsuarioHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluirInactivos") == "true"
	users, err := h.auth.ListarUsuarios(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Obtener maneja GET /admin/users/:id.
func (h *UsuarioHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	resp, err := h.auth.ObtenerUsuario(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar maneja PUT /admin/users/:id.
func (h *UsuarioHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.ActualizarUsuario(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar maneja DELETE /admin/users/:id.
func (h *UsuarioHandler) Eliminar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.auth.EliminarUsuario(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Usuario eliminado"})
}

// EliminarVarios maneja POST /admin/users/bulk-delete.
func (h *UsuarioHandler) EliminarVarios(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.auth.EliminarUsuarios(c.Request.Context(), req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Usuarios eliminados", "count": len(req.IDs)})
}

// ResetPassword maneja POST /admin/users/:id/reset-password.
func (h *UsuarioHandler) ResetPassword(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.auth.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Contrasena restablecida"})
}

// Activar maneja PATCH /admin/users/:id/activate.
func (h *UsuarioHandler) Activar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.auth.ActivarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Usuario activado"})
}

// Desactivar maneja PATCH /admin/users/:id/deactivate.
func (h *UsuarioHandler) Desactivar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.auth.DesactivarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Usuario desactivado"})
}

// ObtenerPermisos maneja GET /admin/users/:id/permisos: the effective set,
// role defaults overlaid with explicit grants.
func (h *UsuarioHandler) ObtenerPermisos(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	user, err := h.auth.ObtenerUsuario(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUsuarioNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Usuario no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	perms, err := h.permisos.EffectivePermissions(c.Request.Context(), id.String(), model.ParseRol(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": id.String(), "role": user.Role, "permissions": perms})
}

// ActualizarPermisos maneja PUT /admin/users/:id/permisos: upserts explicit
// grants, last write wins, recording who granted them.
func (h *UsuarioHandler) ActualizarPermisos(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.ActualizarPermisosRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var grantedBy *uuid.UUID
	if actor := middleware.ActorFrom(c); actor != nil {
		if uid, err := uuid.Parse(actor.ID); err == nil {
			grantedBy = &uid
		}
	}

	for _, item := range req.Permissions {
		grant := &model.UserPermission{
			UserID:       id,
			PermissionID: item.ID,
			Enabled:      item.Enabled,
			GrantedBy:    grantedBy,
		}
		if err := h.grants.Upsert(c.Request.Context(), grant); err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Permisos actualizados", "count": len(req.Permissions)})
}

// NoImplementado responds 501 for the legacy user-table operations that were
// never ported. The routes stay registered so old clients get an explicit
// answer instead of a 404.
func (h *UsuarioHandler) NoImplementado(c *gin.Context) {
	c.JSON(http.StatusNotImplemented,
		apierror.WithCode("Operacion no disponible sobre la tabla legacy", "NOT_IMPLEMENTED"))
}
