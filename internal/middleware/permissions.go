package middleware

import (
	"net/http"
	"strings"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on a single permission.
func RequirePermission(permisos *service.PermisosService, recorder *service.AuditRecorder, permissionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.WithCode("Token de autenticacion requerido", "NO_TOKEN"))
			return
		}
		if !permisos.HasPermission(c.Request.Context(), actor.ID, permissionID, actor) {
			auditDenial(c, recorder, actor, permissionID)
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.PermissionDenied(permissionID))
			return
		}
		c.Next()
	}
}

// RequireAnyPermission grants when the actor holds at least one of the listed
// permissions. The denial echoes the whole candidate set.
func RequireAnyPermission(permisos *service.PermisosService, recorder *service.AuditRecorder, permissionIDs ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.WithCode("Token de autenticacion requerido", "NO_TOKEN"))
			return
		}
		if !permisos.HasAnyPermission(c.Request.Context(), actor.ID, permissionIDs, actor) {
			auditDenial(c, recorder, actor, strings.Join(permissionIDs, "|"))
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.AnyPermissionDenied(permissionIDs))
			return
		}
		c.Next()
	}
}

// RequireAllPermissions grants only when the actor holds every listed
// permission; the denial names the first missing one.
func RequireAllPermissions(permisos *service.PermisosService, recorder *service.AuditRecorder, permissionIDs ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.WithCode("Token de autenticacion requerido", "NO_TOKEN"))
			return
		}
		ok, missing := permisos.HasAllPermissions(c.Request.Context(), actor.ID, permissionIDs, actor)
		if !ok {
			auditDenial(c, recorder, actor, missing)
			c.AbortWithStatusJSON(http.StatusForbidden,
				apierror.AllPermissionsDenied(permissionIDs, missing))
			return
		}
		c.Next()
	}
}

func auditDenial(c *gin.Context, recorder *service.AuditRecorder, actor *model.Actor, permission string) {
	if recorder == nil {
		return
	}
	recorder.Record(model.AuditLog{
		UserID:    actor.ID,
		Username:  actor.Username,
		Action:    model.AuditActionPermissionDenied,
		Module:    "permisos",
		Details:   "Acceso denegado a " + c.Request.Method + " " + c.FullPath(),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Metadata: map[string]interface{}{
			"requiredPermission": permission,
			"path":               c.Request.URL.Path,
		},
	})
}
