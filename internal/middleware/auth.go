package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ActorKey is the gin context key the authenticated identity lives under.
const ActorKey = "actor"

// ActorFrom returns the authenticated identity, or nil on unauthenticated
// routes.
func ActorFrom(c *gin.Context) *model.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(*model.Actor); ok {
			return actor
		}
	}
	return nil
}

// Auth is the gateway every protected route passes through: bearer token →
// signature/expiry check → subject resolution against the primary store with
// legacy fallback. Rejections carry a machine-readable code so clients can
// tell a missing token from an expired one from a deactivated account.
//
// When the store is down and the server runs in development, a fixed identity
// built from the token claims is served instead so local work can continue
// against a dead database. The env check keeps production strict.
func Auth(auth *service.AuthService, users repository.UsuarioRepository, salud service.SaludStore, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.WithCode("Token de autenticacion requerido", "NO_TOKEN"))
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apierror.WithCode("Token invalido o expirado", "INVALID_TOKEN"))
			return
		}

		actor, err := auth.ResolveActor(c.Request.Context(), claims.Subject)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUsuarioInactivo):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					apierror.WithCode("Usuario desactivado", "USER_INACTIVE"))
			case errors.Is(err, service.ErrUsuarioNoEncontrado):
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					apierror.WithCode("Usuario no encontrado", "USER_NOT_FOUND"))
			case salud.Degraded() && env == "development":
				log.Warn().Str("userId", claims.Subject).
					Msg("auth: store caido, sirviendo identidad de desarrollo")
				c.Set(ActorKey, developmentActor(claims))
				c.Next()
				return
			default:
				c.AbortWithStatusJSON(http.StatusServiceUnavailable,
					apierror.WithCode("Servicio de identidad no disponible", "STORE_UNAVAILABLE"))
			}
			return
		}

		c.Set(ActorKey, actor)

		// Last-activity never delays the request.
		if !actor.IsLegacy {
			if uid, perr := uuid.Parse(actor.ID); perr == nil {
				ip := c.ClientIP()
				agent := c.Request.UserAgent()
				go func() {
					bg, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := users.TouchActivity(bg, uid, ip, agent); err != nil {
						log.Debug().Err(err).Str("userId", uid.String()).
							Msg("auth: fallo actualizando last_activity")
					}
				}()
			}
		}

		c.Next()
	}
}

func developmentActor(claims *service.Claims) *model.Actor {
	return &model.Actor{
		ID:       claims.Subject,
		Username: claims.Username,
		Rol:      model.ParseRol(claims.Role),
		IsActive: true,
	}
}
