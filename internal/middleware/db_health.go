package middleware

import (
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireHealthyStore refuses mutating operations while the backing store is
// degraded. Reads pass through: stale data beats no data for an admin tool.
func RequireHealthyStore(salud service.SaludStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if salud.Degraded() {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable,
					apierror.WithCode("Base de datos no disponible", "STORE_UNAVAILABLE"))
				return
			}
		}
		c.Next()
	}
}
