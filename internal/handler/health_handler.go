package handler

import (
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/infra"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	state *infra.HealthState
}

func NewHealthHandler(state *infra.HealthState) *HealthHandler {
	return &HealthHandler{state: state}
}

// Check maneja GET /health. Reports the cached store availability; it never
// probes inline so the endpoint stays cheap under load-balancer polling.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	estado := "ok"
	if h.state.Degraded() {
		status = http.StatusServiceUnavailable
		estado = "degraded"
	}
	c.JSON(status, gin.H{
		"status":    estado,
		"lastCheck": h.state.LastCheck(),
	})
}
