package handler

import (
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/gin-gonic/gin"
)

type AuditoriaHandler struct {
	audit repository.AuditRepository
}

func NewAuditoriaHandler(audit repository.AuditRepository) *AuditoriaHandler {
	return &AuditoriaHandler{audit: audit}
}

// Listar maneja GET /auditoria with page/limit/userId/action/module and date
// range filters.
func (h *AuditoriaHandler) Listar(c *gin.Context) {
	var f dto.AuditFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros de consulta invalidos"))
		return
	}
	page, err := h.audit.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, page)
}
