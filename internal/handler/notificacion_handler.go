package handler

import (
	"net/http"
	"strconv"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificacionHandler struct {
	notificaciones *service.NotificacionService
}

func NewNotificacionHandler(notificaciones *service.NotificacionService) *NotificacionHandler {
	return &NotificacionHandler{notificaciones: notificaciones}
}

func (h *NotificacionHandler) Listar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	notificaciones, err := h.notificaciones.ListarRecientes(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"notificaciones": notificaciones})
}

func (h *NotificacionHandler) Crear(c *gin.Context) {
	var req dto.CrearNotificacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.notificaciones.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *NotificacionHandler) MarcarLeida(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.notificaciones.MarcarLeida(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Notificacion marcada como leida"})
}

func (h *NotificacionHandler) MarcarTodasLeidas(c *gin.Context) {
	if err := h.notificaciones.MarcarTodasLeidas(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Todas las notificaciones marcadas como leidas"})
}
