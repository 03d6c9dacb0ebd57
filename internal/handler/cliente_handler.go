package handler

import (
	"errors"
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
)

type ClienteHandler struct {
	clientes *service.ClienteService
}

func NewClienteHandler(clientes *service.ClienteService) *ClienteHandler {
	return &ClienteHandler{clientes: clientes}
}

func (h *ClienteHandler) Listar(c *gin.Context) {
	var f dto.ClienteFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros de consulta invalidos"))
		return
	}
	page, err := h.clientes.Listar(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ClienteHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	cliente, err := h.clientes.Obtener(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrClienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, cliente)
}

func (h *ClienteHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cliente, err := h.clientes.Crear(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrClienteDuplicado) {
			c.JSON(http.StatusBadRequest, apierror.WithCode("Ya existe un cliente con ese nombre", "DUPLICATE_NAME"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusCreated, cliente)
}

func (h *ClienteHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cliente, err := h.clientes.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrClienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, cliente)
}

// Eliminar maneja DELETE /clientes/:id. ?borrarPedidos=true also removes the
// pedidos referencing the cliente, in the same transaction.
func (h *ClienteHandler) Eliminar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	borrarPedidos := c.Query("borrarPedidos") == "true"
	if err := h.clientes.Eliminar(c.Request.Context(), id, borrarPedidos); err != nil {
		if errors.Is(err, service.ErrClienteNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Cliente no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Cliente eliminado"})
}

func (h *ClienteHandler) Historial(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	pedidos, err := h.clientes.Historial(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"pedidos": pedidos})
}

func (h *ClienteHandler) Stats(c *gin.Context) {
	stats, err := h.clientes.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, stats)
}
