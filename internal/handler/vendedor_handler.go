package handler

import (
	"errors"
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
)

type VendedorHandler struct {
	vendedores *service.VendedorService
}

func NewVendedorHandler(vendedores *service.VendedorService) *VendedorHandler {
	return &VendedorHandler{vendedores: vendedores}
}

func (h *VendedorHandler) Listar(c *gin.Context) {
	soloActivos := c.Query("soloActivos") == "true"
	vendedores, err := h.vendedores.Listar(c.Request.Context(), soloActivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendedores": vendedores})
}

func (h *VendedorHandler) Obtener(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	v, err := h.vendedores.Obtener(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVendedorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Vendedor no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VendedorHandler) Crear(c *gin.Context) {
	var req dto.CrearVendedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.vendedores.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *VendedorHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.ActualizarVendedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.vendedores.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrVendedorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Vendedor no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *VendedorHandler) Eliminar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.vendedores.Eliminar(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrVendedorNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Vendedor no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Vendedor eliminado"})
}
