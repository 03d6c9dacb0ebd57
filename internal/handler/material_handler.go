package handler

import (
	"errors"
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MaterialHandler works directly against the repository: materiales carry no
// business rules beyond persistence.
type MaterialHandler struct {
	materiales repository.MaterialRepository
}

func NewMaterialHandler(materiales repository.MaterialRepository) *MaterialHandler {
	return &MaterialHandler{materiales: materiales}
}

func (h *MaterialHandler) Listar(c *gin.Context) {
	materiales, err := h.materiales.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"materiales": materiales})
}

func (h *MaterialHandler) Crear(c *gin.Context) {
	var req dto.CrearMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	m := &model.Material{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Stock:       req.Stock,
		Activo:      true,
	}
	if err := h.materiales.Create(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MaterialHandler) Actualizar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	var req dto.ActualizarMaterialRequest
	if !bindAndValidate(c, &req) {
		return
	}

	m, err := h.materiales.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Material no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	if req.Nombre != "" {
		m.Nombre = req.Nombre
	}
	if req.Descripcion != nil {
		m.Descripcion = req.Descripcion
	}
	if req.Stock != nil {
		m.Stock = *req.Stock
	}
	if req.Activo != nil {
		m.Activo = *req.Activo
	}
	if err := h.materiales.Update(c.Request.Context(), m); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MaterialHandler) Eliminar(c *gin.Context) {
	id, ok := pathUUID(c)
	if !ok {
		return
	}
	if err := h.materiales.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Material eliminado"})
}
