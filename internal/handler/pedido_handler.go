package handler

import (
	"errors"
	"net/http"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/apierror"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
)

type PedidoHandler struct {
	pedidos *service.PedidoService
}

func NewPedidoHandler(pedidos *service.PedidoService) *PedidoHandler {
	return &PedidoHandler{pedidos: pedidos}
}

// Listar maneja GET /pedidos (paginated, filtered).
func (h *PedidoHandler) Listar(c *gin.Context) {
	var f dto.PedidoFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros de consulta invalidos"))
		return
	}
	page, err := h.pedidos.ListarPaginado(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListarTodos maneja GET /pedidos/all (unpaginated, for exports).
func (h *PedidoHandler) ListarTodos(c *gin.Context) {
	pedidos, err := h.pedidos.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"pedidos": pedidos})
}

// Obtener maneja GET /pedidos/:id.
func (h *PedidoHandler) Obtener(c *gin.Context) {
	p, err := h.pedidos.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPedidoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Pedido no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// Crear maneja POST /pedidos.
func (h *PedidoHandler) Crear(c *gin.Context) {
	var p model.Pedido
	if !bindAndValidate(c, &p) {
		return
	}
	creado, err := h.pedidos.Crear(c.Request.Context(), &p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusCreated, creado)
}

// Actualizar maneja PUT /pedidos/:id.
func (h *PedidoHandler) Actualizar(c *gin.Context) {
	var p model.Pedido
	if !bindAndValidate(c, &p) {
		return
	}
	p.ID = c.Param("id")

	actualizado, err := h.pedidos.Actualizar(c.Request.Context(), &p)
	if err != nil {
		if errors.Is(err, repository.ErrPedidoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Pedido no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, actualizado)
}

// Eliminar maneja DELETE /pedidos/:id.
func (h *PedidoHandler) Eliminar(c *gin.Context) {
	if err := h.pedidos.Eliminar(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrPedidoNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Pedido no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Pedido eliminado"})
}

// Buscar maneja GET /pedidos/search?q=.
func (h *PedidoHandler) Buscar(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Falta el parametro de busqueda q"))
		return
	}
	pedidos, err := h.pedidos.Buscar(c.Request.Context(), term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"pedidos": pedidos})
}

// BulkImport maneja POST /pedidos/bulk: all-or-nothing batch creation.
func (h *PedidoHandler) BulkImport(c *gin.Context) {
	var req dto.BulkInsertPedidosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	n, err := h.pedidos.BulkImport(c.Request.Context(), req.Pedidos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("La importacion fallo, no se inserto ningun pedido"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"detail": "Pedidos importados", "count": n})
}
