package dto

import (
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
)

// PedidoFilter drives GetAllPaginated. Zero values mean "no constraint"
// except IncluirArchivados/IncluirCompletados, whose false default actively
// excludes the respective sentinel stages. An explicit Etapas allow-list
// overrides both exclusions.
type PedidoFilter struct {
	Page               int      `form:"page"`
	Limit              int      `form:"limit"`
	FechaDesde         string   `form:"fechaDesde"` // YYYY-MM-DD, on fecha_entrega
	FechaHasta         string   `form:"fechaHasta"`
	IncluirArchivados  bool     `form:"incluirArchivados"`
	IncluirCompletados bool     `form:"incluirCompletados"`
	Etapas             []string `form:"etapas"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type PedidosPaginados struct {
	Pedidos    []model.Pedido `json:"pedidos"`
	Pagination Pagination     `json:"pagination"`
}

type BulkInsertPedidosRequest struct {
	Pedidos []model.Pedido `json:"pedidos" binding:"required,min=1"`
}
