package dto

import (
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
)

type AuditFilter struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	UserID    string `form:"userId"`
	Action    string `form:"action"`
	Module    string `form:"module"`
	StartDate string `form:"startDate"` // YYYY-MM-DD
	EndDate   string `form:"endDate"`
}

type AuditLogsPaginados struct {
	Logs       []model.AuditLog `json:"logs"`
	Pagination Pagination       `json:"pagination"`
}

type CrearNotificacionRequest struct {
	Tipo     string  `json:"tipo" binding:"required"`
	Titulo   string  `json:"titulo" binding:"required"`
	Mensaje  string  `json:"mensaje"`
	PedidoID *string `json:"pedidoId,omitempty"`
}

type CrearMaterialRequest struct {
	Nombre      string  `json:"nombre" binding:"required"`
	Descripcion *string `json:"descripcion,omitempty"`
	Stock       int     `json:"stock"`
}

type ActualizarMaterialRequest struct {
	Nombre      string  `json:"nombre,omitempty"`
	Descripcion *string `json:"descripcion,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	Activo      *bool   `json:"activo,omitempty"`
}
