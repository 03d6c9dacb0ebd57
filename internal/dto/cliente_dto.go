package dto

import (
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
)

type ClienteFilter struct {
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
	SearchTerm string `form:"search"`
	Estado     string `form:"estado"` // activo | inactivo | "" (todos)
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder"`
}

type ClientesPaginados struct {
	Clientes   []model.Cliente `json:"clientes"`
	Pagination Pagination      `json:"pagination"`
}

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre" binding:"required"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono  *string `json:"telefono,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Activo    *bool   `json:"activo,omitempty"`
}

type ClienteStats struct {
	Total     int64 `json:"total"`
	Activos   int64 `json:"activos"`
	Inactivos int64 `json:"inactivos"`
}

type CrearVendedorRequest struct {
	Nombre   string  `json:"nombre" binding:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono *string `json:"telefono,omitempty"`
}

type ActualizarVendedorRequest struct {
	Nombre   string  `json:"nombre,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Telefono *string `json:"telefono,omitempty"`
	Activo   *bool   `json:"activo,omitempty"`
}
