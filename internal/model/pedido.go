package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas del ciclo de vida de un pedido. COMPLETADO and ARCHIVADO are the
// sentinels the paginated listing filters on.
const (
	EtapaPendiente  = "PENDIENTE"
	EtapaImpresion  = "IMPRESION"
	EtapaPostImpres = "POST_IMPRESION"
	EtapaCompletado = "COMPLETADO"
	EtapaCancelado  = "CANCELADO"
	EtapaArchivado  = "ARCHIVADO"
)

// Prioridades.
const (
	PrioridadNormal  = "NORMAL"
	PrioridadUrgente = "URGENTE"
)

// Pedido is the semi-structured order record. The struct is the canonical
// shape: every write serializes the whole value into the `data` JSONB column,
// and structured columns exist only for indexed filtering/sorting. Optional
// attributes (everything past Camisa) may or may not be backed by a live
// column at any given time. The persistence adapter discovers which ones are
// and omits the rest from the structured write, so the JSON snapshot is the
// source of truth for readers.
type Pedido struct {
	ID                  string                 `json:"id"`
	NumeroPedidoCliente string                 `json:"numeroPedidoCliente"`
	Cliente             string                 `json:"cliente"`
	ClienteID           *string                `json:"clienteId,omitempty"`
	FechaPedido         *time.Time             `json:"fechaPedido,omitempty"`
	FechaEntrega        *time.Time             `json:"fechaEntrega,omitempty"`
	EtapaActual         string                 `json:"etapaActual"`
	Prioridad           string                 `json:"prioridad"`
	SecuenciaPedido     int64                  `json:"secuenciaPedido"`
	CantidadPiezas      int                    `json:"cantidadPiezas"`
	Metros              decimal.Decimal        `json:"metros"`
	Observaciones       string                 `json:"observaciones"`
	DatosTecnicos       map[string]interface{} `json:"datosTecnicos"`
	Antivaho            bool                   `json:"antivaho"`
	Camisa              *string                `json:"camisa,omitempty"`

	// Optional attributes subject to schema drift.
	NuevaFechaEntrega     *time.Time `json:"nuevaFechaEntrega,omitempty"`
	NumerosCompra         []string   `json:"numerosCompra,omitempty"`
	Vendedor              *string    `json:"vendedor,omitempty"`
	VendedorID            *string    `json:"vendedorId,omitempty"`
	VendedorNombre        *string    `json:"vendedorNombre,omitempty"`
	ClicheInfoAdicional   *string    `json:"clicheInfoAdicional,omitempty"`
	Anonimo               bool       `json:"anonimo,omitempty"`
	CompraCliche          *time.Time `json:"compraCliche,omitempty"`
	RecepcionCliche       *time.Time `json:"recepcionCliche,omitempty"`
	ObservacionesMaterial *string    `json:"observacionesMaterial,omitempty"`
	Microperforado        bool       `json:"microperforado,omitempty"`
	Macroperforado        bool       `json:"macroperforado,omitempty"`
	AnonimoPostImpresion  *string    `json:"anonimoPostImpresion,omitempty"`
}
