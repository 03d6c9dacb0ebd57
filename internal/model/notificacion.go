package model

import (
	"time"

	"github.com/google/uuid"
)

// Notificacion is an in-app notification. Besides the row, creation publishes
// the payload on a Redis channel for the real-time delivery sidecar.
type Notificacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Tipo      string    `gorm:"type:varchar(50);not null" json:"tipo"`
	Titulo    string    `gorm:"type:varchar(255);not null" json:"titulo"`
	Mensaje   string    `json:"mensaje"`
	PedidoID  *string   `gorm:"type:varchar(255)" json:"pedidoId,omitempty"`
	Leida     bool      `gorm:"not null;default:false" json:"leida"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Notificacion) TableName() string { return "notificaciones" }
