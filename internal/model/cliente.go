package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer master record. Pedidos denormalize the name into
// their own rows; the persistence adapter refreshes it on every write.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nombre    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"nombre"`
	Email     *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	Telefono  *string   `gorm:"type:varchar(50)" json:"telefono,omitempty"`
	Direccion *string   `json:"direccion,omitempty"`
	Activo    bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Cliente) TableName() string { return "clientes" }
