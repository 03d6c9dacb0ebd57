package model

import (
	"time"

	"github.com/google/uuid"
)

// Vendedor is a sales-rep record. Pedidos reference it by id and cache the
// name; deleting a vendedor never fails pedido writes, the adapter nulls the
// dangling reference instead.
type Vendedor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nombre    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"nombre"`
	Email     *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	Telefono  *string   `gorm:"type:varchar(50)" json:"telefono,omitempty"`
	Activo    bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Vendedor) TableName() string { return "vendedores" }
