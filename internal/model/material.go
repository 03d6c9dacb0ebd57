package model

import (
	"time"

	"github.com/google/uuid"
)

// Material is a raw-material inventory record.
type Material struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nombre      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"nombre"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Activo      bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Material) TableName() string { return "materiales" }
