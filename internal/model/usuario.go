package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is the primary identity store for administrators.
// Role persists the canonical code; rows migrated from the legacy table may
// still carry a Spanish name, so always go through ParseRol when reading.
type AdminUser struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email        *string   `gorm:"type:varchar(255)"`
	PasswordHash string    `gorm:"not null"`
	FirstName    *string   `gorm:"type:varchar(100)"`
	LastName     *string   `gorm:"type:varchar(100)"`
	Role         string    `gorm:"type:varchar(50);not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	LastLogin    *time.Time
	LastActivity *time.Time
	LastIP       *string `gorm:"type:varchar(64)"`
	LastAgent    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminUser) TableName() string { return "admin_users" }

// LegacyUser is the pre-migration user table. IDs there are arbitrary strings
// (often plain integers), not UUIDs, which is how lookups tell the two stores
// apart.
type LegacyUser struct {
	ID          string  `gorm:"primaryKey"`
	Username    string  `gorm:"type:varchar(50);not null"`
	DisplayName *string `gorm:"type:varchar(100)"`
	Role        string  `gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time
}

func (LegacyUser) TableName() string { return "users" }
