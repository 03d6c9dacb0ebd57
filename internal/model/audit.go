package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of a security- or business-relevant
// action. Rows are created once and never mutated; retention is an external
// concern. UserID stays a plain string because legacy identities are not
// UUIDs.
type AuditLog struct {
	ID               uuid.UUID              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           string                 `gorm:"type:varchar(255);index" json:"userId"`
	Username         string                 `gorm:"type:varchar(50);not null" json:"username"`
	Action           string                 `gorm:"type:varchar(100);not null" json:"action"`
	Module           string                 `gorm:"type:varchar(50);not null" json:"module"`
	Details          string                 `json:"details"`
	IPAddress        string                 `gorm:"type:varchar(64)" json:"ipAddress"`
	UserAgent        string                 `json:"userAgent"`
	AffectedResource *string                `gorm:"type:varchar(255)" json:"affectedResource,omitempty"`
	Metadata         map[string]interface{} `gorm:"serializer:json;type:jsonb" json:"metadata"`
	CreatedAt        time.Time              `gorm:"index" json:"createdAt"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// Audit actions recorded by the middleware and the permission gates.
const (
	AuditActionLogin            = "LOGIN"
	AuditActionLogout           = "LOGOUT"
	AuditActionPermissionDenied = "PERMISSION_DENIED"
)
