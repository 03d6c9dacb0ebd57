package model

import (
	"time"

	"github.com/google/uuid"
)

// UserPermission is an explicit per-user override of a single permission.
// Absence of a row means "fall back to the role default". (user_id,
// permission_id) is unique; upserts make last write win.
type UserPermission struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_user_permission" json:"userId"`
	PermissionID string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_permission" json:"permissionId"`
	Enabled      bool       `gorm:"not null;default:true" json:"enabled"`
	GrantedBy    *uuid.UUID `gorm:"type:uuid" json:"grantedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (UserPermission) TableName() string { return "user_permissions" }

// PermisoDefault is one entry of the role default table.
type PermisoDefault struct {
	PermissionID string `json:"permissionId"`
	Enabled      bool   `json:"enabled"`
}

// AllPermissions is the full catalogue of dot-namespaced permission ids.
var AllPermissions = []string{
	"pedidos.create", "pedidos.view", "pedidos.edit", "pedidos.delete",
	"clientes.view", "clientes.create", "clientes.edit", "clientes.delete",
	"usuarios.admin", "usuarios.view", "usuarios.create", "usuarios.delete",
	"reportes.view", "reportes.export", "datos.import",
	"configuracion.admin", "configuracion.view",
	"permisos.admin", "auditoria.view",
	"secuencias.admin", "secuencias.edit",
	"pedidos.process", "pedidos.complete", "pedidos.cancel",
	"dashboard.view", "inventario.admin", "inventario.view",
	"notificaciones.admin", "notificaciones.view",
	"backup.admin", "restore.admin",
	"antivaho.admin", "antivaho.view",
}

var supervisorExcluded = map[string]bool{
	"usuarios.delete": true,
	"backup.admin":    true,
	"restore.admin":   true,
	"permisos.admin":  true,
}

var operatorPermissions = []string{
	"pedidos.create", "pedidos.view", "pedidos.edit",
	"pedidos.process", "pedidos.complete",
	"dashboard.view", "inventario.view",
	"antivaho.admin", "antivaho.view",
	"secuencias.admin", "secuencias.edit",
}

var viewerPermissions = []string{
	"pedidos.view", "dashboard.view", "inventario.view",
	"reportes.view", "antivaho.view", "clientes.view",
}

// DefaultPermissionsForRole is the role default table: the static
// role → permission-set mapping consulted whenever no explicit grant exists.
// It is data on purpose; nothing else in the codebase hardcodes role
// capabilities.
func DefaultPermissionsForRole(rol Rol) []PermisoDefault {
	enable := func(ids []string) []PermisoDefault {
		out := make([]PermisoDefault, len(ids))
		for i, id := range ids {
			out[i] = PermisoDefault{PermissionID: id, Enabled: true}
		}
		return out
	}

	switch rol {
	case RolAdmin:
		return enable(AllPermissions)
	case RolSupervisor:
		ids := make([]string, 0, len(AllPermissions))
		for _, id := range AllPermissions {
			if !supervisorExcluded[id] {
				ids = append(ids, id)
			}
		}
		return enable(ids)
	case RolOperator:
		return enable(operatorPermissions)
	case RolViewer:
		return enable(viewerPermissions)
	default:
		return enable([]string{"pedidos.view", "dashboard.view"})
	}
}

// RoleDefaultGrants reports whether the role default table enables the given
// permission for the role.
func RoleDefaultGrants(rol Rol, permissionID string) bool {
	for _, p := range DefaultPermissionsForRole(rol) {
		if p.PermissionID == permissionID && p.Enabled {
			return true
		}
	}
	return false
}
