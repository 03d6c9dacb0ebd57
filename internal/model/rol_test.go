package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRol(t *testing.T) {
	cases := map[string]Rol{
		"ADMIN":         RolAdmin,
		"SUPERVISOR":    RolSupervisor,
		"OPERATOR":      RolOperator,
		"VIEWER":        RolViewer,
		"Administrador": RolAdmin,
		"Supervisor":    RolSupervisor,
		"Operador":      RolOperator,
		"Visualizador":  RolViewer,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseRol(in), in)
	}

	// Unknown strings pass through so the default table can apply its
	// conservative branch.
	assert.Equal(t, Rol("Invitado"), ParseRol("Invitado"))
}

func TestDefaultPermissionsForRole(t *testing.T) {
	admin := DefaultPermissionsForRole(RolAdmin)
	assert.Len(t, admin, len(AllPermissions))

	supervisor := DefaultPermissionsForRole(RolSupervisor)
	assert.Len(t, supervisor, len(AllPermissions)-4)
	for _, p := range supervisor {
		assert.NotContains(t,
			[]string{"usuarios.delete", "backup.admin", "restore.admin", "permisos.admin"},
			p.PermissionID)
	}

	assert.True(t, RoleDefaultGrants(RolOperator, "pedidos.create"))
	assert.False(t, RoleDefaultGrants(RolOperator, "usuarios.delete"))
	assert.True(t, RoleDefaultGrants(RolViewer, "pedidos.view"))
	assert.False(t, RoleDefaultGrants(RolViewer, "pedidos.create"))
}

func TestUnknownRoleGetsMinimalDefaults(t *testing.T) {
	perms := DefaultPermissionsForRole(Rol("Invitado"))
	assert.Len(t, perms, 2)
	assert.True(t, RoleDefaultGrants(Rol("Invitado"), "pedidos.view"))
	assert.True(t, RoleDefaultGrants(Rol("Invitado"), "dashboard.view"))
	assert.False(t, RoleDefaultGrants(Rol("Invitado"), "pedidos.create"))
}
