package model

// Rol is the single internal role vocabulary. Legacy records persist the
// Spanish display names; ParseRol normalizes both spellings at the
// persistence boundary so business logic only ever compares canonical codes.
type Rol string

const (
	RolAdmin      Rol = "ADMIN"
	RolSupervisor Rol = "SUPERVISOR"
	RolOperator   Rol = "OPERATOR"
	RolViewer     Rol = "VIEWER"
)

var legacyRolNames = map[string]Rol{
	"Administrador": RolAdmin,
	"Supervisor":    RolSupervisor,
	"Operador":      RolOperator,
	"Visualizador":  RolViewer,
}

// ParseRol maps a stored role string (canonical code or legacy Spanish name)
// to the internal enumeration. Unknown strings come back as-is so callers can
// still feed them to DefaultPermissionsForRole, which has a conservative
// default branch.
func ParseRol(s string) Rol {
	switch Rol(s) {
	case RolAdmin, RolSupervisor, RolOperator, RolViewer:
		return Rol(s)
	}
	if r, ok := legacyRolNames[s]; ok {
		return r
	}
	return Rol(s)
}

func (r Rol) EsAdmin() bool { return r == RolAdmin }
