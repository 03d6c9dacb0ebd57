package service

import (
	"context"
	"errors"
	"testing"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func operatorUser(id uuid.UUID) *model.AdminUser {
	return &model.AdminUser{ID: id, Username: "operador1", Role: string(model.RolOperator), IsActive: true}
}

func TestHasPermissionAdminGrantsEverything(t *testing.T) {
	svc := NewPermisosService(&stubUsuarioRepo{}, &stubPermisoRepo{}, staticSalud(false), true)
	actor := &model.Actor{ID: uuid.NewString(), Username: "jefe", Rol: model.RolAdmin}

	for _, perm := range model.AllPermissions {
		assert.True(t, svc.HasPermission(context.Background(), actor.ID, perm, actor))
	}
}

func TestHasPermissionExplicitGrantOverridesRoleDefault(t *testing.T) {
	uid := uuid.New()
	users := &stubUsuarioRepo{
		findByID: func(_ context.Context, id uuid.UUID) (*model.AdminUser, error) {
			return operatorUser(id), nil
		},
	}
	grants := &stubPermisoRepo{
		findGrant: func(_ context.Context, _ uuid.UUID, permissionID string) (*model.UserPermission, error) {
			switch permissionID {
			case "pedidos.create":
				// Role default says yes; the explicit row says no and wins.
				return &model.UserPermission{PermissionID: permissionID, Enabled: false}, nil
			case "usuarios.delete":
				// Role default says no; the explicit row says yes and wins.
				return &model.UserPermission{PermissionID: permissionID, Enabled: true}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewPermisosService(users, grants, staticSalud(false), true)
	actor := &model.Actor{ID: uid.String(), Username: "operador1", Rol: model.RolOperator}

	assert.False(t, svc.HasPermission(context.Background(), uid.String(), "pedidos.create", actor))
	assert.True(t, svc.HasPermission(context.Background(), uid.String(), "usuarios.delete", actor))
}

func TestHasPermissionFallsBackToRoleDefault(t *testing.T) {
	uid := uuid.New()
	users := &stubUsuarioRepo{
		findByID: func(_ context.Context, id uuid.UUID) (*model.AdminUser, error) {
			return operatorUser(id), nil
		},
	}
	svc := NewPermisosService(users, &stubPermisoRepo{}, staticSalud(false), true)
	actor := &model.Actor{ID: uid.String(), Rol: model.RolOperator}

	assert.True(t, svc.HasPermission(context.Background(), uid.String(), "pedidos.create", actor))
	assert.False(t, svc.HasPermission(context.Background(), uid.String(), "usuarios.delete", actor))
}

func TestHasPermissionGrantLookupErrorFallsThrough(t *testing.T) {
	uid := uuid.New()
	users := &stubUsuarioRepo{
		findByID: func(_ context.Context, id uuid.UUID) (*model.AdminUser, error) {
			return operatorUser(id), nil
		},
	}
	grants := &stubPermisoRepo{
		findGrant: func(context.Context, uuid.UUID, string) (*model.UserPermission, error) {
			return nil, errors.New("conexion perdida")
		},
	}
	svc := NewPermisosService(users, grants, staticSalud(false), true)
	actor := &model.Actor{ID: uid.String(), Rol: model.RolOperator}

	// A broken grants table must not deny what the role default allows.
	assert.True(t, svc.HasPermission(context.Background(), uid.String(), "pedidos.create", actor))
	assert.False(t, svc.HasPermission(context.Background(), uid.String(), "usuarios.delete", actor))
}

func TestHasPermissionLegacyStore(t *testing.T) {
	users := &stubUsuarioRepo{
		findLegacy: func(_ context.Context, id string) (*model.LegacyUser, error) {
			switch id {
			case "42":
				return &model.LegacyUser{ID: id, Username: "viejo", Role: "Operador"}, nil
			case "1":
				return &model.LegacyUser{ID: id, Username: "root", Role: "Administrador"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewPermisosService(users, &stubPermisoRepo{}, staticSalud(false), true)

	actor := &model.Actor{ID: "42", Rol: model.RolOperator, IsLegacy: true}
	assert.True(t, svc.HasPermission(context.Background(), "42", "pedidos.create", actor))
	assert.False(t, svc.HasPermission(context.Background(), "42", "usuarios.delete", actor))

	admin := &model.Actor{ID: "1", Rol: model.RolAdmin, IsLegacy: true}
	assert.True(t, svc.HasPermission(context.Background(), "1", "backup.admin", admin))
}

func TestHasPermissionUnknownUserGetsAdminDefaults(t *testing.T) {
	svc := NewPermisosService(&stubUsuarioRepo{}, &stubPermisoRepo{}, staticSalud(false), true)
	actor := &model.Actor{ID: "999", Username: "fantasma", Rol: model.RolOperator}

	assert.True(t, svc.HasPermission(context.Background(), "999", "backup.admin", actor))
	assert.True(t, svc.HasPermission(context.Background(), "999", "permisos.admin", actor))
}

func TestHasPermissionDegradedUsesEmbeddedList(t *testing.T) {
	svc := NewPermisosService(&stubUsuarioRepo{}, &stubPermisoRepo{}, staticSalud(true), true)

	conLista := &model.Actor{
		ID:  uuid.NewString(),
		Rol: model.RolViewer,
		Permissions: []model.ActorPermission{
			{ID: "pedidos.create", Enabled: true},
			{ID: "pedidos.view", Enabled: false},
		},
	}
	assert.True(t, svc.HasPermission(context.Background(), conLista.ID, "pedidos.create", conLista))
	assert.False(t, svc.HasPermission(context.Background(), conLista.ID, "pedidos.view", conLista))
	assert.False(t, svc.HasPermission(context.Background(), conLista.ID, "dashboard.view", conLista))

	sinLista := &model.Actor{ID: uuid.NewString(), Rol: model.RolViewer}
	assert.True(t, svc.HasPermission(context.Background(), sinLista.ID, "pedidos.view", sinLista))
	assert.False(t, svc.HasPermission(context.Background(), sinLista.ID, "pedidos.create", sinLista))
}

func TestHasPermissionFailPosture(t *testing.T) {
	uid := uuid.New()
	users := &stubUsuarioRepo{
		findByID: func(context.Context, uuid.UUID) (*model.AdminUser, error) {
			return nil, errors.New("timeout")
		},
	}
	actor := &model.Actor{ID: uid.String(), Rol: model.RolOperator}

	abierto := NewPermisosService(users, &stubPermisoRepo{}, staticSalud(false), true)
	assert.True(t, abierto.HasPermission(context.Background(), uid.String(), "pedidos.view", actor))

	cerrado := NewPermisosService(users, &stubPermisoRepo{}, staticSalud(false), false)
	assert.False(t, cerrado.HasPermission(context.Background(), uid.String(), "pedidos.view", actor))
}

func TestHasAllPermissionsNamesMissing(t *testing.T) {
	uid := uuid.New()
	users := &stubUsuarioRepo{
		findByID: func(_ context.Context, id uuid.UUID) (*model.AdminUser, error) {
			return operatorUser(id), nil
		},
	}
	svc := NewPermisosService(users, &stubPermisoRepo{}, staticSalud(false), true)
	actor := &model.Actor{ID: uid.String(), Rol: model.RolOperator}

	ok, missing := svc.HasAllPermissions(context.Background(), uid.String(),
		[]string{"pedidos.create", "datos.import"}, actor)
	assert.False(t, ok)
	assert.Equal(t, "datos.import", missing)

	ok, missing = svc.HasAllPermissions(context.Background(), uid.String(),
		[]string{"pedidos.create", "pedidos.edit"}, actor)
	assert.True(t, ok)
	assert.Empty(t, missing)
}

func TestHasAnyPermission(t *testing.T) {
	uid := uuid.New()
	users := &stubUsuarioRepo{
		findByID: func(_ context.Context, id uuid.UUID) (*model.AdminUser, error) {
			return operatorUser(id), nil
		},
	}
	svc := NewPermisosService(users, &stubPermisoRepo{}, staticSalud(false), true)
	actor := &model.Actor{ID: uid.String(), Rol: model.RolOperator}

	assert.True(t, svc.HasAnyPermission(context.Background(), uid.String(),
		[]string{"usuarios.delete", "pedidos.view"}, actor))
	assert.False(t, svc.HasAnyPermission(context.Background(), uid.String(),
		[]string{"usuarios.delete", "backup.admin"}, actor))
}

func TestEffectivePermissionsOverlay(t *testing.T) {
	uid := uuid.New()
	grants := &stubPermisoRepo{
		listByUser: func(context.Context, uuid.UUID) ([]model.UserPermission, error) {
			return []model.UserPermission{
				{PermissionID: "pedidos.create", Enabled: false},
				{PermissionID: "reportes.export", Enabled: true},
			}, nil
		},
	}
	svc := NewPermisosService(&stubUsuarioRepo{}, grants, staticSalud(false), true)

	perms, err := svc.EffectivePermissions(context.Background(), uid.String(), model.RolOperator)
	assert.NoError(t, err)

	byID := map[string]bool{}
	for _, p := range perms {
		byID[p.PermissionID] = p.Enabled
	}
	assert.False(t, byID["pedidos.create"])
	assert.True(t, byID["reportes.export"])
	assert.True(t, byID["pedidos.view"])
}
