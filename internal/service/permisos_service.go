package service

import (
	"context"
	"errors"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SaludStore reports whether the backing store is currently reachable.
// Satisfied by infra.HealthState.
type SaludStore interface {
	Degraded() bool
}

// PermisosService resolves whether an authenticated actor holds a permission.
// Resolution never returns an error: an internal fault resolves to the
// configured fail posture (open by default, see config.PermisosFailOpen) and
// is always logged. Every branch taken leaves a trace record so a denial can
// be reconstructed from the logs.
type PermisosService struct {
	users    repository.UsuarioRepository
	grants   repository.PermisoRepository
	salud    SaludStore
	failOpen bool
}

func NewPermisosService(users repository.UsuarioRepository, grants repository.PermisoRepository, salud SaludStore, failOpen bool) *PermisosService {
	return &PermisosService{users: users, grants: grants, salud: salud, failOpen: failOpen}
}

// HasPermission resolves one permission for one actor. First match wins:
//
//  1. actor role is ADMIN → grant.
//  2. store degraded → actor-embedded permission list, else role defaults.
//  3. actor not in the primary store → legacy store (legacy admin → grant,
//     else that role's defaults).
//  4. actor in neither store → ADMIN default set. Unknown identities here
//     have already passed token verification; historically these were
//     pre-migration admins whose rows had not been copied yet, so the
//     fail-safe leans permissive rather than locking the tool's own
//     operators out.
//  5. explicit user_permissions row decides via its enabled flag; no row →
//     role defaults.
func (s *PermisosService) HasPermission(ctx context.Context, userID, permissionID string, actor *model.Actor) bool {
	trace := log.Debug().Str("userId", userID).Str("permission", permissionID)

	// Rule 1: admins hold everything.
	if actor != nil && actor.Rol.EsAdmin() {
		trace.Str("rule", "admin-role").Bool("granted", true).Msg("permiso resuelto")
		return true
	}

	// Rule 2: store down, decide from what the token/actor carries.
	if s.salud.Degraded() {
		granted := s.resolveDegraded(actor, permissionID)
		trace.Str("rule", "store-degraded").Bool("granted", granted).Msg("permiso resuelto")
		return granted
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		// Non-UUID ids only ever lived in the legacy table.
		granted := s.resolveLegacy(ctx, userID, permissionID, trace)
		return granted
	}

	user, err := s.users.FindByID(ctx, uid)
	switch {
	case err == nil:
		// Rule 5: explicit grant wins over the role default.
		rol := model.ParseRol(user.Role)
		if rol.EsAdmin() {
			trace.Str("rule", "admin-role").Bool("granted", true).Msg("permiso resuelto")
			return true
		}
		grant, gerr := s.grants.FindGrant(ctx, uid, permissionID)
		if gerr == nil {
			trace.Str("rule", "explicit-grant").Bool("granted", grant.Enabled).Msg("permiso resuelto")
			return grant.Enabled
		}
		if !errors.Is(gerr, gorm.ErrRecordNotFound) {
			// A broken grants lookup is not a denial; the role default still
			// applies.
			log.Error().Err(gerr).Str("userId", userID).Str("permission", permissionID).
				Msg("permisos: fallo consultando grants explicitos, usando default del rol")
		}
		granted := model.RoleDefaultGrants(rol, permissionID)
		trace.Str("rule", "role-default").Bool("granted", granted).Msg("permiso resuelto")
		return granted

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Rule 3: fall through to the legacy store.
		return s.resolveLegacy(ctx, userID, permissionID, trace)

	default:
		log.Error().Err(err).Str("userId", userID).Str("permission", permissionID).
			Msg("permisos: fallo consultando el store primario")
		trace.Str("rule", "internal-fault").Bool("granted", s.failOpen).Msg("permiso resuelto")
		return s.failOpen
	}
}

// HasAnyPermission grants when at least one of the ids resolves to a grant.
func (s *PermisosService) HasAnyPermission(ctx context.Context, userID string, permissionIDs []string, actor *model.Actor) bool {
	for _, id := range permissionIDs {
		if s.HasPermission(ctx, userID, id, actor) {
			return true
		}
	}
	return false
}

// HasAllPermissions grants only when every id resolves to a grant. On denial
// it returns the first missing id so callers can echo it back.
func (s *PermisosService) HasAllPermissions(ctx context.Context, userID string, permissionIDs []string, actor *model.Actor) (bool, string) {
	for _, id := range permissionIDs {
		if !s.HasPermission(ctx, userID, id, actor) {
			return false, id
		}
	}
	return true, ""
}

// EffectivePermissions returns the full resolved permission set for a user:
// the role default table overlaid with explicit grants. Used by the
// permission-admin endpoints.
func (s *PermisosService) EffectivePermissions(ctx context.Context, userID string, rol model.Rol) ([]model.PermisoDefault, error) {
	defaults := model.DefaultPermissionsForRole(rol)

	uid, err := uuid.Parse(userID)
	if err != nil {
		return defaults, nil
	}
	grants, err := s.grants.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]bool, len(grants))
	for _, g := range grants {
		byID[g.PermissionID] = g.Enabled
	}

	out := make([]model.PermisoDefault, 0, len(defaults))
	seen := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		if enabled, ok := byID[d.PermissionID]; ok {
			d.Enabled = enabled
		}
		seen[d.PermissionID] = true
		out = append(out, d)
	}
	// Explicit grants for ids outside the role default set still count.
	for _, g := range grants {
		if !seen[g.PermissionID] {
			out = append(out, model.PermisoDefault{PermissionID: g.PermissionID, Enabled: g.Enabled})
		}
	}
	return out, nil
}

func (s *PermisosService) resolveDegraded(actor *model.Actor, permissionID string) bool {
	if actor == nil {
		return s.failOpen
	}
	if len(actor.Permissions) > 0 {
		for _, p := range actor.Permissions {
			if p.ID == permissionID {
				return p.Enabled
			}
		}
		return false
	}
	return model.RoleDefaultGrants(actor.Rol, permissionID)
}

func (s *PermisosService) resolveLegacy(ctx context.Context, userID, permissionID string, trace *zerolog.Event) bool {
	legacy, err := s.users.FindLegacyByID(ctx, userID)
	switch {
	case err == nil:
		rol := model.ParseRol(legacy.Role)
		if rol.EsAdmin() {
			trace.Str("rule", "legacy-admin").Bool("granted", true).Msg("permiso resuelto")
			return true
		}
		granted := model.RoleDefaultGrants(rol, permissionID)
		trace.Str("rule", "legacy-role-default").Bool("granted", granted).Msg("permiso resuelto")
		return granted

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Rule 4: unknown everywhere.
		granted := model.RoleDefaultGrants(model.RolAdmin, permissionID)
		log.Warn().Str("userId", userID).Str("permission", permissionID).
			Msg("permisos: usuario sin fila en ningun store, aplicando defaults de ADMIN")
		trace.Str("rule", "unknown-user-failsafe").Bool("granted", granted).Msg("permiso resuelto")
		return granted

	default:
		log.Error().Err(err).Str("userId", userID).Str("permission", permissionID).
			Msg("permisos: fallo consultando el store legacy")
		trace.Str("rule", "internal-fault").Bool("granted", s.failOpen).Msg("permiso resuelto")
		return s.failOpen
	}
}
