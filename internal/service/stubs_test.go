package service

import (
	"context"
	"sync"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stubUsuarioRepo implements repository.UsuarioRepository with overridable
// lookups; everything else answers "not found".
type stubUsuarioRepo struct {
	findByID       func(ctx context.Context, id uuid.UUID) (*model.AdminUser, error)
	findByUsername func(ctx context.Context, username string) (*model.AdminUser, error)
	findLegacy     func(ctx context.Context, id string) (*model.LegacyUser, error)
}

func (s *stubUsuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsuarioRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	if s.findByUsername != nil {
		return s.findByUsername(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsuarioRepo) FindLegacyByID(ctx context.Context, id string) (*model.LegacyUser, error) {
	if s.findLegacy != nil {
		return s.findLegacy(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsuarioRepo) Create(context.Context, *model.AdminUser) error { return nil }
func (s *stubUsuarioRepo) List(context.Context) ([]model.AdminUser, error) {
	return nil, nil
}
func (s *stubUsuarioRepo) ListAll(context.Context) ([]model.AdminUser, error) {
	return nil, nil
}
func (s *stubUsuarioRepo) Update(context.Context, *model.AdminUser) error     { return nil }
func (s *stubUsuarioRepo) Deactivate(context.Context, uuid.UUID) error        { return nil }
func (s *stubUsuarioRepo) Reactivate(context.Context, uuid.UUID) error        { return nil }
func (s *stubUsuarioRepo) Delete(context.Context, uuid.UUID) error            { return nil }
func (s *stubUsuarioRepo) BulkDelete(context.Context, []uuid.UUID) error      { return nil }
func (s *stubUsuarioRepo) UpdatePassword(context.Context, uuid.UUID, string) error {
	return nil
}
func (s *stubUsuarioRepo) TouchLogin(context.Context, uuid.UUID, string, string) error {
	return nil
}
func (s *stubUsuarioRepo) TouchActivity(context.Context, uuid.UUID, string, string) error {
	return nil
}

// stubPermisoRepo implements repository.PermisoRepository.
type stubPermisoRepo struct {
	findGrant  func(ctx context.Context, userID uuid.UUID, permissionID string) (*model.UserPermission, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]model.UserPermission, error)
}

func (s *stubPermisoRepo) FindGrant(ctx context.Context, userID uuid.UUID, permissionID string) (*model.UserPermission, error) {
	if s.findGrant != nil {
		return s.findGrant(ctx, userID, permissionID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPermisoRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserPermission, error) {
	if s.listByUser != nil {
		return s.listByUser(ctx, userID)
	}
	return nil, nil
}

func (s *stubPermisoRepo) Upsert(context.Context, *model.UserPermission) error { return nil }
func (s *stubPermisoRepo) DeleteByUser(context.Context, uuid.UUID) error       { return nil }

// stubAuditRepo counts writes and can fail or block on demand.
type stubAuditRepo struct {
	mu      sync.Mutex
	created []model.AuditLog
	err     error
	block   chan struct{} // when set, Create waits until it is closed
}

func (s *stubAuditRepo) Create(ctx context.Context, ev *model.AuditLog) error {
	if s.block != nil {
		select {
		case <-s.block:
		case <-time.After(5 * time.Second):
		}
	}
	s.mu.Lock()
	s.created = append(s.created, *ev)
	s.mu.Unlock()
	return s.err
}

func (s *stubAuditRepo) List(context.Context, dto.AuditFilter) (*dto.AuditLogsPaginados, error) {
	return &dto.AuditLogsPaginados{}, nil
}

func (s *stubAuditRepo) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

// staticSalud is a fixed health answer.
type staticSalud bool

func (s staticSalud) Degraded() bool { return bool(s) }
