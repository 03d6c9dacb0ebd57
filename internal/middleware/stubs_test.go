package middleware

import (
	"context"
	"sync"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	user *model.AdminUser
}

func (s *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AdminUser, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.AdminUser, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsuarioRepo) FindLegacyByID(context.Context, string) (*model.LegacyUser, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsuarioRepo) Create(context.Context, *model.AdminUser) error      { return nil }
func (s *stubUsuarioRepo) List(context.Context) ([]model.AdminUser, error)     { return nil, nil }
func (s *stubUsuarioRepo) ListAll(context.Context) ([]model.AdminUser, error)  { return nil, nil }
func (s *stubUsuarioRepo) Update(context.Context, *model.AdminUser) error      { return nil }
func (s *stubUsuarioRepo) Deactivate(context.Context, uuid.UUID) error         { return nil }
func (s *stubUsuarioRepo) Reactivate(context.Context, uuid.UUID) error         { return nil }
func (s *stubUsuarioRepo) Delete(context.Context, uuid.UUID) error             { return nil }
func (s *stubUsuarioRepo) BulkDelete(context.Context, []uuid.UUID) error       { return nil }
func (s *stubUsuarioRepo) UpdatePassword(context.Context, uuid.UUID, string) error {
	return nil
}
func (s *stubUsuarioRepo) TouchLogin(context.Context, uuid.UUID, string, string) error {
	return nil
}
func (s *stubUsuarioRepo) TouchActivity(context.Context, uuid.UUID, string, string) error {
	return nil
}

type stubPermisoRepo struct{}

func (stubPermisoRepo) FindGrant(context.Context, uuid.UUID, string) (*model.UserPermission, error) {
	return nil, gorm.ErrRecordNotFound
}
func (stubPermisoRepo) ListByUser(context.Context, uuid.UUID) ([]model.UserPermission, error) {
	return nil, nil
}
func (stubPermisoRepo) Upsert(context.Context, *model.UserPermission) error { return nil }
func (stubPermisoRepo) DeleteByUser(context.Context, uuid.UUID) error       { return nil }

type stubAuditRepo struct {
	mu      sync.Mutex
	created []model.AuditLog
}

func (s *stubAuditRepo) Create(_ context.Context, ev *model.AuditLog) error {
	s.mu.Lock()
	s.created = append(s.created, *ev)
	s.mu.Unlock()
	return nil
}

func (s *stubAuditRepo) List(context.Context, dto.AuditFilter) (*dto.AuditLogsPaginados, error) {
	return &dto.AuditLogsPaginados{}, nil
}

func (s *stubAuditRepo) events() []model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AuditLog, len(s.created))
	copy(out, s.created)
	return out
}

type staticSalud bool

func (s staticSalud) Degraded() bool { return bool(s) }

// withActor injects an identity the way the auth gateway would.
func withActor(actor *model.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ActorKey, actor)
		c.Next()
	}
}
