package repository

import (
	"context"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermisoRepository manages explicit per-user permission grants.
type PermisoRepository interface {
	FindGrant(ctx context.Context, userID uuid.UUID, permissionID string) (*model.UserPermission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserPermission, error)
	// Upsert writes one grant; on (user_id, permission_id) conflict the last
	// write wins.
	Upsert(ctx context.Context, grant *model.UserPermission) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type permisoRepo struct{ db *gorm.DB }

func NewPermisoRepository(db *gorm.DB) PermisoRepository { return &permisoRepo{db: db} }

func (r *permisoRepo) FindGrant(ctx context.Context, userID uuid.UUID, permissionID string) (*model.UserPermission, error) {
	var grant model.UserPermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND permission_id = ?", userID, permissionID).
		First(&grant).Error
	return &grant, err
}

func (r *permisoRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.UserPermission, error) {
	var grants []model.UserPermission
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&grants).Error
	return grants, err
}

func (r *permisoRepo) Upsert(ctx context.Context, grant *model.UserPermission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "granted_by", "updated_at"}),
	}).Create(grant).Error
}

func (r *permisoRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserPermission{}).Error
}
