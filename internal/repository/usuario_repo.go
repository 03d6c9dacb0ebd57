package repository

import (
	"context"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioRepository covers both identity stores: the primary admin_users
// table and the legacy users table kept for pre-migration identities.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.AdminUser) error
	FindByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error)
	List(ctx context.Context) ([]model.AdminUser, error)
	ListAll(ctx context.Context) ([]model.AdminUser, error)
	Update(ctx context.Context, u *model.AdminUser) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	TouchLogin(ctx context.Context, id uuid.UUID, ip, userAgent string) error
	TouchActivity(ctx context.Context, id uuid.UUID, ip, userAgent string) error

	FindLegacyByID(ctx context.Context, id string) (*model.LegacyUser, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := r.db.WithContext(ctx).Where("is_active = true").Order("username ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) ListAll(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.AdminUser) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).Update("is_active", false).Error
}

func (r *usuarioRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).Update("is_active", true).Error
}

// Delete removes the identity permanently. user_permissions rows go with it
// via ON DELETE CASCADE.
func (r *usuarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.AdminUser{}, id).Error
}

// BulkDelete removes several identities atomically.
func (r *usuarioRepo) BulkDelete(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&model.AdminUser{}, "id IN ?", ids).Error
	})
}

func (r *usuarioRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *usuarioRepo) TouchLogin(ctx context.Context, id uuid.UUID, ip, userAgent string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_login":    now,
			"last_activity": now,
			"last_ip":       ip,
			"last_agent":    userAgent,
		}).Error
}

func (r *usuarioRepo) TouchActivity(ctx context.Context, id uuid.UUID, ip, userAgent string) error {
	return r.db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_activity": time.Now(),
			"last_ip":       ip,
			"last_agent":    userAgent,
		}).Error
}

func (r *usuarioRepo) FindLegacyByID(ctx context.Context, id string) (*model.LegacyUser, error) {
	var u model.LegacyUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	return &u, err
}
