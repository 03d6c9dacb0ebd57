package repository

import (
	"context"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificacionRepository interface {
	Create(ctx context.Context, n *model.Notificacion) error
	ListRecientes(ctx context.Context, limit int) ([]model.Notificacion, error)
	MarcarLeida(ctx context.Context, id uuid.UUID) error
	MarcarTodasLeidas(ctx context.Context) error
}

type notificacionRepo struct{ db *gorm.DB }

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacionRepo) ListRecientes(ctx context.Context, limit int) ([]model.Notificacion, error) {
	if limit < 1 {
		limit = 50
	}
	var notificaciones []model.Notificacion
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&notificaciones).Error
	return notificaciones, err
}

func (r *notificacionRepo) MarcarLeida(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notificacion{}).Where("id = ?", id).
		Update("leida", true).Error
}

func (r *notificacionRepo) MarcarTodasLeidas(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.Notificacion{}).Where("leida = false").
		Update("leida", true).Error
}
