package repository

import (
	"context"
	"math"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"gorm.io/gorm"
)

// AuditRepository persists and queries the append-only audit trail.
type AuditRepository interface {
	Create(ctx context.Context, ev *model.AuditLog) error
	List(ctx context.Context, f dto.AuditFilter) (*dto.AuditLogsPaginados, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) Create(ctx context.Context, ev *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *auditRepo) List(ctx context.Context, f dto.AuditFilter) (*dto.AuditLogsPaginados, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Module != "" {
		q = q.Where("module = ?", f.Module)
	}
	if f.StartDate != "" {
		q = q.Where("created_at >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("created_at <= ?", f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var logs []model.AuditLog
	offset := (f.Page - 1) * f.Limit
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(offset).Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return &dto.AuditLogsPaginados{
		Logs: logs,
		Pagination: dto.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
		},
	}, nil
}
