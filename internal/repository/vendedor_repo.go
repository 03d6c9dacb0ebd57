package repository

import (
	"context"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendedorRepository interface {
	Create(ctx context.Context, v *model.Vendedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vendedor, error)
	List(ctx context.Context, soloActivos bool) ([]model.Vendedor, error)
	Update(ctx context.Context, v *model.Vendedor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vendedorRepo struct{ db *gorm.DB }

func NewVendedorRepository(db *gorm.DB) VendedorRepository { return &vendedorRepo{db: db} }

func (r *vendedorRepo) Create(ctx context.Context, v *model.Vendedor) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vendedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendedor, error) {
	var v model.Vendedor
	err := r.db.WithContext(ctx).First(&v, id).Error
	return &v, err
}

func (r *vendedorRepo) List(ctx context.Context, soloActivos bool) ([]model.Vendedor, error) {
	q := r.db.WithContext(ctx)
	if soloActivos {
		q = q.Where("activo = true")
	}
	var vendedores []model.Vendedor
	err := q.Order("nombre ASC").Find(&vendedores).Error
	return vendedores, err
}

func (r *vendedorRepo) Update(ctx context.Context, v *model.Vendedor) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vendedorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Vendedor{}, id).Error
}
