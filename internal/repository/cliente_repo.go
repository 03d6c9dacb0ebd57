package repository

import (
	"context"
	"math"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Cliente, error)
	List(ctx context.Context, f dto.ClienteFilter) (*dto.ClientesPaginados, error)
	Update(ctx context.Context, c *model.Cliente) error
	// Delete removes the cliente permanently. With borrarPedidos the rows in
	// pedidos that reference it go too, in the same transaction; otherwise
	// the references are left dangling and resolved lazily on next write.
	Delete(ctx context.Context, id uuid.UUID, borrarPedidos bool) error
	HistorialPedidos(ctx context.Context, id uuid.UUID) ([]model.Pedido, error)
	Stats(ctx context.Context) (*dto.ClienteStats, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *clienteRepo) FindByNombre(ctx context.Context, nombre string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, f dto.ClienteFilter) (*dto.ClientesPaginados, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&model.Cliente{})
	if f.SearchTerm != "" {
		q = q.Where("nombre ILIKE ?", "%"+f.SearchTerm+"%")
	}
	switch f.Estado {
	case "activo":
		q = q.Where("activo = true")
	case "inactivo":
		q = q.Where("activo = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	orderCol := "nombre"
	switch f.SortBy {
	case "createdAt":
		orderCol = "created_at"
	case "updatedAt":
		orderCol = "updated_at"
	}
	order := orderCol + " ASC"
	if f.SortOrder == "desc" {
		order = orderCol + " DESC"
	}

	var clientes []model.Cliente
	offset := (f.Page - 1) * f.Limit
	if err := q.Order(order).Limit(f.Limit).Offset(offset).Find(&clientes).Error; err != nil {
		return nil, err
	}

	return &dto.ClientesPaginados{
		Clientes: clientes,
		Pagination: dto.Pagination{
			Page:       f.Page,
			Limit:      f.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
		},
	}, nil
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// HistorialPedidos returns the pedidos referencing the cliente, newest first.
func (r *clienteRepo) HistorialPedidos(ctx context.Context, id uuid.UUID) ([]model.Pedido, error) {
	var rows []snapshotRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT data FROM pedidos WHERE cliente_id = ? ORDER BY secuencia_pedido DESC`, id.String()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return decodeSnapshots(rows)
}

func (r *clienteRepo) Stats(ctx context.Context) (*dto.ClienteStats, error) {
	var stats dto.ClienteStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE activo) AS activos,
			COUNT(*) FILTER (WHERE NOT activo) AS inactivos
		FROM clientes
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID, borrarPedidos bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if borrarPedidos {
			if err := tx.Exec("DELETE FROM pedidos WHERE cliente_id = ?", id.String()).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Cliente{}, id).Error
	})
}
