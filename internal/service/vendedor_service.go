package service

import (
	"context"
	"errors"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVendedorNoEncontrado = errors.New("vendedor no encontrado")

type VendedorService struct {
	repo repository.VendedorRepository
}

func NewVendedorService(repo repository.VendedorRepository) *VendedorService {
	return &VendedorService{repo: repo}
}

func (s *VendedorService) Crear(ctx context.Context, req dto.CrearVendedorRequest) (*model.Vendedor, error) {
	v := &model.Vendedor{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Telefono: req.Telefono,
		Activo:   true,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VendedorService) Obtener(ctx context.Context, id uuid.UUID) (*model.Vendedor, error) {
	v, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVendedorNoEncontrado
	}
	return v, err
}

func (s *VendedorService) Listar(ctx context.Context, soloActivos bool) ([]model.Vendedor, error) {
	return s.repo.List(ctx, soloActivos)
}

func (s *VendedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVendedorRequest) (*model.Vendedor, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendedorNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != "" {
		v.Nombre = req.Nombre
	}
	if req.Email != nil {
		v.Email = req.Email
	}
	if req.Telefono != nil {
		v.Telefono = req.Telefono
	}
	if req.Activo != nil {
		v.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Eliminar removes the vendedor. Pedidos that reference it are left intact;
// the persistence adapter nulls the dangling reference on their next write.
func (s *VendedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVendedorNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
