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

var (
	ErrClienteNoEncontrado = errors.New("cliente no encontrado")
	ErrClienteDuplicado    = errors.New("ya existe un cliente con ese nombre")
)

type ClienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) *ClienteService {
	return &ClienteService{repo: repo}
}

func (s *ClienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error) {
	if _, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil {
		return nil, ErrClienteDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c := &model.Cliente{
		Nombre:    req.Nombre,
		Email:     req.Email,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClienteService) Obtener(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClienteNoEncontrado
	}
	return c, err
}

func (s *ClienteService) Listar(ctx context.Context, f dto.ClienteFilter) (*dto.ClientesPaginados, error) {
	return s.repo.List(ctx, f)
}

func (s *ClienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*model.Cliente, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClienteNoEncontrado
		}
		return nil, err
	}
	if req.Nombre != "" {
		c.Nombre = req.Nombre
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Telefono != nil {
		c.Telefono = req.Telefono
	}
	if req.Direccion != nil {
		c.Direccion = req.Direccion
	}
	if req.Activo != nil {
		c.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClienteService) Eliminar(ctx context.Context, id uuid.UUID, borrarPedidos bool) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClienteNoEncontrado
		}
		return err
	}
	return s.repo.Delete(ctx, id, borrarPedidos)
}

func (s *ClienteService) Historial(ctx context.Context, id uuid.UUID) ([]model.Pedido, error) {
	return s.repo.HistorialPedidos(ctx, id)
}

func (s *ClienteService) Stats(ctx context.Context) (*dto.ClienteStats, error) {
	return s.repo.Stats(ctx)
}
