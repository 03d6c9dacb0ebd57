package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PedidoService applies business defaults on top of the persistence adapter
// and emits in-app notifications for stage changes.
type PedidoService struct {
	pedidos        repository.PedidoRepository
	notificaciones *NotificacionService
}

func NewPedidoService(pedidos repository.PedidoRepository, notificaciones *NotificacionService) *PedidoService {
	return &PedidoService{pedidos: pedidos, notificaciones: notificaciones}
}

// Crear fills in the server-side fields (id, secuencia, fecha, etapa inicial)
// and persists.
func (s *PedidoService) Crear(ctx context.Context, p *model.Pedido) (*model.Pedido, error) {
	now := time.Now()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.SecuenciaPedido == 0 {
		p.SecuenciaPedido = now.UnixMilli()
	}
	if p.FechaPedido == nil {
		p.FechaPedido = &now
	}
	if p.EtapaActual == "" {
		p.EtapaActual = model.EtapaPendiente
	}
	if p.Prioridad == "" {
		p.Prioridad = model.PrioridadNormal
	}

	if err := s.pedidos.Create(ctx, p); err != nil {
		return nil, err
	}

	s.notificar(ctx, "pedido_creado", fmt.Sprintf("Nuevo pedido %s", p.NumeroPedidoCliente),
		fmt.Sprintf("Pedido de %s creado", p.Cliente), p.ID)
	return p, nil
}

func (s *PedidoService) Actualizar(ctx context.Context, p *model.Pedido) (*model.Pedido, error) {
	anterior, err := s.pedidos.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if err := s.pedidos.Update(ctx, p); err != nil {
		return nil, err
	}
	if anterior.EtapaActual != p.EtapaActual {
		s.notificar(ctx, "cambio_etapa", fmt.Sprintf("Pedido %s", p.NumeroPedidoCliente),
			fmt.Sprintf("Etapa %s -> %s", anterior.EtapaActual, p.EtapaActual), p.ID)
	}
	return p, nil
}

func (s *PedidoService) Obtener(ctx context.Context, id string) (*model.Pedido, error) {
	return s.pedidos.FindByID(ctx, id)
}

func (s *PedidoService) Listar(ctx context.Context) ([]model.Pedido, error) {
	return s.pedidos.GetAll(ctx)
}

func (s *PedidoService) ListarPaginado(ctx context.Context, f dto.PedidoFilter) (*dto.PedidosPaginados, error) {
	return s.pedidos.GetAllPaginated(ctx, f)
}

func (s *PedidoService) Eliminar(ctx context.Context, id string) error {
	return s.pedidos.Delete(ctx, id)
}

func (s *PedidoService) Buscar(ctx context.Context, term string) ([]model.Pedido, error) {
	return s.pedidos.Search(ctx, term)
}

// BulkImport persists a batch atomically, applying the same server-side
// defaults as Crear. The batch keeps its relative order: secuencias are
// assigned from one timestamp plus the index.
func (s *PedidoService) BulkImport(ctx context.Context, pedidos []model.Pedido) (int, error) {
	base := time.Now()
	for i := range pedidos {
		p := &pedidos[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.SecuenciaPedido == 0 {
			p.SecuenciaPedido = base.UnixMilli() + int64(i)
		}
		if p.FechaPedido == nil {
			t := base
			p.FechaPedido = &t
		}
		if p.EtapaActual == "" {
			p.EtapaActual = model.EtapaPendiente
		}
		if p.Prioridad == "" {
			p.Prioridad = model.PrioridadNormal
		}
	}
	if err := s.pedidos.BulkInsert(ctx, pedidos); err != nil {
		return 0, err
	}
	return len(pedidos), nil
}

func (s *PedidoService) notificar(ctx context.Context, tipo, titulo, mensaje, pedidoID string) {
	if s.notificaciones == nil {
		return
	}
	_, err := s.notificaciones.Crear(ctx, dto.CrearNotificacionRequest{
		Tipo:     tipo,
		Titulo:   titulo,
		Mensaje:  mensaje,
		PedidoID: &pedidoID,
	})
	if err != nil {
		log.Warn().Err(err).Str("pedidoId", pedidoID).Msg("pedidos: fallo emitiendo notificacion")
	}
}
