package service

import (
	"context"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/infra"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NotificacionService persists in-app notifications and publishes each one on
// a Redis channel so the real-time delivery sidecar can push it to connected
// clients. The publish is best-effort: a Redis outage does not fail the
// operation that produced the notification.
type NotificacionService struct {
	repo repository.NotificacionRepository
	rdb  *redis.Client
}

func NewNotificacionService(repo repository.NotificacionRepository, rdb *redis.Client) *NotificacionService {
	return &NotificacionService{repo: repo, rdb: rdb}
}

func (s *NotificacionService) Crear(ctx context.Context, req dto.CrearNotificacionRequest) (*model.Notificacion, error) {
	n := &model.Notificacion{
		Tipo:     req.Tipo,
		Titulo:   req.Titulo,
		Mensaje:  req.Mensaje,
		PedidoID: req.PedidoID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := infra.PublishJSON(ctx, s.rdb, infra.NotificacionesChannel, n); err != nil {
			log.Warn().Err(err).Str("id", n.ID.String()).
				Msg("notificaciones: fallo publicando en redis")
		}
	}
	return n, nil
}

func (s *NotificacionService) ListarRecientes(ctx context.Context, limit int) ([]model.Notificacion, error) {
	return s.repo.ListRecientes(ctx, limit)
}

func (s *NotificacionService) MarcarLeida(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarcarLeida(ctx, id)
}

func (s *NotificacionService) MarcarTodasLeidas(ctx context.Context) error {
	return s.repo.MarcarTodasLeidas(ctx)
}
