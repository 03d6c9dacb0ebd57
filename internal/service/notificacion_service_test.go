package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/dto"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/infra"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificacionRepo struct {
	created []model.Notificacion
	err     error
}

func (s *stubNotificacionRepo) Create(_ context.Context, n *model.Notificacion) error {
	if s.err != nil {
		return s.err
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	s.created = append(s.created, *n)
	return nil
}

func (s *stubNotificacionRepo) ListRecientes(context.Context, int) ([]model.Notificacion, error) {
	return s.created, nil
}
func (s *stubNotificacionRepo) MarcarLeida(context.Context, uuid.UUID) error { return nil }
func (s *stubNotificacionRepo) MarcarTodasLeidas(context.Context) error      { return nil }

func TestCrearNotificacionPublishesToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, infra.NotificacionesChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx) // wait for the subscription confirmation
	require.NoError(t, err)

	repo := &stubNotificacionRepo{}
	svc := NewNotificacionService(repo, rdb)

	pedidoID := "p-1"
	n, err := svc.Crear(ctx, dto.CrearNotificacionRequest{
		Tipo:     "cambio_etapa",
		Titulo:   "Pedido p-1",
		Mensaje:  "Etapa PENDIENTE -> IMPRESION",
		PedidoID: &pedidoID,
	})
	require.NoError(t, err)
	assert.Len(t, repo.created, 1)

	select {
	case msg := <-sub.Channel():
		var recibido model.Notificacion
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &recibido))
		assert.Equal(t, n.ID, recibido.ID)
		assert.Equal(t, "cambio_etapa", recibido.Tipo)
	case <-time.After(2 * time.Second):
		t.Fatal("no llego el mensaje publicado")
	}
}

func TestCrearNotificacionSurvivesRedisOutage(t *testing.T) {
	// Client pointed at a closed server: the publish fails but the row wins.
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	mr.Close()

	repo := &stubNotificacionRepo{}
	svc := NewNotificacionService(repo, rdb)

	_, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo: "aviso", Titulo: "t",
	})
	assert.NoError(t, err)
	assert.Len(t, repo.created, 1)
}

func TestCrearNotificacionSinRedis(t *testing.T) {
	repo := &stubNotificacionRepo{}
	svc := NewNotificacionService(repo, nil)

	_, err := svc.Crear(context.Background(), dto.CrearNotificacionRequest{
		Tipo: "aviso", Titulo: "t",
	})
	assert.NoError(t, err)
	assert.Len(t, repo.created, 1)
}
