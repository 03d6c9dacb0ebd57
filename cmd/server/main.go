package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/config"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/infra"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/router"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargando configuracion")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("conectando a la base de datos")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		// Redis only carries the notification fan-out; the API works without it.
		log.Warn().Err(err).Msg("redis no disponible, notificaciones en tiempo real deshabilitadas")
		rdb = nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := infra.NewHealthState()
	infra.StartHealthChecker(ctx, db, rdb, health,
		time.Duration(cfg.HealthCheckIntervalSeconds)*time.Second)

	usuarioRepo := repository.NewUsuarioRepository(db)
	permisoRepo := repository.NewPermisoRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	vendedorRepo := repository.NewVendedorRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	notificacionRepo := repository.NewNotificacionRepository(db)

	// Schema patches already ran inside NewDatabase; make sure the column
	// discovery starts from the patched schema.
	pedidoRepo.InvalidateSchemaCache()

	recorder := service.NewAuditRecorder(auditRepo, cfg.AuditQueueSize)
	defer recorder.Close()

	permisosSvc := service.NewPermisosService(usuarioRepo, permisoRepo, health, cfg.PermisosFailOpen)
	authSvc := service.NewAuthService(usuarioRepo, permisosSvc, recorder, cfg.JWTSecret, cfg.JWTExpirationHours)
	notificacionSvc := service.NewNotificacionService(notificacionRepo, rdb)
	pedidoSvc := service.NewPedidoService(pedidoRepo, notificacionSvc)
	clienteSvc := service.NewClienteService(clienteRepo)
	vendedorSvc := service.NewVendedorService(vendedorRepo)

	archiver := worker.NewArchiver(pedidoRepo,
		time.Duration(cfg.AutoArchiveIntervalMinutes)*time.Minute, cfg.AutoArchiveAfterDays)
	archiver.Start(ctx)

	engine := router.New(router.Deps{
		Cfg:            cfg,
		Health:         health,
		Recorder:       recorder,
		Auth:           authSvc,
		Permisos:       permisosSvc,
		Pedidos:        pedidoSvc,
		Clientes:       clienteSvc,
		Vendedores:     vendedorSvc,
		Notificaciones: notificacionSvc,
		Usuarios:       usuarioRepo,
		Grants:         permisoRepo,
		Audit:          auditRepo,
		Materiales:     materialRepo,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("servidor escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("servidor http")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("apagando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor http")
	}
}
