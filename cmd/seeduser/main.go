// seeduser creates an initial admin account so a fresh deployment can log in.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/config"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/infra"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/repository"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	username := flag.String("username", "admin", "nombre de usuario")
	password := flag.String("password", "", "contrasena (obligatoria)")
	role := flag.String("role", string(model.RolAdmin), "rol del usuario")
	flag.Parse()

	if *password == "" {
		log.Fatal().Msg("falta -password")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("cargando configuracion")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("conectando a la base de datos")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("generando hash")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUsuarioRepository(db)
	if _, err := users.FindByUsername(ctx, *username); err == nil {
		log.Fatal().Str("username", *username).Msg("el usuario ya existe")
	}

	user := &model.AdminUser{
		Username:     *username,
		PasswordHash: string(hash),
		Role:         string(model.ParseRol(*role)),
		IsActive:     true,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("creando usuario")
	}
	log.Info().Str("username", *username).Str("id", user.ID.String()).Msg("usuario creado")
}
