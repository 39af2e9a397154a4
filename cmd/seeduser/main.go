// Command seeduser creates an account directly against the production
// database. Useful for bootstrapping an admin before the API is reachable.
package main

import (
	"context"
	"flag"

	"clinicore/internal/config"
	"clinicore/internal/dto"
	"clinicore/internal/infra"
	"clinicore/internal/repository"
	"clinicore/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	role := flag.String("role", "staff", "account role: admin, staff, visitor, visitor-staff")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	svc := service.NewAuthService(repository.NewUserRepository(db), cfg)
	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    *email,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create user")
	}
	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("user created")
}
