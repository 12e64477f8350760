package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/novasalud/clinic-api/internal/application/dto"
	"github.com/novasalud/clinic-api/internal/application/usecase"
	"github.com/novasalud/clinic-api/internal/infrastructure/postgres"
	"github.com/novasalud/clinic-api/pkg/config"
	"github.com/novasalud/clinic-api/pkg/logger"
)

const (
	usernameFlag = "username"
	passwordFlag = "password"
	roleFlag     = "role"
)

var createUserFlags = map[string]cobraflags.Flag{
	usernameFlag: &cobraflags.StringFlag{
		Name:  usernameFlag,
		Value: "",
		Usage: "Nombre de usuario (requerido)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Contraseña inicial, mínimo 6 caracteres (requerido)",
	},
	roleFlag: &cobraflags.StringFlag{
		Name:  roleFlag,
		Value: "vendedor",
		Usage: "Rol: admin o vendedor",
	},
}

var resetPasswordFlags = map[string]cobraflags.Flag{
	usernameFlag: &cobraflags.StringFlag{
		Name:  usernameFlag,
		Value: "",
		Usage: "Usuario a modificar (requerido)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Nueva contraseña (requerido)",
	},
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
				n, err := postgres.Migrate(ctx, pool, log.Zerolog())
				if err != nil {
					return err
				}
				fmt.Printf("migraciones aplicadas: %d\n", n)
				return nil
			})
		},
	}
}

func newCreateUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Crea un usuario (útil para el primer admin)",
		Long: `Crea un usuario directamente en la base de datos.

Ejemplo:
  clinicctl create-user --username admin --password secreto --role admin`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := dto.CreateUserRequest{
				Username: createUserFlags[usernameFlag].GetString(),
				Password: createUserFlags[passwordFlag].GetString(),
				Role:     strings.ToLower(createUserFlags[roleFlag].GetString()),
			}
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool, _ *logger.Logger) error {
				out, err := usecase.NewUserUseCase(postgres.NewUserRepository(pool)).Create(ctx, in)
				if err != nil {
					return err
				}
				fmt.Printf("usuario creado: id=%d username=%s role=%s\n", out.ID, out.Username, out.Role)
				return nil
			})
		},
	}
	cobraflags.RegisterMap(cmd, createUserFlags)
	return cmd
}

func newResetPasswordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Fija una nueva contraseña a un usuario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			username := strings.TrimSpace(resetPasswordFlags[usernameFlag].GetString())
			password := resetPasswordFlags[passwordFlag].GetString()
			if username == "" {
				return fmt.Errorf("--%s es requerido", usernameFlag)
			}
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool, _ *logger.Logger) error {
				if err := usecase.NewUserUseCase(postgres.NewUserRepository(pool)).ResetPassword(ctx, username, password); err != nil {
					return err
				}
				fmt.Printf("contraseña actualizada para %s\n", username)
				return nil
			})
		},
	}
	cobraflags.RegisterMap(cmd, resetPasswordFlags)
	return cmd
}

// withPool carga configuración, abre el pool y ejecuta fn.
func withPool(ctx context.Context, fn func(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "clinicctl"})
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	return fn(ctx, pool, log)
}
