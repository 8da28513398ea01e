// seed asegura el administrador inicial y, opcionalmente, carga productos desde un CSV.
//
// Uso: go run ./cmd/seed [-file productos.csv] [-encoding utf8|latin1] [-sep ';']
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/jhoicas/stock-control/internal/application/auth"
	"github.com/jhoicas/stock-control/internal/application/usecase"
	"github.com/jhoicas/stock-control/internal/infrastructure/importer"
	"github.com/jhoicas/stock-control/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-control/internal/infrastructure/security"
	"github.com/jhoicas/stock-control/pkg/config"
	"github.com/jhoicas/stock-control/pkg/logger"
)

func main() {
	file := flag.String("file", "", "CSV con productos (nombre;precio;cantidad;minimo)")
	encoding := flag.String("encoding", importer.EncodingUTF8, "encoding del CSV: utf8 o latin1")
	sep := flag.String("sep", ";", "separador de columnas")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	comma, _ := utf8.DecodeRuneInString(*sep)
	if comma == utf8.RuneError {
		log.Fatal().Str("sep", *sep).Msg("separador inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(postgres.StdDB(pool)); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	userUC := usecase.NewUserUseCase(userRepo, security.NewBcryptHasher(0))
	created, err := userUC.EnsureAdmin(ctx, usecase.SeedAdmin{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	log.Info().Bool("created", created).Str("email", cfg.Seed.AdminEmail).Msg("administrador verificado")

	if *file == "" {
		return
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := importer.ReadProducts(f, *encoding, comma)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	// La carga se registra a nombre del administrador configurado.
	admin, err := userRepo.GetByEmail(ctx, auth.NormalizeEmail(cfg.Seed.AdminEmail))
	if err != nil || admin == nil {
		log.Fatal().Err(err).Msg("administrador no encontrado")
	}
	ctx = auth.WithPrincipal(ctx, auth.Principal{UserID: admin.ID, IsAdmin: admin.IsAdmin})

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), cfg.Inventory.DefaultMinQuantity)
	loaded := 0
	for _, row := range rows {
		p, err := productUC.Create(ctx, row)
		if err != nil {
			log.Error().Err(err).Str("name", row.Name).Msg("producto omitido")
			continue
		}
		loaded++
		log.Debug().Int64("id", p.ID).Str("name", p.Name).Msg("producto creado")
	}
	log.Info().Int("loaded", loaded).Int("total", len(rows)).Msg("carga de productos finalizada")
}
