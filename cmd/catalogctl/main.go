// Comando catalogctl: tareas de mantenimiento del catálogo (migraciones y datos de ejemplo).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Catalogo-api/internal/seed"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func main() {
	// .env opcional; las variables ya exportadas tienen prioridad.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("catalogctl")

	cmd := &cli.Command{
		Name:  "catalogctl",
		Usage: "Mantenimiento de la base del catálogo",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Aplica las migraciones pendientes",
				Action: func(ctx context.Context, c *cli.Command) error {
					pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name+"-ctl")
					if err != nil {
						return err
					}
					defer pool.Close()
					n, err := postgres.Migrate(ctx, pool, log)
					if err != nil {
						return err
					}
					log.Info().Int("applied", n).Msg("migraciones al día")
					return nil
				},
			},
			{
				Name:  "migrations",
				Usage: "Lista las migraciones embebidas y su checksum",
				Action: func(ctx context.Context, c *cli.Command) error {
					list, err := postgres.Migrations()
					if err != nil {
						return err
					}
					for _, m := range list {
						fmt.Printf("%s  %s  %s\n", m.Version, m.Checksum[:12], m.Filename)
					}
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Carga el catálogo de ejemplo",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "reset", Value: true, Usage: "vacía el catálogo antes de cargar (--reset=false lo conserva)"},
					&cli.BoolFlag{Name: "migrate", Usage: "aplica migraciones pendientes antes de cargar"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name+"-ctl")
					if err != nil {
						return err
					}
					defer pool.Close()

					if c.Bool("migrate") {
						if _, err := postgres.Migrate(ctx, pool, log); err != nil {
							return err
						}
					}
					if c.Bool("reset") {
						if err := postgres.TruncateCatalog(ctx, pool); err != nil {
							return err
						}
						log.Warn().Msg("catálogo vaciado")
					}

					repos := postgres.Repos(pool)
					tx := postgres.NewTxRunner(pool)
					// Sin host de imágenes: las fotos del catálogo de ejemplo son URLs.
					images := imageupload.NewResolver(nil, 0, log)
					categories := usecase.NewCategoryUseCase(tx, repos.Categories, repos.Subcategories, images, "", log)
					products := usecase.NewProductUseCase(tx, repos.Products, repos.Subcategories, repos.Stock, images,
						usecase.ProductConfig{DefaultPageSize: cfg.Catalog.PageSize, BulkWorkers: cfg.Catalog.BulkWorkers}, log)

					sum, err := seed.Run(ctx, categories, products, log)
					if err != nil {
						return err
					}
					log.Info().
						Int("categorias", sum.Categories).
						Int("subcategorias", sum.Subcategories).
						Int("productos", sum.Products).
						Msg("catálogo de ejemplo cargado")
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("catalogctl")
	}
}
