// @title        Catálogo API
// @version      1.0
// @description  API del catálogo: productos, categorías y subcategorías.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/Catalogo-api/docs"
	"github.com/jhoicas/Catalogo-api/internal/application/imageupload"
	"github.com/jhoicas/Catalogo-api/internal/application/ports"
	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/media"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Catalogo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Catalogo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/Catalogo-api/pkg/config"
	"github.com/jhoicas/Catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	// Importes como número JSON (12.34), no como string.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	var (
		repos usecase.CatalogRepos
		tx    usecase.TxRunner
	)
	switch cfg.App.Store {
	case config.StoreMemory:
		store := memory.NewStore()
		repos = store.Repos()
		tx = memory.NewTxRunner(store)
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			n, err := postgres.Migrate(ctx, pool, log)
			if err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
			log.Info().Int("applied", n).Msg("migraciones al día")
		}
		repos = postgres.Repos(pool)
		tx = postgres.NewTxRunner(pool)
	}

	// Host de imágenes: sin credenciales solo se aceptan fotos como URL.
	var imageStore ports.ImageStore
	resolverTimeout := cfg.Media.Timeout
	if cfg.Media.Enabled() {
		cloud := media.NewCloudinary(media.Config{
			CloudName:  cfg.Media.CloudName,
			APIKey:     cfg.Media.APIKey,
			APISecret:  cfg.Media.APISecret,
			Timeout:    cfg.Media.Timeout,
			MaxRetries: cfg.Media.MaxRetries,
		}, log)
		imageStore = cloud
		resolverTimeout = cloud.RetryBudget()
	} else {
		log.Warn().Msg("MEDIA_CLOUD_NAME/MEDIA_API_KEY/MEDIA_API_SECRET no definidos: subida de imágenes deshabilitada")
	}
	images := imageupload.NewResolver(imageStore, resolverTimeout, log.Named("imagenes"))

	productUC := usecase.NewProductUseCase(tx, repos.Products, repos.Subcategories, repos.Stock, images,
		usecase.ProductConfig{
			DefaultPageSize: cfg.Catalog.PageSize,
			BulkWorkers:     cfg.Catalog.BulkWorkers,
			ImageFolder:     cfg.Media.Folder + "/productos",
		}, log)
	categoryUC := usecase.NewCategoryUseCase(tx, repos.Categories, repos.Subcategories, images,
		cfg.Media.Folder+"/categorias", log)
	subcategoryUC := usecase.NewSubcategoryUseCase(repos.Categories, repos.Subcategories, images,
		cfg.Media.Folder+"/subcategorias", log)

	// PDF: lista de precios de los productos activos
	priceListUC := usecase.NewPriceListUseCase(productUC, infrapdf.NewMarotoPDFGenerator(""))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 << 20, // data URIs en base64 de hasta imageupload.MaxImageBytes
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catálogo API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:   cfg.App.Name,
		ProductUC:     productUC,
		CategoryUC:    categoryUC,
		SubcategoryUC: subcategoryUC,
		PriceListUC:   priceListUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
