package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/crm-api/internal/application/crm"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/infrastructure/kv"
	"github.com/jhoicas/crm-api/internal/infrastructure/migrations"
	infrapdf "github.com/jhoicas/crm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/crm-api/internal/infrastructure/redis"
	"github.com/jhoicas/crm-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/crm-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/crm-api/internal/interfaces/http"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := openBackend(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("abrir backend")
	}

	customers := kv.NewMap[entity.Customer](backend, kv.BucketCustomers)
	interactions := kv.NewMap[entity.Interaction](backend, kv.BucketInteractions)
	purchases := kv.NewPurchaseMap(backend)

	ucLog := log.Zerolog()
	customerUC := crm.NewCustomerUseCase(customers, interactions, purchases, ucLog)
	interactionUC := crm.NewInteractionUseCase(customers, interactions, ucLog)
	purchaseUC := crm.NewPurchaseUseCase(customers, purchases, ucLog)
	exportUC := crm.NewExportUseCase(customers, interactions, purchases,
		infrapdf.NewStatementRenderer(cfg.App.Name),
		xmlexport.NewCustomerRenderer(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	// Swagger UI en local: http://localhost:<port>/docs (el middleware falla si falta el archivo)
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "CRM API",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: la API no exige autenticación")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:    customerUC,
		InteractionUC: interactionUC,
		PurchaseUC:    purchaseUC,
		ExportUC:      exportUC,
		Store:         backend,
		StoreDriver:   cfg.Store.Driver,
		ServiceName:   cfg.App.Name,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		Logger:        log.Zerolog(),
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
	if err := backend.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar backend")
	}

	log.Info().Msg("aplicación detenida")
}

// openBackend abre el backend elegido por STORE_DRIVER y aplica las migraciones SQL.
func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (kv.Backend, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return kv.NewMemory(), nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		store := postgres.NewKVStore(pool)
		if err := migrations.Up(ctx, store.DB(), migrations.Postgres, log); err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		if err := migrations.Up(ctx, store.DB(), migrations.SQLite, log); err != nil {
			_ = store.Close()
			return nil, err
		}
		return store, nil

	case config.DriverRedis:
		store, err := infraredis.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("driver desconocido %q", cfg.Store.Driver)
	}
}
