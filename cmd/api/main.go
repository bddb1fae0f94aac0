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

	"github.com/jhoicas/Alquiler-api/internal/application/auth"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Alquiler-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/snapshot"
	httpRouter "github.com/jhoicas/Alquiler-api/internal/interfaces/http"
	"github.com/jhoicas/Alquiler-api/pkg/config"
	"github.com/jhoicas/Alquiler-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	store, err := snapshot.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("abrir snapshot de datos")
	}

	userRepo := snapshot.NewUserRepository(store)
	vehicleRepo := snapshot.NewVehicleRepository(store)
	rentalRepo := snapshot.NewRentalRepository(store)

	loc := cfg.App.Location()
	invoiceGen := infrapdf.NewMarotoInvoiceGenerator(cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, rentalRepo, loc)
	rentalUC := usecase.NewRentalUseCase(rentalRepo, vehicleRepo, userRepo, invoiceGen, loc)
	userUC := usecase.NewUserUseCase(userRepo, rentalRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(userRepo, vehicleRepo, rentalRepo)

	// Reconciliación al arrancar: el snapshot de estados puede haber quedado
	// desfasado si el proceso estuvo detenido varios días.
	if changed, err := vehicleUC.Reconcile(); err != nil {
		log.Error().Err(err).Msg("reconciliar estados de la flota")
	} else if changed > 0 {
		log.Info().Int("changed", changed).Msg("estados de vehículos reconciliados")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El spec se genera con
	// `swag init -g cmd/api/main.go`; sin el archivo la API arranca igual.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Alquiler API",
		}))
	} else {
		log.Warn().Str("path", swaggerSpec).Msg("spec de swagger no encontrado; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		VehicleUC:   vehicleUC,
		RentalUC:    rentalUC,
		UserUC:      userUC,
		AnalyticsUC: analyticsUC,
		JWTSecret:   cfg.JWT.Secret,
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
	if err := store.Save(); err != nil {
		log.Error().Err(err).Msg("volcado final del snapshot")
	}

	log.Info().Msg("aplicación detenida")
}
