// Seed idempotente: cuentas demo (staff/customer/corporate) y flota inicial.
// Se puede ejecutar todas las veces que haga falta; los usuarios existentes
// solo se actualizan y la flota solo se crea si el catálogo está vacío.
package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/snapshot"
	"github.com/jhoicas/Alquiler-api/pkg/config"
	"github.com/jhoicas/Alquiler-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	store, err := snapshot.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("abrir snapshot de datos")
	}

	userRepo := snapshot.NewUserRepository(store)
	vehicleRepo := snapshot.NewVehicleRepository(store)

	seedUsers := []struct {
		username, password, role string
	}{
		{"staff", "Staff123", entity.RoleStaff},
		{"customer", "Customer123", entity.RoleCustomer},
		{"corporate", "Corporate123", entity.RoleCorporate},
	}
	for _, s := range seedUsers {
		if err := ensureUser(userRepo, s.username, s.password, s.role); err != nil {
			log.Fatal().Err(err).Str("username", s.username).Msg("sembrar usuario")
		}
		log.Info().Str("username", s.username).Str("role", s.role).Msg("usuario listo")
	}

	vehicles, err := vehicleRepo.List()
	if err != nil {
		log.Fatal().Err(err).Msg("listar vehículos")
	}
	if len(vehicles) == 0 {
		fleet := []struct {
			brand, model, vtype, image string
			rate                       int64
		}{
			{"Toyota", "Corolla", entity.TypeCar, "/static/images/corolla.jpg", 45},
			{"Honda", "Civic", entity.TypeCar, "/static/images/civic.jpg", 50},
			{"Yamaha", "MT-07", entity.TypeMotorbike, "/static/images/yamaha.jpg", 40},
			{"Isuzu", "N-Series", entity.TypeTruck, "/static/images/isuzu.jpg", 95},
		}
		now := time.Now()
		for _, f := range fleet {
			v := &entity.Vehicle{
				ID:        uuid.New().String(),
				Brand:     f.brand,
				Model:     f.model,
				Type:      f.vtype,
				Rate:      decimal.NewFromInt(f.rate),
				Status:    entity.VehicleAvailable,
				ImagePath: f.image,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := vehicleRepo.Create(v); err != nil {
				log.Fatal().Err(err).Str("model", f.model).Msg("sembrar vehículo")
			}
			log.Info().Str("brand", f.brand).Str("model", f.model).Msg("vehículo listo")
		}
	}

	log.Info().Msg("seed completo")
	log.Info().Msg("login staff:     staff / Staff123")
	log.Info().Msg("login customer:  customer / Customer123")
	log.Info().Msg("login corporate: corporate / Corporate123")
}

// ensureUser crea el usuario si no existe o actualiza password y rol si ya
// estaba en el snapshot.
func ensureUser(repo repository.UserRepository, username, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	existing, err := repo.GetByUsername(username)
	if err != nil {
		return err
	}
	now := time.Now()
	if existing != nil {
		existing.PasswordHash = string(hash)
		existing.Role = role
		existing.UpdatedAt = now
		return repo.Update(existing)
	}
	return repo.Create(&entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
