package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/auth"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	VehicleUC   *usecase.VehicleUseCase
	RentalUC    *usecase.RentalUseCase
	UserUC      *usecase.UserUseCase
	AnalyticsUC *usecase.AnalyticsUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. /api/auth es público; el resto
// requiere Bearer Token y el grupo /api/staff además el rol staff.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (cualquier sesión)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Get("/", vehicleHandler.List)
	vehicles.Get("/:id", vehicleHandler.GetByID)

	// Alquileres (cualquier sesión; la autorización fina vive en el caso de uso)
	rentals := protected.Group("/rentals")
	rentalHandler := NewRentalHandler(deps.RentalUC)
	rentals.Post("/", rentalHandler.Create)
	rentals.Get("/", rentalHandler.ListMine)
	rentals.Post("/:id/return", rentalHandler.Return)
	rentals.Post("/:id/cancel", rentalHandler.Cancel)
	rentals.Get("/:id/invoice", rentalHandler.Invoice)
	rentals.Get("/:id/invoice.pdf", rentalHandler.InvoicePDF)

	// Panel de staff
	staff := protected.Group("/staff", RequireRole(entity.RoleStaff))

	staff.Post("/vehicles", vehicleHandler.Create)
	staff.Delete("/vehicles/:id", vehicleHandler.Delete)
	staff.Post("/vehicles/:id/retire", vehicleHandler.Retire)
	staff.Post("/vehicles/mark-overdue", vehicleHandler.MarkOverdue)
	staff.Post("/vehicles/reconcile", vehicleHandler.Reconcile)

	staff.Get("/rentals", rentalHandler.ListAll)
	staff.Get("/rentals/overdue", rentalHandler.ListOverdue)

	userHandler := NewUserHandler(deps.UserUC)
	staff.Get("/users", userHandler.List)
	staff.Get("/users/:id", userHandler.GetByID)
	staff.Post("/users", userHandler.Create)
	staff.Delete("/users/:id", userHandler.Delete)

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	staff.Get("/analytics", analyticsHandler.Summary)
}
