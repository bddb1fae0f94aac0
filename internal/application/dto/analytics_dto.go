package dto

import "github.com/shopspring/decimal"

// TotalsDTO totales globales del sistema.
type TotalsDTO struct {
	Users    int             `json:"users"`
	Vehicles int             `json:"vehicles"`
	Rentals  int             `json:"rentals"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// VehicleRentCountDTO número de alquileres de un vehículo.
type VehicleRentCountDTO struct {
	VehicleID string `json:"vehicle_id"`
	Label     string `json:"label"` // "Brand Model"
	Count     int    `json:"count"`
}

// DateRevenueDTO ingresos agrupados por fecha de inicio del alquiler.
type DateRevenueDTO struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

// RoleCountDTO usuarios agrupados por rol.
type RoleCountDTO struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// AnalyticsSummaryDTO resumen para el dashboard de staff.
type AnalyticsSummaryDTO struct {
	Totals           TotalsDTO             `json:"totals"`
	RentalsByVehicle []VehicleRentCountDTO `json:"rentals_by_vehicle"` // ordenado desc por count
	RevenueByDate    []DateRevenueDTO      `json:"revenue_by_date"`    // ordenado por fecha
	UsersByRole      []RoleCountDTO        `json:"users_by_role"`
	MostRented       []VehicleRentCountDTO `json:"most_rented"`  // top 5
	LeastRented      []VehicleRentCountDTO `json:"least_rented"` // bottom 5
}
