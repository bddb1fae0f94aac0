package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVehicleRequest entrada para alta de vehículo (staff).
type CreateVehicleRequest struct {
	Brand     string          `json:"brand" validate:"required,min=1,max=64"`
	Model     string          `json:"model" validate:"required,min=1,max=64"`
	Type      string          `json:"type" validate:"required,oneof=car motorbike truck"`
	Rate      decimal.Decimal `json:"rate"`
	ImagePath string          `json:"image_path" validate:"omitempty,max=255"`
}

// VehicleFilterRequest filtros del catálogo. MinRate/MaxRate llegan como texto
// y los valores no numéricos se ignoran (filtrado permisivo).
type VehicleFilterRequest struct {
	Type    string `query:"type"`
	Brand   string `query:"brand"`
	Model   string `query:"model"`
	MinRate string `query:"min_rate"`
	MaxRate string `query:"max_rate"`
}

// VehicleResponse salida de un vehículo del catálogo.
type VehicleResponse struct {
	ID        string          `json:"id"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	Type      string          `json:"type"`
	Rate      decimal.Decimal `json:"rate"`
	Status    string          `json:"status"`
	ImagePath string          `json:"image_path"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// VehicleListResponse listado del catálogo.
type VehicleListResponse struct {
	Items []VehicleResponse `json:"items"`
	Total int               `json:"total"`
}

// BookedRange rango de fechas ocupado por un alquiler activo (extremos
// inclusive), para que la UI deshabilite fechas en el calendario.
type BookedRange struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`
}

// VehicleDetailResponse vehículo + calendario de ocupación.
type VehicleDetailResponse struct {
	Vehicle  VehicleResponse `json:"vehicle"`
	Calendar []BookedRange   `json:"calendar"`
}
