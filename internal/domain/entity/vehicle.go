package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de vehículo admitidos en el catálogo.
const (
	TypeCar       = "car"
	TypeMotorbike = "motorbike"
	TypeTruck     = "truck"
)

// AllowedTypes tipos aceptados al crear un vehículo.
var AllowedTypes = map[string]bool{
	TypeCar:       true,
	TypeMotorbike: true,
	TypeTruck:     true,
}

// Estados de vehículo. available/rented/overdue son un snapshot derivable de
// los alquileres activos; retired lo fija el staff y sobrevive a la
// reconciliación.
const (
	VehicleAvailable = "available"
	VehicleRented    = "rented"
	VehicleOverdue   = "overdue"
	VehicleRetired   = "retired"
)

// PlaceholderImage imagen por defecto cuando el staff no aporta una válida.
const PlaceholderImage = "/static/images/placeholder.png"

// Vehicle representa una unidad de la flota. Rate es la tarifa diaria
// publicada antes de ajustes por tipo y descuentos por rol.
type Vehicle struct {
	ID        string
	Brand     string
	Model     string
	Type      string          // car, motorbike, truck
	Rate      decimal.Decimal // tarifa por día
	Status    string          // available, rented, overdue, retired
	ImagePath string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	motorbikeFactor = decimal.NewFromFloat(0.9) // motos: 10% más baratas que la tarifa publicada
	truckFactor     = decimal.NewFromFloat(1.2) // camiones: 20% de recargo
)

// PriceForDays precio base (antes del descuento de usuario) para la duración
// indicada. El ajuste depende del tipo de vehículo.
func (v Vehicle) PriceForDays(days int) decimal.Decimal {
	base := v.Rate.Mul(decimal.NewFromInt(int64(days)))
	switch v.Type {
	case TypeMotorbike:
		return base.Mul(motorbikeFactor)
	case TypeTruck:
		return base.Mul(truckFactor)
	}
	return base
}

// Retired indica si el vehículo fue dado de baja del catálogo.
func (v Vehicle) Retired() bool {
	return v.Status == VehicleRetired
}
