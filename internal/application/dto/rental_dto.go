package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRentalRequest entrada para crear un alquiler. Fechas en YYYY-MM-DD.
type CreateRentalRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

// RentalResponse salida de un alquiler con datos del vehículo adjuntos.
type RentalResponse struct {
	ID          string          `json:"id"`
	VehicleID   string          `json:"vehicle_id"`
	UserID      string          `json:"user_id"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Type        string          `json:"type"`
	StartDate   string          `json:"start_date"` // YYYY-MM-DD
	EndDate     string          `json:"end_date"`
	Days        int             `json:"days"`
	Rate        decimal.Decimal `json:"rate"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"` // estado efectivo (overdue derivado en lectura)
	ReturnedAt  *string         `json:"returned_at,omitempty"`
	CancelledAt *string         `json:"cancelled_at,omitempty"`
	UsedDays    int             `json:"used_days,omitempty"`
	OverdueDays int             `json:"overdue_days,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RentalListResponse listado de alquileres.
type RentalListResponse struct {
	Items []RentalResponse `json:"items"`
	Total int              `json:"total"`
}

// InvoiceResponse factura de un alquiler: alquiler + nombre del arrendatario.
type InvoiceResponse struct {
	Rental   RentalResponse `json:"rental"`
	Username string         `json:"username"`
}
