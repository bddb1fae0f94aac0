package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de alquiler. El historial es append-only: un alquiler nunca se
// borra, solo se cierra como returned o cancelled.
const (
	RentalRented    = "rented"
	RentalOverdue   = "overdue"
	RentalReturned  = "returned"
	RentalCancelled = "cancelled"
)

// DateFormat formato de fecha de inicio/fin (solo día, sin hora).
const DateFormat = "2006-01-02"

// Rental registra el alquiler de un vehículo por un usuario en el rango
// [StartDate, EndDate], ambos extremos inclusive para la detección de
// conflictos. Rate y Discount quedan congelados al crear el alquiler para que
// el invoice no cambie si el staff ajusta la tarifa del vehículo.
type Rental struct {
	ID          string
	VehicleID   string
	UserID      string
	StartDate   time.Time
	EndDate     time.Time
	Days        int
	Rate        decimal.Decimal // tarifa diaria congelada
	Discount    decimal.Decimal // fracción, p. ej. 0.15
	Total       decimal.Decimal
	Status      string     // rented, overdue, returned, cancelled
	ReturnedAt  *time.Time // fecha de devolución (nil mientras el alquiler esté abierto)
	CancelledAt *time.Time
	UsedDays    int
	OverdueDays int
	CreatedAt   time.Time
}

// Closed indica si el alquiler ya fue cerrado (devuelto o cancelado).
func (r Rental) Closed() bool {
	return r.Status == RentalReturned || r.Status == RentalCancelled
}

// Active indica si el alquiler sigue ocupando el vehículo (rented u overdue).
func (r Rental) Active() bool {
	return !r.Closed()
}

// OverdueAt indica si el alquiler está vencido respecto a la fecha dada:
// sigue activo y su fecha fin es estrictamente anterior a hoy.
func (r Rental) OverdueAt(today time.Time) bool {
	return r.Active() && r.EndDate.Before(today)
}

// StatusAt estado efectivo en la fecha dada. El campo Status almacenado es un
// caché: overdue se deriva siempre en lectura para evitar desfases.
func (r Rental) StatusAt(today time.Time) string {
	if r.OverdueAt(today) {
		return RentalOverdue
	}
	return r.Status
}

// Overlaps indica si [StartDate, EndDate] se solapa con [start, end].
// Los extremos son inclusive: un alquiler que termina el mismo día en que
// otro comienza entra en conflicto.
func (r Rental) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !start.After(r.EndDate)
}
