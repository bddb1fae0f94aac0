package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// InvoiceGenerator puerto para renderizar la factura de un alquiler en PDF.
type InvoiceGenerator interface {
	RentalInvoice(inv dto.InvoiceResponse) ([]byte, error)
}

// RentalUseCase casos de uso de alquileres: crear, devolver, cancelar,
// listar y facturar. Todas las fechas se interpretan en la zona horaria de
// la aplicación; "hoy" se trunca a medianoche antes de cualquier comparación.
type RentalUseCase struct {
	rentalRepo  repository.RentalRepository
	vehicleRepo repository.VehicleRepository
	userRepo    repository.UserRepository
	invoices    InvoiceGenerator
	loc         *time.Location
	now         func() time.Time // inyectable en tests
}

// NewRentalUseCase construye el caso de uso de alquileres.
func NewRentalUseCase(
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	invoices InvoiceGenerator,
	loc *time.Location,
) *RentalUseCase {
	return &RentalUseCase{
		rentalRepo:  rentalRepo,
		vehicleRepo: vehicleRepo,
		userRepo:    userRepo,
		invoices:    invoices,
		loc:         loc,
		now:         time.Now,
	}
}

// today fecha actual truncada a medianoche en la zona de la aplicación.
func (uc *RentalUseCase) today() time.Time {
	t := uc.now().In(uc.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, uc.loc)
}

// daysBetween diferencia de fechas de calendario. La resta directa de
// instantes (Hours()/24) trunca mal en rangos que cruzan un cambio de horario
// de verano (días de 23 o 25 horas), así que ambos extremos se reconstruyen
// como medianoches UTC antes de restar.
func daysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

func (uc *RentalUseCase) parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(entity.DateFormat, s, uc.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return d, nil
}

// Create registra un alquiler si no hay solape con otro alquiler activo del
// mismo vehículo. Los extremos del rango son inclusive: un alquiler que
// termina el día en que otro empieza cuenta como conflicto. La tarifa diaria
// efectiva (con ajuste por tipo) y el descuento quedan congelados en el
// registro para que la factura no cambie con ajustes posteriores del catálogo.
func (uc *RentalUseCase) Create(userID string, in dto.CreateRentalRequest) (*dto.RentalResponse, error) {
	start, err := uc.parseDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := uc.parseDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	today := uc.today()
	if start.Before(today) {
		return nil, fmt.Errorf("%w: la fecha de inicio no puede estar en el pasado", domain.ErrInvalidInput)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: la fecha de fin debe ser posterior a la de inicio", domain.ErrInvalidInput)
	}

	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil || vehicle.Retired() {
		return nil, domain.ErrVehicleNotFound
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	existing, err := uc.rentalRepo.ListByVehicle(vehicle.ID)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.Active() && r.Overlaps(start, end) {
			return nil, fmt.Errorf("%w: el vehículo ya está alquilado en ese rango de fechas", domain.ErrConflict)
		}
	}

	// El día de fin bloquea el calendario pero no se cobra.
	days := daysBetween(start, end)
	dailyRate := vehicle.PriceForDays(1)
	discount := user.DiscountFor(days)
	total := dailyRate.Mul(decimal.NewFromInt(int64(days))).
		Mul(decimal.NewFromInt(1).Sub(discount)).
		Round(2)

	rental := &entity.Rental{
		ID:        uuid.New().String(),
		VehicleID: vehicle.ID,
		UserID:    user.ID,
		StartDate: start,
		EndDate:   end,
		Days:      days,
		Rate:      dailyRate,
		Discount:  discount,
		Total:     total,
		Status:    entity.RentalRented,
		CreatedAt: uc.now().In(uc.loc),
	}
	if err := uc.rentalRepo.Create(rental); err != nil {
		return nil, err
	}

	vehicle.Status = entity.VehicleRented
	vehicle.UpdatedAt = uc.now().In(uc.loc)
	if err := uc.vehicleRepo.Update(vehicle); err != nil {
		return nil, err
	}

	resp := toRentalResponse(rental, vehicle, today)
	return &resp, nil
}

// Return cierra un alquiler y libera el vehículo. Solo el dueño o staff.
//   - hoy < inicio: se registra como cancelado, sin cargo.
//   - inicio <= hoy <= fin: se cobran los días usados (mínimo 1).
//   - hoy > fin: se cobran los días contratados y se anotan los días de
//     atraso; no se aplica recargo por atraso.
func (uc *RentalUseCase) Return(rentalID, actorID, role string) (*dto.RentalResponse, error) {
	rental, err := uc.rentalRepo.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil || rental.Closed() {
		return nil, domain.ErrRentalNotFound
	}
	if rental.UserID != actorID && role != entity.RoleStaff {
		return nil, domain.ErrForbidden
	}

	today := uc.today()
	if today.Before(rental.StartDate) {
		rental.Status = entity.RentalCancelled
		rental.Total = decimal.Zero
		cancelled := today
		rental.CancelledAt = &cancelled
	} else {
		effectiveEnd := today
		if effectiveEnd.After(rental.EndDate) {
			effectiveEnd = rental.EndDate
			rental.OverdueDays = daysBetween(rental.EndDate, today)
		}
		used := daysBetween(rental.StartDate, effectiveEnd)
		if used < 1 {
			used = 1
		}
		rental.UsedDays = used
		rental.Total = rental.Rate.Mul(decimal.NewFromInt(int64(used))).
			Mul(decimal.NewFromInt(1).Sub(rental.Discount)).
			Round(2)
		rental.Status = entity.RentalReturned
		returned := today
		rental.ReturnedAt = &returned
	}
	if err := uc.rentalRepo.Update(rental); err != nil {
		return nil, err
	}
	vehicle, err := uc.refreshVehicleStatus(rental.VehicleID, today)
	if err != nil {
		return nil, err
	}
	resp := toRentalResponse(rental, vehicle, today)
	return &resp, nil
}

// Cancel anula un alquiler que todavía no comenzó. Solo el dueño o staff;
// un alquiler ya iniciado se cierra con Return.
func (uc *RentalUseCase) Cancel(rentalID, actorID, role string) (*dto.RentalResponse, error) {
	rental, err := uc.rentalRepo.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrRentalNotFound
	}
	if rental.UserID != actorID && role != entity.RoleStaff {
		return nil, domain.ErrForbidden
	}
	if rental.Status != entity.RentalRented {
		return nil, fmt.Errorf("%w: solo se pueden cancelar alquileres activos", domain.ErrGuard)
	}
	today := uc.today()
	if !today.Before(rental.StartDate) {
		return nil, fmt.Errorf("%w: el alquiler ya comenzó, use la devolución", domain.ErrGuard)
	}

	rental.Status = entity.RentalCancelled
	rental.Total = decimal.Zero
	rental.UsedDays = 0
	rental.OverdueDays = 0
	cancelled := today
	rental.CancelledAt = &cancelled
	if err := uc.rentalRepo.Update(rental); err != nil {
		return nil, err
	}
	vehicle, err := uc.refreshVehicleStatus(rental.VehicleID, today)
	if err != nil {
		return nil, err
	}
	resp := toRentalResponse(rental, vehicle, today)
	return &resp, nil
}

// List devuelve todos los alquileres (panel de staff), con el estado overdue
// derivado en lectura.
func (uc *RentalUseCase) List() (*dto.RentalListResponse, error) {
	rentals, err := uc.rentalRepo.List()
	if err != nil {
		return nil, err
	}
	return uc.toList(rentals)
}

// ListForUser alquileres de un usuario, más recientes primero.
func (uc *RentalUseCase) ListForUser(userID string) (*dto.RentalListResponse, error) {
	rentals, err := uc.rentalRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return uc.toList(rentals)
}

// ListOverdue alquileres vencidos a la fecha de hoy. El estado almacenado no
// importa: overdue se deriva comparando la fecha de fin con hoy.
func (uc *RentalUseCase) ListOverdue() (*dto.RentalListResponse, error) {
	rentals, err := uc.rentalRepo.List()
	if err != nil {
		return nil, err
	}
	today := uc.today()
	var overdue []*entity.Rental
	for _, r := range rentals {
		if r.OverdueAt(today) {
			overdue = append(overdue, r)
		}
	}
	return uc.toList(overdue)
}

// Invoice arma los datos de la factura de un alquiler. Solo el dueño o staff.
func (uc *RentalUseCase) Invoice(rentalID, actorID, role string) (*dto.InvoiceResponse, error) {
	rental, err := uc.rentalRepo.GetByID(rentalID)
	if err != nil {
		return nil, err
	}
	if rental == nil {
		return nil, domain.ErrRentalNotFound
	}
	if rental.UserID != actorID && role != entity.RoleStaff {
		return nil, domain.ErrForbidden
	}
	vehicle, err := uc.vehicleRepo.GetByID(rental.VehicleID)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(rental.UserID)
	if err != nil {
		return nil, err
	}
	username := rental.UserID
	if user != nil {
		username = user.Username
	}
	return &dto.InvoiceResponse{
		Rental:   toRentalResponse(rental, vehicle, uc.today()),
		Username: username,
	}, nil
}

// InvoicePDF genera la factura en PDF vía el generador inyectado.
func (uc *RentalUseCase) InvoicePDF(rentalID, actorID, role string) ([]byte, error) {
	inv, err := uc.Invoice(rentalID, actorID, role)
	if err != nil {
		return nil, err
	}
	return uc.invoices.RentalInvoice(*inv)
}

// refreshVehicleStatus recalcula el snapshot de estado del vehículo a partir
// de sus alquileres activos. Un vehículo retirado no cambia.
func (uc *RentalUseCase) refreshVehicleStatus(vehicleID string, today time.Time) (*entity.Vehicle, error) {
	vehicle, err := uc.vehicleRepo.GetByID(vehicleID)
	if err != nil || vehicle == nil {
		return vehicle, err
	}
	if vehicle.Retired() {
		return vehicle, nil
	}
	rentals, err := uc.rentalRepo.ListByVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	status := entity.VehicleAvailable
	for _, r := range rentals {
		if !r.Active() {
			continue
		}
		if r.OverdueAt(today) {
			status = entity.VehicleOverdue
			break
		}
		status = entity.VehicleRented
	}
	if vehicle.Status != status {
		vehicle.Status = status
		vehicle.UpdatedAt = uc.now().In(uc.loc)
		if err := uc.vehicleRepo.Update(vehicle); err != nil {
			return nil, err
		}
	}
	return vehicle, nil
}

func (uc *RentalUseCase) toList(rentals []*entity.Rental) (*dto.RentalListResponse, error) {
	today := uc.today()
	items := make([]dto.RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		v, err := uc.vehicleRepo.GetByID(r.VehicleID)
		if err != nil {
			return nil, err
		}
		items = append(items, toRentalResponse(r, v, today))
	}
	return &dto.RentalListResponse{Items: items, Total: len(items)}, nil
}

// toRentalResponse adjunta los datos del vehículo y deriva el estado efectivo.
func toRentalResponse(r *entity.Rental, v *entity.Vehicle, today time.Time) dto.RentalResponse {
	resp := dto.RentalResponse{
		ID:          r.ID,
		VehicleID:   r.VehicleID,
		UserID:      r.UserID,
		StartDate:   r.StartDate.Format(entity.DateFormat),
		EndDate:     r.EndDate.Format(entity.DateFormat),
		Days:        r.Days,
		Rate:        r.Rate,
		Discount:    r.Discount,
		Total:       r.Total,
		Status:      r.StatusAt(today),
		UsedDays:    r.UsedDays,
		OverdueDays: r.OverdueDays,
		CreatedAt:   r.CreatedAt,
	}
	if v != nil {
		resp.Brand = v.Brand
		resp.Model = v.Model
		resp.Type = v.Type
	}
	if r.ReturnedAt != nil {
		s := r.ReturnedAt.Format(entity.DateFormat)
		resp.ReturnedAt = &s
	}
	if r.CancelledAt != nil {
		s := r.CancelledAt.Format(entity.DateFormat)
		resp.CancelledAt = &s
	}
	return resp
}
