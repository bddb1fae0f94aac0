package usecase

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/snapshot"
)

// hoy fijo para todos los tests de alquiler.
const testToday = "2026-09-01"

type rentalFixture struct {
	rentalUC  *RentalUseCase
	vehicleUC *VehicleUseCase
	store     *snapshot.Store
	loc       *time.Location

	customer  *entity.User
	corporate *entity.User
	staff     *entity.User
	car       *entity.Vehicle
	motorbike *entity.Vehicle
}

// stubInvoices generador de PDF nulo para los tests de casos de uso.
type stubInvoices struct{}

func (stubInvoices) RentalInvoice(dto.InvoiceResponse) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

func newRentalFixture(t *testing.T) *rentalFixture {
	return newRentalFixtureIn(t, time.UTC)
}

func newRentalFixtureIn(t *testing.T, loc *time.Location) *rentalFixture {
	t.Helper()
	store, err := snapshot.Open(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)

	userRepo := snapshot.NewUserRepository(store)
	vehicleRepo := snapshot.NewVehicleRepository(store)
	rentalRepo := snapshot.NewRentalRepository(store)

	fixedNow := func() time.Time {
		d, _ := time.ParseInLocation(entity.DateFormat, testToday, loc)
		return d.Add(15 * time.Hour) // media tarde, para verificar el truncado a medianoche
	}

	rentalUC := NewRentalUseCase(rentalRepo, vehicleRepo, userRepo, stubInvoices{}, loc)
	rentalUC.now = fixedNow
	vehicleUC := NewVehicleUseCase(vehicleRepo, rentalRepo, loc)
	vehicleUC.now = fixedNow

	f := &rentalFixture{rentalUC: rentalUC, vehicleUC: vehicleUC, store: store, loc: loc}

	mkUser := func(username, role string) *entity.User {
		u := &entity.User{
			ID:       uuid.New().String(),
			Username: username,
			Role:     role,
		}
		require.NoError(t, userRepo.Create(u))
		return u
	}
	f.customer = mkUser("cliente", entity.RoleCustomer)
	f.corporate = mkUser("empresa", entity.RoleCorporate)
	f.staff = mkUser("staff", entity.RoleStaff)

	mkVehicle := func(brand, model, vtype string, rate int64) *entity.Vehicle {
		v := &entity.Vehicle{
			ID:     uuid.New().String(),
			Brand:  brand,
			Model:  model,
			Type:   vtype,
			Rate:   decimal.NewFromInt(rate),
			Status: entity.VehicleAvailable,
		}
		require.NoError(t, vehicleRepo.Create(v))
		return v
	}
	f.car = mkVehicle("Toyota", "Corolla", entity.TypeCar, 45)
	f.motorbike = mkVehicle("Yamaha", "MT-07", entity.TypeMotorbike, 40)
	return f
}

func (f *rentalFixture) rent(t *testing.T, userID, vehicleID, start, end string) *dto.RentalResponse {
	t.Helper()
	out, err := f.rentalUC.Create(userID, dto.CreateRentalRequest{
		VehicleID: vehicleID,
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return out
}

func (f *rentalFixture) setToday(s string) {
	d, _ := time.ParseInLocation(entity.DateFormat, s, f.loc)
	f.rentalUC.now = func() time.Time { return d.Add(9 * time.Hour) }
	f.vehicleUC.now = f.rentalUC.now
}

func (f *rentalFixture) vehicleStatus(t *testing.T, id string) string {
	t.Helper()
	out, err := f.vehicleUC.Get(id)
	require.NoError(t, err)
	return out.Vehicle.Status
}

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestRentalCreate_ConflictoDeFechas(t *testing.T) {
	f := newRentalFixture(t)
	f.rent(t, f.customer.ID, f.car.ID, "2026-09-10", "2026-09-15")

	// Solape contenido.
	_, err := f.rentalUC.Create(f.corporate.ID, dto.CreateRentalRequest{
		VehicleID: f.car.ID, StartDate: "2026-09-12", EndDate: "2026-09-13",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Extremos inclusive: empezar el día que el otro termina también choca.
	_, err = f.rentalUC.Create(f.corporate.ID, dto.CreateRentalRequest{
		VehicleID: f.car.ID, StartDate: "2026-09-15", EndDate: "2026-09-18",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Rango disjunto: debe pasar.
	out, err := f.rentalUC.Create(f.corporate.ID, dto.CreateRentalRequest{
		VehicleID: f.car.ID, StartDate: "2026-09-16", EndDate: "2026-09-18",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RentalRented, out.Status)
}

func TestRentalCreate_ValidacionDeFechas(t *testing.T) {
	f := newRentalFixture(t)

	// Inicio en el pasado.
	_, err := f.rentalUC.Create(f.customer.ID, dto.CreateRentalRequest{
		VehicleID: f.car.ID, StartDate: "2026-08-30", EndDate: "2026-09-05",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Fin no posterior al inicio.
	_, err = f.rentalUC.Create(f.customer.ID, dto.CreateRentalRequest{
		VehicleID: f.car.ID, StartDate: "2026-09-10", EndDate: "2026-09-10",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Formato inválido.
	_, err = f.rentalUC.Create(f.customer.ID, dto.CreateRentalRequest{
		VehicleID: f.car.ID, StartDate: "10/09/2026", EndDate: "2026-09-12",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRentalCreate_PrecioConDescuentos(t *testing.T) {
	f := newRentalFixture(t)

	// corporate: 45 × 4 días × 0.85 = 153.00
	out := f.rent(t, f.corporate.ID, f.car.ID, "2026-09-10", "2026-09-14")
	assert.Equal(t, 4, out.Days)
	assert.True(t, decimal.NewFromInt(153).Equal(out.Total), "total corporate: %s", out.Total)

	// customer largo en moto: 40 × 0.9 × 7 días × 0.9 = 226.80
	out = f.rent(t, f.customer.ID, f.motorbike.ID, "2026-09-10", "2026-09-17")
	assert.Equal(t, 7, out.Days)
	want, _ := decimal.NewFromString("226.8")
	assert.True(t, want.Equal(out.Total), "total customer moto: %s", out.Total)
}

// Los días son diferencia de fechas de calendario: un rango que cruza el
// inicio del horario de verano (Pacific/Auckland, 2026-09-27) sigue contando
// días completos aunque ese día tenga 23 horas.
func TestRentalCreate_DiasDeCalendarioConHorarioDeVerano(t *testing.T) {
	loc, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)
	f := newRentalFixtureIn(t, loc)

	out := f.rent(t, f.customer.ID, f.car.ID, "2026-09-26", "2026-09-28")
	assert.Equal(t, 2, out.Days, "el cambio de hora no debe truncar el conteo de días")
	assert.True(t, decimal.NewFromInt(90).Equal(out.Total), "total: %s", out.Total)

	// El atraso también se cuenta en días de calendario a través del cambio.
	created := f.rent(t, f.customer.ID, f.motorbike.ID, "2026-09-26", "2026-09-27")
	f.setToday("2026-09-29")
	returned, err := f.rentalUC.Return(created.ID, f.customer.ID, entity.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, 1, returned.UsedDays)
	assert.Equal(t, 2, returned.OverdueDays)
}

func TestRentalCreate_VehiculoRetiradoNoSeAlquila(t *testing.T) {
	f := newRentalFixture(t)
	_, err := f.vehicleUC.Retire(f.car.ID)
	require.NoError(t, err)

	_, err = f.rentalUC.Create(f.customer.ID, dto.CreateRentalRequest{
		VehicleID: f.car.ID, StartDate: "2026-09-10", EndDate: "2026-09-12",
	})
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devolver
// ──────────────────────────────────────────────────────────────────────────────

func TestRentalReturn_DentroDelRango_CobraDiasUsados(t *testing.T) {
	f := newRentalFixture(t)
	created := f.rent(t, f.customer.ID, f.car.ID, "2026-09-01", "2026-09-05")
	assert.Equal(t, entity.VehicleRented, f.vehicleStatus(t, f.car.ID))

	f.setToday("2026-09-04")
	out, err := f.rentalUC.Return(created.ID, f.customer.ID, entity.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, entity.RentalReturned, out.Status)
	assert.Equal(t, 3, out.UsedDays)
	assert.Equal(t, 0, out.OverdueDays)
	// 45 × 3 días, sin descuento por ser un alquiler corto
	assert.True(t, decimal.NewFromInt(135).Equal(out.Total), "total: %s", out.Total)
	assert.Equal(t, entity.VehicleAvailable, f.vehicleStatus(t, f.car.ID))
}

func TestRentalReturn_AntesDeEmpezar_QuedaCancelado(t *testing.T) {
	f := newRentalFixture(t)
	created := f.rent(t, f.customer.ID, f.car.ID, "2026-09-10", "2026-09-15")

	out, err := f.rentalUC.Return(created.ID, f.customer.ID, entity.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, entity.RentalCancelled, out.Status)
	assert.True(t, out.Total.IsZero(), "una cancelación no cobra nada")
	assert.Equal(t, entity.VehicleAvailable, f.vehicleStatus(t, f.car.ID))
}

func TestRentalReturn_ConAtraso_AnotaDiasVencidos(t *testing.T) {
	f := newRentalFixture(t)
	created := f.rent(t, f.customer.ID, f.car.ID, "2026-09-01", "2026-09-05")

	f.setToday("2026-09-08")
	out, err := f.rentalUC.Return(created.ID, f.customer.ID, entity.RoleCustomer)
	require.NoError(t, err)

	assert.Equal(t, entity.RentalReturned, out.Status)
	assert.Equal(t, 4, out.UsedDays, "se cobran los días contratados")
	assert.Equal(t, 3, out.OverdueDays)
	assert.True(t, decimal.NewFromInt(180).Equal(out.Total), "sin recargo por atraso: %s", out.Total)
}

// El vehículo solo vuelve a available si no le queda otro alquiler activo.
func TestRentalReturn_ConOtraReservaActivaSigueRented(t *testing.T) {
	f := newRentalFixture(t)
	current := f.rent(t, f.customer.ID, f.car.ID, "2026-09-01", "2026-09-05")
	f.rent(t, f.corporate.ID, f.car.ID, "2026-09-10", "2026-09-15")

	f.setToday("2026-09-04")
	_, err := f.rentalUC.Return(current.ID, f.customer.ID, entity.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleRented, f.vehicleStatus(t, f.car.ID),
		"la reserva futura sigue ocupando el vehículo")
}

func TestRentalReturn_SoloDuenioOStaff(t *testing.T) {
	f := newRentalFixture(t)
	created := f.rent(t, f.customer.ID, f.car.ID, "2026-09-01", "2026-09-05")

	_, err := f.rentalUC.Return(created.ID, f.corporate.ID, entity.RoleCorporate)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.rentalUC.Return(created.ID, f.staff.ID, entity.RoleStaff)
	assert.NoError(t, err, "staff puede devolver en nombre del cliente")

	// Un alquiler ya cerrado no se puede devolver otra vez.
	_, err = f.rentalUC.Return(created.ID, f.customer.ID, entity.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrRentalNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelar
// ──────────────────────────────────────────────────────────────────────────────

func TestRentalCancel_AntesDeInicio(t *testing.T) {
	f := newRentalFixture(t)
	created := f.rent(t, f.customer.ID, f.car.ID, "2026-09-10", "2026-09-15")

	out, err := f.rentalUC.Cancel(created.ID, f.customer.ID, entity.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, entity.RentalCancelled, out.Status)
	assert.True(t, out.Total.IsZero())
	assert.NotNil(t, out.CancelledAt)
	assert.Equal(t, entity.VehicleAvailable, f.vehicleStatus(t, f.car.ID))
}

func TestRentalCancel_YaIniciado_Bloqueado(t *testing.T) {
	f := newRentalFixture(t)
	created := f.rent(t, f.customer.ID, f.car.ID, "2026-09-01", "2026-09-05")

	_, err := f.rentalUC.Cancel(created.ID, f.customer.ID, entity.RoleCustomer)
	assert.ErrorIs(t, err, domain.ErrGuard, "un alquiler iniciado se cierra con la devolución")
}

func TestRentalCancel_SoloDuenioOStaff(t *testing.T) {
	f := newRentalFixture(t)
	created := f.rent(t, f.customer.ID, f.car.ID, "2026-09-10", "2026-09-15")

	_, err := f.rentalUC.Cancel(created.ID, f.corporate.ID, entity.RoleCorporate)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.rentalUC.Cancel(created.ID, f.staff.ID, entity.RoleStaff)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados y factura
// ──────────────────────────────────────────────────────────────────────────────

func TestRentalListOverdue_DerivadoDeLaFecha(t *testing.T) {
	f := newRentalFixture(t)
	f.rent(t, f.customer.ID, f.car.ID, "2026-09-01", "2026-09-03")
	f.rent(t, f.corporate.ID, f.motorbike.ID, "2026-09-01", "2026-09-20")

	f.setToday("2026-09-05")
	out, err := f.rentalUC.ListOverdue()
	require.NoError(t, err)
	require.Equal(t, 1, out.Total, "solo el alquiler con fin pasado está vencido")
	assert.Equal(t, f.car.ID, out.Items[0].VehicleID)
	assert.Equal(t, entity.RentalOverdue, out.Items[0].Status)
}

func TestRentalListForUser_SoloLosPropios(t *testing.T) {
	f := newRentalFixture(t)
	f.rent(t, f.customer.ID, f.car.ID, "2026-09-01", "2026-09-03")
	f.rent(t, f.corporate.ID, f.motorbike.ID, "2026-09-01", "2026-09-05")

	out, err := f.rentalUC.ListForUser(f.customer.ID)
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, f.customer.ID, out.Items[0].UserID)
	assert.Equal(t, "Toyota", out.Items[0].Brand, "la respuesta adjunta datos del vehículo")
}

func TestRentalInvoice_AccesoYContenido(t *testing.T) {
	f := newRentalFixture(t)
	created := f.rent(t, f.customer.ID, f.car.ID, "2026-09-01", "2026-09-03")

	_, err := f.rentalUC.Invoice(created.ID, f.corporate.ID, entity.RoleCorporate)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	inv, err := f.rentalUC.Invoice(created.ID, f.customer.ID, entity.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, "cliente", inv.Username)
	assert.Equal(t, created.ID, inv.Rental.ID)

	pdfBytes, err := f.rentalUC.InvoicePDF(created.ID, f.staff.ID, entity.RoleStaff)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}
