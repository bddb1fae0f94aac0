package usecase

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/infrastructure/snapshot"
)

func newVehicleFixture(t *testing.T) (*VehicleUseCase, *snapshot.VehicleRepo, *snapshot.RentalRepo) {
	t.Helper()
	store, err := snapshot.Open(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)
	vehicleRepo := snapshot.NewVehicleRepository(store)
	rentalRepo := snapshot.NewRentalRepository(store)
	uc := NewVehicleUseCase(vehicleRepo, rentalRepo, time.UTC)
	uc.now = func() time.Time {
		d, _ := time.ParseInLocation(entity.DateFormat, testToday, time.UTC)
		return d.Add(10 * time.Hour)
	}
	return uc, vehicleRepo, rentalRepo
}

func mustCreateVehicle(t *testing.T, uc *VehicleUseCase, brand, model, vtype string, rate int64) dto.VehicleResponse {
	t.Helper()
	out, err := uc.Create(dto.CreateVehicleRequest{
		Brand: brand,
		Model: model,
		Type:  vtype,
		Rate:  decimal.NewFromInt(rate),
	})
	require.NoError(t, err)
	return *out
}

func TestVehicleCreate_ImagenInvalidaCaeAlPlaceholder(t *testing.T) {
	uc, _, _ := newVehicleFixture(t)

	tests := []struct {
		name  string
		image string
		want  string
	}{
		{"sin imagen", "", entity.PlaceholderImage},
		{"ruta arbitraria", "C:\\fotos\\auto.png", entity.PlaceholderImage},
		{"ruta estática válida", "/static/images/corolla.jpg", "/static/images/corolla.jpg"},
		{"url absoluta válida", "https://cdn.example.com/v.jpg", "https://cdn.example.com/v.jpg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := uc.Create(dto.CreateVehicleRequest{
				Brand: "Toyota", Model: "Hilux", Type: entity.TypeTruck,
				Rate: decimal.NewFromInt(80), ImagePath: tc.image,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.ImagePath)
		})
	}
}

func TestVehicleCreate_TipoInvalido(t *testing.T) {
	uc, _, _ := newVehicleFixture(t)
	_, err := uc.Create(dto.CreateVehicleRequest{
		Brand: "Cessna", Model: "172", Type: "plane", Rate: decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVehicleFilter_SubstringSinMayusculas(t *testing.T) {
	uc, _, _ := newVehicleFixture(t)
	mustCreateVehicle(t, uc, "Toyota", "Corolla", entity.TypeCar, 45)
	mustCreateVehicle(t, uc, "Honda", "Civic", entity.TypeCar, 50)
	mustCreateVehicle(t, uc, "Yamaha", "MT-07", entity.TypeMotorbike, 40)

	out, err := uc.Filter(dto.VehicleFilterRequest{Brand: "toy"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "Toyota", out.Items[0].Brand)

	out, err = uc.Filter(dto.VehicleFilterRequest{Model: "COROLLA"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)

	out, err = uc.Filter(dto.VehicleFilterRequest{Type: "Car"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total, "el tipo se normaliza a minúsculas")
}

func TestVehicleFilter_RangoDeTarifaPermisivo(t *testing.T) {
	uc, _, _ := newVehicleFixture(t)
	mustCreateVehicle(t, uc, "Toyota", "Corolla", entity.TypeCar, 45)
	mustCreateVehicle(t, uc, "Honda", "Civic", entity.TypeCar, 50)
	mustCreateVehicle(t, uc, "Isuzu", "N-Series", entity.TypeTruck, 95)

	out, err := uc.Filter(dto.VehicleFilterRequest{MinRate: "46", MaxRate: "100"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)

	// Entradas no numéricas se ignoran en lugar de fallar.
	out, err = uc.Filter(dto.VehicleFilterRequest{MinRate: "barato", MaxRate: ""})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
}

func TestVehicleFilter_ExcluyeRetirados(t *testing.T) {
	uc, _, _ := newVehicleFixture(t)
	keep := mustCreateVehicle(t, uc, "Toyota", "Corolla", entity.TypeCar, 45)
	gone := mustCreateVehicle(t, uc, "Honda", "Civic", entity.TypeCar, 50)

	_, err := uc.Retire(gone.ID)
	require.NoError(t, err)

	out, err := uc.Filter(dto.VehicleFilterRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, keep.ID, out.Items[0].ID)

	// El retirado sigue siendo consultable por ID (historial).
	detail, err := uc.Get(gone.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleRetired, detail.Vehicle.Status)
}

func TestVehicleDelete_BloqueadoConAlquilerActivo(t *testing.T) {
	uc, _, rentalRepo := newVehicleFixture(t)
	v := mustCreateVehicle(t, uc, "Toyota", "Corolla", entity.TypeCar, 45)

	day := func(s string) time.Time {
		d, _ := time.ParseInLocation(entity.DateFormat, s, time.UTC)
		return d
	}
	rental := &entity.Rental{
		ID:        "r-1",
		VehicleID: v.ID,
		UserID:    "u-1",
		StartDate: day("2026-09-10"),
		EndDate:   day("2026-09-12"),
		Status:    entity.RentalRented,
	}
	require.NoError(t, rentalRepo.Create(rental))

	assert.ErrorIs(t, uc.Delete(v.ID), domain.ErrGuard)
	_, err := uc.Retire(v.ID)
	assert.ErrorIs(t, err, domain.ErrGuard, "retirar aplica el mismo guard que borrar")

	// Cerrado el alquiler, la baja procede. La fuente de verdad son los
	// alquileres, no el snapshot de estado del vehículo.
	rental.Status = entity.RentalReturned
	require.NoError(t, rentalRepo.Update(rental))
	assert.NoError(t, uc.Delete(v.ID))
}

func TestVehicleGet_CalendarioOrdenado(t *testing.T) {
	uc, _, rentalRepo := newVehicleFixture(t)
	v := mustCreateVehicle(t, uc, "Toyota", "Corolla", entity.TypeCar, 45)

	day := func(s string) time.Time {
		d, _ := time.ParseInLocation(entity.DateFormat, s, time.UTC)
		return d
	}
	mkRental := func(id, start, end, status string) {
		require.NoError(t, rentalRepo.Create(&entity.Rental{
			ID: id, VehicleID: v.ID, UserID: "u-1",
			StartDate: day(start), EndDate: day(end), Status: status,
		}))
	}
	mkRental("r-later", "2026-10-01", "2026-10-05", entity.RentalRented)
	mkRental("r-early", "2026-09-10", "2026-09-12", entity.RentalRented)
	mkRental("r-closed", "2026-08-01", "2026-08-05", entity.RentalReturned)

	out, err := uc.Get(v.ID)
	require.NoError(t, err)
	require.Len(t, out.Calendar, 2, "los alquileres cerrados no ocupan el calendario")
	assert.Equal(t, "2026-09-10", out.Calendar[0].Start)
	assert.Equal(t, "2026-10-01", out.Calendar[1].Start)
}

func TestVehicleMarkOverdueAll_Persiste(t *testing.T) {
	uc, vehicleRepo, rentalRepo := newVehicleFixture(t)
	v := mustCreateVehicle(t, uc, "Toyota", "Corolla", entity.TypeCar, 45)

	day := func(s string) time.Time {
		d, _ := time.ParseInLocation(entity.DateFormat, s, time.UTC)
		return d
	}
	require.NoError(t, rentalRepo.Create(&entity.Rental{
		ID: "r-1", VehicleID: v.ID, UserID: "u-1",
		StartDate: day("2026-08-20"), EndDate: day("2026-08-25"),
		Status: entity.RentalRented,
	}))

	n, err := uc.MarkOverdueAll()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := rentalRepo.GetByID("r-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RentalOverdue, stored.Status)

	veh, err := vehicleRepo.GetByID(v.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VehicleOverdue, veh.Status)
}

func TestVehicleReconcile_ReconstruyeEstados(t *testing.T) {
	uc, vehicleRepo, rentalRepo := newVehicleFixture(t)
	free := mustCreateVehicle(t, uc, "Toyota", "Corolla", entity.TypeCar, 45)
	busy := mustCreateVehicle(t, uc, "Honda", "Civic", entity.TypeCar, 50)

	// Estados desfasados a propósito.
	v1, _ := vehicleRepo.GetByID(free.ID)
	v1.Status = entity.VehicleRented
	require.NoError(t, vehicleRepo.Update(v1))

	day := func(s string) time.Time {
		d, _ := time.ParseInLocation(entity.DateFormat, s, time.UTC)
		return d
	}
	require.NoError(t, rentalRepo.Create(&entity.Rental{
		ID: "r-1", VehicleID: busy.ID, UserID: "u-1",
		StartDate: day("2026-08-30"), EndDate: day("2026-09-10"),
		Status: entity.RentalRented,
	}))

	changed, err := uc.Reconcile()
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	v1, _ = vehicleRepo.GetByID(free.ID)
	assert.Equal(t, entity.VehicleAvailable, v1.Status)
	v2, _ := vehicleRepo.GetByID(busy.ID)
	assert.Equal(t, entity.VehicleRented, v2.Status)
}
