package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

func day(s string) time.Time {
	t, err := time.Parse(entity.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Tabla de descuentos por rol y duración.
func TestUser_DiscountFor(t *testing.T) {
	tests := []struct {
		name string
		role string
		days int
		want string
	}{
		{"corporate siempre 15%", entity.RoleCorporate, 2, "0.15"},
		{"corporate en alquiler largo sigue 15%", entity.RoleCorporate, 30, "0.15"},
		{"customer corto sin descuento", entity.RoleCustomer, 6, "0"},
		{"customer desde 7 días 10%", entity.RoleCustomer, 7, "0.1"},
		{"customer largo 10%", entity.RoleCustomer, 21, "0.1"},
		{"staff nunca tiene descuento", entity.RoleStaff, 30, "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := entity.User{Role: tc.role}
			want, _ := decimal.NewFromString(tc.want)
			assert.True(t, u.DiscountFor(tc.days).Equal(want),
				"descuento para %s con %d días", tc.role, tc.days)
		})
	}
}

// Ajuste de precio por tipo de vehículo.
func TestVehicle_PriceForDays(t *testing.T) {
	rate := decimal.NewFromInt(100)
	tests := []struct {
		name  string
		vtype string
		days  int
		want  string
	}{
		{"auto sin ajuste", entity.TypeCar, 3, "300"},
		{"moto 10% más barata", entity.TypeMotorbike, 3, "270"},
		{"camión 20% de recargo", entity.TypeTruck, 3, "360"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := entity.Vehicle{Type: tc.vtype, Rate: rate}
			want, _ := decimal.NewFromString(tc.want)
			assert.True(t, v.PriceForDays(tc.days).Equal(want),
				"precio %s por %d días: got %s", tc.vtype, tc.days, v.PriceForDays(tc.days))
		})
	}
}

// Los extremos del rango son inclusive: terminar el día que otro empieza
// también es conflicto.
func TestRental_Overlaps(t *testing.T) {
	r := entity.Rental{StartDate: day("2026-09-10"), EndDate: day("2026-09-15")}

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"rango idéntico", "2026-09-10", "2026-09-15", true},
		{"contenido", "2026-09-11", "2026-09-13", true},
		{"empieza el día que termina el existente", "2026-09-15", "2026-09-20", true},
		{"termina el día que empieza el existente", "2026-09-05", "2026-09-10", true},
		{"anterior sin tocar", "2026-09-01", "2026-09-09", false},
		{"posterior sin tocar", "2026-09-16", "2026-09-20", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Overlaps(day(tc.start), day(tc.end)))
		})
	}
}

// El estado overdue se deriva en lectura; el campo almacenado es un caché.
func TestRental_StatusAt(t *testing.T) {
	r := entity.Rental{
		StartDate: day("2026-09-10"),
		EndDate:   day("2026-09-15"),
		Status:    entity.RentalRented,
	}
	assert.Equal(t, entity.RentalRented, r.StatusAt(day("2026-09-15")), "el día de fin aún no está vencido")
	assert.Equal(t, entity.RentalOverdue, r.StatusAt(day("2026-09-16")), "pasada la fecha de fin se deriva overdue")

	returned := day("2026-09-20")
	r.Status = entity.RentalReturned
	r.ReturnedAt = &returned
	assert.Equal(t, entity.RentalReturned, r.StatusAt(day("2026-09-25")), "un alquiler cerrado nunca se deriva a overdue")
}
