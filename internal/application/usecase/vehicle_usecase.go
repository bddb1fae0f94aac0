package usecase

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var foldCaser = cases.Fold()

// VehicleUseCase casos de uso del catálogo: filtrado público, altas y bajas
// de staff, y mantenimiento del snapshot de estados.
type VehicleUseCase struct {
	vehicleRepo repository.VehicleRepository
	rentalRepo  repository.RentalRepository
	loc         *time.Location
	now         func() time.Time
}

// NewVehicleUseCase construye el caso de uso del catálogo.
func NewVehicleUseCase(vehicleRepo repository.VehicleRepository, rentalRepo repository.RentalRepository, loc *time.Location) *VehicleUseCase {
	return &VehicleUseCase{
		vehicleRepo: vehicleRepo,
		rentalRepo:  rentalRepo,
		loc:         loc,
		now:         time.Now,
	}
}

func (uc *VehicleUseCase) today() time.Time {
	t := uc.now().In(uc.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, uc.loc)
}

// Filter aplica los filtros del catálogo. El tipo es match exacto
// (normalizado), marca y modelo son substring sin distinguir mayúsculas, y
// los límites de tarifa no numéricos se ignoran en lugar de fallar. Los
// vehículos retirados nunca aparecen.
func (uc *VehicleUseCase) Filter(in dto.VehicleFilterRequest) (*dto.VehicleListResponse, error) {
	vehicles, err := uc.vehicleRepo.List()
	if err != nil {
		return nil, err
	}
	vtype := strings.ToLower(strings.TrimSpace(in.Type))
	brand := foldCaser.String(strings.TrimSpace(in.Brand))
	model := foldCaser.String(strings.TrimSpace(in.Model))
	minRate := decimalSafe(in.MinRate)
	maxRate := decimalSafe(in.MaxRate)

	items := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Retired() {
			continue
		}
		if vtype != "" && strings.ToLower(v.Type) != vtype {
			continue
		}
		if brand != "" && !strings.Contains(foldCaser.String(v.Brand), brand) {
			continue
		}
		if model != "" && !strings.Contains(foldCaser.String(v.Model), model) {
			continue
		}
		if minRate != nil && v.Rate.LessThan(*minRate) {
			continue
		}
		if maxRate != nil && v.Rate.GreaterThan(*maxRate) {
			continue
		}
		items = append(items, toVehicleResponse(v))
	}
	return &dto.VehicleListResponse{Items: items, Total: len(items)}, nil
}

// Get devuelve un vehículo con su calendario de ocupación: los rangos
// [inicio, fin] de sus alquileres activos, ordenados por fecha de inicio,
// para que la UI deshabilite fechas ya tomadas.
func (uc *VehicleUseCase) Get(id string) (*dto.VehicleDetailResponse, error) {
	vehicle, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}
	rentals, err := uc.rentalRepo.ListByVehicle(id)
	if err != nil {
		return nil, err
	}
	calendar := make([]dto.BookedRange, 0, len(rentals))
	for _, r := range rentals {
		if !r.Active() {
			continue
		}
		calendar = append(calendar, dto.BookedRange{
			Start: r.StartDate.Format(entity.DateFormat),
			End:   r.EndDate.Format(entity.DateFormat),
		})
	}
	sort.Slice(calendar, func(i, j int) bool { return calendar[i].Start < calendar[j].Start })
	return &dto.VehicleDetailResponse{
		Vehicle:  toVehicleResponse(vehicle),
		Calendar: calendar,
	}, nil
}

// Create da de alta un vehículo (staff). Una ruta de imagen inválida cae al
// placeholder en lugar de rechazar el alta.
func (uc *VehicleUseCase) Create(in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	vtype := strings.ToLower(strings.TrimSpace(in.Type))
	if !entity.AllowedTypes[vtype] {
		return nil, fmt.Errorf("%w: tipo de vehículo inválido %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Rate.IsNegative() {
		return nil, fmt.Errorf("%w: la tarifa no puede ser negativa", domain.ErrInvalidInput)
	}
	img := strings.TrimSpace(in.ImagePath)
	if !validImagePath(img) {
		img = entity.PlaceholderImage
	}
	now := uc.now().In(uc.loc)
	vehicle := &entity.Vehicle{
		ID:        uuid.New().String(),
		Brand:     strings.TrimSpace(in.Brand),
		Model:     strings.TrimSpace(in.Model),
		Type:      vtype,
		Rate:      in.Rate,
		Status:    entity.VehicleAvailable,
		ImagePath: img,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.vehicleRepo.Create(vehicle); err != nil {
		return nil, err
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

// Delete elimina un vehículo del catálogo (staff). La fuente de verdad son
// los alquileres, no el snapshot de estado: con cualquier alquiler activo la
// baja se rechaza.
func (uc *VehicleUseCase) Delete(id string) error {
	if err := uc.guardNoActiveRentals(id); err != nil {
		return err
	}
	return uc.vehicleRepo.Delete(id)
}

// Retire marca un vehículo como retirado sin borrar su historial. Aplica el
// mismo guard que Delete.
func (uc *VehicleUseCase) Retire(id string) (*dto.VehicleResponse, error) {
	if err := uc.guardNoActiveRentals(id); err != nil {
		return nil, err
	}
	vehicle, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}
	vehicle.Status = entity.VehicleRetired
	vehicle.UpdatedAt = uc.now().In(uc.loc)
	if err := uc.vehicleRepo.Update(vehicle); err != nil {
		return nil, err
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

// MarkOverdueAll recorre los alquileres activos vencidos y persiste el estado
// overdue en alquiler y vehículo. Devuelve cuántos alquileres se marcaron.
func (uc *VehicleUseCase) MarkOverdueAll() (int, error) {
	rentals, err := uc.rentalRepo.List()
	if err != nil {
		return 0, err
	}
	today := uc.today()
	marked := 0
	for _, r := range rentals {
		if !r.OverdueAt(today) {
			continue
		}
		if r.Status != entity.RentalOverdue {
			r.Status = entity.RentalOverdue
			if err := uc.rentalRepo.Update(r); err != nil {
				return marked, err
			}
		}
		marked++
		vehicle, err := uc.vehicleRepo.GetByID(r.VehicleID)
		if err != nil {
			return marked, err
		}
		if vehicle == nil || vehicle.Retired() || vehicle.Status == entity.VehicleOverdue {
			continue
		}
		vehicle.Status = entity.VehicleOverdue
		vehicle.UpdatedAt = uc.now().In(uc.loc)
		if err := uc.vehicleRepo.Update(vehicle); err != nil {
			return marked, err
		}
	}
	return marked, nil
}

// Reconcile reconstruye el snapshot de estado de toda la flota a partir de
// los alquileres (overdue > rented > available; retired se preserva). Se
// ejecuta al arrancar y queda expuesto al staff para correcciones manuales.
func (uc *VehicleUseCase) Reconcile() (int, error) {
	vehicles, err := uc.vehicleRepo.List()
	if err != nil {
		return 0, err
	}
	today := uc.today()
	changed := 0
	for _, v := range vehicles {
		if v.Retired() {
			continue
		}
		rentals, err := uc.rentalRepo.ListByVehicle(v.ID)
		if err != nil {
			return changed, err
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
		if v.Status == status {
			continue
		}
		v.Status = status
		v.UpdatedAt = uc.now().In(uc.loc)
		if err := uc.vehicleRepo.Update(v); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

// decimalSafe convierte texto a decimal; entradas no numéricas devuelven nil
// para que el filtro las ignore.
func decimalSafe(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// validImagePath acepta rutas bajo /static/ o URLs http(s) absolutas.
func validImagePath(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "/static/") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (uc *VehicleUseCase) guardNoActiveRentals(id string) error {
	vehicle, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return domain.ErrVehicleNotFound
	}
	rentals, err := uc.rentalRepo.ListByVehicle(id)
	if err != nil {
		return err
	}
	for _, r := range rentals {
		if r.Active() {
			return fmt.Errorf("%w: el vehículo tiene alquileres activos", domain.ErrGuard)
		}
	}
	return nil
}

func toVehicleResponse(v *entity.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:        v.ID,
		Brand:     v.Brand,
		Model:     v.Model,
		Type:      v.Type,
		Rate:      v.Rate,
		Status:    v.Status,
		ImagePath: v.ImagePath,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
