package snapshot

import (
	"sort"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación del puerto VehicleRepository sobre el snapshot.
type VehicleRepo struct {
	store *Store
}

// NewVehicleRepository construye el adaptador de persistencia para vehículos.
func NewVehicleRepository(store *Store) *VehicleRepo {
	return &VehicleRepo{store: store}
}

// Create persiste un nuevo vehículo.
func (r *VehicleRepo) Create(vehicle *entity.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Vehicles[vehicle.ID] = cloneVehicle(vehicle)
	return s.saveLocked()
}

// GetByID obtiene un vehículo por ID. Devuelve (nil, nil) si no existe.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.Vehicles[id]
	if !ok {
		return nil, nil
	}
	return cloneVehicle(v), nil
}

// Update reemplaza el vehículo almacenado.
func (r *VehicleRepo) Update(vehicle *entity.Vehicle) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Vehicles[vehicle.ID]; !ok {
		return domain.ErrVehicleNotFound
	}
	s.data.Vehicles[vehicle.ID] = cloneVehicle(vehicle)
	return s.saveLocked()
}

// List devuelve todos los vehículos ordenados por marca y modelo.
func (r *VehicleRepo) List() ([]*entity.Vehicle, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Vehicle, 0, len(s.data.Vehicles))
	for _, v := range s.data.Vehicles {
		out = append(out, cloneVehicle(v))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Brand != out[j].Brand {
			return out[i].Brand < out[j].Brand
		}
		return out[i].Model < out[j].Model
	})
	return out, nil
}

// Delete elimina un vehículo por ID. Los guards de negocio (alquileres
// activos) viven en el caso de uso, no aquí.
func (r *VehicleRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Vehicles[id]; !ok {
		return domain.ErrVehicleNotFound
	}
	delete(s.data.Vehicles, id)
	return s.saveLocked()
}

func cloneVehicle(v *entity.Vehicle) *entity.Vehicle {
	cp := *v
	return &cp
}
