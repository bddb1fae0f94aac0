package snapshot

import (
	"sort"

	"github.com/jhoicas/Alquiler-api/internal/domain"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

var _ repository.RentalRepository = (*RentalRepo)(nil)

// RentalRepo implementación del puerto RentalRepository sobre el snapshot.
// El historial de alquileres es append-only: no hay Delete.
type RentalRepo struct {
	store *Store
}

// NewRentalRepository construye el adaptador de persistencia para alquileres.
func NewRentalRepository(store *Store) *RentalRepo {
	return &RentalRepo{store: store}
}

// Create persiste un nuevo alquiler.
func (r *RentalRepo) Create(rental *entity.Rental) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Rentals[rental.ID] = cloneRental(rental)
	return s.saveLocked()
}

// GetByID obtiene un alquiler por ID. Devuelve (nil, nil) si no existe.
func (r *RentalRepo) GetByID(id string) (*entity.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data.Rentals[id]
	if !ok {
		return nil, nil
	}
	return cloneRental(rec), nil
}

// Update reemplaza el alquiler almacenado.
func (r *RentalRepo) Update(rental *entity.Rental) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.Rentals[rental.ID]; !ok {
		return domain.ErrRentalNotFound
	}
	s.data.Rentals[rental.ID] = cloneRental(rental)
	return s.saveLocked()
}

// List devuelve todos los alquileres ordenados por fecha de inicio descendente.
func (r *RentalRepo) List() ([]*entity.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Rental, 0, len(s.data.Rentals))
	for _, rec := range s.data.Rentals {
		out = append(out, cloneRental(rec))
	}
	sortRentals(out)
	return out, nil
}

// ListByVehicle alquileres de un vehículo.
func (r *RentalRepo) ListByVehicle(vehicleID string) ([]*entity.Rental, error) {
	return r.listWhere(func(rec *entity.Rental) bool { return rec.VehicleID == vehicleID })
}

// ListByUser alquileres de un usuario.
func (r *RentalRepo) ListByUser(userID string) ([]*entity.Rental, error) {
	return r.listWhere(func(rec *entity.Rental) bool { return rec.UserID == userID })
}

func (r *RentalRepo) listWhere(keep func(*entity.Rental) bool) ([]*entity.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.Rental
	for _, rec := range s.data.Rentals {
		if keep(rec) {
			out = append(out, cloneRental(rec))
		}
	}
	sortRentals(out)
	return out, nil
}

func sortRentals(rentals []*entity.Rental) {
	sort.Slice(rentals, func(i, j int) bool {
		return rentals[i].StartDate.After(rentals[j].StartDate)
	})
}

func cloneRental(r *entity.Rental) *entity.Rental {
	cp := *r
	if r.ReturnedAt != nil {
		t := *r.ReturnedAt
		cp.ReturnedAt = &t
	}
	if r.CancelledAt != nil {
		t := *r.CancelledAt
		cp.CancelledAt = &t
	}
	return &cp
}
