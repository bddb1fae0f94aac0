package repository

import "github.com/jhoicas/Alquiler-api/internal/domain/entity"

// RentalRepository define el puerto de persistencia para Rental (DIP).
// El historial es append-only: no hay Delete.
type RentalRepository interface {
	Create(rental *entity.Rental) error
	GetByID(id string) (*entity.Rental, error)
	Update(rental *entity.Rental) error
	List() ([]*entity.Rental, error)
	ListByVehicle(vehicleID string) ([]*entity.Rental, error)
	ListByUser(userID string) ([]*entity.Rental, error)
}
