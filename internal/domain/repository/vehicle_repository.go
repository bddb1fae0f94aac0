package repository

import "github.com/jhoicas/Alquiler-api/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para Vehicle (DIP).
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	List() ([]*entity.Vehicle, error)
	Delete(id string) error
}
