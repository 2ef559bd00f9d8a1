package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// UnitRepository define el puerto de persistencia para Unit (DIP).
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(userID, id string) (*entity.Unit, error)
	Update(unit *entity.Unit) error
	ListByUser(userID string, limit, offset int) ([]*entity.Unit, error)
	Delete(userID, id string) error
}
