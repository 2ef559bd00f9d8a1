package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(userID, id string) (*entity.Category, error)
	Update(category *entity.Category) error
	ListByUser(userID string, limit, offset int) ([]*entity.Category, error)
	Delete(userID, id string) error
}
