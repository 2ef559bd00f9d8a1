package repository

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos (DIP).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(userID, id string) (*entity.StockMovement, error)
	Update(movement *entity.StockMovement) error
	Delete(userID, id string) error
	ListByUser(userID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(userID, productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
