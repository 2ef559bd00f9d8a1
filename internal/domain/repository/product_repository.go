package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las consultas filtran por el usuario dueño: un producto de otro
// tenant se responde como no encontrado, nunca como prohibido.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(userID, id string) (*entity.Product, error)
	GetByUserAndSKU(userID, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar movimientos concurrentes sobre el mismo producto.
	GetForUpdate(userID, id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateSnapshot persiste el par {stock, costo promedio} calculado por el
	// motor de ledger. Único camino de escritura del snapshot.
	UpdateSnapshot(userID, productID string, stock, avgCost decimal.Decimal) error
	ListByUser(userID, search string, limit, offset int) ([]*entity.Product, error)
	Delete(userID, id string) error
}
