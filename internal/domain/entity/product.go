package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// CurrentStock y AvgCost forman el snapshot del kardex: se mutan únicamente
// vía el motor de ledger dentro de una transacción, nunca por CRUD directo.
// Invariante: CurrentStock >= 0. AvgCost solo es significativo con stock > 0.
type Product struct {
	ID           string
	UserID       string
	SKU          string // código único por usuario (opcional, vacío permitido)
	Name         string
	Description  string
	CategoryID   string // vacío si no tiene categoría
	UnitID       string
	MinStock     *decimal.Decimal // umbral de stock bajo (nil = sin umbral)
	CurrentStock decimal.Decimal  // 3 decimales
	AvgCost      decimal.Decimal  // costo promedio ponderado, 2 decimales
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Snapshot devuelve el par {stock, costo promedio} del producto.
func (p *Product) Snapshot() (stock, avgCost decimal.Decimal) {
	return p.CurrentStock, p.AvgCost
}
