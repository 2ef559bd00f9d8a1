package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// El snapshot (stock/costo) no se acepta aquí: inicia en cero y solo lo
// mueven los movimientos.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	SKU         string           `json:"sku" validate:"omitempty,max=100"`
	Description string           `json:"description" validate:"omitempty,max=1000"`
	CategoryID  string           `json:"category_id" validate:"omitempty,uuid4"`
	UnitID      string           `json:"unit_id" validate:"required,uuid4"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock ni costo).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU         *string          `json:"sku" validate:"omitempty,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,uuid4"`
	UnitID      *string          `json:"unit_id" validate:"omitempty,uuid4"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// ProductResponse salida de un producto con su snapshot de kardex.
type ProductResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	SKU          string           `json:"sku,omitempty"`
	Description  string           `json:"description,omitempty"`
	CategoryID   string           `json:"category_id,omitempty"`
	UnitID       string           `json:"unit_id"`
	MinStock     *decimal.Decimal `json:"min_stock,omitempty"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	AvgCost      decimal.Decimal  `json:"avg_cost"`
	StockValue   decimal.Decimal  `json:"stock_value"` // current_stock * avg_cost
	LowStock     bool             `json:"low_stock"`   // stock <= min_stock (si hay umbral)
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
