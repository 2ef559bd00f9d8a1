package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
// Quantity > 0 para IN/OUT (el signo del efecto lo da el tipo); con signo
// para ADJUST. UnitCost obligatorio para IN; en OUT se rechaza (la salida
// siempre se valora al costo promedio vigente).
type RegisterMovementRequest struct {
	ProductID     string           `json:"product_id" validate:"required,uuid4"`
	Type          string           `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type" validate:"omitempty,oneof=purchase sale manual"`
	ReferenceID   string           `json:"reference_id" validate:"omitempty,max=100"`
	Reason        string           `json:"reason" validate:"omitempty,max=500"`
}

// UpdateMovementRequest body para PUT /api/movements/{id}.
// La edición revierte el efecto original y aplica el nuevo, atómicamente.
type UpdateMovementRequest struct {
	Type          string           `json:"type" validate:"required,oneof=IN OUT ADJUST"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	ReferenceType string           `json:"reference_type" validate:"omitempty,oneof=purchase sale manual"`
	ReferenceID   string           `json:"reference_id" validate:"omitempty,max=100"`
	Reason        string           `json:"reason" validate:"omitempty,max=500"`
}

// MovementResponse salida de un movimiento con el snapshot resultante.
type MovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductSnapshotDTO par {stock, costo promedio} de un producto tras una operación.
type ProductSnapshotDTO struct {
	CurrentStock decimal.Decimal `json:"current_stock"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
}

// MovementOperationResponse respuesta de crear/editar un movimiento:
// el registro persistido más el snapshot resultante del producto.
type MovementOperationResponse struct {
	Movement MovementResponse   `json:"movement"`
	Product  ProductSnapshotDTO `json:"product"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
