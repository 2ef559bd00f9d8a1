package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN     = "IN"     // entrada (compra, devolución)
	MovementTypeOUT    = "OUT"    // salida (venta, merma)
	MovementTypeADJUST = "ADJUST" // ajuste directo con cantidad con signo
)

// Tipos de referencia (procedencia del movimiento, texto libre acotado).
const (
	ReferencePurchase = "purchase"
	ReferenceSale     = "sale"
	ReferenceManual   = "manual"
)

// StockMovement registra un cambio en el stock de un producto (auditoría).
// La cantidad es positiva para IN/OUT (el signo del efecto lo da el tipo);
// para ADJUST la cantidad lleva signo (delta directo).
type StockMovement struct {
	ID            string
	UserID        string
	ProductID     string
	Type          string // IN, OUT, ADJUST
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal // en IN lo aporta el usuario; en OUT es el costo promedio vigente
	TotalCost     decimal.Decimal // Quantity * UnitCost, redondeado a 2 decimales
	ReferenceType string          // purchase, sale, manual
	ReferenceID   string          // ID externo opcional (factura, orden...)
	Reason        string          // texto libre
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
