package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockTotalsResult resultado crudo de los agregados de inventario.
// Lo produce la DB; el use case lo convierte en DTO.
type StockTotalsResult struct {
	ProductCount  int
	LowStockCount int             // productos con stock <= min_stock (solo los que definen umbral)
	TotalValue    decimal.Decimal // Σ current_stock * avg_cost
}

// DailyMovementResult agregado de movimientos de un día (tendencia semanal).
type DailyMovementResult struct {
	Day           time.Time
	InQuantity    decimal.Decimal // entradas + ajustes positivos
	OutQuantity   decimal.Decimal // salidas + ajustes negativos (valor absoluto)
	InValue       decimal.Decimal
	OutValue      decimal.Decimal
	MovementCount int
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetStockTotals devuelve valor total del inventario, número de productos
	// y cuántos están en o por debajo de su umbral de stock bajo.
	GetStockTotals(ctx context.Context, userID string) (StockTotalsResult, error)

	// GetDailyMovements devuelve un agregado por día calendario en el rango
	// [from, to], ordenado ascendente. Días sin movimientos no aparecen.
	GetDailyMovements(ctx context.Context, userID string, from, to time.Time) ([]DailyMovementResult, error)
}
