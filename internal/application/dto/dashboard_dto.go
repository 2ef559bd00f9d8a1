package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del inventario más la tendencia de los últimos 7 días.
type DashboardSummaryDTO struct {
	TotalStockValue decimal.Decimal `json:"total_stock_value"` // Σ stock * costo promedio
	ProductCount    int             `json:"product_count"`
	LowStockCount   int             `json:"low_stock_count"` // productos en o bajo su umbral

	// Tendencia semanal: un bucket por día calendario, los 7 días completos
	// (días sin movimientos van en cero).
	WeeklyTrend []DailyTrendDTO `json:"weekly_trend"`

	// Puntaje de eficiencia 0–100: 60% salud de stock (productos fuera de
	// umbral bajo) + 40% actividad (días de la semana con movimientos).
	EfficiencyScore int `json:"efficiency_score"`

	DateLabel string `json:"date_label"` // ej: "Semana del 24/08/2026"
}

// DailyTrendDTO agregado de movimientos de un día para el widget de tendencia.
type DailyTrendDTO struct {
	Date          string          `json:"date"` // YYYY-MM-DD
	InQuantity    decimal.Decimal `json:"in_quantity"`
	OutQuantity   decimal.Decimal `json:"out_quantity"`
	InValue       decimal.Decimal `json:"in_value"`
	OutValue      decimal.Decimal `json:"out_value"`
	MovementCount int             `json:"movement_count"`
}
