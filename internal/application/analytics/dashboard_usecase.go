// Package analytics contiene los casos de uso de los indicadores del
// dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

const trendDays = 7 // días del widget de tendencia semanal

// Pesos del puntaje de eficiencia: salud de stock 60%, actividad semanal 40%.
const (
	weightStockHealth = 60.0
	weightActivity    = 40.0
)

// DashboardUseCase genera el resumen de inventario: valor total, conteos de
// stock bajo, tendencia de los últimos 7 días y puntaje de eficiencia.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO para el usuario indicado.
//
// Dos llamadas en paralelo:
//  1. GetStockTotals          → valor total, conteo de productos y stock bajo
//  2. GetDailyMovements(7d)   → tendencia semanal
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// Rango semanal: hace 6 días a las 00:00 – hoy a las 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := todayStart.AddDate(0, 0, -(trendDays - 1))
	weekEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	type totalsResult struct {
		totals repository.StockTotalsResult
		err    error
	}
	type trendResult struct {
		days []repository.DailyMovementResult
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	trendCh := make(chan trendResult, 1)

	go func() {
		totals, err := uc.analyticsRepo.GetStockTotals(ctx, userID)
		totalsCh <- totalsResult{totals, err}
	}()
	go func() {
		days, err := uc.analyticsRepo.GetDailyMovements(ctx, userID, weekStart, weekEnd)
		trendCh <- trendResult{days, err}
	}()

	totals := <-totalsCh
	trend := <-trendCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de inventario: %w", totals.err)
	}
	if trend.err != nil {
		return nil, fmt.Errorf("dashboard: tendencia semanal: %w", trend.err)
	}

	weekly := fillWeek(weekStart, trend.days)

	return &dto.DashboardSummaryDTO{
		TotalStockValue: totals.totals.TotalValue.Round(2),
		ProductCount:    totals.totals.ProductCount,
		LowStockCount:   totals.totals.LowStockCount,
		WeeklyTrend:     weekly,
		EfficiencyScore: efficiencyScore(totals.totals, weekly),
		DateLabel:       fmt.Sprintf("Semana del %s", weekStart.Format("02/01/2006")),
	}, nil
}

// fillWeek expande el agregado de la DB a los 7 días completos: los días sin
// movimientos aparecen en cero, en orden ascendente.
func fillWeek(weekStart time.Time, days []repository.DailyMovementResult) []dto.DailyTrendDTO {
	byDate := make(map[string]repository.DailyMovementResult, len(days))
	for _, d := range days {
		byDate[d.Day.Format("2006-01-02")] = d
	}
	out := make([]dto.DailyTrendDTO, 0, trendDays)
	for i := 0; i < trendDays; i++ {
		date := weekStart.AddDate(0, 0, i).Format("2006-01-02")
		bucket := dto.DailyTrendDTO{
			Date:        date,
			InQuantity:  decimal.Zero,
			OutQuantity: decimal.Zero,
			InValue:     decimal.Zero,
			OutValue:    decimal.Zero,
		}
		if d, ok := byDate[date]; ok {
			bucket.InQuantity = d.InQuantity
			bucket.OutQuantity = d.OutQuantity
			bucket.InValue = d.InValue.Round(2)
			bucket.OutValue = d.OutValue.Round(2)
			bucket.MovementCount = d.MovementCount
		}
		out = append(out, bucket)
	}
	return out
}

// efficiencyScore combina salud de stock (productos fuera de umbral bajo) y
// actividad (días de la semana con al menos un movimiento) en un 0–100.
func efficiencyScore(totals repository.StockTotalsResult, weekly []dto.DailyTrendDTO) int {
	stockHealth := 1.0
	if totals.ProductCount > 0 {
		stockHealth = float64(totals.ProductCount-totals.LowStockCount) / float64(totals.ProductCount)
	}
	activeDays := 0
	for _, d := range weekly {
		if d.MovementCount > 0 {
			activeDays++
		}
	}
	activity := float64(activeDays) / float64(trendDays)

	score := int(math.Round(stockHealth*weightStockHealth + activity*weightActivity))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
