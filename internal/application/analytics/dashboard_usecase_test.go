package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/application/analytics"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// fakeAnalyticsRepo devuelve resultados fijos para el dashboard.
type fakeAnalyticsRepo struct {
	totals repository.StockTotalsResult
	days   []repository.DailyMovementResult
	err    error
}

func (r *fakeAnalyticsRepo) GetStockTotals(_ context.Context, _ string) (repository.StockTotalsResult, error) {
	return r.totals, r.err
}

func (r *fakeAnalyticsRepo) GetDailyMovements(_ context.Context, _ string, _, _ time.Time) ([]repository.DailyMovementResult, error) {
	return r.days, r.err
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGetSummary_AgregaTotalesYTendencia(t *testing.T) {
	today := time.Now()
	yesterday := today.AddDate(0, 0, -1)

	repo := &fakeAnalyticsRepo{
		totals: repository.StockTotalsResult{
			ProductCount:  10,
			LowStockCount: 2,
			TotalValue:    d("1234.567"),
		},
		days: []repository.DailyMovementResult{
			{Day: yesterday, InQuantity: d("5"), InValue: d("25"), MovementCount: 2},
			{Day: today, OutQuantity: d("3"), OutValue: d("30"), MovementCount: 1},
		},
	}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.True(t, d("1234.57").Equal(out.TotalStockValue), "valor redondeado a 2 decimales")
	assert.Equal(t, 10, out.ProductCount)
	assert.Equal(t, 2, out.LowStockCount)

	// Siempre 7 buckets, días sin movimientos en cero.
	require.Len(t, out.WeeklyTrend, 7)
	last := out.WeeklyTrend[6]
	assert.Equal(t, today.Format("2006-01-02"), last.Date)
	assert.True(t, d("3").Equal(last.OutQuantity))
	assert.True(t, out.WeeklyTrend[0].InQuantity.IsZero(), "día sin movimientos en cero")

	// 8/10 productos sanos (80% * 60) + 2/7 días activos (≈28.6% * 40) = 48+11.4 ≈ 59
	assert.Equal(t, 59, out.EfficiencyScore)
}

func TestGetSummary_SinProductosNiMovimientos(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{
		totals: repository.StockTotalsResult{TotalValue: decimal.Zero},
	})

	out, err := uc.GetSummary(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 0, out.ProductCount)
	require.Len(t, out.WeeklyTrend, 7)
	// Sin productos la salud de stock es 100%; sin actividad suma 0.
	assert.Equal(t, 60, out.EfficiencyScore)
}

func TestGetSummary_PropagaErroresDelRepositorio(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{err: assert.AnError})

	_, err := uc.GetSummary(context.Background(), "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}
