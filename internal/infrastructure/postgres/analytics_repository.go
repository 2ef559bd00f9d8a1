package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de lectura para el dashboard. Solo agregados,
// nunca escribe.
type AnalyticsRepo struct {
	q Querier
}

func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetStockTotals agrega el inventario completo del usuario en una sola consulta.
func (r *AnalyticsRepo) GetStockTotals(ctx context.Context, userID string) (repository.StockTotalsResult, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE min_stock IS NOT NULL AND current_stock <= min_stock),
			COALESCE(SUM(current_stock * avg_cost), 0)
		FROM products
		WHERE user_id = $1`
	var res repository.StockTotalsResult
	err := r.q.QueryRow(ctx, query, userID).
		Scan(&res.ProductCount, &res.LowStockCount, &res.TotalValue)
	if err != nil {
		return repository.StockTotalsResult{}, fmt.Errorf("stock totals: %w", err)
	}
	return res, nil
}

// GetDailyMovements agrega los movimientos por día calendario en [from, to].
// ADJUST se reparte por el signo de la cantidad: positivo suma a entradas,
// negativo a salidas (en valor absoluto).
func (r *AnalyticsRepo) GetDailyMovements(ctx context.Context, userID string, from, to time.Time) ([]repository.DailyMovementResult, error) {
	query := `
		SELECT
			date_trunc('day', created_at) AS day,
			COALESCE(SUM(quantity) FILTER (WHERE type = 'IN' OR (type = 'ADJUST' AND quantity > 0)), 0),
			COALESCE(SUM(ABS(quantity)) FILTER (WHERE type = 'OUT' OR (type = 'ADJUST' AND quantity < 0)), 0),
			COALESCE(SUM(total_cost) FILTER (WHERE type = 'IN' OR (type = 'ADJUST' AND quantity > 0)), 0),
			COALESCE(SUM(total_cost) FILTER (WHERE type = 'OUT' OR (type = 'ADJUST' AND quantity < 0)), 0),
			COUNT(*)
		FROM stock_movements
		WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY day
		ORDER BY day`
	rows, err := r.q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily movements: %w", err)
	}
	defer rows.Close()
	var list []repository.DailyMovementResult
	for rows.Next() {
		var d repository.DailyMovementResult
		err := rows.Scan(&d.Day, &d.InQuantity, &d.OutQuantity, &d.InValue, &d.OutValue, &d.MovementCount)
		if err != nil {
			return nil, fmt.Errorf("scan daily movement: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
