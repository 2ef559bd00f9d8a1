// Package ledger implementa el motor del kardex: aritmética pura de costo
// promedio ponderado sobre un snapshot {stock, costo promedio}. Sin I/O; las
// transacciones y bloqueos los aporta la capa de persistencia que lo invoca.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// Escalas fijas del kardex: stock a 3 decimales, dinero a 2.
// El redondeo es contrato observable (se persiste y se muestra tal cual).
const (
	StockScale = 3
	CostScale  = 2
)

// Snapshot es el par {stock actual, costo promedio} de un producto.
type Snapshot struct {
	Stock   decimal.Decimal
	AvgCost decimal.Decimal
}

// Round devuelve el snapshot redondeado a las escalas del kardex.
func (s Snapshot) Round() Snapshot {
	return Snapshot{
		Stock:   s.Stock.Round(StockScale),
		AvgCost: s.AvgCost.Round(CostScale),
	}
}

// ApplyInput entrada validada para aplicar un movimiento al snapshot.
// Quantity > 0 para IN/OUT; con signo (≠ 0) para ADJUST.
// UnitCost obligatorio en IN; ignorado en OUT (la salida siempre va al promedio).
type ApplyInput struct {
	Type     string
	Quantity decimal.Decimal
	UnitCost *decimal.Decimal
}

// ApplyResult resultado de aplicar un movimiento: el snapshot siguiente y el
// costo unitario/total a persistir en el registro del movimiento.
type ApplyResult struct {
	Snapshot  Snapshot
	UnitCost  decimal.Decimal
	TotalCost decimal.Decimal
}

// AverageCost calcula el costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func AverageCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// Apply calcula el snapshot siguiente para un movimiento. No muta s: ante
// error el caller conserva el snapshot original intacto.
func Apply(s Snapshot, in ApplyInput) (ApplyResult, error) {
	switch in.Type {
	case entity.MovementTypeIN:
		return applyIN(s, in.Quantity, in.UnitCost)
	case entity.MovementTypeOUT:
		return applyOUT(s, in.Quantity)
	case entity.MovementTypeADJUST:
		return applyADJUST(s, in.Quantity, in.UnitCost)
	default:
		return ApplyResult{}, fmt.Errorf("%w: tipo de movimiento no soportado: %q", domain.ErrInvalidInput, in.Type)
	}
}

// applyIN: suma stock y mezcla el costo entrante en el promedio ponderado.
func applyIN(s Snapshot, qty decimal.Decimal, unitCost *decimal.Decimal) (ApplyResult, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return ApplyResult{}, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if unitCost == nil {
		return ApplyResult{}, fmt.Errorf("%w: unit_cost es obligatorio en entradas", domain.ErrInvalidInput)
	}
	if unitCost.LessThan(decimal.Zero) {
		return ApplyResult{}, fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrInvalidInput)
	}
	cost := unitCost.Round(CostScale)
	next := Snapshot{
		Stock:   s.Stock.Add(qty),
		AvgCost: AverageCost(s.Stock, s.AvgCost, qty, cost),
	}
	return ApplyResult{
		Snapshot:  next.Round(),
		UnitCost:  cost,
		TotalCost: qty.Mul(cost).Round(CostScale),
	}, nil
}

// applyOUT: resta stock al costo promedio vigente; el promedio no cambia
// (retirar al promedio no altera el promedio de lo que queda).
func applyOUT(s Snapshot, qty decimal.Decimal) (ApplyResult, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return ApplyResult{}, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	newStock := s.Stock.Sub(qty)
	if newStock.LessThan(decimal.Zero) {
		return ApplyResult{}, fmt.Errorf("%w: stock disponible %s, solicitado %s",
			domain.ErrInsufficientStock, s.Stock.Round(StockScale), qty.Round(StockScale))
	}
	next := Snapshot{Stock: newStock, AvgCost: s.AvgCost}
	return ApplyResult{
		Snapshot:  next.Round(),
		UnitCost:  s.AvgCost.Round(CostScale),
		TotalCost: qty.Mul(s.AvgCost).Round(CostScale),
	}, nil
}

// applyADJUST: delta directo con signo, caso degenerado de IN/OUT.
// Positivo entra al costo indicado o, si no hay, al promedio vigente (así la
// mezcla es identidad y el ajuste no impacta el costo). Negativo sale como OUT.
func applyADJUST(s Snapshot, qty decimal.Decimal, unitCost *decimal.Decimal) (ApplyResult, error) {
	if qty.IsZero() {
		return ApplyResult{}, fmt.Errorf("%w: la cantidad del ajuste no puede ser 0", domain.ErrInvalidInput)
	}
	if qty.GreaterThan(decimal.Zero) {
		cost := s.AvgCost
		if unitCost != nil {
			cost = *unitCost
		}
		res, err := applyIN(s, qty, &cost)
		if err != nil {
			return ApplyResult{}, err
		}
		return res, nil
	}
	return applyOUT(s, qty.Neg())
}

// Revert deshace el efecto de un movimiento previamente aplicado, partiendo
// del snapshot actual (post-aplicación). Inversa exacta de Apply sobre el
// mismo movimiento, dentro de la tolerancia de redondeo.
func Revert(s Snapshot, m *entity.StockMovement) (Snapshot, error) {
	if m == nil {
		return Snapshot{}, fmt.Errorf("%w: movimiento nulo", domain.ErrInvalidInput)
	}
	switch m.Type {
	case entity.MovementTypeIN:
		return revertIN(s, m.Quantity, movementValue(m))
	case entity.MovementTypeOUT:
		return revertOUT(s, m.Quantity, m.UnitCost)
	case entity.MovementTypeADJUST:
		if m.Quantity.GreaterThan(decimal.Zero) {
			return revertIN(s, m.Quantity, movementValue(m))
		}
		return revertOUT(s, m.Quantity.Neg(), m.UnitCost)
	default:
		return Snapshot{}, fmt.Errorf("%w: tipo de movimiento no soportado: %q", domain.ErrInvalidInput, m.Type)
	}
}

// revertIN: resta la cantidad y recupera el promedio previo invirtiendo la
// mezcla: ValorPrevio = CostoActual*StockActual - ValorMovimiento.
func revertIN(s Snapshot, qty, value decimal.Decimal) (Snapshot, error) {
	prevStock := s.Stock.Sub(qty)
	if prevStock.LessThan(decimal.Zero) {
		// La entrada ya fue consumida por debajo de su propio tamaño.
		return Snapshot{}, fmt.Errorf("%w: no se puede revertir una entrada ya consumida", domain.ErrInsufficientStock)
	}
	prevAvg := decimal.Zero
	if prevStock.GreaterThan(decimal.Zero) {
		prevValue := s.AvgCost.Mul(s.Stock).Sub(value)
		if prevValue.GreaterThan(decimal.Zero) {
			prevAvg = prevValue.Div(prevStock)
		}
	}
	return Snapshot{Stock: prevStock, AvgCost: prevAvg}.Round(), nil
}

// revertOUT: devuelve la cantidad y restaura el costo registrado en la salida
// (la base de costo vigente cuando ocurrió). Si el registro no trae costo se
// conserva el promedio actual.
func revertOUT(s Snapshot, qty, recordedCost decimal.Decimal) (Snapshot, error) {
	newStock := s.Stock.Add(qty)
	if newStock.LessThan(decimal.Zero) {
		// Solo alcanzable con un snapshot ya corrupto; se valida por simetría.
		return Snapshot{}, fmt.Errorf("%w: el stock resultante sería negativo", domain.ErrInsufficientStock)
	}
	avg := s.AvgCost
	if recordedCost.GreaterThan(decimal.Zero) {
		avg = recordedCost
	}
	return Snapshot{Stock: newStock, AvgCost: avg}.Round(), nil
}

// movementValue devuelve el valor monetario registrado del movimiento:
// TotalCost si existe, si no UnitCost*Quantity.
func movementValue(m *entity.StockMovement) decimal.Decimal {
	if !m.TotalCost.IsZero() {
		return m.TotalCost
	}
	return m.UnitCost.Mul(m.Quantity.Abs())
}
