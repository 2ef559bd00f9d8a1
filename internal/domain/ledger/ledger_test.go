package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// assertDecimal compara decimales por valor (no por representación interna).
func assertDecimal(t *testing.T, expected, actual decimal.Decimal, msg string) {
	t.Helper()
	assert.Truef(t, expected.Equal(actual), "%s: esperado %s, obtenido %s", msg, expected, actual)
}

func in(qty, cost string) ledger.ApplyInput {
	return ledger.ApplyInput{Type: entity.MovementTypeIN, Quantity: d(qty), UnitCost: dp(cost)}
}

func out(qty string) ledger.ApplyInput {
	return ledger.ApplyInput{Type: entity.MovementTypeOUT, Quantity: d(qty)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply — escenarios del kardex
// ──────────────────────────────────────────────────────────────────────────────

// Primera entrada sobre producto vacío: el promedio es el costo de la entrada.
func TestApply_PrimeraEntradaFijaCostoPromedio(t *testing.T) {
	res, err := ledger.Apply(ledger.Snapshot{}, in("10", "5"))
	require.NoError(t, err)

	assertDecimal(t, d("10"), res.Snapshot.Stock, "stock")
	assertDecimal(t, d("5"), res.Snapshot.AvgCost, "costo promedio")
	assertDecimal(t, d("5"), res.UnitCost, "costo unitario")
	assertDecimal(t, d("50"), res.TotalCost, "costo total")
}

// Segunda entrada a costo distinto: mezcla ponderada (10*5 + 10*15) / 20 = 10.
func TestApply_SegundaEntradaMezclaPonderada(t *testing.T) {
	s := ledger.Snapshot{Stock: d("10"), AvgCost: d("5")}

	res, err := ledger.Apply(s, in("10", "15"))
	require.NoError(t, err)

	assertDecimal(t, d("20"), res.Snapshot.Stock, "stock")
	assertDecimal(t, d("10"), res.Snapshot.AvgCost, "costo promedio mezclado")
	assertDecimal(t, d("150"), res.TotalCost, "costo total")
}

// La salida va siempre al costo promedio vigente y no lo modifica.
func TestApply_SalidaAlPromedioSinAlterarlo(t *testing.T) {
	s := ledger.Snapshot{Stock: d("20"), AvgCost: d("10")}

	res, err := ledger.Apply(s, out("5"))
	require.NoError(t, err)

	assertDecimal(t, d("15"), res.Snapshot.Stock, "stock")
	assertDecimal(t, d("10"), res.Snapshot.AvgCost, "el promedio no cambia en OUT")
	assertDecimal(t, d("10"), res.UnitCost, "costo unitario = promedio")
	assertDecimal(t, d("50"), res.TotalCost, "costo total")
}

// Salida mayor al stock disponible: ErrInvalidOperation, sin vender en negativo.
func TestApply_SalidaMayorAlStockFalla(t *testing.T) {
	s := ledger.Snapshot{Stock: d("10"), AvgCost: d("5")}

	_, err := ledger.Apply(s, out("11"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation, "stock insuficiente es una operación inválida")

	// El snapshot de entrada no se muta: Apply es función pura.
	assertDecimal(t, d("10"), s.Stock, "stock intacto")
	assertDecimal(t, d("5"), s.AvgCost, "costo intacto")
}

// Entrada sin costo unitario: ErrInvalidInput.
func TestApply_EntradaSinCostoFalla(t *testing.T) {
	_, err := ledger.Apply(ledger.Snapshot{Stock: d("10"), AvgCost: d("5")},
		ledger.ApplyInput{Type: entity.MovementTypeIN, Quantity: d("5")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Entrada con costo negativo: ErrInvalidInput.
func TestApply_EntradaConCostoNegativoFalla(t *testing.T) {
	_, err := ledger.Apply(ledger.Snapshot{}, in("5", "-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cantidad no positiva en IN/OUT: ErrInvalidInput.
func TestApply_CantidadNoPositivaFalla(t *testing.T) {
	for _, input := range []ledger.ApplyInput{
		in("0", "5"),
		in("-3", "5"),
		out("0"),
		out("-3"),
	} {
		_, err := ledger.Apply(ledger.Snapshot{Stock: d("10"), AvgCost: d("5")}, input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %s cantidad %s", input.Type, input.Quantity)
	}
}

// Tipo desconocido: ErrInvalidInput.
func TestApply_TipoNoSoportadoFalla(t *testing.T) {
	_, err := ledger.Apply(ledger.Snapshot{}, ledger.ApplyInput{Type: "TRANSFER", Quantity: d("1")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Redondeo: stock a 3 decimales, dinero a 2.
func TestApply_RedondeoDeEscalas(t *testing.T) {
	res, err := ledger.Apply(ledger.Snapshot{}, in("3.0001", "1.005"))
	require.NoError(t, err)

	assertDecimal(t, d("3.000"), res.Snapshot.Stock, "stock a 3 decimales")
	assertDecimal(t, d("1.01"), res.UnitCost, "costo unitario a 2 decimales")
	// 3.0001 * 1.01 = 3.030101 → 3.03
	assertDecimal(t, d("3.03"), res.TotalCost, "costo total a 2 decimales")
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply — ADJUST (delta directo con signo)
// ──────────────────────────────────────────────────────────────────────────────

// Ajuste positivo sin costo: entra al promedio vigente, el costo no se mueve.
func TestApply_AjustePositivoSinCostoNoImpactaElPromedio(t *testing.T) {
	s := ledger.Snapshot{Stock: d("8"), AvgCost: d("12.5")}

	res, err := ledger.Apply(s, ledger.ApplyInput{Type: entity.MovementTypeADJUST, Quantity: d("2")})
	require.NoError(t, err)

	assertDecimal(t, d("10"), res.Snapshot.Stock, "stock")
	assertDecimal(t, d("12.5"), res.Snapshot.AvgCost, "promedio intacto")
	assertDecimal(t, d("12.5"), res.UnitCost, "entra al promedio vigente")
}

// Ajuste negativo: sale como OUT al promedio.
func TestApply_AjusteNegativoSaleAlPromedio(t *testing.T) {
	s := ledger.Snapshot{Stock: d("8"), AvgCost: d("12.5")}

	res, err := ledger.Apply(s, ledger.ApplyInput{Type: entity.MovementTypeADJUST, Quantity: d("-3")})
	require.NoError(t, err)

	assertDecimal(t, d("5"), res.Snapshot.Stock, "stock")
	assertDecimal(t, d("12.5"), res.Snapshot.AvgCost, "promedio intacto")
	assertDecimal(t, d("37.5"), res.TotalCost, "3 * 12.5")
}

// Ajuste cero: ErrInvalidInput.
func TestApply_AjusteCeroFalla(t *testing.T) {
	_, err := ledger.Apply(ledger.Snapshot{}, ledger.ApplyInput{Type: entity.MovementTypeADJUST, Quantity: decimal.Zero})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Ajuste negativo mayor al stock: ErrInvalidOperation.
func TestApply_AjusteNegativoMayorAlStockFalla(t *testing.T) {
	s := ledger.Snapshot{Stock: d("2"), AvgCost: d("1")}
	_, err := ledger.Apply(s, ledger.ApplyInput{Type: entity.MovementTypeADJUST, Quantity: d("-5")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Revert — deshacer movimientos (flujos de edición/borrado)
// ──────────────────────────────────────────────────────────────────────────────

// Revertir una salida restaura el stock y el costo registrado al momento del OUT.
func TestRevert_SalidaRestauraStockYCosto(t *testing.T) {
	// Estado tras IN(10@5), IN(10@15), OUT(5): {15, 10}
	s := ledger.Snapshot{Stock: d("15"), AvgCost: d("10")}
	mov := &entity.StockMovement{
		Type:      entity.MovementTypeOUT,
		Quantity:  d("5"),
		UnitCost:  d("10"),
		TotalCost: d("50"),
	}

	next, err := ledger.Revert(s, mov)
	require.NoError(t, err)

	assertDecimal(t, d("20"), next.Stock, "stock restaurado")
	assertDecimal(t, d("10"), next.AvgCost, "costo restaurado al del registro")
}

// Revertir una entrada recupera el promedio previo invirtiendo la mezcla.
func TestRevert_EntradaRecuperaPromedioPrevio(t *testing.T) {
	// Tras IN(10@5) + IN(10@15): {20, 10}. Revertir la segunda entrada → {10, 5}.
	s := ledger.Snapshot{Stock: d("20"), AvgCost: d("10")}
	mov := &entity.StockMovement{
		Type:      entity.MovementTypeIN,
		Quantity:  d("10"),
		UnitCost:  d("15"),
		TotalCost: d("150"),
	}

	next, err := ledger.Revert(s, mov)
	require.NoError(t, err)

	assertDecimal(t, d("10"), next.Stock, "stock previo")
	assertDecimal(t, d("5"), next.AvgCost, "promedio previo recuperado")
}

// Revertir la única entrada deja el snapshot en cero (costo incluido).
func TestRevert_UnicaEntradaVuelveACero(t *testing.T) {
	s := ledger.Snapshot{Stock: d("10"), AvgCost: d("5")}
	mov := &entity.StockMovement{Type: entity.MovementTypeIN, Quantity: d("10"), UnitCost: d("5"), TotalCost: d("50")}

	next, err := ledger.Revert(s, mov)
	require.NoError(t, err)

	assertDecimal(t, decimal.Zero, next.Stock, "stock en cero")
	assertDecimal(t, decimal.Zero, next.AvgCost, "costo en cero con stock cero")
}

// No se puede revertir una entrada ya consumida por debajo de su tamaño.
func TestRevert_EntradaConsumidaFalla(t *testing.T) {
	// Entraron 10 pero solo quedan 4: revertir la entrada dejaría stock -6.
	s := ledger.Snapshot{Stock: d("4"), AvgCost: d("5")}
	mov := &entity.StockMovement{Type: entity.MovementTypeIN, Quantity: d("10"), UnitCost: d("5"), TotalCost: d("50")}

	_, err := ledger.Revert(s, mov)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

// Si el registro no trae TotalCost se usa UnitCost * Quantity.
func TestRevert_EntradaSinTotalCostUsaUnitCost(t *testing.T) {
	s := ledger.Snapshot{Stock: d("20"), AvgCost: d("10")}
	mov := &entity.StockMovement{Type: entity.MovementTypeIN, Quantity: d("10"), UnitCost: d("15")}

	next, err := ledger.Revert(s, mov)
	require.NoError(t, err)

	assertDecimal(t, d("5"), next.AvgCost, "promedio recuperado desde unit_cost")
}

// Revertir un ajuste negativo devuelve el stock como un OUT revertido.
func TestRevert_AjusteNegativo(t *testing.T) {
	s := ledger.Snapshot{Stock: d("5"), AvgCost: d("12.5")}
	mov := &entity.StockMovement{Type: entity.MovementTypeADJUST, Quantity: d("-3"), UnitCost: d("12.5")}

	next, err := ledger.Revert(s, mov)
	require.NoError(t, err)

	assertDecimal(t, d("8"), next.Stock, "stock restaurado")
	assertDecimal(t, d("12.5"), next.AvgCost, "promedio intacto")
}

// Tipo desconocido en revert: ErrInvalidInput.
func TestRevert_TipoNoSoportadoFalla(t *testing.T) {
	_, err := ledger.Revert(ledger.Snapshot{}, &entity.StockMovement{Type: "TRANSFER", Quantity: d("1")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades: round-trip y no-negatividad
// ──────────────────────────────────────────────────────────────────────────────

// Revert(Apply(s, in)) == s para cualquier IN/OUT válido (tolerancia de redondeo).
func TestRoundTrip_ApplyLuegoRevertRestauraElSnapshot(t *testing.T) {
	cases := []struct {
		name  string
		start ledger.Snapshot
		input ledger.ApplyInput
	}{
		{"IN sobre vacío", ledger.Snapshot{}, in("10", "5")},
		{"IN sobre stock existente", ledger.Snapshot{Stock: d("10"), AvgCost: d("5")}, in("10", "15")},
		{"IN fraccional", ledger.Snapshot{Stock: d("3.250"), AvgCost: d("7.33")}, in("1.125", "9.99")},
		{"OUT parcial", ledger.Snapshot{Stock: d("20"), AvgCost: d("10")}, out("5")},
		{"OUT total", ledger.Snapshot{Stock: d("20"), AvgCost: d("10")}, out("20")},
	}

	tolStock := d("0.001")
	tolCost := d("0.01")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ledger.Apply(tc.start, tc.input)
			require.NoError(t, err)

			mov := &entity.StockMovement{
				Type:      tc.input.Type,
				Quantity:  tc.input.Quantity,
				UnitCost:  res.UnitCost,
				TotalCost: res.TotalCost,
			}
			back, err := ledger.Revert(res.Snapshot, mov)
			require.NoError(t, err)

			assert.True(t, tc.start.Stock.Sub(back.Stock).Abs().LessThanOrEqual(tolStock),
				"stock: esperado %s, obtenido %s", tc.start.Stock, back.Stock)
			if back.Stock.GreaterThan(decimal.Zero) {
				assert.True(t, tc.start.AvgCost.Sub(back.AvgCost).Abs().LessThanOrEqual(tolCost),
					"costo: esperado %s, obtenido %s", tc.start.AvgCost, back.AvgCost)
			}
		})
	}
}

// El stock nunca queda negativo bajo ninguna secuencia de Apply exitosos.
func TestInvariante_StockNuncaNegativo(t *testing.T) {
	s := ledger.Snapshot{}
	inputs := []ledger.ApplyInput{
		in("5", "2"),
		out("3"),
		out("2"),
		out("1"), // falla: stock cero
		in("0.5", "4"),
		{Type: entity.MovementTypeADJUST, Quantity: d("-0.5")},
		{Type: entity.MovementTypeADJUST, Quantity: d("-0.001")}, // falla: stock cero
	}

	for i, input := range inputs {
		res, err := ledger.Apply(s, input)
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInvalidOperation, "paso %d", i)
			continue
		}
		s = res.Snapshot
		assert.False(t, s.Stock.IsNegative(), "paso %d: stock negativo %s", i, s.Stock)
	}
}
