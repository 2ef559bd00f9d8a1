package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testProductID = "aaaaaaaa-0000-0000-0000-000000000001"
)

type fakeProductRepo struct {
	product *entity.Product
}

func (r *fakeProductRepo) Create(*entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(userID, id string) (*entity.Product, error) {
	if r.product != nil && r.product.UserID == userID && r.product.ID == id {
		return r.product, nil
	}
	return nil, nil
}
func (r *fakeProductRepo) GetByUserAndSKU(string, string) (*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(userID, id string) (*entity.Product, error) {
	return r.GetByID(userID, id)
}
func (r *fakeProductRepo) Update(*entity.Product) error { return nil }
func (r *fakeProductRepo) UpdateSnapshot(string, string, decimal.Decimal, decimal.Decimal) error {
	return nil
}
func (r *fakeProductRepo) ListByUser(string, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Delete(string, string) error { return nil }

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(*entity.StockMovement) error { return nil }
func (r *fakeMovementRepo) GetByID(string, string) (*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) Update(*entity.StockMovement) error { return nil }
func (r *fakeMovementRepo) Delete(string, string) error        { return nil }
func (r *fakeMovementRepo) ListByUser(string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}
func (r *fakeMovementRepo) ListByProduct(string, string, *time.Time, *time.Time, int, int) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

type fakeGenerator struct {
	lastProduct   *entity.Product
	lastMovements []*entity.StockMovement
	err           error
}

func (g *fakeGenerator) GenerateKardexPDF(_ context.Context, p *entity.Product, m []*entity.StockMovement) ([]byte, error) {
	g.lastProduct = p
	g.lastMovements = m
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func testProduct() *entity.Product {
	return &entity.Product{
		ID:           testProductID,
		UserID:       testUserID,
		Name:         "Café molido",
		CurrentStock: decimal.RequireFromString("12.500"),
		AvgCost:      decimal.RequireFromString("18.40"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateProductKardex_DevuelvePDFYNombreArchivo(t *testing.T) {
	gen := &fakeGenerator{}
	uc := NewKardexUseCase(
		&fakeProductRepo{product: testProduct()},
		&fakeMovementRepo{movements: []*entity.StockMovement{{ID: "m1", Type: entity.MovementTypeIN}}},
		gen,
	)

	pdfBytes, filename, err := uc.GenerateProductKardex(context.Background(), testUserID, testProductID, nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, pdfBytes, "debe devolver los bytes del PDF")
	assert.True(t, strings.HasPrefix(filename, "kardex-"), "el nombre debe empezar con kardex-")
	assert.True(t, strings.HasSuffix(filename, ".pdf"), "el nombre debe terminar en .pdf")

	require.NotNil(t, gen.lastProduct)
	assert.Equal(t, testProductID, gen.lastProduct.ID, "el generador debe recibir el producto")
	assert.Len(t, gen.lastMovements, 1)
}

func TestGenerateProductKardex_ProductoInexistente_RetornaNotFound(t *testing.T) {
	uc := NewKardexUseCase(&fakeProductRepo{}, &fakeMovementRepo{}, &fakeGenerator{})

	_, _, err := uc.GenerateProductKardex(context.Background(), testUserID, testProductID, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGenerateProductKardex_ProductoDeOtroUsuario_RetornaNotFound(t *testing.T) {
	uc := NewKardexUseCase(
		&fakeProductRepo{product: testProduct()},
		&fakeMovementRepo{},
		&fakeGenerator{},
	)

	_, _, err := uc.GenerateProductKardex(context.Background(), "00000000-0000-0000-0000-000000000099", testProductID, nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto ajeno debe responderse como no encontrado")
}

func TestGenerateProductKardex_ErrorDelGenerador_SePropaga(t *testing.T) {
	genErr := errors.New("fuente no disponible")
	uc := NewKardexUseCase(
		&fakeProductRepo{product: testProduct()},
		&fakeMovementRepo{},
		&fakeGenerator{err: genErr},
	)

	_, _, err := uc.GenerateProductKardex(context.Background(), testUserID, testProductID, nil, nil)
	assert.ErrorIs(t, err, genErr)
}
