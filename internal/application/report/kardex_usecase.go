package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Máximo de movimientos incluidos en un reporte (los más recientes).
const maxReportMovements = 500

// KardexPDFGenerator puerto hacia el generador de PDF (infraestructura).
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, product *entity.Product, movements []*entity.StockMovement) ([]byte, error)
}

// KardexUseCase genera el reporte PDF del kardex de un producto: cabecera
// con el snapshot actual y tabla de movimientos.
type KardexUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	generator    KardexPDFGenerator
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	generator KardexPDFGenerator,
) *KardexUseCase {
	return &KardexUseCase{productRepo: productRepo, movementRepo: movementRepo, generator: generator}
}

// GenerateProductKardex devuelve los bytes del PDF y un nombre de archivo
// sugerido. Rango de fechas opcional.
func (uc *KardexUseCase) GenerateProductKardex(ctx context.Context, userID, productID string, from, to *time.Time) ([]byte, string, error) {
	product, err := uc.productRepo.GetByID(userID, productID)
	if err != nil {
		return nil, "", err
	}
	if product == nil {
		return nil, "", domain.ErrNotFound
	}
	movements, err := uc.movementRepo.ListByProduct(userID, productID, from, to, maxReportMovements, 0)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateKardexPDF(ctx, product, movements)
	if err != nil {
		return nil, "", fmt.Errorf("reporte kardex: %w", err)
	}
	filename := fmt.Sprintf("kardex-%s-%s.pdf", product.ID[:8], time.Now().Format("20060102"))
	return pdfBytes, filename, nil
}
