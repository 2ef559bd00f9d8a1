package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/ledger"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// MovementUseCase registra, edita y elimina movimientos de inventario de
// forma transaccional, con bloqueo de fila sobre el producto (SELECT FOR
// UPDATE) y Commit/Rollback. El cálculo del snapshot lo hace el motor de
// ledger (función pura); aquí solo se orquesta la transacción.
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Register crea un movimiento: bloquea la fila del producto, aplica el
// ledger y persiste movimiento + snapshot como una unidad atómica.
func (uc *MovementUseCase) Register(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementOperationResponse, error) {
	if err := validateCostInput(in.Type, in.Quantity, in.UnitCost); err != nil {
		return nil, err
	}
	refType := in.ReferenceType
	if refType == "" {
		refType = entity.ReferenceManual
	}

	var resp *dto.MovementOperationResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(userID, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		res, err := ledger.Apply(snapshotOf(product), ledger.ApplyInput{
			Type:     in.Type,
			Quantity: in.Quantity,
			UnitCost: in.UnitCost,
		})
		if err != nil {
			return err
		}

		now := time.Now()
		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			UserID:        userID,
			ProductID:     product.ID,
			Type:          in.Type,
			Quantity:      in.Quantity,
			UnitCost:      res.UnitCost,
			TotalCost:     res.TotalCost,
			ReferenceType: refType,
			ReferenceID:   in.ReferenceID,
			Reason:        in.Reason,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := productRepo.UpdateSnapshot(userID, product.ID, res.Snapshot.Stock, res.Snapshot.AvgCost); err != nil {
			return err
		}
		resp = toOperationResponse(mov, res.Snapshot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Update edita un movimiento existente: revierte el efecto original sobre el
// snapshot actual y aplica el nuevo, todo en la misma transacción. Si
// cualquier paso falla no queda estado parcial.
func (uc *MovementUseCase) Update(ctx context.Context, userID, movementID string, in dto.UpdateMovementRequest) (*dto.MovementOperationResponse, error) {
	if err := validateCostInput(in.Type, in.Quantity, in.UnitCost); err != nil {
		return nil, err
	}

	var resp *dto.MovementOperationResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetByID(userID, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(userID, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		reverted, err := ledger.Revert(snapshotOf(product), mov)
		if err != nil {
			return err
		}
		res, err := ledger.Apply(reverted, ledger.ApplyInput{
			Type:     in.Type,
			Quantity: in.Quantity,
			UnitCost: in.UnitCost,
		})
		if err != nil {
			return err
		}

		mov.Type = in.Type
		mov.Quantity = in.Quantity
		mov.UnitCost = res.UnitCost
		mov.TotalCost = res.TotalCost
		if in.ReferenceType != "" {
			mov.ReferenceType = in.ReferenceType
		}
		mov.ReferenceID = in.ReferenceID
		mov.Reason = in.Reason
		mov.UpdatedAt = time.Now()

		if err := movRepo.Update(mov); err != nil {
			return err
		}
		if err := productRepo.UpdateSnapshot(userID, product.ID, res.Snapshot.Stock, res.Snapshot.AvgCost); err != nil {
			return err
		}
		resp = toOperationResponse(mov, res.Snapshot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete elimina un movimiento revirtiendo su efecto, atómicamente.
func (uc *MovementUseCase) Delete(ctx context.Context, userID, movementID string) (*dto.ProductSnapshotDTO, error) {
	var snap *dto.ProductSnapshotDTO
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetByID(userID, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(userID, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		reverted, err := ledger.Revert(snapshotOf(product), mov)
		if err != nil {
			return err
		}
		if err := movRepo.Delete(userID, movementID); err != nil {
			return err
		}
		if err := productRepo.UpdateSnapshot(userID, product.ID, reverted.Stock, reverted.AvgCost); err != nil {
			return err
		}
		snap = &dto.ProductSnapshotDTO{CurrentStock: reverted.Stock, AvgCost: reverted.AvgCost}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// GetByID obtiene un movimiento del usuario (lectura simple, fuera de tx).
func (uc *MovementUseCase) GetByID(userID, movementID string) (*dto.MovementResponse, error) {
	mov, err := uc.movementRepo.GetByID(userID, movementID)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, nil
	}
	resp := toMovementResponse(mov)
	return &resp, nil
}

// List lista movimientos del usuario, opcionalmente filtrados por producto
// y rango de fechas.
func (uc *MovementUseCase) List(userID, productID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	var (
		list []*entity.StockMovement
		err  error
	)
	if productID != "" {
		list, err = uc.movementRepo.ListByProduct(userID, productID, from, to, limit, offset)
	} else {
		list, err = uc.movementRepo.ListByUser(userID, from, to, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// validateCostInput valida el costo según el tipo antes de abrir transacción:
// en OUT, y en ADJUST negativo (que descuenta stock), no se acepta costo
// porque la salida siempre va al promedio vigente.
func validateCostInput(movType string, quantity decimal.Decimal, unitCost *decimal.Decimal) error {
	if unitCost == nil {
		return nil
	}
	if movType == entity.MovementTypeOUT {
		return fmt.Errorf("%w: unit_cost no se acepta en salidas, se usa el costo promedio vigente", domain.ErrInvalidInput)
	}
	if movType == entity.MovementTypeADJUST && quantity.IsNegative() {
		return fmt.Errorf("%w: unit_cost no se acepta en ajustes negativos, se usa el costo promedio vigente", domain.ErrInvalidInput)
	}
	return nil
}

func snapshotOf(p *entity.Product) ledger.Snapshot {
	return ledger.Snapshot{Stock: p.CurrentStock, AvgCost: p.AvgCost}
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toOperationResponse(m *entity.StockMovement, s ledger.Snapshot) *dto.MovementOperationResponse {
	return &dto.MovementOperationResponse{
		Movement: toMovementResponse(m),
		Product:  dto.ProductSnapshotDTO{CurrentStock: s.Stock, AvgCost: s.AvgCost},
	}
}
