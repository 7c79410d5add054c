package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// LedgerUseCase es el motor del libro de movimientos: valida y aplica entradas
// y salidas como una unidad atómica (bloqueo de fila + Commit/Rollback) contra
// el contador de stock compartido.
//
// Contrato de entrega: at-least-once, deduplicado por el caller. Reenviar una
// petición idéntica tras un timeout de resultado desconocido crea un segundo
// movimiento si el primero alcanzó a confirmarse; el motor no deduplica por
// identidad de petición.
type LedgerUseCase struct {
	txRunner TxRunner
}

// NewLedgerUseCase construye el motor.
func NewLedgerUseCase(txRunner TxRunner) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner}
}

// ReceiveInput datos para registrar una entrada de mercancía.
type ReceiveInput struct {
	ItemID        string
	Quantity      int64
	UnitPrice     decimal.Decimal
	OperatorID    string
	SupplierID    *string
	BatchID       *string
	ExpiryDate    *time.Time
	EffectiveDate time.Time
	ReceivedBy    *string
	Note          *string
}

// DispatchInput datos para registrar una salida de mercancía.
type DispatchInput struct {
	ItemID        string
	Quantity      int64
	DispatchType  string
	OperatorID    string
	Destination   *string
	UnitPrice     *decimal.Decimal
	ResponsibleID *string
	EffectiveDate time.Time
	Note          *string
}

// Receive valida y aplica una entrada: suma Quantity al stock del item y deja
// el movimiento y su entrada de auditoría en la misma transacción.
// Devuelve el ID del movimiento creado.
func (uc *LedgerUseCase) Receive(ctx context.Context, in ReceiveInput) (string, error) {
	if err := validateCommon(in.ItemID, in.Quantity, in.OperatorID, in.EffectiveDate); err != nil {
		return "", err
	}
	if in.UnitPrice.IsNegative() {
		return "", fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		Kind:          entity.MovementKindReceipt,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		SupplierID:    in.SupplierID,
		BatchID:       in.BatchID,
		ExpiryDate:    in.ExpiryDate,
		EffectiveDate: in.EffectiveDate,
		ReceivedBy:    in.ReceivedBy,
		RecordedBy:    in.OperatorID,
		Note:          in.Note,
		CreatedAt:     now,
	}
	return uc.apply(ctx, mov)
}

// Dispatch valida y aplica una salida: verifica stock suficiente con la fila
// bloqueada, resta Quantity y deja movimiento + auditoría en la misma
// transacción. Con stock insuficiente devuelve InsufficientStockError con la
// cantidad disponible, sin escribir nada.
func (uc *LedgerUseCase) Dispatch(ctx context.Context, in DispatchInput) (string, error) {
	if err := validateCommon(in.ItemID, in.Quantity, in.OperatorID, in.EffectiveDate); err != nil {
		return "", err
	}
	if !entity.ValidDispatchType(in.DispatchType) {
		return "", fmt.Errorf("%w: tipo de salida desconocido %q", domain.ErrInvalidInput, in.DispatchType)
	}
	unitPrice := decimal.Zero
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return "", fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
		}
		unitPrice = *in.UnitPrice
	}

	now := time.Now()
	dispatchType := in.DispatchType
	mov := &entity.Movement{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		Kind:          entity.MovementKindDispatch,
		DispatchType:  &dispatchType,
		Quantity:      in.Quantity,
		UnitPrice:     unitPrice,
		Destination:   in.Destination,
		EffectiveDate: in.EffectiveDate,
		ResponsibleID: in.ResponsibleID,
		RecordedBy:    in.OperatorID,
		Note:          in.Note,
		CreatedAt:     now,
	}
	return uc.apply(ctx, mov)
}

// validateCommon valida los campos compartidos antes de tocar almacenamiento.
func validateCommon(itemID string, quantity int64, operatorID string, effectiveDate time.Time) error {
	if itemID == "" {
		return fmt.Errorf("%w: falta el producto", domain.ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if operatorID == "" {
		return fmt.Errorf("%w: falta el operador que registra", domain.ErrInvalidInput)
	}
	// El operador viene del caller (la autenticación es externa); aun así debe
	// ser un identificador bien formado para la integridad de la auditoría.
	if err := uuid.Validate(operatorID); err != nil {
		return fmt.Errorf("%w: operador mal formado %q", domain.ErrInvalidInput, operatorID)
	}
	if effectiveDate.IsZero() {
		return fmt.Errorf("%w: falta la fecha efectiva", domain.ErrInvalidInput)
	}
	return nil
}

// apply ejecuta la unidad atómica compartida por entradas y salidas: bloquea la
// fila del item, verifica la precondición según el signo del delta, escribe la
// cantidad nueva y agrega movimiento + auditoría. Dos salidas concurrentes
// sobre el mismo item se serializan en el lock de fila; items distintos no se
// bloquean entre sí.
func (uc *LedgerUseCase) apply(ctx context.Context, mov *entity.Movement) (string, error) {
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
		auditRepo repository.AuditRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, mov.ItemID)
		if err != nil {
			return err
		}
		if item == nil || !item.Active {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, mov.ItemID)
		}
		delta := mov.Delta()
		if delta < 0 && item.Quantity < mov.Quantity {
			return &domain.InsufficientStockError{
				ItemID:    item.ID,
				Requested: mov.Quantity,
				Available: item.Quantity,
			}
		}
		if err := itemRepo.UpdateQuantity(ctx, item.ID, item.Quantity+delta); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return auditRepo.Create(ctx, auditFor(mov))
	})
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}

// auditFor arma la entrada de auditoría de un movimiento aceptado. El detalle
// describe verbo, cantidad, producto y tipo de salida: suficiente para
// reconstruir la intención desde la auditoría sola.
func auditFor(mov *entity.Movement) *entity.AuditEntry {
	detail := fmt.Sprintf("Entrada de %d unidades del producto %s", mov.Quantity, mov.ItemID)
	if mov.Kind == entity.MovementKindDispatch {
		detail = fmt.Sprintf("Salida de %d unidades del producto %s - Tipo: %s",
			mov.Quantity, mov.ItemID, *mov.DispatchType)
	}
	return &entity.AuditEntry{
		ID:        uuid.New().String(),
		ActorID:   mov.RecordedBy,
		Action:    entity.AuditActionInsert,
		Entity:    entity.AuditEntityMovement,
		EntityID:  mov.ID,
		Detail:    detail,
		CreatedAt: mov.CreatedAt,
	}
}
