package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventory-core/internal/domain"
	"github.com/tu-usuario/inventory-core/internal/domain/entity"
	"github.com/tu-usuario/inventory-core/pkg/logger"
)

// TransferInput entrada para trasladar stock entre ubicaciones.
type TransferInput struct {
	ProductID      string
	FromLocationID string
	ToLocationID   string
	Quantity       int64
	Reason         string
	ActorID        string
}

// TransferUseCase compone dos apply (débito en origen, crédito en destino)
// como una operación lógica con un reference number compartido. Las dos
// mitades tocan claves distintas y no comparten lock ni transacción: si la
// entrada en destino falla se compensa el origen con un ajuste inverso.
type TransferUseCase struct {
	mutator *ApplyMovementUseCase
	log     *logger.Logger
}

// NewTransferUseCase construye el coordinador de traslados.
func NewTransferUseCase(mutator *ApplyMovementUseCase, log *logger.Logger) *TransferUseCase {
	return &TransferUseCase{mutator: mutator, log: log}
}

// Transfer mueve quantity unidades de producto entre dos ubicaciones.
// Devuelve los dos movimientos (salida, entrada) con magnitud igual, tipos
// opuestos y el mismo reference number.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*entity.Movement, *entity.Movement, error) {
	if input.ProductID == "" || input.FromLocationID == "" || input.ToLocationID == "" {
		return nil, nil, domain.ErrInvalidTransfer
	}
	if input.FromLocationID == input.ToLocationID || input.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidTransfer
	}

	ref := uuid.New().String()

	// Paso 1: débito en origen. Si falla (stock insuficiente, lock) no se
	// escribió nada y el traslado completo falla.
	_, outMov, err := uc.mutator.Apply(ctx, MovementInput{
		ProductID:       input.ProductID,
		LocationID:      input.FromLocationID,
		Type:            entity.MovementTypeTransferOut,
		QuantityDelta:   -input.Quantity,
		ReferenceNumber: ref,
		Reason:          input.Reason,
		ActorID:         input.ActorID,
	})
	if err != nil {
		return nil, nil, err
	}

	// Paso 2: crédito en destino.
	_, inMov, err := uc.mutator.Apply(ctx, MovementInput{
		ProductID:       input.ProductID,
		LocationID:      input.ToLocationID,
		Type:            entity.MovementTypeTransferIn,
		QuantityDelta:   input.Quantity,
		ReferenceNumber: ref,
		Reason:          input.Reason,
		ActorID:         input.ActorID,
	})
	if err != nil {
		uc.compensate(ctx, input, ref)
		return nil, nil, err
	}

	return outMov, inMov, nil
}

// compensate restaura el origen con un ajuste inverso cuando el crédito en
// destino falló después de haber debitado. Best-effort: si también falla solo
// queda registrado para remediación manual (el libro conserva ambas mitades).
func (uc *TransferUseCase) compensate(ctx context.Context, input TransferInput, ref string) {
	_, _, err := uc.mutator.Apply(ctx, MovementInput{
		ProductID:       input.ProductID,
		LocationID:      input.FromLocationID,
		Type:            entity.MovementTypeAdjustment,
		QuantityDelta:   input.Quantity,
		ReferenceNumber: ref,
		Reason:          "transfer rollback",
		ActorID:         input.ActorID,
	})
	if err != nil {
		uc.log.Error().Err(err).
			Str("product_id", input.ProductID).
			Str("from_location_id", input.FromLocationID).
			Str("reference_number", ref).
			Msg("compensación de traslado falló; requiere remediación manual")
	}
}
