package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveRequest body para POST /api/inventory/receipts.
type ReceiveRequest struct {
	ItemID        string          `json:"item_id" validate:"required,uuid"`
	SupplierID    *string         `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	Quantity      int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	BatchID       *string         `json:"batch_id,omitempty" validate:"omitempty,max=64"`
	EffectiveDate time.Time       `json:"effective_date" validate:"required"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	ReceivedBy    *string         `json:"received_by,omitempty" validate:"omitempty,max=128"`
	OperatorID    string          `json:"operator_id" validate:"required,uuid"`
	Note          *string         `json:"note,omitempty" validate:"omitempty,max=500"`
}

// DispatchRequest body para POST /api/inventory/dispatches.
// DispatchType acepta sale, internal_use, adjustment o damaged (cualquier caja).
type DispatchRequest struct {
	ItemID        string           `json:"item_id" validate:"required,uuid"`
	Quantity      int64            `json:"quantity" validate:"required,gt=0"`
	DispatchType  string           `json:"dispatch_type" validate:"required"`
	Destination   *string          `json:"destination,omitempty" validate:"omitempty,max=200"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	ResponsibleID *string          `json:"responsible_id,omitempty" validate:"omitempty,uuid"`
	OperatorID    string           `json:"operator_id" validate:"required,uuid"`
	Note          *string          `json:"note,omitempty" validate:"omitempty,max=500"`
	EffectiveDate time.Time        `json:"effective_date" validate:"required"`
}

// MovementResponse respuesta de creación de movimiento.
type MovementResponse struct {
	MovementID string `json:"movement_id"`
}

// MovementDTO representa un movimiento en listados.
type MovementDTO struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	Kind          string          `json:"kind"`
	DispatchType  *string         `json:"dispatch_type,omitempty"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	Destination   *string         `json:"destination,omitempty"`
	BatchID       *string         `json:"batch_id,omitempty"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	EffectiveDate time.Time       `json:"effective_date"`
	RecordedBy    string          `json:"recorded_by"`
	Note          *string         `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}
