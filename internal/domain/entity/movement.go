package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clases de movimiento del libro de inventario.
const (
	MovementKindReceipt  = "RECEIPT"  // entrada de mercancía
	MovementKindDispatch = "DISPATCH" // salida de mercancía
)

// Tipos de salida (solo para DISPATCH).
const (
	DispatchTypeSale        = "SALE"
	DispatchTypeInternalUse = "INTERNAL_USE"
	DispatchTypeAdjustment  = "ADJUSTMENT"
	DispatchTypeDamaged     = "DAMAGED"
)

// ValidDispatchType verifica que el tipo de salida pertenezca al catálogo.
func ValidDispatchType(t string) bool {
	switch t {
	case DispatchTypeSale, DispatchTypeInternalUse, DispatchTypeAdjustment, DispatchTypeDamaged:
		return true
	}
	return false
}

// Movement representa una entrada o salida de inventario. Es inmutable una vez
// escrito: las correcciones se hacen con un movimiento compensatorio, nunca
// editando o borrando la fila.
type Movement struct {
	ID            string
	ItemID        string
	Kind          string  // RECEIPT | DISPATCH
	DispatchType  *string // solo salidas: SALE, INTERNAL_USE, ADJUSTMENT, DAMAGED
	Quantity      int64   // siempre > 0; el signo lo da Kind
	UnitPrice     decimal.Decimal
	SupplierID    *string    // solo entradas (opcional)
	Destination   *string    // solo salidas (opcional)
	BatchID       *string    // lote, solo entradas (opcional)
	ExpiryDate    *time.Time // solo entradas (opcional)
	EffectiveDate time.Time
	ReceivedBy    *string // quien recibió la mercancía (entradas, opcional)
	ResponsibleID *string // responsable de la salida (opcional)
	RecordedBy    string  // operador que registró el movimiento
	Note          *string
	CreatedAt     time.Time
}

// Delta devuelve el cambio con signo que el movimiento aplica al stock.
func (m *Movement) Delta() int64 {
	if m.Kind == MovementKindDispatch {
		return -m.Quantity
	}
	return m.Quantity
}
