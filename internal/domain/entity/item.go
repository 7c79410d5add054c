package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto almacenado en bodega.
// Quantity es el stock actual; solo el motor del libro de movimientos puede
// modificarlo (nunca se escribe por otra vía). Nunca se elimina físicamente:
// se desactiva con Active=false.
type Item struct {
	ID           string
	Name         string
	Brand        string
	Description  string
	PurchaseCost decimal.Decimal // precio de compra unitario
	SalePrice    decimal.Decimal // precio de venta unitario
	Quantity     int64           // stock actual, invariante >= 0
	ReorderLevel int64           // stock mínimo antes de alertar reposición
	Location     *string         // ubicación en bodega (opcional)
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el item está en o por debajo de su nivel de reposición.
func (i *Item) LowStock() bool {
	return i.Quantity > 0 && i.Quantity <= i.ReorderLevel
}
