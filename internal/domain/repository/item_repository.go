package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ItemRepository define el puerto de lectura/escritura del catálogo de items.
// La escritura de Quantity es exclusiva del motor del libro de movimientos y
// solo tiene sentido dentro de una transacción con la fila bloqueada.
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del item (SELECT FOR UPDATE) para que la
	// lectura y la escritura posterior pertenezcan a la misma unidad atómica.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// UpdateQuantity escribe la cantidad absoluta nueva. El caller es
	// responsable de la corrección del delta.
	UpdateQuantity(ctx context.Context, id string, quantity int64) error
}
