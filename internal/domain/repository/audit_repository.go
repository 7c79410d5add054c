package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia de auditoría (append-only).
// Solo lo invoca el motor del libro de movimientos, dentro de la misma
// transacción que el movimiento que origina la entrada.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
}
