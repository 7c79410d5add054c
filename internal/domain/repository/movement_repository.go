package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos
// (append-only: las filas nunca se actualizan ni se borran).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
}
