package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ReportRepository define las lecturas que consume el agregador de dashboards.
// Son consultas puras sobre estado confirmado: nunca observan un movimiento en
// vuelo ni participan de las transacciones del motor.
type ReportRepository interface {
	ListActiveItems(ctx context.Context) ([]*entity.Item, error)
	// ListRecentMovements lista los últimos movimientos; kind vacío = todos.
	ListRecentMovements(ctx context.Context, kind string, limit int) ([]*entity.Movement, error)
	CountLowStock(ctx context.Context) (int64, error)
	CountMovementsSince(ctx context.Context, kind string, since time.Time) (int64, error)
	// ListLowStock devuelve items activos en o bajo su nivel de reposición,
	// ordenados por déficit descendente.
	ListLowStock(ctx context.Context, limit int) ([]*entity.Item, error)
}
