package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, brand, description, purchase_cost, sale_price, quantity, reorder_level, location, active, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Brand, &it.Description, &it.PurchaseCost, &it.SalePrice,
		&it.Quantity, &it.ReorderLevel, &it.Location, &it.Active, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID obtiene un item por ID. Devuelve nil sin error si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate obtiene el item y bloquea su fila (SELECT FOR UPDATE). Los
// movimientos concurrentes sobre el mismo item se serializan aquí; items
// distintos no se bloquean entre sí.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

// UpdateQuantity escribe la cantidad absoluta nueva del item.
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	query := `UPDATE items SET quantity = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, quantity)
	if err != nil {
		// Respaldo del CHECK quantity >= 0: el motor no debería llegar aquí.
		if isCheckViolation(err) {
			return fmt.Errorf("%w: la cantidad resultante sería negativa", domain.ErrConflict)
		}
		return fmt.Errorf("update item quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	return nil
}
