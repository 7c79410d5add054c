package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para dashboards. Siempre sobre el pool:
// observa únicamente estado confirmado.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de lecturas.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// ListActiveItems lista el catálogo activo ordenado por nombre.
func (r *ReportRepo) ListActiveItems(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE active ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// ListRecentMovements lista los últimos movimientos; kind vacío = todos.
func (r *ReportRepo) ListRecentMovements(ctx context.Context, kind string, limit int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = $1`
		args = append(args, kind)
	}
	query += fmt.Sprintf(` ORDER BY effective_date DESC, created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recent movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountLowStock cuenta items activos con stock en o bajo su nivel de reposición.
func (r *ReportRepo) CountLowStock(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM items WHERE active AND quantity > 0 AND quantity <= reorder_level`
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// CountMovementsSince cuenta movimientos de una clase desde una fecha.
func (r *ReportRepo) CountMovementsSince(ctx context.Context, kind string, since time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM movements WHERE kind = $1 AND effective_date >= $2`
	var n int64
	if err := r.q.QueryRow(ctx, query, kind, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements since: %w", err)
	}
	return n, nil
}

// ListLowStock lista items activos en o bajo su nivel de reposición, los de
// mayor déficit primero.
func (r *ReportRepo) ListLowStock(ctx context.Context, limit int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE active AND quantity > 0 AND quantity <= reorder_level
		ORDER BY (reorder_level - quantity) DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
