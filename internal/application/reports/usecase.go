package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

const (
	defaultMovementLimit = 20
	maxMovementLimit     = 100
	maxLowStockAlerts    = 10
)

// DashboardUseCase arma las vistas de solo lectura de bodega (contadores,
// alertas de stock bajo, listados). No tiene responsabilidad sobre invariantes:
// consulta estado confirmado por el motor.
type DashboardUseCase struct {
	repo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Dashboard devuelve estadísticas, alertas de stock bajo y el catálogo activo.
func (uc *DashboardUseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	items, err := uc.repo.ListActiveItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar items activos: %w", err)
	}
	lowStock, err := uc.repo.CountLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar stock bajo: %w", err)
	}
	since := time.Now().AddDate(0, 0, -30)
	receipts, err := uc.repo.CountMovementsSince(ctx, entity.MovementKindReceipt, since)
	if err != nil {
		return nil, fmt.Errorf("contar entradas del mes: %w", err)
	}
	dispatches, err := uc.repo.CountMovementsSince(ctx, entity.MovementKindDispatch, since)
	if err != nil {
		return nil, fmt.Errorf("contar salidas del mes: %w", err)
	}
	alerts, err := uc.repo.ListLowStock(ctx, maxLowStockAlerts)
	if err != nil {
		return nil, fmt.Errorf("listar alertas de stock bajo: %w", err)
	}

	resp := &dto.DashboardResponse{
		Stats: dto.DashboardStatsDTO{
			TotalItems:           int64(len(items)),
			LowStock:             lowStock,
			ReceiptsLast30Days:   receipts,
			DispatchesLast30Days: dispatches,
		},
		Alerts: make([]dto.LowStockAlertDTO, 0, len(alerts)),
		Items:  make([]dto.ItemDTO, 0, len(items)),
	}
	for _, it := range alerts {
		resp.Alerts = append(resp.Alerts, dto.LowStockAlertDTO{
			ItemID:       it.ID,
			Name:         it.Name,
			Brand:        it.Brand,
			Quantity:     it.Quantity,
			ReorderLevel: it.ReorderLevel,
			Deficit:      it.ReorderLevel - it.Quantity,
			Location:     it.Location,
		})
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.ItemDTO{
			ID:           it.ID,
			Name:         it.Name,
			Brand:        it.Brand,
			Description:  it.Description,
			PurchaseCost: it.PurchaseCost,
			SalePrice:    it.SalePrice,
			Quantity:     it.Quantity,
			ReorderLevel: it.ReorderLevel,
			Location:     it.Location,
		})
	}
	return resp, nil
}

// RecentMovements lista los últimos movimientos. kind vacío = todos;
// si no, debe ser RECEIPT o DISPATCH.
func (uc *DashboardUseCase) RecentMovements(ctx context.Context, kind string, limit int) ([]dto.MovementDTO, error) {
	if kind != "" && kind != entity.MovementKindReceipt && kind != entity.MovementKindDispatch {
		return nil, fmt.Errorf("%w: clase de movimiento desconocida %q", domain.ErrInvalidInput, kind)
	}
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}
	movements, err := uc.repo.ListRecentMovements(ctx, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos recientes: %w", err)
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:            m.ID,
			ItemID:        m.ItemID,
			Kind:          m.Kind,
			DispatchType:  m.DispatchType,
			Quantity:      m.Quantity,
			UnitPrice:     m.UnitPrice,
			SupplierID:    m.SupplierID,
			Destination:   m.Destination,
			BatchID:       m.BatchID,
			ExpiryDate:    m.ExpiryDate,
			EffectiveDate: m.EffectiveDate,
			RecordedBy:    m.RecordedBy,
			Note:          m.Note,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}
