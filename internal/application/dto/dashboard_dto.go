package dto

import "github.com/shopspring/decimal"

// ItemDTO representa un item del catálogo en listados.
type ItemDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Description  string          `json:"description,omitempty"`
	PurchaseCost decimal.Decimal `json:"purchase_cost"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	Quantity     int64           `json:"quantity"`
	ReorderLevel int64           `json:"reorder_level"`
	Location     *string         `json:"location,omitempty"`
}

// LowStockAlertDTO alerta de item en o bajo su nivel de reposición.
type LowStockAlertDTO struct {
	ItemID       string  `json:"item_id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Quantity     int64   `json:"quantity"`
	ReorderLevel int64   `json:"reorder_level"`
	Deficit      int64   `json:"deficit"`
	Location     *string `json:"location,omitempty"`
}

// DashboardStatsDTO contadores del dashboard de bodega.
type DashboardStatsDTO struct {
	TotalItems           int64 `json:"total_items"`
	LowStock             int64 `json:"low_stock"`
	ReceiptsLast30Days   int64 `json:"receipts_last_30d"`
	DispatchesLast30Days int64 `json:"dispatches_last_30d"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Stats  DashboardStatsDTO  `json:"stats"`
	Alerts []LowStockAlertDTO `json:"alerts"`
	Items  []ItemDTO          `json:"items"`
}
