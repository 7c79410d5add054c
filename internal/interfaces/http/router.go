package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *ledger.LedgerUseCase
	Dashboard     *reports.DashboardUseCase
	ExposeMetrics bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// Movimientos de inventario (el motor es la única vía de mutación de stock)
	inv := api.Group("/inventory")
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	inv.Post("/receipts", ledgerHandler.Receive)
	inv.Post("/dispatches", ledgerHandler.Dispatch)

	// Lecturas (dashboard, movimientos recientes)
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	inv.Get("/movements", dashboardHandler.RecentMovements)
	api.Get("/dashboard", dashboardHandler.Dashboard)
}
