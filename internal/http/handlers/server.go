package handlers

import (
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-ledger/internal/inventory"
)

// Handler serves the inventory over HTTP.
type Handler struct {
	inv       *inventory.Inventory
	logger    *zap.Logger
	validator *validator.Validate
}

// NewHandler constructs a Handler. A nil logger discards output.
func NewHandler(inv *inventory.Inventory, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{inv: inv, logger: logger, validator: v}
}

// MountRoutes registers every inventory route on r.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.GetProductsHandler)
		r.Post("/", h.CreateProductHandler)
		r.Get("/search", h.FilterProductsHandler)
		r.Get("/sku", h.SuggestSKUHandler)
		r.Post("/import", h.ImportProductsHandler)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetProductByIDHandler)
			r.Put("/", h.UpdateProductHandler)
			r.Delete("/", h.DeleteProductHandler)
			r.Post("/restock", h.RestockHandler)
			r.Post("/sell", h.SellHandler)
			r.Get("/movements", h.GetMovementsHandler)
		})
	})

	r.Get("/categories", h.GetCategoriesHandler)
	r.Get("/stock-outs", h.GetStockOutsHandler)
	r.Post("/stock-outs", h.StockOutHandler)
	r.Get("/stock-outs/reasons", h.GetStockOutReasonsHandler)
	r.Get("/transactions", h.GetTransactionsHandler)
	r.Get("/activities", h.GetActivitiesHandler)

	r.Route("/reports", func(r chi.Router) {
		r.Get("/dashboard", h.GetDashboardMetricsHandler)
		r.Get("/low-stock", h.GetLowStockHandler)
		r.Get("/out-of-stock", h.GetOutOfStockHandler)
		r.Get("/categories", h.GetCategoryBreakdownHandler)
		r.Get("/movements", h.GetMovementSummaryHandler)
	})

	r.Get("/settings/threshold", h.GetThresholdHandler)
	r.Put("/settings/threshold", h.SetThresholdHandler)

	r.Get("/export", h.ExportJSONHandler)
	r.Get("/export/csv", h.ExportCSVHandler)
	r.Post("/import", h.ImportJSONHandler)
	r.Delete("/data", h.ClearDataHandler)
}
