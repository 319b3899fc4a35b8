package handlers

import (
	"net/http"
)

const defaultMovementSummary = 10

// GetDashboardMetricsHandler godoc
// @Summary Dashboard totals
// @Tags reports
// @Produce json
// @Success 200 {object} repo.DashboardTotals
// @Router /reports/dashboard [get]
func (h *Handler) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.inv.DashboardTotals())
}

// GetLowStockHandler godoc
// @Summary Products at or below the low-stock threshold
// @Tags reports
// @Produce json
// @Success 200 {array} models.Product
// @Router /reports/low-stock [get]
func (h *Handler) GetLowStockHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.inv.LowStockReport())
}

// GetOutOfStockHandler godoc
// @Summary Products with no stock
// @Tags reports
// @Produce json
// @Success 200 {array} models.Product
// @Router /reports/out-of-stock [get]
func (h *Handler) GetOutOfStockHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.inv.OutOfStockReport())
}

// GetCategoryBreakdownHandler godoc
// @Summary Units in stock per category
// @Tags reports
// @Produce json
// @Success 200 {array} repo.CategoryTotal
// @Router /reports/categories [get]
func (h *Handler) GetCategoryBreakdownHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.inv.CategoryBreakdown())
}

// GetMovementSummaryHandler godoc
// @Summary Latest stock movements
// @Tags reports
// @Produce json
// @Param limit query int false "Number of movements (default 10)"
// @Success 200 {array} models.StockTransaction
// @Failure 400 {string} string "Invalid limit"
// @Router /reports/movements [get]
func (h *Handler) GetMovementSummaryHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if limit == 0 {
		limit = defaultMovementSummary
	}
	h.respond(w, http.StatusOK, h.inv.StockMovementSummary(limit))
}
