package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
)

// GetThresholdHandler godoc
// @Summary Current low-stock threshold
// @Tags settings
// @Produce json
// @Success 200 {object} models.Settings
// @Router /settings/threshold [get]
func (h *Handler) GetThresholdHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, models.Settings{LowStockThreshold: h.inv.Threshold()})
}

// SetThresholdHandler godoc
// @Summary Change the low-stock threshold
// @Description Negative or non-numeric values fall back to 5. Every product status is re-derived.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body ThresholdRequest true "New threshold"
// @Success 200 {object} models.Settings
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /settings/threshold [put]
func (h *Handler) SetThresholdHandler(w http.ResponseWriter, r *http.Request) {
	var req ThresholdRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	stored, err := h.inv.SetThreshold(r.Context(), models.ParseThreshold(req.LowStockThreshold))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, models.Settings{LowStockThreshold: stored})
}

// GetActivitiesHandler godoc
// @Summary Recent activity, newest first
// @Tags activity
// @Produce json
// @Param limit query int false "Number of entries (default all, at most 100 are kept)"
// @Success 200 {array} models.ActivityEntry
// @Failure 400 {string} string "Invalid limit"
// @Router /activities [get]
func (h *Handler) GetActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respond(w, http.StatusOK, h.inv.RecentActivities(limit))
}

// ClearDataHandler godoc
// @Summary Delete every product and both stock logs
// @Description The threshold and the activity log are kept.
// @Tags settings
// @Success 204 "Cleared"
// @Failure 500 {string} string "Internal error"
// @Router /data [delete]
func (h *Handler) ClearDataHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.inv.ClearAll(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
