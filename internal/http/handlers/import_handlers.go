package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-ledger/internal/export"
	"github.com/rogerio-castellano/inventory-ledger/internal/persistence"
)

func attachment(name string) http.Header {
	return http.Header{"Content-Disposition": []string{fmt.Sprintf(`attachment; filename="%s"`, name)}}
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, sku, category, quantity, cost_price, selling_price, supplier.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} export.ImportResult
// @Failure 400 {string} string "Invalid file"
// @Router /products/import [post]
func (h *Handler) ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := export.ParseImportMode(r.URL.Query().Get("mode"))

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := export.ImportProductsCSV(r.Context(), h.inv, file, mode)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("csv import finished",
		zap.String("mode", string(mode)),
		zap.Int("imported", res.Imported),
		zap.Int("updated", res.Updated),
		zap.Int("errors", len(res.Errors)))
	h.respond(w, http.StatusOK, res)
}

// ExportCSVHandler godoc
// @Summary Download the product list as CSV
// @Tags export
// @Produce text/csv
// @Success 200 {file} file
// @Router /export/csv [get]
func (h *Handler) ExportCSVHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := export.WriteProductsCSV(&buf, h.inv.Products()); err != nil {
		h.writeError(w, r, err)
		return
	}
	for k, v := range attachment(export.FileName(time.Now())) {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "text/csv")
	if _, err := io.Copy(w, &buf); err != nil {
		h.logger.Error("failed to write csv export", zap.Error(err))
	}
}

// ExportJSONHandler godoc
// @Summary Download a full JSON backup
// @Tags export
// @Produce json
// @Success 200 {object} persistence.Snapshot
// @Router /export [get]
func (h *Handler) ExportJSONHandler(w http.ResponseWriter, r *http.Request) {
	snap := h.inv.ExportSnapshot()
	h.respond(w, http.StatusOK, snap, attachment(persistence.SnapshotFileName(snap.ExportDate)))
}

// ImportJSONHandler godoc
// @Summary Restore a JSON backup
// @Description Replaces products, both stock logs and the threshold. A malformed file changes nothing.
// @Tags import
// @Accept json
// @Produce json
// @Param backup body persistence.Snapshot true "Backup file"
// @Success 200 {object} ImportDataResult
// @Failure 400 {string} string "Malformed backup"
// @Failure 500 {string} string "Internal error"
// @Router /import [post]
func (h *Handler) ImportJSONHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "could not read body", http.StatusBadRequest)
		return
	}

	st, err := h.inv.ImportSnapshot(r.Context(), data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, ImportDataResult{
		Products:          len(st.Products),
		StockTransactions: len(st.StockTransactions),
		StockOutHistory:   len(st.StockOutHistory),
		LowStockThreshold: st.LowStockThreshold,
	})
}
