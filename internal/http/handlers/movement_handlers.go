package handlers

import (
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/inventory-ledger/internal/inventory"
	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
)

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request, apply func(id string, qty int) (models.StockTransaction, error)) {
	var req QuantityRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := h.validate(req); len(errs) > 0 {
		h.respond(w, http.StatusBadRequest, ErrorsResponse{Errors: errs})
		return
	}

	id := chi.URLParam(r, "id")
	tx, err := apply(id, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	product, err := h.inv.Product(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, MovementResult{Product: product, Transaction: tx})
}

// RestockHandler godoc
// @Summary Add stock to a product
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param restock body QuantityRequest true "Units received"
// @Success 200 {object} MovementResult
// @Failure 400 {object} ErrorsResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/restock [post]
func (h *Handler) RestockHandler(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, func(id string, qty int) (models.StockTransaction, error) {
		return h.inv.Restock(r.Context(), id, qty)
	})
}

// SellHandler godoc
// @Summary Record a sale
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param sale body QuantityRequest true "Units sold"
// @Success 200 {object} MovementResult
// @Failure 400 {object} ErrorsResponse
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Insufficient stock"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/sell [post]
func (h *Handler) SellHandler(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, func(id string, qty int) (models.StockTransaction, error) {
		return h.inv.Sell(r.Context(), id, qty)
	})
}

// StockOutHandler godoc
// @Summary Remove stock for a tracked reason
// @Description Reasons are listed by GET /stock-outs/reasons. An empty date means today.
// @Tags inventory
// @Accept json
// @Produce json
// @Param stockOut body StockOutRequest true "Stock-out"
// @Success 201 {object} models.StockOutRecord
// @Failure 400 {object} ErrorsResponse
// @Failure 404 {string} string "Not found"
// @Failure 409 {object} ErrorsResponse
// @Failure 500 {string} string "Internal error"
// @Router /stock-outs [post]
func (h *Handler) StockOutHandler(w http.ResponseWriter, r *http.Request) {
	var req StockOutRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := h.validate(req); len(errs) > 0 {
		h.respond(w, http.StatusBadRequest, ErrorsResponse{Errors: errs})
		return
	}

	rec, err := h.inv.StockOut(r.Context(), inventory.StockOutInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, rec)
}

// GetStockOutsHandler godoc
// @Summary Recent stock-outs, newest first
// @Tags inventory
// @Produce json
// @Param limit query int false "Number of records (default all)"
// @Success 200 {array} models.StockOutRecord
// @Failure 400 {string} string "Invalid limit"
// @Router /stock-outs [get]
func (h *Handler) GetStockOutsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respond(w, http.StatusOK, h.inv.RecentStockOuts(limit))
}

// GetStockOutReasonsHandler godoc
// @Summary Accepted stock-out reasons
// @Tags inventory
// @Produce json
// @Success 200 {array} string
// @Router /stock-outs/reasons [get]
func (h *Handler) GetStockOutReasonsHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, models.StockOutReasons())
}

// GetTransactionsHandler godoc
// @Summary Recent stock transactions, newest first
// @Tags inventory
// @Produce json
// @Param limit query int false "Number of records (default all)"
// @Success 200 {array} models.StockTransaction
// @Failure 400 {string} string "Invalid limit"
// @Router /transactions [get]
func (h *Handler) GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.respond(w, http.StatusOK, h.inv.RecentTransactions(limit))
}

// parseTimeParam reads an optional timestamp query parameter.
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	// A literal "+" in a query string decodes to a space:
	// 2025-07-03T17:44:03+02:00 arrives as 2025-07-03T17:44:03 02:00.
	if len(s) == len(time.RFC3339) && s[len(s)-6] == ' ' {
		s = s[:len(s)-6] + "+" + s[len(s)-5:]
	}
	ts, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// GetMovementsHandler godoc
// @Summary Get product movement logs
// @Tags movements
// @Produce json
// @Param id path string true "Product ID"
// @Param since query string false "Filter movements from this timestamp"
// @Param until query string false "Filter movements until this timestamp"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Router /products/{id}/movements [get]
func (h *Handler) GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	var mf repo.MovementFilter
	var err error

	if mf.Since, err = parseTimeParam(r, "since"); err != nil {
		http.Error(w, "invalid since date format", http.StatusBadRequest)
		return
	}
	if mf.Until, err = parseTimeParam(r, "until"); err != nil {
		http.Error(w, "invalid until date format", http.StatusBadRequest)
		return
	}
	if mf.Limit, err = queryInt(r, "limit"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if mf.Limit != nil && *mf.Limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if mf.Offset, err = queryInt(r, "offset"); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if mf.Offset != nil && *mf.Offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	movements, total, err := h.inv.ProductMovements(chi.URLParam(r, "id"), mf)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, MovementsSearchResult{Data: movements, Meta: Meta{TotalCount: total}})
}
