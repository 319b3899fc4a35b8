package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rogerio-castellano/inventory-ledger/internal/models"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory. An empty SKU is filled with a suggestion.
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorsResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := h.validate(req); len(errs) > 0 {
		h.respond(w, http.StatusBadRequest, ErrorsResponse{Errors: errs})
		return
	}

	created, err := h.inv.AddProduct(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, created)
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *Handler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.inv.Products())
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {string} string "Not found"
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.inv.Product(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, product)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description The product's stock history is kept.
// @Tags products
// @Param id path string true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := h.inv.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Overwrites every editable field. The id and date added are kept.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorsResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := h.validate(req); len(errs) > 0 {
		h.respond(w, http.StatusBadRequest, ErrorsResponse{Errors: errs})
		return
	}

	updated, err := h.inv.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

// FilterProductsHandler godoc
// @Summary Filter and paginate products
// @Tags products
// @Produce json
// @Param search query string false "Match name or SKU"
// @Param category query string false "Exact category"
// @Param status query string false "in-stock, low-stock or out-of-stock"
// @Param minQty query int false "Minimum quantity"
// @Param maxQty query int false "Maximum quantity"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Router /products/search [get]
func (h *Handler) FilterProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}

	if s := q.Get("status"); s != "" {
		status, ok := models.ParseStatus(s)
		if !ok {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		filter.Status = status
	}

	for name, dst := range map[string]**int{
		"minQty": &filter.MinQty,
		"maxQty": &filter.MaxQty,
		"offset": &filter.Offset,
		"limit":  &filter.Limit,
	} {
		v, err := queryInt(r, name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		*dst = v
	}

	if filter.Limit != nil && *filter.Limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	if filter.Offset != nil && *filter.Offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	products, total := h.inv.SearchProducts(filter)
	h.respond(w, http.StatusOK, ProductsSearchResult{Data: products, Meta: Meta{TotalCount: total}})
}

// SuggestSKUHandler godoc
// @Summary Suggest a SKU for a new product
// @Tags products
// @Produce json
// @Success 200 {object} SKUResponse
// @Router /products/sku [get]
func (h *Handler) SuggestSKUHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, SKUResponse{SKU: h.inv.SuggestSKU()})
}

// GetCategoriesHandler godoc
// @Summary List distinct product categories
// @Tags products
// @Produce json
// @Success 200 {array} string
// @Router /categories [get]
func (h *Handler) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.inv.Categories())
}
