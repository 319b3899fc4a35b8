package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
)

const maxBodyBytes = 8 << 20 // product images travel inline as data URLs

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must have only a single json value")
	}
	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}

func (h *Handler) respond(w http.ResponseWriter, status int, data any, headers ...http.Header) {
	if err := writeJSON(w, status, data, headers...); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repo.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, repo.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repo.ErrValidation), errors.Is(err, repo.ErrParse):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError maps an inventory error to its HTTP status. Validation failures
// carry a JSON list of field errors; everything else is plain text.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch {
	case errors.Is(err, repo.ErrValidation):
		h.respond(w, status, ErrorsResponse{Errors: fieldErrors(err)})
	case status == http.StatusInternalServerError:
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal error", status)
	default:
		http.Error(w, err.Error(), status)
	}
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format", name)
	}
	return &v, nil
}

// queryLimit reads ?limit=n for the "recent n" listings. Absent means all.
func queryLimit(r *http.Request) (int, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return 0, err
	}
	if limit == nil {
		return 0, nil
	}
	if *limit <= 0 {
		return 0, errors.New("limit must be greater than zero")
	}
	return *limit, nil
}
