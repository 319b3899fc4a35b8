package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
)

type FieldError struct {
	Field       string `json:"field,omitempty"`
	Description string `json:"description"`
}

func describe(fe validator.FieldError) string {
	label := fe.Field()
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "gte":
		return label + " cannot be negative"
	case "gt":
		return label + " must be greater than zero"
	}
	return label + " is invalid"
}

// validate runs the struct tags of req and returns one FieldError per failure.
func (h *Handler) validate(req any) []FieldError {
	err := h.validator.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Description: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Description: describe(fe)})
	}
	return out
}

// fieldErrors flattens joined validation errors from the inventory core.
func fieldErrors(err error) []FieldError {
	var out []FieldError
	var walk func(error)
	walk = func(e error) {
		if multi, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range multi.Unwrap() {
				walk(inner)
			}
			return
		}
		var ve *repo.ValidationError
		if errors.As(e, &ve) {
			out = append(out, FieldError{Field: ve.Field, Description: ve.Description})
			return
		}
		out = append(out, FieldError{Description: e.Error()})
	}
	walk(err)
	return out
}
