package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/numerals"
)

// NumeralHandler spells out integers.
type NumeralHandler struct{}

// NewNumeralHandler creates a new NumeralHandler.
func NewNumeralHandler() *NumeralHandler {
	return &NumeralHandler{}
}

// Spell renders the path value as words.
func (h *NumeralHandler) Spell(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "value")

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid numeral value", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NumeralResponse{
		Value: value,
		Text:  numerals.Render(value),
	})
}
