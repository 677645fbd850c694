package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/upload_lite/internal/models"
)

// Write транслирует доменные ошибки в HTTP-статусы. Превышение
// декларированного размера — ошибка клиента: байты уже на диске, и клиенту
// остаётся начать цель заново.
func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrSizeExceeded):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
