// Package render centraliza la serialización JSON de respuestas y el
// decode estricto de bodies.
package render

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/kasadel/mallcore/internal/http/errors"
)

// JSON escribe v como application/json con el status dado.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode parsea el body en dst. Campos desconocidos son error: detecta
// typos en los nombres de campo en lugar de ignorarlos en silencio.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.ErrInvalidJSON.WithCause(err)
	}
	return nil
}
