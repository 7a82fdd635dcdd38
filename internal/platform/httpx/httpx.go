// Package httpx concentra la forma de las respuestas JSON.
// Todos los módulos responden errores como {"error": "..."}.
package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"vet-records/internal/platform/apperr"
	"vet-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/juju/errors"
)

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, messageBody{Message: msg})
}

func WriteErrorMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// StatusOf traduce el tipo juju del error a status HTTP.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errors.NotValid),
		errors.Is(err, errors.BadRequest),
		errors.Is(err, errors.AlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, errors.Unauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errors.Forbidden):
		return http.StatusForbidden
	case errors.Is(err, errors.NotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.Conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError responde con el mensaje del error tipado. Los 500 se loguean y
// el cliente solo recibe "internal error".
func WriteError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error("unhandled error", map[string]any{
				"error":      errors.Details(err),
				"method":     r.Method,
				"path":       r.URL.Path,
				"request_id": chimw.GetReqID(r.Context()),
			})
		}
		WriteErrorMessage(w, status, "internal error")
		return
	}
	WriteErrorMessage(w, status, err.Error())
}

// PathID lee un id numérico de la ruta. Un id no numérico o fuera de rango
// (las columnas son SERIAL) no puede existir, así que responde como no encontrado.
func PathID(r *http.Request, name, entity string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.NotFound(entity + " not found")
	}
	return id, nil
}

// QueryID lee un id opcional de la query. nil si no vino.
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return nil, apperr.Invalidf("%s must be a positive integer", name)
	}
	return &id, nil
}
