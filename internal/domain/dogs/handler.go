package dogs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"dogs-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	customErrorMessage = "something went wrong"

	maxBodyBytes = 1 << 20
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc, log))
		dr.Post("/", createDogHandler(svc, log))

		dr.Get("/{id}", getDogHandler(svc, log))
		dr.Put("/{id}", updateDogHandler(svc, log))
		dr.Delete("/{id}", deleteDogHandler(svc, log))
	})
}

// dogRequest usa punteros para distinguir null/ausente; ambos cuentan como faltantes.
type dogRequest struct {
	Name   *string  `json:"name"`
	Weight *float64 `json:"weight"`
}

// dogResponse es la representación JSON de un perro.
type dogResponse struct {
	ID     int64   `json:"id" example:"1"`
	Name   string  `json:"name" example:"Rex"`
	Weight float64 `json:"weight" example:"40"`
}

// errorResponse es el cuerpo de todas las respuestas de error.
type errorResponse struct {
	Message       string `json:"message"`
	CustomMessage string `json:"customMessage,omitempty"`
}

// listDogsHandler godoc
// @Summary Listar perros
// @Tags dogs
// @Produce json
// @Success 200 {array} dogResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs [get]
func listDogsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.FindAll(r.Context())
		if err != nil {
			writeStoreError(w, log, "find all dogs", err)
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getDogHandler godoc
// @Summary Obtener perro por id
// @Tags dogs
// @Produce json
// @Param id path int true "ID del perro"
// @Success 200 {object} dogResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs/{id} [get]
func getDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "id")

		d, err := svc.FindByID(r.Context(), parseID(rawID))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{
					Message: fmt.Sprintf("no dog with id %s", rawID),
				})
				return
			}
			writeStoreError(w, log, "find dog", err)
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// createDogHandler godoc
// @Summary Crear perro
// @Description name y weight son obligatorios; "" y 0 cuentan como faltantes.
// @Tags dogs
// @Accept json
// @Produce json
// @Param payload body dogRequest true "Datos del perro"
// @Success 201 {object} dogResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs [post]
func createDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeFields(w, r)
		if !ok {
			return
		}

		d, err := svc.Create(r.Context(), in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Message: ErrInvalidInput.Error()})
				return
			}
			writeStoreError(w, log, "create dog", err)
			return
		}

		writeJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

// updateDogHandler godoc
// @Summary Reemplazar nombre y peso de un perro
// @Tags dogs
// @Accept json
// @Produce json
// @Param id path int true "ID del perro"
// @Param payload body dogRequest true "Datos del perro"
// @Success 200 {object} dogResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs/{id} [put]
func updateDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "id")

		in, ok := decodeFields(w, r)
		if !ok {
			return
		}

		d, err := svc.Update(r.Context(), parseID(rawID), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				writeJSON(w, http.StatusBadRequest, errorResponse{Message: ErrInvalidInput.Error()})
			case errors.Is(err, ErrNotFound):
				writeJSON(w, http.StatusNotFound, errorResponse{
					Message: fmt.Sprintf("no dog with id %s", rawID),
				})
			default:
				writeStoreError(w, log, "update dog", err)
			}
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// deleteDogHandler godoc
// @Summary Eliminar perro
// @Tags dogs
// @Produce json
// @Param id path int true "ID del perro"
// @Success 200 {object} dogResponse "el perro eliminado"
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/dogs/{id} [delete]
func deleteDogHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "id")

		d, err := svc.Delete(r.Context(), parseID(rawID))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, errorResponse{
					Message: fmt.Sprintf("dog with id %s does not exist", rawID),
				})
				return
			}
			writeStoreError(w, log, "delete dog", err)
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// decodeFields lee {name, weight}. Body vacío equivale a {}.
// Si el JSON es inválido (o trae algo después del objeto) responde 400 y
// devuelve ok=false.
func decodeFields(w http.ResponseWriter, r *http.Request) (Fields, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	var req dogRequest
	err := dec.Decode(&req)
	if err == nil {
		// Un solo valor JSON por body.
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errTrailingData
			if extra != nil {
				err = extra
			}
		}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Message: "request body too large"})
			return Fields{}, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid json"})
		return Fields{}, false
	}

	var in Fields
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Weight != nil {
		in.Weight = *req.Weight
	}
	return in, true
}

var errTrailingData = errors.New("trailing data after json body")

// parseID devuelve 0 si el id no son solo dígitos; el service lo trata como inexistente.
func parseID(raw string) int64 {
	if raw == "" {
		return 0
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func writeStoreError(w http.ResponseWriter, log logger.Logger, op string, err error) {
	log.Error("store operation failed", map[string]any{
		"op":    op,
		"error": err.Error(),
	})
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Message:       err.Error(),
		CustomMessage: customErrorMessage,
	})
}

func toDogResponse(d Dog) dogResponse {
	return dogResponse{
		ID:     d.ID,
		Name:   d.Name,
		Weight: d.Weight,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
