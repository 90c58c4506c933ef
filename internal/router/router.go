package router

import (
	"encoding/json"
	"net/http"

	_ "dogs-api/docs"
	mem "dogs-api/internal/adapters/storage/memory"
	"dogs-api/internal/domain/dogs"
	"dogs-api/internal/middleware"
	"dogs-api/internal/platform/logger"
	"dogs-api/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, usa el store en memoria.
	Repo dogs.Repository

	// Opcional: nil descarta los logs.
	Logger logger.Logger

	// Opcional: si viene, instrumenta requests y expone /metrics.
	Metrics *metrics.Manager

	EnableSwagger bool
}

type messageResponse struct {
	Message string `json:"message" example:"hey there"`
}

// NewRouter arma la tabla de rutas una sola vez; no se modifica después.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	repo := opts.Repo
	if repo == nil {
		repo = mem.NewDogRepo()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(log))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	r.Use(middleware.Recover(log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, messageResponse{Message: "method not allowed"})
	})

	r.Get("/", rootHandler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	dogs.RegisterRoutes(r, dogs.NewService(repo), log)

	return r
}

// rootHandler godoc
// @Summary Saludo
// @Tags root
// @Produce json
// @Success 200 {object} messageResponse
// @Router / [get]
func rootHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "hey there"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
