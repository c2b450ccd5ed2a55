package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loramgr/internal/registry"
	"loramgr/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Loras() ([]types.Lora, error)
	Resolve(req types.PoolRequest) (types.PoolResponse, error)
	Invalidate()
	Ready() bool
}

// Routes served by NewMux.
const (
	PathLoras  = "/api/lm/loras"
	PathPool   = "/api/lm/loras/pool"
	PathRescan = "/api/lm/loras/rescan"
)

// NewMux builds the resolver router.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get(PathLoras, func(w http.ResponseWriter, r *http.Request) {
		loras, err := svc.Loras()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if loras == nil {
			loras = []types.Lora{}
		}
		writeJSON(w, http.StatusOK, types.LorasResponse{Loras: loras})
	})

	r.Post(PathPool, func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.PoolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// oversized bodies land here too; keep the message generic
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		start := time.Now()
		resp, err := svc.Resolve(req)
		lvl := requestLogLevel(r)
		if err != nil {
			status := writeServiceError(w, err)
			if lvl >= LevelError {
				z := zlog.Error().Int("status", status).Dur("dur", time.Since(start))
				if rid := middleware.GetReqID(r.Context()); rid != "" {
					z = z.Str("request_id", rid)
				}
				z.Err(err).Msg("pool resolve")
			}
			return
		}
		if lvl >= LevelInfo {
			z := zlog.Info().Int("status", http.StatusOK).Int("total_count", resp.TotalCount).Str("sort_by", string(req.SortBy)).Dur("dur", time.Since(start))
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			if lvl >= LevelDebug {
				z = z.Interface("pool_config", req.PoolConfig)
			}
			z.Msg("pool resolve")
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post(PathRescan, func(w http.ResponseWriter, r *http.Request) {
		svc.Invalidate()
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("library unavailable"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	return r
}

// writeServiceError maps well-known registry errors to status codes and
// returns the status written.
func writeServiceError(w http.ResponseWriter, err error) int {
	status := http.StatusInternalServerError
	switch {
	case registry.IsInvalidRequest(err):
		status = http.StatusBadRequest
	case registry.IsDirNotFound(err):
		status = http.StatusServiceUnavailable
	default:
		if he, ok := err.(HTTPError); ok {
			status = he.StatusCode()
		}
	}
	writeJSONError(w, status, err.Error())
	return status
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
