package listener

import (
	"encoding/json"
	"net/http"

	"pathctx/pkg/conf"
)

const (
	HealthPath  = "/health"
	VersionPath = "/version"
	WsPath      = "/ws"
)

type VersionHolder struct {
	ProtoVersion string `json:"ProtoVersion"`
	Version      string `json:"Version"`
}

var HttpVersionResponse = &VersionHolder{
	ProtoVersion: conf.ProtoVersion,
	Version:      conf.Version,
}

// RouterConfig holds options for enabling/disabling endpoints
type RouterConfig struct {
	ServerHeader string

	// Toggleable endpoints
	HealthOn  bool
	VersionOn bool
}

// NewRouter creates an http.ServeMux with the websocket endpoint and the
// configured handlers
func NewRouter(cfg *RouterConfig, ws http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", notFoundHandler(cfg))
	mux.Handle(WsPath, ws)

	if cfg.HealthOn {
		mux.HandleFunc(HealthPath, healthHandler(cfg))
	}
	if cfg.VersionOn {
		mux.HandleFunc(VersionPath, versionHandler(cfg))
	}

	return mux
}

// healthHandler serves the /health endpoint
func healthHandler(cfg *RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.ServerHeader != "" {
			w.Header().Add("server", cfg.ServerHeader)
		}
		_, _ = w.Write([]byte("OK"))
	}
}

// versionHandler serves the /version endpoint
func versionHandler(cfg *RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.ServerHeader != "" {
			w.Header().Add("server", cfg.ServerHeader)
		}
		w.Header().Add("Content-Type", "application/json")
		vRes, mErr := json.Marshal(HttpVersionResponse)
		if mErr != nil {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("Failed to process Version"))
			return
		}
		_, _ = w.Write(vRes)
	}
}

func notFoundHandler(cfg *RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.ServerHeader != "" {
			w.Header().Add("server", cfg.ServerHeader)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("Not found"))
	}
}
