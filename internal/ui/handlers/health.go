package handlers

import (
	"log/slog"
	"net/http"

	"github.com/komfort-mfg/komfort-admin/internal/logger"
)

// HandleLiveness reports that the process is serving requests
func (h *HandlerService) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

// HandleReadiness reports whether the backend api is reachable
func (h *HandlerService) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := h.ApiClient.Health(r.Context()); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Warn("backend api not ready", slog.Any("error", err))

		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(userMessage(err)))
		return
	}
	_, _ = w.Write([]byte("OK"))
}
