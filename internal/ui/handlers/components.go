package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/komfort-mfg/komfort-admin/internal/dialog"
	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
)

// heartbeatInterval keeps idle event streams open through proxies
const heartbeatInterval = 30 * time.Second

// DialogFragment renders the current dialogs without the page layout (GET /ui-api/dialog)
func (h *HandlerService) DialogFragment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	component := templates.DialogModal(h.Dialogs.State())
	if err := component.Render(r.Context(), w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to render DialogModal", slog.String("error", err.Error()))
	}
}

// DialogEvents streams a server-sent "dialog" event carrying the JSON state on every change (GET /ui-api/dialog/events)
func (h *HandlerService) DialogEvents(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())
	rc := http.NewResponseController(w)

	// the stream outlives the server write timeout
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		reqLogger.Debug("could not clear write deadline", slog.String("error", err.Error()))
	}

	events := make(chan dialog.State, 16)
	unsubscribe := h.Dialogs.Subscribe(func(st dialog.State) {
		select {
		case events <- st:
		default:
			// slow reader, it gets the next change
		}
	})
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	if err := writeDialogEvent(w, "connected", h.Dialogs.State()); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		reqLogger.Error("event stream not supported", slog.String("error", err.Error()))
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case st := <-events:
			if err := writeDialogEvent(w, "dialog", st); err != nil {
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeDialogEvent(w http.ResponseWriter, event string, st dialog.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}

// ConfirmDialog answers the open confirm with "confirmed" (POST /ui-api/dialog/{id}/confirm).
//
// Confirming usually triggers work that reports back through the alert dialog, so the handler
// waits up to ResolveWait for the alert to change before sending the browser back to the page.
func (h *HandlerService) ConfirmDialog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	before := h.Dialogs.State().Alert.ID
	alerted := make(chan struct{}, 1)
	unsubscribe := h.Dialogs.Subscribe(func(st dialog.State) {
		if st.Alert.ID != before {
			select {
			case alerted <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	if !h.Dialogs.Resolve(id, true) {
		h.staleDialog(w, r, id)
		return
	}

	if h.ResolveWait > 0 {
		timer := time.NewTimer(h.ResolveWait)
		defer timer.Stop()

		select {
		case <-alerted:
		case <-timer.C:
		case <-r.Context().Done():
		}
	}
	h.dialogAnswered(w, r)
}

// CancelDialog answers the open confirm with "cancelled" (POST /ui-api/dialog/{id}/cancel)
func (h *HandlerService) CancelDialog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.Dialogs.Resolve(id, false) {
		h.staleDialog(w, r, id)
		return
	}
	h.dialogAnswered(w, r)
}

// DismissDialog closes the alert (POST /ui-api/dialog/{id}/dismiss)
func (h *HandlerService) DismissDialog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.Dialogs.DismissAlert(id) {
		h.staleDialog(w, r, id)
		return
	}
	h.dialogAnswered(w, r)
}

// dialogAnswered returns scripted callers the new dialog fragment and sends browsers back to the page
func (h *HandlerService) dialogAnswered(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Requested-With") == "fetch" {
		h.DialogFragment(w, r)
		return
	}
	redirect(w, r, backTo(r, "/"))
}

// staleDialog handles answers to dialogs that were already closed or replaced: they are ignored
func (h *HandlerService) staleDialog(w http.ResponseWriter, r *http.Request, id string) {
	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.String("dialog_id", id),
		slog.Bool("stale", true),
	)
	h.dialogAnswered(w, r)
}
