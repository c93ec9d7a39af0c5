package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	komfort "github.com/komfort-mfg/komfort-admin"
	"github.com/komfort-mfg/komfort-admin/internal/dialog"
	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
)

// GenericErrorMessage is shown for failures that did not come from the api client
const GenericErrorMessage = "An error occurred. Please try again."

// dialog titles
const (
	errorTitle   = "Ошибка"
	successTitle = "Готово"
	deleteTitle  = "Удаление"
)

type HandlerService struct {
	ApiClient   *client.Client
	Dialogs     *dialog.Store
	Environment string

	// ResolveWait bounds how long a confirm answer waits for the follow-up alert before redirecting
	ResolveWait time.Duration
}

// NewHandlerService returns a HandlerService using the process-wide dialog store
func NewHandlerService(apiClient *client.Client, environment string) *HandlerService {
	return &HandlerService{
		ApiClient:   apiClient,
		Dialogs:     dialog.Default(),
		Environment: environment,
		ResolveWait: 5 * time.Second,
	}
}

// userMessage returns the message to show for err
func userMessage(err error) string {
	var ce *client.ClientError
	if errors.As(err, &ce) {
		return ce.UserMessage
	}
	return GenericErrorMessage
}

// logError logs err with its technical detail (client errors carry it in LogValue)
func logError(r *http.Request, msg string, err error) {
	reqLogger := logger.ContextRequestLogger(r.Context())

	var ce *client.ClientError
	if errors.As(err, &ce) {
		reqLogger.Error(msg, slog.Any("error", ce))
		return
	}
	reqLogger.Error(msg, slog.String("error", err.Error()))
}

// reportError logs err, opens the error dialog and returns the message for the inline alert
func (h *HandlerService) reportError(r *http.Request, msg string, err error) string {
	logError(r, msg, err)
	userMsg := userMessage(err)
	h.Dialogs.ShowAlert(dialog.KindError, errorTitle, userMsg)
	return userMsg
}

// renderPage renders body inside the layout of the current route
func (h *HandlerService) renderPage(w http.ResponseWriter, r *http.Request, body templ.Component) {
	h.renderPageStatus(w, r, http.StatusOK, body)
}

func (h *HandlerService) renderPageStatus(w http.ResponseWriter, r *http.Request, status int, body templ.Component) {
	route := routes.Current(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	component := templates.Layout(route, h.Dialogs.State(), body)
	if err := component.Render(r.Context(), w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to render page", slog.String("route", route.Name), slog.String("error", err.Error()))
	}
}

// renderListError renders the page with only an error alert after a failed fetch.
// An item the backend does not know gets the not-found page.
func (h *HandlerService) renderListError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	var ce *client.ClientError
	if errors.As(err, &ce) && ce.Kind == client.KindAPI && ce.StatusCode == http.StatusNotFound {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Info(msg, slog.Any("error", ce))
		h.HandleNotFound(w, r)
		return
	}

	userMsg := h.reportError(r, msg, err)
	h.renderPageStatus(w, r, http.StatusBadGateway, templates.ErrorAlert(userMsg))
}

// itemID reads the {id} url parameter
func itemID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int64("item_id", id),
	)
	return id, true
}

// redirect sends the browser to path after a successful form post
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// backTo returns the page that posted the form, falling back to fallback.
// Only same-host referers are used.
func backTo(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}
	if u, err := r.URL.Parse(ref); err == nil && (u.Host == "" || u.Host == r.Host) && u.Path != "" {
		if u.RawQuery != "" {
			return u.Path + "?" + u.RawQuery
		}
		return u.Path
	}
	return fallback
}

// confirmDelete opens the confirm dialog for deleting label and runs del once the user confirms.
// The outcome is reported through the alert dialog. The handler returns immediately and redirects to listPath.
func (h *HandlerService) confirmDelete(w http.ResponseWriter, r *http.Request, label, listPath string, del func(ctx context.Context) error) {
	if label == "" {
		label = "запись"
	}

	id, answer := h.Dialogs.ShowConfirm(dialog.KindWarning, deleteTitle, "Удалить «"+label+"»?", "Удалить", "")

	reqLogger := logger.ContextRequestLogger(r.Context()).With(slog.String("dialog_id", id))
	go func() {
		if confirmed := <-answer; !confirmed {
			reqLogger.Debug("delete cancelled")
			return
		}

		// the request that opened the dialog is finished, the delete gets its own deadline
		ctx, cancel := context.WithTimeout(context.Background(), komfort.RequestTimeout)
		defer cancel()
		ctx = logger.ContextWithRequestLogger(ctx, reqLogger)

		if err := del(ctx); err != nil {
			var ce *client.ClientError
			if errors.As(err, &ce) {
				reqLogger.Error("Failed to delete item", slog.Any("error", ce))
			} else {
				reqLogger.Error("Failed to delete item", slog.String("error", err.Error()))
			}
			h.Dialogs.ShowAlert(dialog.KindError, errorTitle, userMessage(err))
			return
		}
		reqLogger.Info("item deleted", slog.String("label", label))
		h.Dialogs.ShowAlert(dialog.KindSuccess, successTitle, "«"+label+"» удалено.")
	}()

	redirect(w, r, listPath)
}
