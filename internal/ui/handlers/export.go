package handlers

import (
	"bytes"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/export"
)

// HandleExportProducts downloads the product list as xlsx (GET /products/export)
func (h *HandlerService) HandleExportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ApiClient.FetchProducts(r.Context())
	if err != nil {
		h.exportFailed(w, r, err)
		return
	}
	h.writeWorkbook(w, r, "products", export.Products(products))
}

// HandleExportPartners downloads the partner list as xlsx (GET /partners/export)
func (h *HandlerService) HandleExportPartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.ApiClient.FetchPartners(r.Context())
	if err != nil {
		h.exportFailed(w, r, err)
		return
	}
	h.writeWorkbook(w, r, "partners", export.Partners(partners))
}

// HandleExportMaterials downloads the material list as xlsx (GET /warehouse/materials/export)
func (h *HandlerService) HandleExportMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := h.ApiClient.FetchMaterials(r.Context())
	if err != nil {
		h.exportFailed(w, r, err)
		return
	}
	h.writeWorkbook(w, r, "materials", export.Materials(materials))
}

// HandleExportEmployees downloads the employee list as xlsx (GET /staff/export)
func (h *HandlerService) HandleExportEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.ApiClient.FetchEmployees(r.Context())
	if err != nil {
		h.exportFailed(w, r, err)
		return
	}
	h.writeWorkbook(w, r, "employees", export.Employees(employees))
}

// writeWorkbook buffers the workbook so a failure can still be reported with a proper status
func (h *HandlerService) writeWorkbook(w http.ResponseWriter, r *http.Request, base string, sheet export.Sheet) {
	var buf bytes.Buffer
	if err := export.Write(&buf, sheet); err != nil {
		h.exportFailed(w, r, err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.String("export", base),
		slog.Int("rows", len(sheet.Rows)),
	)

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": export.FileName(base, time.Now()),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("Failed to write export", slog.String("error", err.Error()))
	}
}

// exportFailed answers a download link: the error goes to the alert dialog and the browser goes back to the list
func (h *HandlerService) exportFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.reportError(r, "Failed to export list", err)
	redirect(w, r, backTo(r, "/"))
}
