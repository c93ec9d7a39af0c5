package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
	"github.com/komfort-mfg/komfort-admin/internal/ui/types"
)

// HandleWarehouse renders the suppliers and materials lists
func (h *HandlerService) HandleWarehouse(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.ApiClient.FetchSuppliers(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch suppliers", err)
		return
	}
	materials, err := h.ApiClient.FetchMaterials(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch materials", err)
		return
	}

	h.renderPage(w, r, templates.Stack(
		templates.Table(suppliersTable(suppliers)),
		templates.Table(materialsTable(materials)),
	))
}

func suppliersTable(suppliers []client.Supplier) types.TableView {
	view := types.TableView{
		Heading: "Поставщики",
		Columns: []types.Column{
			{Label: "Тип"},
			{Label: "Наименование"},
			{Label: "ИНН"},
			{Label: "Телефон"},
			{Label: "Email"},
		},
		AddHref:  routes.Path(routes.SupplierNew),
		AddLabel: "Добавить поставщика",
		Empty:    "Поставщики не найдены.",
	}
	for _, s := range suppliers {
		id := formatID(s.ID)
		view.Rows = append(view.Rows, types.Row{
			Cells:        []string{s.SupplierType, s.Name, s.INN, s.Phone, s.Email},
			Links:        []types.Link{{Href: routes.Path(routes.SupplierEdit, id), Label: "Изменить"}},
			DeleteAction: routes.DeletePath(routes.SupplierEdit, id),
			DeleteLabel:  s.Name,
		})
	}
	return view
}

func materialsTable(materials []client.Material) types.TableView {
	view := types.TableView{
		Heading: "Материалы",
		Columns: []types.Column{
			{Label: "Наименование"},
			{Label: "Тип материала"},
			{Label: "Поставщик"},
			{Label: "Ед. изм."},
			{Label: "Цена", Numeric: true},
			{Label: "На складе", Numeric: true},
			{Label: "Минимум", Numeric: true},
		},
		AddHref:    routes.Path(routes.MaterialNew),
		AddLabel:   "Добавить материал",
		ExportHref: routes.ExportPath(routes.Warehouse),
		Empty:      "Материалы не найдены.",
	}
	for _, m := range materials {
		id := formatID(m.ID)
		view.Rows = append(view.Rows, types.Row{
			Cells: []string{
				m.Name,
				m.MaterialType,
				m.SupplierName,
				m.Unit,
				types.FormatMoney(m.Cost),
				types.FormatInt(m.StockQuantity),
				types.FormatInt(m.MinQuantity),
			},
			Links:        []types.Link{{Href: routes.Path(routes.MaterialEdit, id), Label: "Изменить"}},
			DeleteAction: routes.DeletePath(routes.MaterialEdit, id),
			DeleteLabel:  m.Name,
			Warn:         m.BelowMinimum(),
		})
	}
	return view
}

// =============================================================================
// SUPPLIERS
// =============================================================================

var supplierFieldNames = []string{"supplier_type", "name", "inn", "phone", "email"}

func supplierValues(s client.Supplier) formValues {
	return formValues{
		"supplier_type": s.SupplierType,
		"name":          s.Name,
		"inn":           s.INN,
		"phone":         s.Phone,
		"email":         s.Email,
	}
}

func supplierForm(action string, values formValues) types.FormPage {
	return types.FormPage{
		Action: action,
		Fields: []types.Field{
			selectField(values, "supplier_type", types.PartnerTypeOptions()),
			field(values, "name", types.FieldText, true),
			field(values, "inn", types.FieldText, true),
			field(values, "phone", types.FieldTel, false),
			field(values, "email", types.FieldEmail, false),
		},
		BackHref: routes.Path(routes.Warehouse),
	}
}

func parseSupplier(values formValues) (client.SupplierWritePayload, string) {
	p := newFormParser(values)
	payload := client.SupplierWritePayload{
		SupplierType: p.text("supplier_type"),
		Name:         p.text("name"),
		INN:          p.text("inn"),
		Phone:        p.text("phone"),
		Email:        p.text("email"),
	}
	return payload, p.err()
}

func (h *HandlerService) HandleSupplierNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, supplierForm(routes.Path(routes.SupplierNew), formValues{}))
}

func (h *HandlerService) HandleSupplierCreate(w http.ResponseWriter, r *http.Request) {
	h.submitSupplier(w, r, 0)
}

func (h *HandlerService) HandleSupplierEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	supplier, err := h.ApiClient.FetchSupplier(r.Context(), id)
	if err != nil {
		h.renderListError(w, r, "Failed to fetch supplier", err)
		return
	}

	form := supplierForm(routes.Path(routes.SupplierEdit, formatID(id)), supplierValues(*supplier))
	form.DeleteAction = routes.DeletePath(routes.SupplierEdit, formatID(id))
	form.DeleteLabel = supplier.Name
	h.renderForm(w, r, http.StatusOK, form)
}

func (h *HandlerService) HandleSupplierUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.submitSupplier(w, r, id)
}

func (h *HandlerService) submitSupplier(w http.ResponseWriter, r *http.Request, id int64) {
	action := routes.Path(routes.SupplierNew)
	if id != 0 {
		action = routes.Path(routes.SupplierEdit, formatID(id))
	}

	values, err := readForm(r, supplierFieldNames...)
	if err != nil {
		h.rejectForm(w, r, supplierForm(action, formValues{}), GenericErrorMessage)
		return
	}
	form := supplierForm(action, values)

	payload, parseErr := parseSupplier(values)
	if parseErr != "" {
		h.rejectForm(w, r, form, parseErr)
		return
	}

	var saved *client.Supplier
	if id == 0 {
		saved, err = h.ApiClient.CreateSupplier(r.Context(), payload)
	} else {
		saved, err = h.ApiClient.UpdateSupplier(r.Context(), id, payload)
	}
	if err != nil {
		h.submitFailed(w, r, form, "Failed to save supplier", err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int64("supplier_id", saved.ID),
	)
	redirect(w, r, routes.Path(routes.Warehouse))
}

func (h *HandlerService) HandleSupplierDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.confirmDelete(w, r, r.FormValue("label"), routes.Path(routes.Warehouse), func(ctx context.Context) error {
		return h.ApiClient.DeleteSupplier(ctx, id)
	})
}

// =============================================================================
// MATERIALS
// =============================================================================

var materialFieldNames = []string{
	"name", "material_type_id", "supplier", "unit", "quantity_in_package",
	"description", "image_url", "cost", "stock_quantity", "min_quantity",
}

// materialLookups are the select options of the material form
type materialLookups struct {
	materialTypes []client.LookupItem
	suppliers     []client.Supplier
}

func (h *HandlerService) fetchMaterialLookups(ctx context.Context) (materialLookups, error) {
	var l materialLookups
	var err error

	if l.materialTypes, err = h.ApiClient.FetchMaterialTypes(ctx); err != nil {
		return l, err
	}
	if l.suppliers, err = h.ApiClient.FetchSuppliers(ctx); err != nil {
		return l, err
	}
	return l, nil
}

func materialValues(m client.Material) formValues {
	return formValues{
		"name":                m.Name,
		"material_type_id":    formatID(m.MaterialTypeID),
		"supplier":            formatID(m.Supplier),
		"unit":                m.Unit,
		"quantity_in_package": optionalInt(m.QuantityInPackage),
		"description":         m.Description,
		"image_url":           m.ImageURL,
		"cost":                m.Cost.StringFixed(2),
		"stock_quantity":      strconv.Itoa(m.StockQuantity),
		"min_quantity":        strconv.Itoa(m.MinQuantity),
	}
}

func materialForm(action string, values formValues, l materialLookups) types.FormPage {
	cost := field(values, "cost", types.FieldDecimal, true)
	cost.Min = "0"
	stock := field(values, "stock_quantity", types.FieldNumber, true)
	stock.Min = "0"
	minimum := field(values, "min_quantity", types.FieldNumber, true)
	minimum.Min = "0"
	perPackage := field(values, "quantity_in_package", types.FieldNumber, false)
	perPackage.Min = "1"

	return types.FormPage{
		Action: action,
		Fields: []types.Field{
			field(values, "name", types.FieldText, true),
			selectField(values, "material_type_id", types.LookupOptions(l.materialTypes)),
			selectField(values, "supplier", types.SupplierOptions(l.suppliers)),
			field(values, "unit", types.FieldText, true),
			perPackage,
			field(values, "description", types.FieldTextarea, false),
			field(values, "image_url", types.FieldURL, false),
			cost,
			stock,
			minimum,
		},
		BackHref: routes.Path(routes.Warehouse),
	}
}

func parseMaterial(values formValues) (client.MaterialWritePayload, string) {
	p := newFormParser(values)
	payload := client.MaterialWritePayload{
		Name:              p.text("name"),
		MaterialTypeID:    p.id("material_type_id"),
		Supplier:          p.id("supplier"),
		Unit:              p.text("unit"),
		QuantityInPackage: p.optionalInt("quantity_in_package"),
		Description:       p.text("description"),
		ImageURL:          p.text("image_url"),
		Cost:              p.decimal("cost"),
		StockQuantity:     p.int("stock_quantity"),
		MinQuantity:       p.int("min_quantity"),
	}
	return payload, p.err()
}

func (h *HandlerService) HandleMaterialNew(w http.ResponseWriter, r *http.Request) {
	lookups, err := h.fetchMaterialLookups(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch material lookups", err)
		return
	}
	h.renderForm(w, r, http.StatusOK, materialForm(routes.Path(routes.MaterialNew), formValues{}, lookups))
}

func (h *HandlerService) HandleMaterialCreate(w http.ResponseWriter, r *http.Request) {
	h.submitMaterial(w, r, 0)
}

func (h *HandlerService) HandleMaterialEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	material, err := h.ApiClient.FetchMaterial(r.Context(), id)
	if err != nil {
		h.renderListError(w, r, "Failed to fetch material", err)
		return
	}
	lookups, err := h.fetchMaterialLookups(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch material lookups", err)
		return
	}

	form := materialForm(routes.Path(routes.MaterialEdit, formatID(id)), materialValues(*material), lookups)
	form.DeleteAction = routes.DeletePath(routes.MaterialEdit, formatID(id))
	form.DeleteLabel = material.Name
	h.renderForm(w, r, http.StatusOK, form)
}

func (h *HandlerService) HandleMaterialUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.submitMaterial(w, r, id)
}

func (h *HandlerService) submitMaterial(w http.ResponseWriter, r *http.Request, id int64) {
	action := routes.Path(routes.MaterialNew)
	if id != 0 {
		action = routes.Path(routes.MaterialEdit, formatID(id))
	}

	lookups, err := h.fetchMaterialLookups(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch material lookups", err)
		return
	}

	values, err := readForm(r, materialFieldNames...)
	if err != nil {
		h.rejectForm(w, r, materialForm(action, formValues{}, lookups), GenericErrorMessage)
		return
	}
	form := materialForm(action, values, lookups)

	payload, parseErr := parseMaterial(values)
	if parseErr != "" {
		h.rejectForm(w, r, form, parseErr)
		return
	}

	var saved *client.Material
	if id == 0 {
		saved, err = h.ApiClient.CreateMaterial(r.Context(), payload)
	} else {
		saved, err = h.ApiClient.UpdateMaterial(r.Context(), id, payload)
	}
	if err != nil {
		h.submitFailed(w, r, form, "Failed to save material", err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int64("material_id", saved.ID),
	)
	redirect(w, r, routes.Path(routes.Warehouse))
}

func (h *HandlerService) HandleMaterialDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.confirmDelete(w, r, r.FormValue("label"), routes.Path(routes.Warehouse), func(ctx context.Context) error {
		return h.ApiClient.DeleteMaterial(ctx, id)
	})
}
