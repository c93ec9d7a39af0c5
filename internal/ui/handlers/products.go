package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
	"github.com/komfort-mfg/komfort-admin/internal/ui/types"
)

var productFieldNames = []string{"article", "name", "min_partner_price", "product_type_id", "material_type_id"}

// productLookups are the select options of the product form
type productLookups struct {
	productTypes  []client.LookupItem
	materialTypes []client.LookupItem
}

func (h *HandlerService) fetchProductLookups(ctx context.Context) (productLookups, error) {
	var l productLookups
	var err error

	if l.productTypes, err = h.ApiClient.FetchProductTypes(ctx); err != nil {
		return l, err
	}
	if l.materialTypes, err = h.ApiClient.FetchMaterialTypes(ctx); err != nil {
		return l, err
	}
	return l, nil
}

func productValues(p client.ProductListItem) formValues {
	v := formValues{
		"article":          optionalString(p.Article),
		"name":             p.Name,
		"product_type_id":  formatID(p.ProductTypeID),
		"material_type_id": formatID(p.MaterialTypeID),
	}
	if p.MinPartnerPrice.Valid {
		v["min_partner_price"] = p.MinPartnerPrice.Decimal.StringFixed(2)
	}
	return v
}

func productForm(action string, values formValues, l productLookups) types.FormPage {
	price := field(values, "min_partner_price", types.FieldDecimal, true)
	price.Min = "0"

	return types.FormPage{
		Action: action,
		Fields: []types.Field{
			field(values, "article", types.FieldText, true),
			field(values, "name", types.FieldText, true),
			price,
			selectField(values, "product_type_id", types.LookupOptions(l.productTypes)),
			selectField(values, "material_type_id", types.LookupOptions(l.materialTypes)),
		},
		BackHref: routes.Path(routes.Products),
	}
}

func parseProduct(values formValues) (client.ProductWritePayload, string) {
	p := newFormParser(values)
	payload := client.ProductWritePayload{
		Article:         p.text("article"),
		Name:            p.text("name"),
		MinPartnerPrice: p.decimal("min_partner_price"),
		ProductTypeID:   p.id("product_type_id"),
		MaterialTypeID:  p.id("material_type_id"),
	}
	return payload, p.err()
}

// HandleProducts renders the product list
func (h *HandlerService) HandleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ApiClient.FetchProducts(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch products", err)
		return
	}

	view := types.TableView{
		Columns: []types.Column{
			{Label: "Артикул"},
			{Label: "Наименование"},
			{Label: "Тип продукта"},
			{Label: "Основной материал"},
			{Label: "Стоимость", Numeric: true},
			{Label: "Время изготовления", Numeric: true},
		},
		AddHref:    routes.Path(routes.ProductNew),
		AddLabel:   "Добавить продукцию",
		ExportHref: routes.ExportPath(routes.Products),
		Empty:      "Продукция не найдена.",
	}
	for _, p := range products {
		id := formatID(p.ID)
		view.Rows = append(view.Rows, types.Row{
			Cells: []string{
				types.FormatOptional(p.Article),
				p.Name,
				p.ProductType,
				p.MaterialType,
				types.FormatNullMoney(p.MinPartnerPrice),
				types.FormatInt(p.ManufactureTimeHours) + " ч",
			},
			Links: []types.Link{
				{Href: routes.Path(routes.ProductEdit, id), Label: "Изменить"},
				{Href: routes.Path(routes.ProductWorkshops, id), Label: "Цеха"},
			},
			DeleteAction: routes.DeletePath(routes.ProductEdit, id),
			DeleteLabel:  p.Name,
		})
	}

	h.renderPage(w, r, templates.Table(view))
}

// HandleProductNew renders the empty product form
func (h *HandlerService) HandleProductNew(w http.ResponseWriter, r *http.Request) {
	lookups, err := h.fetchProductLookups(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch product lookups", err)
		return
	}
	h.renderForm(w, r, http.StatusOK, productForm(routes.Path(routes.ProductNew), formValues{}, lookups))
}

// HandleProductCreate creates a product from the submitted form
func (h *HandlerService) HandleProductCreate(w http.ResponseWriter, r *http.Request) {
	h.submitProduct(w, r, 0)
}

// HandleProductEdit renders the form for an existing product
func (h *HandlerService) HandleProductEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	product, err := h.ApiClient.FetchProduct(r.Context(), id)
	if err != nil {
		h.renderListError(w, r, "Failed to fetch product", err)
		return
	}
	lookups, err := h.fetchProductLookups(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch product lookups", err)
		return
	}

	form := productForm(routes.Path(routes.ProductEdit, formatID(id)), productValues(product.ProductListItem), lookups)
	form.DeleteAction = routes.DeletePath(routes.ProductEdit, formatID(id))
	form.DeleteLabel = product.Name
	h.renderForm(w, r, http.StatusOK, form)
}

// HandleProductUpdate saves the submitted form over an existing product
func (h *HandlerService) HandleProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.submitProduct(w, r, id)
}

// submitProduct creates (id 0) or updates a product
func (h *HandlerService) submitProduct(w http.ResponseWriter, r *http.Request, id int64) {
	action := routes.Path(routes.ProductNew)
	if id != 0 {
		action = routes.Path(routes.ProductEdit, formatID(id))
	}

	lookups, err := h.fetchProductLookups(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch product lookups", err)
		return
	}

	values, err := readForm(r, productFieldNames...)
	if err != nil {
		h.rejectForm(w, r, productForm(action, formValues{}, lookups), GenericErrorMessage)
		return
	}
	form := productForm(action, values, lookups)

	payload, parseErr := parseProduct(values)
	if parseErr != "" {
		h.rejectForm(w, r, form, parseErr)
		return
	}

	if id == 0 {
		var res *client.ProductWriteResult
		res, err = h.ApiClient.CreateProduct(r.Context(), payload)
		if err == nil {
			id = res.ID
		}
	} else {
		_, err = h.ApiClient.UpdateProduct(r.Context(), id, payload)
	}
	if err != nil {
		h.submitFailed(w, r, form, "Failed to save product", err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int64("product_id", id),
	)
	redirect(w, r, routes.Path(routes.Products))
}

// HandleProductDelete asks for confirmation and deletes the product
func (h *HandlerService) HandleProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.confirmDelete(w, r, r.FormValue("label"), routes.Path(routes.Products), func(ctx context.Context) error {
		return h.ApiClient.DeleteProduct(ctx, id)
	})
}

// HandleProductWorkshops lists the workshops a product passes through with the hours spent in each
func (h *HandlerService) HandleProductWorkshops(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	product, err := h.ApiClient.FetchProduct(r.Context(), id)
	if err != nil {
		h.renderListError(w, r, "Failed to fetch product", err)
		return
	}

	view := types.TableView{
		Heading: "Цеха",
		Columns: []types.Column{
			{Label: "Цех"},
			{Label: "Время изготовления", Numeric: true},
		},
		Empty: "Для продукта не указаны цеха.",
	}
	for _, ws := range product.Workshops {
		view.Rows = append(view.Rows, types.Row{
			Cells: []string{ws.Workshop, types.FormatHours(ws.ManufactureHours)},
		})
	}

	h.renderPage(w, r, templates.Stack(
		templates.ProductSummary(*product),
		templates.Table(view),
	))
}
