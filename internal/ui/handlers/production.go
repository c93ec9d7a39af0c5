package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
	"github.com/komfort-mfg/komfort-admin/internal/ui/types"
)

var calculatorFieldNames = []string{"product_type_id", "material_type_id", "product_quantity", "parameter_one", "parameter_two"}

// HandleProduction renders the workshop list and an empty raw material calculator
func (h *HandlerService) HandleProduction(w http.ResponseWriter, r *http.Request) {
	h.renderProduction(w, r, http.StatusOK, formValues{}, nil)
}

// HandleCalculate submits the calculator and renders the production page with the result
func (h *HandlerService) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	values, err := readForm(r, calculatorFieldNames...)
	if err != nil {
		h.renderProduction(w, r, http.StatusUnprocessableEntity, formValues{}, templates.ErrorAlert(GenericErrorMessage))
		return
	}

	p := newFormParser(values)
	payload := client.RawMaterialCalcPayload{
		ProductTypeID:   p.id("product_type_id"),
		MaterialTypeID:  p.id("material_type_id"),
		ProductQuantity: p.int("product_quantity"),
		ParameterOne:    p.float("parameter_one"),
		ParameterTwo:    p.float("parameter_two"),
	}
	if msg := p.err(); msg != "" {
		h.renderProduction(w, r, http.StatusUnprocessableEntity, values, templates.ErrorAlert(msg))
		return
	}

	res, err := h.ApiClient.CalculateRawMaterial(r.Context(), payload)
	if err != nil {
		msg := h.reportError(r, "Failed to calculate raw material", err)
		h.renderProduction(w, r, http.StatusUnprocessableEntity, values, templates.ErrorAlert(msg))
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int("raw_material_amount", res.RawMaterialAmount),
	)
	h.renderProduction(w, r, http.StatusOK, values, templates.CalculationResult(*res))
}

func (h *HandlerService) renderProduction(w http.ResponseWriter, r *http.Request, status int, values formValues, result templ.Component) {
	workshops, err := h.ApiClient.FetchWorkshops(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch workshops", err)
		return
	}
	lookups, err := h.fetchProductLookups(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch product lookups", err)
		return
	}

	h.renderPageStatus(w, r, status, templates.Stack(
		templates.Table(workshopsTable(workshops)),
		result,
		templates.Form(calculatorForm(values, lookups)),
	))
}

func calculatorForm(values formValues, l productLookups) types.FormPage {
	quantity := field(values, "product_quantity", types.FieldNumber, true)
	quantity.Min = "1"
	one := field(values, "parameter_one", types.FieldDecimal, true)
	one.Min = "0"
	two := field(values, "parameter_two", types.FieldDecimal, true)
	two.Min = "0"

	return types.FormPage{
		Heading: "Расчет сырья",
		Action:  routes.Path(routes.Production),
		Fields: []types.Field{
			selectField(values, "product_type_id", types.LookupOptions(l.productTypes)),
			selectField(values, "material_type_id", types.LookupOptions(l.materialTypes)),
			quantity,
			one,
			two,
		},
		SubmitLabel: "Рассчитать",
	}
}

func workshopsTable(workshops []client.Workshop) types.TableView {
	view := types.TableView{
		Heading: "Цеха",
		Columns: []types.Column{
			{Label: "Название цеха"},
			{Label: "Тип цеха"},
			{Label: "Количество человек", Numeric: true},
		},
		AddHref:  routes.Path(routes.WorkshopNew),
		AddLabel: "Добавить цех",
		Empty:    "Цеха не найдены.",
	}
	for _, ws := range workshops {
		id := formatID(ws.ID)
		view.Rows = append(view.Rows, types.Row{
			Cells:        []string{ws.Name, types.FormatOptional(ws.WorkshopType), types.FormatOptionalInt(ws.WorkersCount)},
			Links:        []types.Link{{Href: routes.Path(routes.WorkshopEdit, id), Label: "Изменить"}},
			DeleteAction: routes.DeletePath(routes.WorkshopEdit, id),
			DeleteLabel:  ws.Name,
		})
	}
	return view
}

// =============================================================================
// WORKSHOPS
// =============================================================================

var workshopFieldNames = []string{"name", "workshop_type", "workers_count"}

func workshopValues(ws client.Workshop) formValues {
	return formValues{
		"name":          ws.Name,
		"workshop_type": optionalString(ws.WorkshopType),
		"workers_count": optionalInt(ws.WorkersCount),
	}
}

func workshopForm(action string, values formValues) types.FormPage {
	workers := field(values, "workers_count", types.FieldNumber, false)
	workers.Min = "0"

	return types.FormPage{
		Action: action,
		Fields: []types.Field{
			field(values, "name", types.FieldText, true),
			field(values, "workshop_type", types.FieldText, false),
			workers,
		},
		BackHref: routes.Path(routes.Production),
	}
}

func parseWorkshop(values formValues) (client.WorkshopWritePayload, string) {
	p := newFormParser(values)
	payload := client.WorkshopWritePayload{
		Name:         p.text("name"),
		WorkshopType: p.optionalText("workshop_type"),
		WorkersCount: p.optionalInt("workers_count"),
	}
	return payload, p.err()
}

func (h *HandlerService) HandleWorkshopNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, workshopForm(routes.Path(routes.WorkshopNew), formValues{}))
}

func (h *HandlerService) HandleWorkshopCreate(w http.ResponseWriter, r *http.Request) {
	h.submitWorkshop(w, r, 0)
}

func (h *HandlerService) HandleWorkshopEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	workshop, err := h.ApiClient.FetchWorkshop(r.Context(), id)
	if err != nil {
		h.renderListError(w, r, "Failed to fetch workshop", err)
		return
	}

	form := workshopForm(routes.Path(routes.WorkshopEdit, formatID(id)), workshopValues(*workshop))
	form.DeleteAction = routes.DeletePath(routes.WorkshopEdit, formatID(id))
	form.DeleteLabel = workshop.Name
	h.renderForm(w, r, http.StatusOK, form)
}

func (h *HandlerService) HandleWorkshopUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.submitWorkshop(w, r, id)
}

func (h *HandlerService) submitWorkshop(w http.ResponseWriter, r *http.Request, id int64) {
	action := routes.Path(routes.WorkshopNew)
	if id != 0 {
		action = routes.Path(routes.WorkshopEdit, formatID(id))
	}

	values, err := readForm(r, workshopFieldNames...)
	if err != nil {
		h.rejectForm(w, r, workshopForm(action, formValues{}), GenericErrorMessage)
		return
	}
	form := workshopForm(action, values)

	payload, parseErr := parseWorkshop(values)
	if parseErr != "" {
		h.rejectForm(w, r, form, parseErr)
		return
	}

	var saved *client.Workshop
	if id == 0 {
		saved, err = h.ApiClient.CreateWorkshop(r.Context(), payload)
	} else {
		saved, err = h.ApiClient.UpdateWorkshop(r.Context(), id, payload)
	}
	if err != nil {
		h.submitFailed(w, r, form, "Failed to save workshop", err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int64("workshop_id", saved.ID),
	)
	redirect(w, r, routes.Path(routes.Production))
}

func (h *HandlerService) HandleWorkshopDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.confirmDelete(w, r, r.FormValue("label"), routes.Path(routes.Production), func(ctx context.Context) error {
		return h.ApiClient.DeleteWorkshop(ctx, id)
	})
}
