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

var employeeFieldNames = []string{"full_name", "birth_date", "passport_data", "bank_details", "has_family", "health_status"}

func employeeValues(e client.Employee) formValues {
	v := formValues{
		"full_name":     e.FullName,
		"birth_date":    optionalString(e.BirthDate),
		"passport_data": e.PassportData,
		"bank_details":  e.BankDetails,
		"health_status": e.HealthStatus,
	}
	if e.HasFamily {
		v["has_family"] = "true"
	}
	return v
}

func employeeForm(action string, values formValues) types.FormPage {
	return types.FormPage{
		Action: action,
		Fields: []types.Field{
			field(values, "full_name", types.FieldText, true),
			field(values, "birth_date", types.FieldDate, false),
			field(values, "passport_data", types.FieldText, true),
			field(values, "bank_details", types.FieldText, true),
			field(values, "has_family", types.FieldCheckbox, false),
			field(values, "health_status", types.FieldText, false),
		},
		BackHref: routes.Path(routes.Staff),
	}
}

func parseEmployee(values formValues) (client.EmployeeWritePayload, string) {
	p := newFormParser(values)
	payload := client.EmployeeWritePayload{
		FullName:     p.text("full_name"),
		BirthDate:    p.date("birth_date"),
		PassportData: p.text("passport_data"),
		BankDetails:  p.text("bank_details"),
		HasFamily:    p.checkbox("has_family"),
		HealthStatus: p.text("health_status"),
	}
	return payload, p.err()
}

// HandleStaff renders the employee list
func (h *HandlerService) HandleStaff(w http.ResponseWriter, r *http.Request) {
	employees, err := h.ApiClient.FetchEmployees(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch employees", err)
		return
	}

	view := types.TableView{
		Columns: []types.Column{
			{Label: "ФИО"},
			{Label: "Дата рождения"},
			{Label: "Паспортные данные"},
			{Label: "Наличие семьи"},
			{Label: "Состояние здоровья"},
		},
		AddHref:    routes.Path(routes.EmployeeNew),
		AddLabel:   "Добавить сотрудника",
		ExportHref: routes.ExportPath(routes.Staff),
		Empty:      "Сотрудники не найдены.",
	}
	for _, e := range employees {
		id := formatID(e.ID)
		view.Rows = append(view.Rows, types.Row{
			Cells: []string{
				e.FullName,
				types.FormatDate(e.BirthDate),
				e.PassportData,
				types.FormatBool(e.HasFamily),
				e.HealthStatus,
			},
			Links:        []types.Link{{Href: routes.Path(routes.EmployeeEdit, id), Label: "Изменить"}},
			DeleteAction: routes.DeletePath(routes.EmployeeEdit, id),
			DeleteLabel:  e.FullName,
		})
	}

	h.renderPage(w, r, templates.Table(view))
}

func (h *HandlerService) HandleEmployeeNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, employeeForm(routes.Path(routes.EmployeeNew), formValues{}))
}

func (h *HandlerService) HandleEmployeeCreate(w http.ResponseWriter, r *http.Request) {
	h.submitEmployee(w, r, 0)
}

func (h *HandlerService) HandleEmployeeEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	employee, err := h.ApiClient.FetchEmployee(r.Context(), id)
	if err != nil {
		h.renderListError(w, r, "Failed to fetch employee", err)
		return
	}

	form := employeeForm(routes.Path(routes.EmployeeEdit, formatID(id)), employeeValues(*employee))
	form.DeleteAction = routes.DeletePath(routes.EmployeeEdit, formatID(id))
	form.DeleteLabel = employee.FullName
	h.renderForm(w, r, http.StatusOK, form)
}

func (h *HandlerService) HandleEmployeeUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.submitEmployee(w, r, id)
}

func (h *HandlerService) submitEmployee(w http.ResponseWriter, r *http.Request, id int64) {
	action := routes.Path(routes.EmployeeNew)
	if id != 0 {
		action = routes.Path(routes.EmployeeEdit, formatID(id))
	}

	values, err := readForm(r, employeeFieldNames...)
	if err != nil {
		h.rejectForm(w, r, employeeForm(action, formValues{}), GenericErrorMessage)
		return
	}
	form := employeeForm(action, values)

	payload, parseErr := parseEmployee(values)
	if parseErr != "" {
		h.rejectForm(w, r, form, parseErr)
		return
	}

	var saved *client.Employee
	if id == 0 {
		saved, err = h.ApiClient.CreateEmployee(r.Context(), payload)
	} else {
		saved, err = h.ApiClient.UpdateEmployee(r.Context(), id, payload)
	}
	if err != nil {
		h.submitFailed(w, r, form, "Failed to save employee", err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int64("employee_id", saved.ID),
	)
	redirect(w, r, routes.Path(routes.Staff))
}

func (h *HandlerService) HandleEmployeeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.confirmDelete(w, r, r.FormValue("label"), routes.Path(routes.Staff), func(ctx context.Context) error {
		return h.ApiClient.DeleteEmployee(ctx, id)
	})
}
