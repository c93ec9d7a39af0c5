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

var partnerFieldNames = []string{
	"partner_type", "company_name", "legal_address", "inn", "director_name",
	"phone", "email", "logo_url", "rating", "sales_places",
}

func partnerValues(p client.Partner) formValues {
	return formValues{
		"partner_type":  p.PartnerType,
		"company_name":  p.CompanyName,
		"legal_address": p.LegalAddress,
		"inn":           p.INN,
		"director_name": p.DirectorName,
		"phone":         p.Phone,
		"email":         p.Email,
		"logo_url":      p.LogoURL,
		"rating":        strconv.Itoa(p.Rating),
		"sales_places":  p.SalesPlaces,
	}
}

func partnerForm(action string, values formValues) types.FormPage {
	rating := field(values, "rating", types.FieldNumber, true)
	rating.Min, rating.Max = "0", "10"

	return types.FormPage{
		Action: action,
		Fields: []types.Field{
			selectField(values, "partner_type", types.PartnerTypeOptions()),
			field(values, "company_name", types.FieldText, true),
			field(values, "legal_address", types.FieldText, true),
			field(values, "inn", types.FieldText, true),
			field(values, "director_name", types.FieldText, true),
			field(values, "phone", types.FieldTel, true),
			field(values, "email", types.FieldEmail, true),
			field(values, "logo_url", types.FieldURL, false),
			rating,
			field(values, "sales_places", types.FieldTextarea, false),
		},
		BackHref: routes.Path(routes.Partners),
	}
}

func parsePartner(values formValues) (client.PartnerWritePayload, string) {
	p := newFormParser(values)
	payload := client.PartnerWritePayload{
		PartnerType:  p.text("partner_type"),
		CompanyName:  p.text("company_name"),
		LegalAddress: p.text("legal_address"),
		INN:          p.text("inn"),
		DirectorName: p.text("director_name"),
		Phone:        p.text("phone"),
		Email:        p.text("email"),
		LogoURL:      p.text("logo_url"),
		Rating:       p.int("rating"),
		SalesPlaces:  p.text("sales_places"),
	}
	return payload, p.err()
}

// HandlePartners renders the partner list
func (h *HandlerService) HandlePartners(w http.ResponseWriter, r *http.Request) {
	partners, err := h.ApiClient.FetchPartners(r.Context())
	if err != nil {
		h.renderListError(w, r, "Failed to fetch partners", err)
		return
	}

	view := types.TableView{
		Columns: []types.Column{
			{Label: "Тип"},
			{Label: "Наименование компании"},
			{Label: "ФИО директора"},
			{Label: "Телефон"},
			{Label: "Email"},
			{Label: "Рейтинг", Numeric: true},
		},
		AddHref:    routes.Path(routes.PartnerNew),
		AddLabel:   "Добавить партнера",
		ExportHref: routes.ExportPath(routes.Partners),
		Empty:      "Партнеры не найдены.",
	}
	for _, p := range partners {
		id := formatID(p.ID)
		view.Rows = append(view.Rows, types.Row{
			Cells: []string{p.PartnerType, p.CompanyName, p.DirectorName, p.Phone, p.Email, strconv.Itoa(p.Rating)},
			Links: []types.Link{
				{Href: routes.Path(routes.PartnerEdit, id), Label: "Изменить"},
			},
			DeleteAction: routes.DeletePath(routes.PartnerEdit, id),
			DeleteLabel:  p.CompanyName,
		})
	}

	h.renderPage(w, r, templates.Table(view))
}

func (h *HandlerService) HandlePartnerNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, partnerForm(routes.Path(routes.PartnerNew), formValues{}))
}

func (h *HandlerService) HandlePartnerCreate(w http.ResponseWriter, r *http.Request) {
	h.submitPartner(w, r, 0)
}

func (h *HandlerService) HandlePartnerEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	partner, err := h.ApiClient.FetchPartner(r.Context(), id)
	if err != nil {
		h.renderListError(w, r, "Failed to fetch partner", err)
		return
	}

	form := partnerForm(routes.Path(routes.PartnerEdit, formatID(id)), partnerValues(*partner))
	form.DeleteAction = routes.DeletePath(routes.PartnerEdit, formatID(id))
	form.DeleteLabel = partner.CompanyName
	h.renderForm(w, r, http.StatusOK, form)
}

func (h *HandlerService) HandlePartnerUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.submitPartner(w, r, id)
}

func (h *HandlerService) submitPartner(w http.ResponseWriter, r *http.Request, id int64) {
	action := routes.Path(routes.PartnerNew)
	if id != 0 {
		action = routes.Path(routes.PartnerEdit, formatID(id))
	}

	values, err := readForm(r, partnerFieldNames...)
	if err != nil {
		h.rejectForm(w, r, partnerForm(action, formValues{}), GenericErrorMessage)
		return
	}
	form := partnerForm(action, values)

	payload, parseErr := parsePartner(values)
	if parseErr != "" {
		h.rejectForm(w, r, form, parseErr)
		return
	}

	var saved *client.Partner
	if id == 0 {
		saved, err = h.ApiClient.CreatePartner(r.Context(), payload)
	} else {
		saved, err = h.ApiClient.UpdatePartner(r.Context(), id, payload)
	}
	if err != nil {
		h.submitFailed(w, r, form, "Failed to save partner", err)
		return
	}

	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.Int64("partner_id", saved.ID),
	)
	redirect(w, r, routes.Path(routes.Partners))
}

func (h *HandlerService) HandlePartnerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.confirmDelete(w, r, r.FormValue("label"), routes.Path(routes.Partners), func(ctx context.Context) error {
		return h.ApiClient.DeletePartner(ctx, id)
	})
}
