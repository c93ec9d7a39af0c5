package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
	"github.com/komfort-mfg/komfort-admin/internal/ui/types"
)

// formValues holds the text of each form field, keyed by the backend field name
type formValues map[string]string

// readForm collects the submitted values of the named fields. Checkboxes are absent when unchecked.
func readForm(r *http.Request, names ...string) (formValues, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	values := make(formValues, len(names))
	for _, name := range names {
		values[name] = strings.TrimSpace(r.PostForm.Get(name))
	}
	return values, nil
}

// formParser converts form text to payload values, collecting one message per invalid field
type formParser struct {
	values formValues
	errs   []string
}

func newFormParser(values formValues) *formParser {
	return &formParser{values: values}
}

func (p *formParser) fail(name, msg string) {
	label := client.FieldLabels[name]
	if label == "" {
		label = name
	}
	p.errs = append(p.errs, label+": "+msg)
}

func (p *formParser) text(name string) string {
	return p.values[name]
}

// optionalText returns nil for an empty value
func (p *formParser) optionalText(name string) *string {
	v := p.values[name]
	if v == "" {
		return nil
	}
	return &v
}

func (p *formParser) int(name string) int {
	v := p.values[name]
	if v == "" {
		p.fail(name, "обязательное поле.")
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(name, "введите целое число.")
		return 0
	}
	return n
}

func (p *formParser) optionalInt(name string) *int {
	if p.values[name] == "" {
		return nil
	}
	n := p.int(name)
	return &n
}

// id reads a select holding a lookup id
func (p *formParser) id(name string) int64 {
	v := p.values[name]
	if v == "" {
		p.fail(name, "выберите значение.")
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		p.fail(name, "некорректное значение.")
		return 0
	}
	return n
}

// decimal accepts both "12.5" and "12,5"
func (p *formParser) decimal(name string) decimal.Decimal {
	v := strings.ReplaceAll(p.values[name], ",", ".")
	if v == "" {
		p.fail(name, "обязательное поле.")
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		p.fail(name, "введите число.")
		return decimal.Zero
	}
	return d
}

func (p *formParser) float(name string) float64 {
	v := strings.ReplaceAll(p.values[name], ",", ".")
	if v == "" {
		p.fail(name, "обязательное поле.")
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, "введите число.")
		return 0
	}
	return f
}

// date reads an optional YYYY-MM-DD date
func (p *formParser) date(name string) *string {
	v := p.values[name]
	if v == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		p.fail(name, "введите дату в формате ГГГГ-ММ-ДД.")
		return nil
	}
	return &v
}

func (p *formParser) checkbox(name string) bool {
	return p.values[name] == "true" || p.values[name] == "on"
}

// err returns the collected messages one per line, or "" when the form parsed cleanly
func (p *formParser) err() string {
	return strings.Join(p.errs, "\n")
}

// field builds a form field with the backend label and the current value
func field(values formValues, name string, kind types.FieldKind, required bool) types.Field {
	f := types.Field{
		Name:     name,
		Label:    client.FieldLabels[name],
		Kind:     kind,
		Value:    values[name],
		Required: required,
	}
	if kind == types.FieldCheckbox {
		f.Checked = values[name] == "true" || values[name] == "on"
	}
	return f
}

func selectField(values formValues, name string, options []types.Option) types.Field {
	f := field(values, name, types.FieldSelect, true)
	f.Options = options
	return f
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// renderForm renders a form page. status is http.StatusOK for a fresh form
// and http.StatusUnprocessableEntity when re-rendering a rejected submission.
func (h *HandlerService) renderForm(w http.ResponseWriter, r *http.Request, status int, form types.FormPage) {
	h.renderPageStatus(w, r, status, templates.Form(form))
}

// rejectForm re-renders form with the parse errors found before calling the api
func (h *HandlerService) rejectForm(w http.ResponseWriter, r *http.Request, form types.FormPage, msg string) {
	_ = logger.ContextWithLogAttrs(r.Context(),
		slog.String("form_error", msg),
	)
	form.Error = msg
	h.renderForm(w, r, http.StatusUnprocessableEntity, form)
}

// submitFailed re-renders form after the api refused the submission
func (h *HandlerService) submitFailed(w http.ResponseWriter, r *http.Request, form types.FormPage, msg string, err error) {
	form.Error = h.reportError(r, msg, err)
	h.renderForm(w, r, http.StatusUnprocessableEntity, form)
}
