package templates

import (
	"github.com/a-h/templ"

	"github.com/komfort-mfg/komfort-admin/internal/ui/types"
)

// Form renders a create or edit form. Edit forms also get a delete button posting to DeleteAction.
func Form(form types.FormPage) templ.Component {
	return component(func(h *writer) {
		h.raw(`<section class="form-card">`)
		if form.Heading != "" {
			h.raw(`<h2>`)
			h.text(form.Heading)
			h.raw(`</h2>`)
		}
		if form.Error != "" {
			h.render(ErrorAlert(form.Error))
		}

		h.raw(`<form method="post" class="form"`)
		h.attr("action", form.Action)
		h.raw(`>`)
		for _, field := range form.Fields {
			formField(h, field)
		}

		h.raw(`<div class="form-actions">`)
		if form.BackHref != "" {
			h.raw(`<a class="btn btn-secondary"`)
			h.attr("href", form.BackHref)
			h.raw(`>Назад</a>`)
		}
		label := form.SubmitLabel
		if label == "" {
			label = "Сохранить"
		}
		h.raw(`<button type="submit" class="btn btn-primary">`)
		h.text(label)
		h.raw(`</button></div></form>`)

		if form.DeleteAction != "" {
			h.raw(`<form method="post" class="form-delete"`)
			h.attr("action", form.DeleteAction)
			h.raw(`><input type="hidden" name="label"`)
			h.attr("value", form.DeleteLabel)
			h.raw(`><button type="submit" class="btn btn-danger">Удалить</button></form>`)
		}
		h.raw(`</section>`)
	})
}

func formField(h *writer, f types.Field) {
	id := "field-" + f.Name

	if f.Kind == types.FieldCheckbox {
		h.raw(`<div class="field field-checkbox"><label><input type="checkbox" value="true"`)
		h.attr("id", id)
		h.attr("name", f.Name)
		if f.Checked {
			h.raw(` checked`)
		}
		h.raw(`> `)
		h.text(f.Label)
		h.raw(`</label></div>`)
		return
	}

	h.raw(`<div class="field"><label`)
	h.attr("for", id)
	h.raw(`>`)
	h.text(f.Label)
	if f.Required {
		h.raw(` <span class="required">*</span>`)
	}
	h.raw(`</label>`)

	switch f.Kind {
	case types.FieldTextarea:
		h.raw(`<textarea rows="3"`)
		fieldAttrs(h, id, f)
		h.raw(`>`)
		h.text(f.Value)
		h.raw(`</textarea>`)

	case types.FieldSelect:
		h.raw(`<select`)
		h.attr("id", id)
		h.attr("name", f.Name)
		if f.Required {
			h.raw(` required`)
		}
		h.raw(`><option value="">Выберите…</option>`)
		for _, opt := range f.Options {
			h.raw(`<option`)
			h.attr("value", opt.Value)
			if opt.Value == f.Value {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(opt.Label)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)

	default:
		inputType := string(f.Kind)
		if f.Kind == types.FieldDecimal {
			inputType = "number"
		}
		h.raw(`<input`)
		h.attr("type", inputType)
		if f.Kind == types.FieldDecimal {
			h.raw(` step="0.01"`)
		}
		fieldAttrs(h, id, f)
		h.attr("value", f.Value)
		h.raw(`>`)
	}
	h.raw(`</div>`)
}

func fieldAttrs(h *writer, id string, f types.Field) {
	h.attr("id", id)
	h.attr("name", f.Name)
	if f.Required {
		h.raw(` required`)
	}
	if f.Min != "" {
		h.attr("min", f.Min)
	}
	if f.Max != "" {
		h.attr("max", f.Max)
	}
	if f.Placeholder != "" {
		h.attr("placeholder", f.Placeholder)
	}
}
