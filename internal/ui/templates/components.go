package templates

import (
	"github.com/a-h/templ"

	"github.com/komfort-mfg/komfort-admin/internal/dialog"
)

// DialogPath is the base path of the dialog endpoints
const DialogPath = "/ui-api/dialog"

func ErrorAlert(msg string) templ.Component {
	return alert("error", msg)
}

func SuccessAlert(msg string) templ.Component {
	return alert("success", msg)
}

func WarningAlert(msg string) templ.Component {
	return alert("warning", msg)
}

func alert(kind, msg string) templ.Component {
	return component(func(h *writer) {
		h.raw(`<div`)
		h.attr("class", "alert alert-"+kind)
		h.raw(` role="alert">`)
		h.text(msg)
		h.raw(`</div>`)
	})
}

// ClearAlerts replaces the inline alert area with nothing
func ClearAlerts() templ.Component {
	return component(func(h *writer) {
		h.raw(`<div id="alerts"></div>`)
	})
}

// DialogModal renders the open alert and confirm dialogs of state, or nothing when both are closed.
// Buttons are plain forms so the dialog works without scripts.
func DialogModal(state dialog.State) templ.Component {
	return component(func(h *writer) {
		if a := state.Alert; a.Open {
			h.raw(`<div class="dialog-backdrop"><section`)
			h.attr("class", "dialog dialog-"+string(a.Kind))
			h.raw(` role="alertdialog" aria-modal="true"`)
			h.attr("data-dialog-id", a.ID)
			h.raw(`><h2>`)
			h.text(a.Title)
			h.raw(`</h2><p class="dialog-message">`)
			h.text(a.Message)
			h.raw(`</p><div class="dialog-actions">`)
			dialogButton(h, a.ID, "dismiss", a.ConfirmLabel, "primary")
			h.raw(`</div></section></div>`)
		}

		if c := state.Confirm; c.Open {
			h.raw(`<div class="dialog-backdrop"><section`)
			h.attr("class", "dialog dialog-"+string(c.Kind))
			h.raw(` role="alertdialog" aria-modal="true"`)
			h.attr("data-dialog-id", c.ID)
			h.raw(`><h2>`)
			h.text(c.Title)
			h.raw(`</h2><p class="dialog-message">`)
			h.text(c.Message)
			h.raw(`</p><div class="dialog-actions">`)
			dialogButton(h, c.ID, "cancel", c.CancelLabel, "secondary")
			dialogButton(h, c.ID, "confirm", c.ConfirmLabel, "primary")
			h.raw(`</div></section></div>`)
		}
	})
}

func dialogButton(h *writer, id, action, label, class string) {
	h.raw(`<form method="post"`)
	h.attr("action", DialogPath+"/"+id+"/"+action)
	h.raw(`><button type="submit"`)
	h.attr("class", "btn btn-"+class)
	h.raw(`>`)
	h.text(label)
	h.raw(`</button></form>`)
}
