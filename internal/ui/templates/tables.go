package templates

import (
	"github.com/a-h/templ"

	"github.com/komfort-mfg/komfort-admin/internal/ui/types"
)

// Table renders a list with its toolbar. Each row may carry edit links and a delete button,
// the delete button posts to the row's DeleteAction which opens the confirm dialog.
func Table(view types.TableView) templ.Component {
	return component(func(h *writer) {
		h.raw(`<section class="list"><div class="toolbar">`)
		if view.Heading != "" {
			h.raw(`<h2>`)
			h.text(view.Heading)
			h.raw(`</h2>`)
		}
		if view.AddHref != "" {
			h.raw(`<a class="btn btn-primary"`)
			h.attr("href", view.AddHref)
			h.raw(`>`)
			h.text(view.AddLabel)
			h.raw(`</a>`)
		}
		if view.ExportHref != "" {
			h.raw(`<a class="btn btn-secondary"`)
			h.attr("href", view.ExportHref)
			h.raw(` download>Экспорт в Excel</a>`)
		}
		h.raw(`</div>`)

		if len(view.Rows) == 0 {
			h.raw(`<p class="empty">`)
			h.text(view.Empty)
			h.raw(`</p></section>`)
			return
		}

		h.raw(`<table><thead><tr>`)
		for _, col := range view.Columns {
			if col.Numeric {
				h.raw(`<th class="num">`)
			} else {
				h.raw(`<th>`)
			}
			h.text(col.Label)
			h.raw(`</th>`)
		}
		h.raw(`<th></th></tr></thead><tbody>`)

		for _, row := range view.Rows {
			if row.Warn {
				h.raw(`<tr class="warn">`)
			} else {
				h.raw(`<tr>`)
			}
			for i, cell := range row.Cells {
				if i < len(view.Columns) && view.Columns[i].Numeric {
					h.raw(`<td class="num">`)
				} else {
					h.raw(`<td>`)
				}
				h.text(cell)
				h.raw(`</td>`)
			}

			h.raw(`<td class="actions">`)
			for _, link := range row.Links {
				h.raw(`<a`)
				h.attr("href", link.Href)
				h.raw(`>`)
				h.text(link.Label)
				h.raw(`</a>`)
			}
			if row.DeleteAction != "" {
				h.raw(`<form method="post" class="inline"`)
				h.attr("action", row.DeleteAction)
				h.raw(`><input type="hidden" name="label"`)
				h.attr("value", row.DeleteLabel)
				h.raw(`><button type="submit" class="btn btn-danger">Удалить</button></form>`)
			}
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table><p class="count">`)
		h.text(types.FormatRecordsReturned(len(view.Rows)))
		h.raw(`</p></section>`)
	})
}
