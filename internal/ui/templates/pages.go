package templates

import (
	"github.com/a-h/templ"

	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
	"github.com/komfort-mfg/komfort-admin/internal/ui/types"
)

// Stack renders components one after another
func Stack(components ...templ.Component) templ.Component {
	return component(func(h *writer) {
		for _, c := range components {
			h.render(c)
		}
	})
}

func HomePage() templ.Component {
	return component(func(h *writer) {
		h.raw(`<div class="cards">`)
		for _, name := range routes.Menu {
			r, _ := routes.Lookup(name)
			h.raw(`<a class="card"`)
			h.attr("href", r.Pattern)
			h.raw(`>`)
			h.text(r.Title)
			h.raw(`</a>`)
		}
		h.raw(`</div>`)
	})
}

func NotFoundPage() templ.Component {
	return component(func(h *writer) {
		h.raw(`<p class="empty">Запрошенная страница не существует.</p><a class="btn btn-primary" href="/">На главную</a>`)
	})
}

// ProductSummary is the header of the product workshops page
func ProductSummary(p client.ProductDetail) templ.Component {
	return component(func(h *writer) {
		h.raw(`<dl class="summary">`)
		summaryItem(h, "Наименование", p.Name)
		summaryItem(h, "Артикул", types.FormatOptional(p.Article))
		summaryItem(h, "Тип продукта", p.ProductType)
		summaryItem(h, "Основной материал", p.MaterialType)
		summaryItem(h, "Стоимость", types.FormatNullMoney(p.MinPartnerPrice))
		summaryItem(h, "Время изготовления", types.FormatInt(p.ManufactureTimeHours)+" ч")
		h.raw(`</dl>`)
	})
}

func summaryItem(h *writer, label, value string) {
	h.raw(`<dt>`)
	h.text(label)
	h.raw(`</dt><dd>`)
	h.text(value)
	h.raw(`</dd>`)
}

// CalculationResult shows the raw material amount returned by the backend
func CalculationResult(res client.RawMaterialCalcResponse) templ.Component {
	if !res.Valid() {
		return WarningAlert("Расчет невозможен: проверьте введенные параметры.")
	}
	return SuccessAlert("Необходимое количество сырья: " + types.FormatInt(res.RawMaterialAmount))
}
