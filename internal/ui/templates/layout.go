package templates

import (
	"github.com/a-h/templ"

	komfort "github.com/komfort-mfg/komfort-admin"
	"github.com/komfort-mfg/komfort-admin/internal/dialog"
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
)

// Layout is the page shell: header navigation, the page heading, the body and the dialog container
func Layout(route routes.Route, state dialog.State, body templ.Component) templ.Component {
	return component(func(h *writer) {
		h.raw(`<!DOCTYPE html><html lang="ru"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(route.DocumentTitle())
		h.raw(`</title><link rel="stylesheet" href="/static/app.css"><script src="/static/app.js" defer></script></head><body>`)

		h.raw(`<header class="topbar"><a class="brand" href="/">`)
		h.text(komfort.AppName)
		h.raw(`</a><nav>`)
		for _, name := range routes.Menu {
			item, _ := routes.Lookup(name)
			class := "nav-link"
			if isSection(route, item) {
				class += " active"
			}
			h.raw(`<a`)
			h.attr("class", class)
			h.attr("href", item.Pattern)
			h.raw(`>`)
			h.text(item.Title)
			h.raw(`</a>`)
		}
		h.raw(`</nav></header>`)

		h.raw(`<main><h1>`)
		h.text(route.Title)
		h.raw(`</h1><div id="alerts"></div>`)
		h.render(body)
		h.raw(`</main>`)

		h.raw(`<div id="dialog"`)
		h.attr("data-src", DialogPath)
		h.attr("data-events", DialogPath+"/events")
		h.raw(`>`)
		h.render(DialogModal(state))
		h.raw(`</div></body></html>`)
	})
}

// isSection reports whether route belongs to the menu item, e.g. /products/5 is under /products
func isSection(route, item routes.Route) bool {
	if route.Pattern == "" {
		return false
	}
	return route.Pattern == item.Pattern ||
		len(route.Pattern) > len(item.Pattern) && route.Pattern[:len(item.Pattern)+1] == item.Pattern+"/"
}
