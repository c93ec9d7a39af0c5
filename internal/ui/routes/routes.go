// Package routes is the ui route table: which page is served at which path and under which title.
//
// The table is static. Views are attached when the server mounts the table on its router,
// each view receives its Route through the request context (see Current).
package routes

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	komfort "github.com/komfort-mfg/komfort-admin"
)

// Route names
const (
	Home             = "home"
	Products         = "products"
	ProductNew       = "product-new"
	ProductEdit      = "product-edit"
	ProductWorkshops = "product-workshops"
	Partners         = "partners"
	PartnerNew       = "partner-new"
	PartnerEdit      = "partner-edit"
	Warehouse        = "warehouse"
	SupplierNew      = "supplier-new"
	SupplierEdit     = "supplier-edit"
	MaterialNew      = "material-new"
	MaterialEdit     = "material-edit"
	Production       = "production"
	WorkshopNew      = "workshop-new"
	WorkshopEdit     = "workshop-edit"
	Staff            = "staff"
	EmployeeNew      = "employee-new"
	EmployeeEdit     = "employee-edit"
	NotFound         = "not-found"
)

// Route is one entry of the table
type Route struct {
	Pattern string // chi pattern, {id} is the only parameter used
	Name    string
	Title   string
}

// DocumentTitle is the browser title of the page
func (r Route) DocumentTitle() string {
	return komfort.DocumentTitle(r.Title)
}

// Table lists every page. Order only matters for the navigation menu built from it.
var Table = []Route{
	{"/", Home, "Главная"},
	{"/products", Products, "Продукция"},
	{"/products/new", ProductNew, "Добавление продукции"},
	{"/products/{id}", ProductEdit, "Редактирование продукции"},
	{"/products/{id}/workshops", ProductWorkshops, "Цеха производства"},
	{"/partners", Partners, "Партнеры"},
	{"/partners/new", PartnerNew, "Добавление партнера"},
	{"/partners/{id}", PartnerEdit, "Редактирование партнера"},
	{"/warehouse", Warehouse, "Склад и материалы"},
	{"/warehouse/suppliers/new", SupplierNew, "Добавление поставщика"},
	{"/warehouse/suppliers/{id}", SupplierEdit, "Редактирование поставщика"},
	{"/warehouse/materials/new", MaterialNew, "Добавление материала"},
	{"/warehouse/materials/{id}", MaterialEdit, "Редактирование материала"},
	{"/production", Production, "Производство"},
	{"/production/workshops/new", WorkshopNew, "Добавление цеха"},
	{"/production/workshops/{id}", WorkshopEdit, "Редактирование цеха"},
	{"/staff", Staff, "Сотрудники"},
	{"/staff/new", EmployeeNew, "Добавление сотрудника"},
	{"/staff/{id}", EmployeeEdit, "Редактирование сотрудника"},
}

// NotFoundRoute is served for any path not in Table
var NotFoundRoute = Route{Pattern: "", Name: NotFound, Title: "Страница не найдена"}

// Menu is the navigation shown in the page header
var Menu = []string{Products, Partners, Warehouse, Production, Staff}

var (
	byName    = map[string]Route{}
	byPattern = map[string]Route{}
	matcher   = chi.NewRouter()
)

func init() {
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, r := range Table {
		byName[r.Name] = r
		byPattern[r.Pattern] = r
		matcher.Get(r.Pattern, noop)
	}
	byName[NotFound] = NotFoundRoute
}

// Lookup returns the route with the given name
func Lookup(name string) (Route, bool) {
	r, ok := byName[name]
	return r, ok
}

// Match returns the route serving path, or NotFoundRoute
func Match(path string) Route {
	rctx := chi.NewRouteContext()
	if !matcher.Match(rctx, http.MethodGet, path) {
		return NotFoundRoute
	}
	if r, ok := byPattern[rctx.RoutePattern()]; ok {
		return r
	}
	return NotFoundRoute
}

// Path builds the url of a named route, replacing {id} with id.
// It panics on an unknown name since names are compile time constants.
func Path(name string, id ...string) string {
	r, ok := byName[name]
	if !ok || r.Pattern == "" {
		panic(fmt.Sprintf("routes: no path for route %q", name))
	}
	if len(id) > 0 {
		return strings.Replace(r.Pattern, "{id}", id[0], 1)
	}
	return r.Pattern
}

// DeletePath is the form action that deletes the item shown at the named route
func DeletePath(name, id string) string {
	return Path(name, id) + "/delete"
}

// ExportPath is the xlsx download of a list page
func ExportPath(name string) string {
	switch name {
	case Warehouse:
		return "/warehouse/materials/export"
	default:
		return Path(name) + "/export"
	}
}

// View serves one route. Show answers GET, Submit answers form posts to the same path
// and Delete answers POST {path}/delete. Only Show is required.
type View struct {
	Show   http.HandlerFunc
	Submit http.HandlerFunc
	Delete http.HandlerFunc
}

// Views binds route names to views
type Views map[string]View

type contextKey struct{}

// Current returns the route being served, NotFoundRoute outside of a mounted view
func Current(ctx context.Context) Route {
	if r, ok := ctx.Value(contextKey{}).(Route); ok {
		return r
	}
	return NotFoundRoute
}

// WithRoute stores route in ctx (tests)
func WithRoute(ctx context.Context, route Route) context.Context {
	return context.WithValue(ctx, contextKey{}, route)
}

func serve(route Route, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r.WithContext(WithRoute(r.Context(), route)))
	}
}

// Mount registers every route of the table on r. Each route in Table and NotFound must have a Show view.
func Mount(r chi.Router, views Views) error {
	for _, route := range Table {
		v, ok := views[route.Name]
		if !ok || v.Show == nil {
			return fmt.Errorf("routes: no view for route %q", route.Name)
		}
		r.Get(route.Pattern, serve(route, v.Show))
		if v.Submit != nil {
			r.Post(route.Pattern, serve(route, v.Submit))
		}
		if v.Delete != nil {
			r.Post(route.Pattern+"/delete", serve(route, v.Delete))
		}
	}

	nf, ok := views[NotFound]
	if !ok || nf.Show == nil {
		return fmt.Errorf("routes: no view for route %q", NotFound)
	}
	r.NotFound(serve(NotFoundRoute, nf.Show))
	return nil
}
