package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		path      string
		wantName  string
		wantTitle string
	}{
		{"/", Home, "Комфорт — Главная"},
		{"/products", Products, "Комфорт — Продукция"},
		{"/products/new", ProductNew, "Комфорт — Добавление продукции"},
		{"/products/12", ProductEdit, "Комфорт — Редактирование продукции"},
		{"/products/12/workshops", ProductWorkshops, "Комфорт — Цеха производства"},
		{"/partners/3", PartnerEdit, "Комфорт — Редактирование партнера"},
		{"/warehouse", Warehouse, "Комфорт — Склад и материалы"},
		{"/warehouse/suppliers/new", SupplierNew, "Комфорт — Добавление поставщика"},
		{"/warehouse/materials/7", MaterialEdit, "Комфорт — Редактирование материала"},
		{"/production/workshops/new", WorkshopNew, "Комфорт — Добавление цеха"},
		{"/staff", Staff, "Комфорт — Сотрудники"},
		{"/staff/1", EmployeeEdit, "Комфорт — Редактирование сотрудника"},
		{"/nowhere", NotFound, "Комфорт — Страница не найдена"},
		{"/products/1/2/3", NotFound, "Комфорт — Страница не найдена"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := Match(tt.path)
			assert.Equal(t, tt.wantName, r.Name)
			assert.Equal(t, tt.wantTitle, r.DocumentTitle())
		})
	}
}

func TestDocumentTitle_Untitled(t *testing.T) {
	assert.Equal(t, "Комфорт — Система", Route{Pattern: "/x", Name: "x"}.DocumentTitle())
}

func TestTableNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Table {
		assert.False(t, seen[r.Name], "duplicate route %s", r.Name)
		seen[r.Name] = true
		assert.NotEmpty(t, r.Title, r.Name)
	}
	for _, name := range Menu {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/products", Path(Products))
	assert.Equal(t, "/products/5", Path(ProductEdit, "5"))
	assert.Equal(t, "/products/5/workshops", Path(ProductWorkshops, "5"))
	assert.Equal(t, "/warehouse/suppliers/2/delete", DeletePath(SupplierEdit, "2"))
	assert.Equal(t, "/staff/export", ExportPath(Staff))
	assert.Equal(t, "/warehouse/materials/export", ExportPath(Warehouse))

	assert.Panics(t, func() { Path("missing") })
	assert.Panics(t, func() { Path(NotFound) })
}

func TestMount(t *testing.T) {
	views := Views{}
	show := func(w http.ResponseWriter, r *http.Request) {
		route := Current(r.Context())
		_, _ = w.Write([]byte("show " + route.Name + " " + chi.URLParam(r, "id")))
	}
	for _, route := range Table {
		views[route.Name] = View{Show: show}
	}
	views[NotFound] = View{Show: func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(Current(r.Context()).Title))
	}}
	views[ProductEdit] = View{
		Show: show,
		Submit: func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("submit " + chi.URLParam(r, "id")))
		},
		Delete: func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("delete " + chi.URLParam(r, "id")))
		},
	}

	router := chi.NewRouter()
	require.NoError(t, Mount(router, views))

	tests := []struct {
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{http.MethodGet, "/products/4", http.StatusOK, "show product-edit 4"},
		{http.MethodPost, "/products/4", http.StatusOK, "submit 4"},
		{http.MethodPost, "/products/4/delete", http.StatusOK, "delete 4"},
		{http.MethodGet, "/staff/new", http.StatusOK, "show employee-new "},
		{http.MethodGet, "/missing", http.StatusNotFound, "Страница не найдена"},
		{http.MethodPost, "/staff/new", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestMount_MissingView(t *testing.T) {
	err := Mount(chi.NewRouter(), Views{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), Home)
}

func TestCurrent_Default(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, NotFound, Current(req.Context()).Name)
	assert.Equal(t, Staff, Current(WithRoute(req.Context(), Table[16])).Name)
}
