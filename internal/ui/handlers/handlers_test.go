package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/komfort-mfg/komfort-admin/internal/dialog"
	"github.com/komfort-mfg/komfort-admin/internal/logger"
	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
	"github.com/komfort-mfg/komfort-admin/internal/ui/export"
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
	"github.com/komfort-mfg/komfort-admin/internal/ui/templates"
)

type fakeResponse struct {
	status int
	body   string
}

type recordedRequest struct {
	method string
	path   string
	body   string
}

// fakeBackend answers "METHOD /path" with canned JSON and records every request
type fakeBackend struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	requests  []recordedRequest
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()

	fb := &fakeBackend{responses: map[string]fakeResponse{}}
	for _, resource := range []string{"products", "partners", "suppliers", "materials", "employees", "workshops"} {
		fb.set(http.MethodGet, "/api/"+resource, http.StatusOK, `[]`)
	}
	fb.set(http.MethodGet, "/api/product-types", http.StatusOK, `[{"id":1,"name":"Гостиные"},{"id":2,"name":"Столы"}]`)
	fb.set(http.MethodGet, "/api/material-types", http.StatusOK, `[{"id":1,"name":"Массив"}]`)

	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) set(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.responses[method+" "+path] = fakeResponse{status: status, body: body}
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fb.mu.Lock()
	fb.requests = append(fb.requests, recordedRequest{method: r.Method, path: r.URL.Path, body: string(body)})
	res, ok := fb.responses[r.Method+" "+r.URL.Path]
	fb.mu.Unlock()

	if !ok {
		res = fakeResponse{status: http.StatusNotFound, body: `{"detail":"Страница не найдена."}`}
	}
	if res.status == http.StatusNoContent {
		w.WriteHeader(res.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.status)
	_, _ = io.WriteString(w, res.body)
}

// find returns the recorded requests for method and path
func (fb *fakeBackend) find(method, path string) []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	var out []recordedRequest
	for _, req := range fb.requests {
		if req.method == method && req.path == path {
			out = append(out, req)
		}
	}
	return out
}

func newTestHandlers(t *testing.T, apiBaseURL string) (*HandlerService, http.Handler) {
	t.Helper()

	h := NewHandlerService(client.NewClient(apiBaseURL), "test")
	h.Dialogs = dialog.NewStore()

	r := chi.NewRouter()
	r.Use(logger.RequestLogging(logger.NewDiscardLogger()))
	r.Route(templates.DialogPath, func(r chi.Router) {
		r.Get("/", h.DialogFragment)
		r.Get("/events", h.DialogEvents)
		r.Post("/{id}/confirm", h.ConfirmDialog)
		r.Post("/{id}/cancel", h.CancelDialog)
		r.Post("/{id}/dismiss", h.DismissDialog)
	})
	r.Get("/products/export", h.HandleExportProducts)
	require.NoError(t, routes.Mount(r, h.Views()))

	return h, r
}

func doGet(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func doPost(h http.Handler, path string, form url.Values, referer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestPagesRender(t *testing.T) {
	_, backend := newFakeBackend(t)
	_, router := newTestHandlers(t, backend.URL)

	paths := []string{
		"/",
		"/products", "/products/new",
		"/partners", "/partners/new",
		"/warehouse", "/warehouse/suppliers/new", "/warehouse/materials/new",
		"/production", "/production/workshops/new",
		"/staff", "/staff/new",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rr := doGet(router, path)
			assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			route := routes.Match(path)
			assert.Contains(t, rr.Body.String(), "<title>"+route.DocumentTitle()+"</title>")
		})
	}
}

func TestProducts_List(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodGet, "/api/products", http.StatusOK, `[{"id":7,"name":"Стол обеденный","article":"8758385",`+
		`"min_partner_price":"4456.90","product_type":"Столы","product_type_id":2,"material_type":"Массив",`+
		`"material_type_id":1,"manufacture_time_hours":5}]`)
	_, router := newTestHandlers(t, backend.URL)

	rr := doGet(router, "/products")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Стол обеденный")
	assert.Contains(t, body, "8758385")
	assert.Contains(t, body, `href="/products/7"`)
	assert.Contains(t, body, `href="/products/7/workshops"`)
	assert.Contains(t, body, `action="/products/7/delete"`)
	assert.Contains(t, body, `href="/products/export"`)
}

func TestProducts_ListError(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodGet, "/api/products", http.StatusInternalServerError, `{"detail":"База данных недоступна."}`)
	h, router := newTestHandlers(t, backend.URL)

	rr := doGet(router, "/products")
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "База данных недоступна.")

	alert := h.Dialogs.State().Alert
	assert.True(t, alert.Open)
	assert.Equal(t, dialog.KindError, alert.Kind)
	assert.Equal(t, "База данных недоступна.", alert.Message)
}

func TestProducts_UnknownItem(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodGet, "/api/products/999", http.StatusNotFound, `{"detail":"Страница не найдена."}`)
	h, router := newTestHandlers(t, backend.URL)

	for _, path := range []string{"/products/999", "/products/999/workshops"} {
		rr := doGet(router, path)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
		assert.Contains(t, rr.Body.String(), "<title>"+routes.NotFoundRoute.DocumentTitle()+"</title>", path)
	}
	assert.False(t, h.Dialogs.State().Alert.Open, "a missing item is not reported as an error")
}

func TestProducts_InvalidID(t *testing.T) {
	_, backend := newFakeBackend(t)
	_, router := newTestHandlers(t, backend.URL)

	assert.Equal(t, http.StatusNotFound, doGet(router, "/products/abc").Code)
}

func productFormValues(name string) url.Values {
	return url.Values{
		"article":           {"8758385"},
		"name":              {name},
		"min_partner_price": {"4456,90"},
		"product_type_id":   {"2"},
		"material_type_id":  {"1"},
	}
}

func TestProducts_Create(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodPost, "/api/products", http.StatusCreated, `{"id":9,"article":"8758385","name":"Стол",`+
		`"min_partner_price":"4456.90","product_type_id":2,"material_type_id":1}`)
	_, router := newTestHandlers(t, backend.URL)

	rr := doPost(router, "/products/new", productFormValues("Стол"), "")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/products", rr.Header().Get("Location"))

	sent := fb.find(http.MethodPost, "/api/products")
	require.Len(t, sent, 1)

	var payload client.ProductWritePayload
	require.NoError(t, json.Unmarshal([]byte(sent[0].body), &payload))
	assert.Equal(t, "Стол", payload.Name)
	assert.Equal(t, "8758385", payload.Article)
	assert.True(t, payload.MinPartnerPrice.Equal(decimal.RequireFromString("4456.90")))
	assert.Equal(t, int64(2), payload.ProductTypeID)
	assert.Equal(t, int64(1), payload.MaterialTypeID)
}

func TestProducts_CreateRejectedByBackend(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodPost, "/api/products", http.StatusBadRequest, `{"name":["Продукт с таким наименованием уже существует."]}`)
	h, router := newTestHandlers(t, backend.URL)

	rr := doPost(router, "/products/new", productFormValues("Стол"), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Наименование: Продукт с таким наименованием уже существует.")
	assert.Contains(t, body, `value="Стол"`, "submitted values are kept")

	assert.Equal(t, "Наименование: Продукт с таким наименованием уже существует.", h.Dialogs.State().Alert.Message)
}

func TestProducts_CreateInvalidInput(t *testing.T) {
	fb, backend := newFakeBackend(t)
	_, router := newTestHandlers(t, backend.URL)

	form := productFormValues("Стол")
	form.Set("min_partner_price", "дорого")
	form.Set("product_type_id", "")

	rr := doPost(router, "/products/new", form, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Стоимость: введите число.")
	assert.Contains(t, rr.Body.String(), "выберите значение.")
	assert.Empty(t, fb.find(http.MethodPost, "/api/products"), "nothing is sent for invalid input")
}

func TestProducts_DeleteConfirmed(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodDelete, "/api/products/7", http.StatusNoContent, "")
	h, router := newTestHandlers(t, backend.URL)

	rr := doPost(router, "/products/7/delete", url.Values{"label": {"Стол"}}, "")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/products", rr.Header().Get("Location"))

	confirm := h.Dialogs.State().Confirm
	require.True(t, confirm.Open)
	assert.Equal(t, "Удалить «Стол»?", confirm.Message)
	assert.Empty(t, fb.find(http.MethodDelete, "/api/products/7"), "nothing is deleted before the answer")

	rr = doPost(router, templates.DialogPath+"/"+confirm.ID+"/confirm", nil, "http://example.com/products")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/products", rr.Header().Get("Location"))

	assert.Len(t, fb.find(http.MethodDelete, "/api/products/7"), 1)

	st := h.Dialogs.State()
	assert.False(t, st.Confirm.Open)
	assert.True(t, st.Alert.Open)
	assert.Equal(t, dialog.KindSuccess, st.Alert.Kind)
	assert.Equal(t, "«Стол» удалено.", st.Alert.Message)
}

func TestProducts_DeleteCancelled(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodDelete, "/api/products/7", http.StatusNoContent, "")
	h, router := newTestHandlers(t, backend.URL)

	doPost(router, "/products/7/delete", url.Values{"label": {"Стол"}}, "")
	confirm := h.Dialogs.State().Confirm

	rr := doPost(router, templates.DialogPath+"/"+confirm.ID+"/cancel", nil, "")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	// give a wrongly started delete the chance to show up
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, fb.find(http.MethodDelete, "/api/products/7"))
	assert.False(t, h.Dialogs.State().Confirm.Open)
	assert.False(t, h.Dialogs.State().Alert.Open)
}

func TestSuppliers_DeleteRejectedByBackend(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodDelete, "/api/suppliers/3", http.StatusBadRequest, `["Нельзя удалить поставщика: он используется в материалах."]`)
	h, router := newTestHandlers(t, backend.URL)

	doPost(router, "/warehouse/suppliers/3/delete", url.Values{"label": {"ООО Лес"}}, "")
	confirm := h.Dialogs.State().Confirm
	require.True(t, confirm.Open)

	doPost(router, templates.DialogPath+"/"+confirm.ID+"/confirm", nil, "")

	alert := h.Dialogs.State().Alert
	assert.Equal(t, dialog.KindError, alert.Kind)
	assert.Equal(t, "Нельзя удалить поставщика: он используется в материалах.", alert.Message)
}

func TestDialog_FragmentAndDismiss(t *testing.T) {
	_, backend := newFakeBackend(t)
	h, router := newTestHandlers(t, backend.URL)

	id := h.Dialogs.ShowAlert(dialog.KindInfo, "Информация", "Список обновлен.")

	rr := doGet(router, templates.DialogPath)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Список обновлен.")
	assert.Contains(t, rr.Body.String(), templates.DialogPath+"/"+id+"/dismiss")

	req := httptest.NewRequest(http.MethodPost, templates.DialogPath+"/"+id+"/dismiss", nil)
	req.Header.Set("X-Requested-With", "fetch")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "Список обновлен.")
	assert.False(t, h.Dialogs.State().Alert.Open)
}

func TestDialog_StaleAnswer(t *testing.T) {
	_, backend := newFakeBackend(t)
	h, router := newTestHandlers(t, backend.URL)

	id := h.Dialogs.ShowAlert(dialog.KindInfo, "", "Первое")
	h.Dialogs.ShowAlert(dialog.KindInfo, "", "Второе")

	rr := doPost(router, templates.DialogPath+"/"+id+"/dismiss", nil, "http://example.com/staff")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/staff", rr.Header().Get("Location"))
	assert.Equal(t, "Второе", h.Dialogs.State().Alert.Message, "the newer alert stays open")

	rr = doPost(router, templates.DialogPath+"/unknown/confirm", nil, "https://elsewhere.example.org/x")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"), "foreign referers are not followed")
}

func TestDialog_Events(t *testing.T) {
	_, backend := newFakeBackend(t)
	h, router := newTestHandlers(t, backend.URL)

	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+templates.DialogPath+"/events", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	reader := bufio.NewReader(res.Body)
	readEvent := func() (string, dialog.State) {
		t.Helper()
		var event string
		var st dialog.State
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			switch {
			case strings.HasPrefix(line, "event: "):
				event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &st))
			case line == "" && event != "":
				return event, st
			}
		}
	}

	event, st := readEvent()
	assert.Equal(t, "connected", event)
	assert.False(t, st.Alert.Open)

	h.Dialogs.ShowAlert(dialog.KindWarning, "Внимание", "Остаток материала ниже минимального.")

	event, st = readEvent()
	assert.Equal(t, "dialog", event)
	assert.True(t, st.Alert.Open)
	assert.Equal(t, dialog.KindWarning, st.Alert.Kind)
	assert.Equal(t, "Остаток материала ниже минимального.", st.Alert.Message)
}

func TestExportProducts(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodGet, "/api/products", http.StatusOK, `[{"id":7,"name":"Стол обеденный","article":"8758385",`+
		`"min_partner_price":"4456.90","product_type":"Столы","product_type_id":2,"material_type":"Массив",`+
		`"material_type_id":1,"manufacture_time_hours":5}]`)
	_, router := newTestHandlers(t, backend.URL)

	rr := doGet(router, "/products/export")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(rr.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Продукция")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Артикул", rows[0][0])
	assert.Equal(t, "8758385", rows[1][0])
	assert.Equal(t, "Стол обеденный", rows[1][1])
}

func TestExportProducts_BackendError(t *testing.T) {
	fb, backend := newFakeBackend(t)
	fb.set(http.MethodGet, "/api/products", http.StatusServiceUnavailable, `{"detail":"Сервис на обслуживании."}`)
	h, router := newTestHandlers(t, backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/products/export", nil)
	req.Header.Set("Referer", "http://example.com/products")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/products", rr.Header().Get("Location"))
	assert.Equal(t, "Сервис на обслуживании.", h.Dialogs.State().Alert.Message)
}

func calculatorValues(quantity string) url.Values {
	return url.Values{
		"product_type_id":  {"1"},
		"material_type_id": {"1"},
		"product_quantity": {quantity},
		"parameter_one":    {"2,5"},
		"parameter_two":    {"1.2"},
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		response string
		wantCode int
		want     string
		wantSent bool
	}{
		{
			name:     "amount",
			quantity: "15",
			response: `{"raw_material_amount":47}`,
			wantCode: http.StatusOK,
			want:     "Необходимое количество сырья: 47",
			wantSent: true,
		},
		{
			name:     "backend cannot compute",
			quantity: "15",
			response: `{"raw_material_amount":-1}`,
			wantCode: http.StatusOK,
			want:     "Расчет невозможен",
			wantSent: true,
		},
		{
			name:     "quantity is not a number",
			quantity: "много",
			wantCode: http.StatusUnprocessableEntity,
			want:     "Количество продукции: введите целое число.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, backend := newFakeBackend(t)
			fb.set(http.MethodPost, "/api/raw-material/calculate", http.StatusOK, tt.response)
			_, router := newTestHandlers(t, backend.URL)

			rr := doPost(router, "/production", calculatorValues(tt.quantity), "")
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)

			sent := fb.find(http.MethodPost, "/api/raw-material/calculate")
			if !tt.wantSent {
				assert.Empty(t, sent)
				return
			}
			require.Len(t, sent, 1)

			var payload client.RawMaterialCalcPayload
			require.NoError(t, json.Unmarshal([]byte(sent[0].body), &payload))
			assert.Equal(t, 15, payload.ProductQuantity)
			assert.InDelta(t, 2.5, payload.ParameterOne, 1e-9)
			assert.InDelta(t, 1.2, payload.ParameterTwo, 1e-9)
		})
	}
}
