package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/eadrium-canteen/internal/dispatch"
	"github.com/xenking/eadrium-canteen/internal/domain/menu"
	"github.com/xenking/eadrium-canteen/internal/domain/order"
	"github.com/xenking/eadrium-canteen/internal/domain/user"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	catalog := menu.NewCatalog()
	users := user.NewStore()
	d, err := dispatch.New(catalog, users, order.NewEngine(catalog, users), dispatch.Options{})
	require.NoError(t, err)
	return New(d)
}

func get(t *testing.T, h http.Handler, cmd string, params url.Values) (int, string) {
	t.Helper()
	target := "/" + cmd
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestServeHTTP_Ping(t *testing.T) {
	h := newTestHandler(t)

	code, body := get(t, h, "ping", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, dispatch.DefaultGreeting, body)
}

func TestServeHTTP_ContentType(t *testing.T) {
	h := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestServeHTTP_CommandFlow(t *testing.T) {
	h := newTestHandler(t)

	code, body := get(t, h, "createUser", url.Values{
		"userId": {"u1"}, "userName": {"Alice"}, "yearLevel": {"7"},
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body)

	_, body = get(t, h, "addMenuItem", url.Values{
		"itemId": {"i1"}, "itemName": {"Toastie"}, "desc": {"cheese"},
		"price": {"6"}, "itemType": {"food"},
	})
	assert.Equal(t, "success", body)

	_, body = get(t, h, "placeOrder", url.Values{
		"orderId": {"o1"}, "itemId": {"i1"}, "userId": {"u1"}, "orderType": {"takeout"},
	})
	assert.Equal(t, "success", body)

	_, body = get(t, h, "getCart", url.Values{"userId": {"u1"}})
	assert.Equal(t, "orders=Order{itemId='i1', type='takeout', orderId='o1'}", body)
}

func TestServeHTTP_ErrorsKeep200(t *testing.T) {
	// Dispatched commands always answer 200; clients parse the Error prefix.
	h := newTestHandler(t)

	code, body := get(t, h, "getUser", url.Values{"userId": {"nobody"}})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Error: user doesn't exist", body)

	code, body = get(t, h, "blowUp", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, `Error: unknown command "blowUp"`, body)
}

func TestServeHTTP_MissingVsEmptyParam(t *testing.T) {
	h := newTestHandler(t)

	// A present-but-empty userId still fails the missing-parameter check.
	_, body := get(t, h, "createUser", url.Values{
		"userId": {""}, "userName": {"Alice"}, "yearLevel": {"7"},
	})
	assert.Equal(t, "Error: required parameter missing", body)
}
