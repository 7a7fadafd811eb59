package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/storefront/internal/gateway/gatewaytest"
	"github.com/dwikikusuma/storefront/pkg/logger"
)

func newTestServer(t *testing.T, ready func(context.Context) error) (*httptest.Server, *gatewaytest.Store) {
	t.Helper()
	store := gatewaytest.NewStore(nil)
	srv := httptest.NewServer(newAPI(store.Gateway(), ready, logger.Discard()).routes())
	t.Cleanup(srv.Close)
	return srv, store
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestProductRoutes(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/products", `{"name":"Keyboard","price":25.5,"image":"kb.png"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "25.50", body["price"])
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/products/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Keyboard", body["name"])

	resp, body = do(t, http.MethodPut, srv.URL+"/v1/products/"+id, `{"name":"Keyboard","price":"30"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "30.00", body["price"])

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 1)

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/products?q=key&limit=5", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["products"], 1)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/v1/products/"+id, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/products/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(body))
}

func TestCreateProductValidation(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	for name, payload := range map[string]string{
		"missing name":   `{"price":"10"}`,
		"missing price":  `{"name":"Lamp"}`,
		"null price":     `{"name":"Lamp","price":null}`,
		"zero price":     `{"name":"Lamp","price":0}`,
		"malformed json": `{"name":`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/v1/products", payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_ARGUMENT", errorCode(body))
		})
	}
}

func TestOrderRoutes(t *testing.T) {
	srv, store := newTestServer(t, nil)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/orders", `{
		"fullName":"Ada","phone":"555","address":"Row 1",
		"products":[{"id":"p-1","name":"Mouse","price":10,"quantity":2}],
		"totalPrice":"21.60"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "21.60", body["totalPrice"])
	id, _ := body["id"].(string)

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/orders/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ada", body["fullName"])

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/orders", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["orders"], 1)

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/orders", `{"fullName":"Ada","products":[],"totalPrice":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ARGUMENT", errorCode(body))
	assert.Len(t, store.Orders(), 1)
}

func TestStoreOutageIs503(t *testing.T) {
	srv, store := newTestServer(t, nil)
	store.SetFail(errors.New("connection refused"))

	resp, body := do(t, http.MethodGet, srv.URL+"/v1/products", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "UNAVAILABLE", errorCode(body))
	e := body["error"].(map[string]any)
	assert.Contains(t, e["message"], "connection refused")
}

func TestVerifyPinRoute(t *testing.T) {
	srv, store := newTestServer(t, nil)
	_, err := store.Gateway().CreateAdminPin(context.Background(), "2468", "Owner")
	require.NoError(t, err)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/admin/verify", `{"pin":"2468"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Owner", body["name"])

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/admin/verify", `{"pin":"0000"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(body))
}

func TestHealthRoutes(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv, _ := newTestServer(t, func(context.Context) error { return nil })
		resp, _ := do(t, http.MethodGet, srv.URL+"/readyz", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp, _ = do(t, http.MethodGet, srv.URL+"/healthz", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("database down", func(t *testing.T) {
		srv, _ := newTestServer(t, func(context.Context) error { return errors.New("no db") })
		resp, _ := do(t, http.MethodGet, srv.URL+"/readyz", "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}
