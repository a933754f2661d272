package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xKoRx/bridge/domain"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	tel := newTestTelemetry(t)
	relay := NewRelayService(domain.NewDefaultMapper(), NewFIFOStore(), nil, tel)
	return NewServer(relay, tel, 0)
}

func doRequest(s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestLogTradeEndToEnd(t *testing.T) {
	s := newTestServer(t)

	// Submit del escenario golden: NQ Buy → orden hedge USTECH Sell
	w := doRequest(s, http.MethodPost, "/log_trade", []byte(`{
		"time": "T",
		"instrument": "NQ",
		"action": "Buy",
		"quantity": 1,
		"price": 22015.25,
		"account": "Acct",
		"is_exit": false
	}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decodeBody(t, w)["status"])

	// Pickup devuelve la orden transformada
	w = doRequest(s, http.MethodGet, "/mt5/get_trade", nil)
	require.Equal(t, http.StatusOK, w.Code)

	order := decodeBody(t, w)
	assert.Equal(t, "T", order["time"])
	assert.Equal(t, "USTECH", order["symbol"])
	assert.Equal(t, "Sell", order["type"])
	assert.Equal(t, 1.0, order["volume"])
	assert.Equal(t, 22015.25, order["price"])
	assert.Equal(t, "Hedge_Acct", order["comment"])
	assert.Equal(t, false, order["is_close"])

	// Siguiente pickup reporta cola vacía
	w = doRequest(s, http.MethodGet, "/mt5/get_trade", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no_trade", decodeBody(t, w)["status"])
}

func TestLogTradeFIFOOrder(t *testing.T) {
	s := newTestServer(t)

	for _, account := range []string{"first", "second"} {
		w := doRequest(s, http.MethodPost, "/log_trade", []byte(`{
			"time": "T", "instrument": "ES", "action": "Sell",
			"quantity": 1, "price": 6100.0, "account": "`+account+`"
		}`))
		require.Equal(t, http.StatusOK, w.Code)
	}

	first := decodeBody(t, doRequest(s, http.MethodGet, "/mt5/get_trade", nil))
	assert.Equal(t, "Hedge_first", first["comment"])

	second := decodeBody(t, doRequest(s, http.MethodGet, "/mt5/get_trade", nil))
	assert.Equal(t, "Hedge_second", second["comment"])
}

func TestLogTradeMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodPost, "/log_trade", []byte(`{not json`))
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.NotEmpty(t, body["message"])
}

func TestLogTradeMissingFieldsListsAll(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodPost, "/log_trade", []byte(`{"instrument":"NQ","action":"Buy"}`))
	require.Equal(t, http.StatusBadRequest, w.Code)

	message := decodeBody(t, w)["message"].(string)
	for _, field := range []string{"time", "quantity", "price", "account"} {
		assert.Contains(t, message, field)
	}
}

func TestLogTradeValidationRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid action", body: `{"time":"T","instrument":"NQ","action":"HOLD","quantity":1,"price":1,"account":"A"}`},
		{name: "zero quantity", body: `{"time":"T","instrument":"NQ","action":"Buy","quantity":0,"price":1,"account":"A"}`},
		{name: "negative quantity", body: `{"time":"T","instrument":"NQ","action":"Buy","quantity":-1,"price":1,"account":"A"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := doRequest(s, http.MethodPost, "/log_trade", []byte(tt.body))
			require.Equal(t, http.StatusBadRequest, w.Code)

			// Un trade rechazado nunca entra al store
			w = doRequest(s, http.MethodGet, "/mt5/get_trade", nil)
			assert.Equal(t, "no_trade", decodeBody(t, w)["status"])
		})
	}
}

func TestTradeResultEndpoint(t *testing.T) {
	s := newTestServer(t)

	// JSON bien formado
	w := doRequest(s, http.MethodPost, "/mt5/trade_result", []byte(`{"status":"filled","ticket":42}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "success", decodeBody(t, w)["status"])

	// JSON con shape inesperado también se acepta (best-effort)
	w = doRequest(s, http.MethodPost, "/mt5/trade_result", []byte(`{"weird":[1,2,3]}`))
	require.Equal(t, http.StatusOK, w.Code)

	// Payloads no-objeto parseables: arrays y escalares también son 200
	for _, body := range []string{`[1,2,3]`, `42`, `"text"`} {
		w = doRequest(s, http.MethodPost, "/mt5/trade_result", []byte(body))
		require.Equal(t, http.StatusOK, w.Code, "payload: %s", body)
		assert.Equal(t, "success", decodeBody(t, w)["status"])
	}

	// No parseable → 400
	w = doRequest(s, http.MethodPost, "/mt5/trade_result", []byte(`garbage`))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", decodeBody(t, w)["status"])
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, 0.0, body["queue_size"])

	// queue_size refleja el trabajo pendiente
	doRequest(s, http.MethodPost, "/log_trade", []byte(`{
		"time":"T","instrument":"NQ","action":"Buy","quantity":1,"price":1,"account":"A"
	}`))

	body = decodeBody(t, doRequest(s, http.MethodGet, "/health", nil))
	assert.Equal(t, 1.0, body["queue_size"])
}
