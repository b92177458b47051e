package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alehernandezlabs/trade-notifier/internal/config"
	"github.com/alehernandezlabs/trade-notifier/internal/logger"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(text string) error {
	f.sent = append(f.sent, text)
	return f.err
}

func (f *fakeSender) Enabled() bool {
	return true
}

func newTestServer(sender Sender) *Server {
	cfg := &config.Config{
		Env:    "production",
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8000},
	}
	return NewServer(sender, nil, cfg, logger.New("error"))
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)
	return rr
}

const buyExample = `{
	"side": "BUY",
	"crypto": "BTC",
	"price": 50000,
	"quantity": 0.01,
	"total_cost": 500,
	"fee_percentage": 0.1,
	"fee_amount": 0.5,
	"net_total": 499.5,
	"order_id": "12345ABC"
}`

func TestHealthcheck(t *testing.T) {
	s := newTestServer(&fakeSender{})
	rr := doRequest(s, http.MethodGet, "/healthcheck", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp healthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected status ok, got %q", resp.Status)
	}
	if resp.Services.Telegram != "enabled" {
		t.Fatalf("expected telegram enabled, got %q", resp.Services.Telegram)
	}
	if resp.Services.Database != "disabled" {
		t.Fatalf("expected database disabled without repo, got %q", resp.Services.Database)
	}
}

func TestSendMessage(t *testing.T) {
	fake := &fakeSender{}
	s := newTestServer(fake)

	rr := doRequest(s, http.MethodPost, "/send-message", `{"message": "hello"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(fake.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(fake.sent))
	}
	if fake.sent[0] != "hello" {
		t.Fatalf("expected delivery of %q, got %q", "hello", fake.sent[0])
	}
}

func TestSendMessage_Missing(t *testing.T) {
	fake := &fakeSender{}
	s := newTestServer(fake)

	for _, body := range []string{`{}`, `{"message": ""}`, `{"message": "   "}`} {
		rr := doRequest(s, http.MethodPost, "/send-message", body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rr.Code)
		}
	}
	if len(fake.sent) != 0 {
		t.Fatalf("no delivery should have been attempted, got %d", len(fake.sent))
	}
}

func TestSendMessage_MalformedJSON(t *testing.T) {
	s := newTestServer(&fakeSender{})
	rr := doRequest(s, http.MethodPost, "/send-message", `{"message":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSendMessage_DeliveryFailure(t *testing.T) {
	fake := &fakeSender{err: errors.New("chat 12345 rejected: bot token revoked")}
	s := newTestServer(fake)

	rr := doRequest(s, http.MethodPost, "/send-message", `{"message": "hello"}`)

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "token") || strings.Contains(body, "12345") {
		t.Fatalf("response must not leak transport detail: %s", body)
	}
}

func TestTradeExecution_Buy(t *testing.T) {
	fake := &fakeSender{}
	s := newTestServer(fake)

	rr := doRequest(s, http.MethodPost, "/trade-execution", buyExample)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(fake.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(fake.sent))
	}

	msg := fake.sent[0]
	for _, want := range []string{
		"BUY", "BTC", "50000.00", "0.01", "500.00", "0.10%", "0.50", "499.50", "12345ABC",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("delivered message missing %q:\n%s", want, msg)
		}
	}
}

func TestTradeExecution_SellMissingField(t *testing.T) {
	fake := &fakeSender{}
	s := newTestServer(fake)

	// SELL without profit_loss_usdt
	body := `{
		"side": "SELL",
		"crypto": "ETH",
		"price": 2600,
		"quantity": 0.5,
		"total_cost": 1300,
		"fee_percentage": 0.1,
		"fee_amount": 1.3,
		"net_total": 1298.7,
		"order_id": "SELL42",
		"profit_loss_percentage": 2.5,
		"avg_buy_price": 2500,
		"sell_price": 2600
	}`
	rr := doRequest(s, http.MethodPost, "/trade-execution", body)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["field"] != "profit_loss_usdt" {
		t.Fatalf("expected field profit_loss_usdt, got %q", resp["field"])
	}
	if len(fake.sent) != 0 {
		t.Fatalf("validation failure must not reach the sender, got %d deliveries", len(fake.sent))
	}
}

func TestTradeExecution_InvalidSide(t *testing.T) {
	s := newTestServer(&fakeSender{})
	body := strings.Replace(buyExample, `"BUY"`, `"HOLD"`, 1)

	rr := doRequest(s, http.MethodPost, "/trade-execution", body)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestTradeExecution_NonNumericPrice(t *testing.T) {
	fake := &fakeSender{}
	s := newTestServer(fake)
	body := strings.Replace(buyExample, "50000", `"not-a-number"`, 1)

	rr := doRequest(s, http.MethodPost, "/trade-execution", body)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if len(fake.sent) != 0 {
		t.Fatalf("malformed payload must not reach the sender")
	}
}

func TestNotifications_Disabled(t *testing.T) {
	s := newTestServer(&fakeSender{})
	rr := doRequest(s, http.MethodGet, "/notifications", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without activity log, got %d", rr.Code)
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		query    string
		expected int
	}{
		{"", defaultActivityLimit},
		{"?limit=5", 5},
		{"?limit=0", defaultActivityLimit},
		{"?limit=-3", defaultActivityLimit},
		{"?limit=abc", defaultActivityLimit},
		{"?limit=500", maxActivityLimit},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/notifications"+tc.query, nil)
		if got := parseLimit(req, defaultActivityLimit); got != tc.expected {
			t.Fatalf("parseLimit(%q) = %d, want %d", tc.query, got, tc.expected)
		}
	}
}
