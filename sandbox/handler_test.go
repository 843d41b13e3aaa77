package sandbox

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/paykit/bitpay"
	"github.com/kbukum/paykit/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const sandboxToken = "merchant-token"

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(Config{Token: sandboxToken, PublicURL: "https://sandbox.test/"}, nil, logger.Nop())
}

func do(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var doc map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &doc)
	return rr, doc
}

func TestCreateInvoice(t *testing.T) {
	h := newTestHandler(t)

	rr, doc := do(t, h, http.MethodPost, "/invoices", map[string]any{
		"price": 10.0, "currency": "USD", "token": sandboxToken, "guid": "123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if doc["facade"] != facadeInvoice {
		t.Errorf("unexpected facade %v", doc["facade"])
	}
	data := doc["data"].(map[string]any)
	id, _ := data["id"].(string)
	if len(id) != 22 {
		t.Errorf("unexpected id %q", id)
	}
	if data["status"] != bitpay.InvoiceStatusNew {
		t.Errorf("expected status new, got %v", data["status"])
	}
	if data["url"] != "https://sandbox.test/invoice?id="+id {
		t.Errorf("unexpected url %v", data["url"])
	}
	if data["token"] == sandboxToken || data["token"] == "" {
		t.Error("expected an invoice token distinct from the merchant token")
	}
	if _, ok := h.Store().Invoice(id); !ok {
		t.Error("invoice not stored")
	}
}

func TestCreateInvoice_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   any
		status int
		check  func(t *testing.T, doc map[string]any)
	}{
		{
			name:   "wrong token",
			body:   map[string]any{"price": 10.0, "currency": "USD", "token": "other"},
			status: http.StatusUnauthorized,
			check: func(t *testing.T, doc map[string]any) {
				if doc["status"] != "error" || doc["code"] != CodeInvalidToken || doc["message"] != "Invalid token" {
					t.Errorf("unexpected envelope %v", doc)
				}
			},
		},
		{
			name:   "invalid fields",
			body:   map[string]any{"price": 0, "currency": "usd", "token": sandboxToken},
			status: http.StatusBadRequest,
			check: func(t *testing.T, doc map[string]any) {
				errs, ok := doc["errors"].([]any)
				if !ok || len(errs) != 2 {
					t.Fatalf("expected two errors, got %v", doc)
				}
				if errs[0] != "price: must be greater than 0" {
					t.Errorf("unexpected first error %v", errs[0])
				}
			},
		},
		{
			name:   "not json",
			body:   "price=10",
			status: http.StatusBadRequest,
			check: func(t *testing.T, doc map[string]any) {
				if msg, _ := doc["error"].(string); !strings.HasPrefix(msg, "Invalid request body") {
					t.Errorf("unexpected error %v", doc)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t)
			rr, doc := do(t, h, http.MethodPost, "/invoices", tc.body)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rr.Code, rr.Body.String())
			}
			tc.check(t, doc)
			if n, _ := h.Store().Counts(); n != 0 {
				t.Error("rejected invoices must not be stored")
			}
		})
	}
}

func TestGetInvoice(t *testing.T) {
	h := newTestHandler(t)
	inv := h.Store().PutInvoice(bitpay.Invoice{ID: "inv-1", Price: 5, Currency: "EUR", Status: "new"})

	rr, doc := do(t, h, http.MethodGet, "/invoices/inv-1?token="+sandboxToken, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if doc["data"].(map[string]any)["id"] != inv.ID {
		t.Errorf("unexpected payload %v", doc)
	}

	rr, doc = do(t, h, http.MethodGet, "/invoices/missing?token="+sandboxToken, nil)
	if rr.Code != http.StatusNotFound || doc["error"] != "not found" {
		t.Errorf("expected not found, got %d %v", rr.Code, doc)
	}

	rr, doc = do(t, h, http.MethodGet, "/invoices/inv-1", nil)
	if rr.Code != http.StatusUnauthorized || doc["code"] != CodeInvalidToken {
		t.Errorf("expected token rejection, got %d %v", rr.Code, doc)
	}
}

func TestBillLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rr, doc := do(t, h, http.MethodPost, "/bills", map[string]any{
		"number":   "7",
		"currency": "USD",
		"email":    "satoshi@merchantemaildomain.com",
		"token":    sandboxToken,
		"items": []map[string]any{
			{"price": 6.0, "quantity": 1, "description": "Test Item 1"},
			{"price": 4.0, "quantity": 1, "description": "Test Item 2"},
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	data := doc["data"].(map[string]any)
	id := data["id"].(string)
	billToken := data["token"].(string)
	if data["status"] != bitpay.BillStatusDraft {
		t.Errorf("expected draft, got %v", data["status"])
	}

	rr, doc = do(t, h, http.MethodGet, "/bills/"+id+"?token="+sandboxToken, nil)
	if rr.Code != http.StatusOK || doc["data"].(map[string]any)["number"] != "7" {
		t.Fatalf("unexpected bill fetch %d %v", rr.Code, doc)
	}

	rr, doc = do(t, h, http.MethodPost, "/bills/"+id+"/deliveries", map[string]string{"token": "wrong"})
	if rr.Code != http.StatusUnauthorized || doc["code"] != CodeInvalidBillToken {
		t.Errorf("expected bill token rejection, got %d %v", rr.Code, doc)
	}

	rr, doc = do(t, h, http.MethodPost, "/bills/"+id+"/deliveries", map[string]string{"token": billToken})
	if rr.Code != http.StatusOK || doc["data"] != "Success" {
		t.Fatalf("unexpected delivery %d %v", rr.Code, doc)
	}
	if bill, _ := h.Store().Bill(id); bill.Status != bitpay.BillStatusSent {
		t.Errorf("expected sent, got %s", bill.Status)
	}
}

func TestCreateBill_Invalid(t *testing.T) {
	h := newTestHandler(t)
	rr, doc := do(t, h, http.MethodPost, "/bills", map[string]any{
		"currency": "USD", "email": "nope", "token": sandboxToken, "items": []any{},
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	errs, _ := doc["errors"].([]any)
	if len(errs) != 2 {
		t.Errorf("expected email and items errors, got %v", doc)
	}
}

func TestDeliverBill_Missing(t *testing.T) {
	h := newTestHandler(t)

	rr, doc := do(t, h, http.MethodPost, "/bills/nope/deliveries", map[string]string{"token": "x"})
	if rr.Code != http.StatusNotFound || doc["error"] != "not found" {
		t.Errorf("expected not found, got %d %v", rr.Code, doc)
	}

	rr, doc = do(t, h, http.MethodPost, "/bills/nope/deliveries", map[string]string{})
	if rr.Code != http.StatusBadRequest || doc["errors"] == nil {
		t.Errorf("expected a missing token error, got %d %v", rr.Code, doc)
	}
}

func TestGetRates(t *testing.T) {
	h := NewHandler(Config{Rates: []bitpay.Rate{{Code: "EUR", Name: "Euro", Value: 0.9}}}, nil, nil)

	rr, doc := do(t, h, http.MethodGet, "/rates", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	rates := doc["data"].([]any)
	if len(rates) != 1 || rates[0].(map[string]any)["rate"] != 0.9 {
		t.Errorf("unexpected rates %v", rates)
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t)
	rr, doc := do(t, h, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK || doc["status"] != "up" {
		t.Fatalf("unexpected health %d %v", rr.Code, doc)
	}
	components := doc["components"].([]any)
	if components[0].(map[string]any)["name"] != "store" {
		t.Errorf("expected store component, got %v", components)
	}
}

func TestRequestIDAndNoRoute(t *testing.T) {
	h := newTestHandler(t)
	rr, doc := do(t, h, http.MethodGet, "/payouts", nil)
	if rr.Code != http.StatusNotFound || doc["error"] != "not found" {
		t.Errorf("unexpected response %d %v", rr.Code, doc)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id on every response")
	}
}

func TestTokenAccepted_Open(t *testing.T) {
	h := NewHandler(Config{}, nil, nil)
	if !h.tokenAccepted("anything") {
		t.Error("an open sandbox accepts any token")
	}
	if h.tokenAccepted("") {
		t.Error("an empty token is never accepted")
	}
}

func TestNewHandler_LeavesGinModeAlone(t *testing.T) {
	debug := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "sandbox-test", &bytes.Buffer{})
	for _, log := range []*logger.Logger{debug, logger.Nop()} {
		NewHandler(Config{}, nil, log)
		if gin.Mode() != gin.TestMode {
			t.Fatalf("gin mode changed to %q", gin.Mode())
		}
	}
}
