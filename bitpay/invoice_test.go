package bitpay

import (
	"context"
	"net/http"
	"testing"

	"github.com/kbukum/paykit/errors"
)

func TestCreateInvoice_Merge(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, `{"facade":"pos/invoice","data":{
		"id":"KSnNNfoMDsbRzd1U9ypmVH",
		"url":"https://test.bitpay.com/invoice?id=KSnNNfoMDsbRzd1U9ypmVH",
		"status":"new",
		"token":"invoice-token",
		"invoiceTime":1588097500000
	}}`)
	c := newTestClient(t, srv.URL, WithGUIDFunc(func() string { return "4242" }))

	inv := NewInvoice(100.0, USD)
	inv.PosData = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"
	inv.Buyer = &Buyer{Name: "Satoshi", Email: "satoshi@buyeremaildomain.com", Notify: true}

	got, err := c.CreateInvoice(context.Background(), inv)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "KSnNNfoMDsbRzd1U9ypmVH" || got.Status != InvoiceStatusNew {
		t.Errorf("server fields not merged: %+v", got)
	}
	if got.Price != 100.0 || got.Currency != USD {
		t.Errorf("price/currency lost in merge: %v %s", got.Price, got.Currency)
	}
	if got.PosData != "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890" {
		t.Errorf("posData lost: %q", got.PosData)
	}
	if got.Buyer == nil || got.Buyer.Name != "Satoshi" {
		t.Errorf("buyer lost: %+v", got.Buyer)
	}
	if got.InvoiceTime != 1588097500000 {
		t.Errorf("invoiceTime = %d", got.InvoiceTime)
	}

	req := (*seen)[0]
	if req.Method != http.MethodPost || req.Path != "/invoices" {
		t.Errorf("unexpected request %s %s", req.Method, req.Path)
	}
	if req.Body["token"] != testToken {
		t.Errorf("expected session token in body, got %v", req.Body["token"])
	}
	if req.Body["guid"] != "4242" {
		t.Errorf("expected guid in body, got %v", req.Body["guid"])
	}
	if req.Headers.Get("Content-Type") != "application/json" {
		t.Errorf("unexpected content type %q", req.Headers.Get("Content-Type"))
	}
}

func TestCreateInvoice_FreshGUIDPerCall(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, `{"data":{"id":"x"}}`)
	n := 0
	c := newTestClient(t, srv.URL, WithGUIDFunc(func() string {
		n++
		return []string{"1", "2"}[n-1]
	}))

	inv := NewInvoice(10, USD)
	for i := 0; i < 2; i++ {
		if _, err := c.CreateInvoice(context.Background(), inv); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if (*seen)[0].Body["guid"] != "1" || (*seen)[1].Body["guid"] != "2" {
		t.Errorf("expected a fresh guid per call, got %v and %v", (*seen)[0].Body["guid"], (*seen)[1].Body["guid"])
	}
}

func TestCreateInvoice_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    errors.Kind
		code    string
		message string
	}{
		{"status error", http.StatusUnauthorized, `{"status":"error","code":"010207","message":"Invalid token"}`, errors.KindService, "010207", "Invalid token"},
		{"error member", http.StatusBadRequest, `{"error":"Invalid price"}`, errors.KindService, "", "Error: Invalid price"},
		{"errors array", http.StatusBadRequest, `{"errors":["price required","currency required"]}`, errors.KindService, "", "Multiple errors:\nprice required\ncurrency required"},
		{"array payload", http.StatusOK, `{"data":["unexpected"]}`, errors.KindSerialization, "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tc.status, tc.body)
			c := newTestClient(t, srv.URL)

			inv := NewInvoice(50, USD)
			got, err := c.CreateInvoice(context.Background(), inv)
			if got != nil {
				t.Error("expected no invoice on failure")
			}
			if !errors.IsCreation(err) {
				t.Fatalf("expected CREATION_ERROR, got %v", err)
			}
			appErr, _ := errors.AsAppError(err)
			if appErr.Kind != tc.kind {
				t.Errorf("kind = %s, want %s", appErr.Kind, tc.kind)
			}
			if tc.message != "" && appErr.Message != tc.message {
				t.Errorf("message = %q, want %q", appErr.Message, tc.message)
			}
			if appErr.Code != tc.code {
				t.Errorf("code = %q, want %q", appErr.Code, tc.code)
			}
			if inv.ID != "" {
				t.Error("invoice must not be merged on failure")
			}
		})
	}
}

func TestCreateInvoice_SerializationFailure(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, `{"data":{}}`)
	c := newTestClient(t, srv.URL)

	inv := NewInvoice(10, USD)
	inv.ExceptionStatus = make(chan int)

	_, err := c.CreateInvoice(context.Background(), inv)
	if !errors.IsCreation(err) || !errors.IsSerialization(err) {
		t.Fatalf("expected CREATION_ERROR over SERIALIZATION_FAILURE, got %v", err)
	}
	if len(*seen) != 0 {
		t.Error("nothing must be sent when the body cannot be encoded")
	}
}

func TestGetInvoice(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, `{"data":{"id":"inv-1","price":0.1,"currency":"BTC","status":"new"}}`)
	c := newTestClient(t, srv.URL)

	inv, err := c.GetInvoice(context.Background(), "inv-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.ID != "inv-1" || inv.Price != 0.1 || inv.Currency != BTC {
		t.Errorf("unexpected invoice %+v", inv)
	}

	req := (*seen)[0]
	if req.Method != http.MethodGet || req.Path != "/invoices/inv-1" {
		t.Errorf("unexpected request %s %s", req.Method, req.Path)
	}
	if got := req.Query["token"]; len(got) != 1 || got[0] != testToken {
		t.Errorf("expected token query parameter, got %v", got)
	}
}

func TestGetInvoice_NullPayload(t *testing.T) {
	for _, body := range []string{`{"data":null}`, `null`} {
		t.Run(body, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, body)
			c := newTestClient(t, srv.URL)

			inv, err := c.GetInvoice(context.Background(), "inv-1")
			if inv != nil {
				t.Errorf("expected no invoice, got %+v", inv)
			}
			if !errors.IsQuery(err) || !errors.IsSerialization(err) {
				t.Fatalf("expected QUERY_ERROR with SERIALIZATION_FAILURE, got %v", err)
			}
		})
	}
}

func TestGetInvoice_NotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, `{"error":"Object not found"}`)
	c := newTestClient(t, srv.URL)

	_, err := c.GetInvoice(context.Background(), "missing")
	if !errors.IsQuery(err) || !errors.IsService(err) {
		t.Fatalf("expected QUERY_ERROR, got %v", err)
	}
}
