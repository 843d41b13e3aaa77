package bitpay

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kbukum/paykit/errors"
)

const ratesBody = `{"data":[
	{"code":"BTC","name":"Bitcoin","rate":1},
	{"code":"USD","name":"US Dollar","rate":9434.5},
	{"code":"EUR","name":"Eurozone Euro","rate":8696.21},
	{"code":"GBP","name":"Pound Sterling","rate":7578.12}
]}`

func TestGetRates(t *testing.T) {
	srv, seen := newTestServer(t, http.StatusOK, ratesBody)
	c := newTestClient(t, srv.URL)

	rates, err := c.GetRates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rates.Len() != 4 {
		t.Fatalf("expected 4 rates, got %d", rates.Len())
	}

	tests := []struct {
		code string
		want float64
	}{
		{EUR, 8696.21},
		{GBP, 7578.12},
		{BTC, 1},
	}
	for _, tc := range tests {
		got, err := rates.GetRate(tc.code)
		if err != nil {
			t.Errorf("GetRate(%s) error: %v", tc.code, err)
			continue
		}
		if got != tc.want {
			t.Errorf("GetRate(%s) = %v, want %v", tc.code, got, tc.want)
		}
	}

	req := (*seen)[0]
	if req.Path != "/rates" || len(req.Query) != 0 {
		t.Errorf("rates are fetched without a token, got %s?%v", req.Path, req.Query)
	}
}

func TestRates_GetRateNotFound(t *testing.T) {
	rates := NewRates([]Rate{{Code: "EUR", Name: "Eurozone Euro", Value: 0.9}})

	for _, code := range []string{"XYZ", "eur", ""} {
		_, err := rates.GetRate(code)
		if !stderrors.Is(err, ErrRateNotFound) {
			t.Errorf("GetRate(%q): expected ErrRateNotFound, got %v", code, err)
		}
	}
}

func TestRates_ListIsCopy(t *testing.T) {
	rates := NewRates([]Rate{{Code: "EUR", Value: 0.9}, {Code: "GBP", Value: 0.8}})
	list := rates.Rates()
	list[0].Value = 42

	if v, _ := rates.GetRate("EUR"); v != 0.9 {
		t.Errorf("table changed through the returned list: %v", v)
	}
	if list[1].Code != "GBP" {
		t.Error("expected service order to be kept")
	}
}

func TestRates_Convert(t *testing.T) {
	rates := NewRates([]Rate{{Code: "EUR", Value: 8696.21}})

	got, err := rates.Convert("EUR", decimal.RequireFromString("0.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("4348.105")) {
		t.Errorf("Convert() = %s", got)
	}

	if _, err := rates.Convert("CNY", decimal.NewFromInt(1)); !stderrors.Is(err, ErrRateNotFound) {
		t.Errorf("expected ErrRateNotFound, got %v", err)
	}
}

func TestRates_Update(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"data":[{"code":"EUR","name":"Eurozone Euro","rate":1.0}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"code":"EUR","name":"Eurozone Euro","rate":2.0},{"code":"CNY","name":"Yuan","rate":7.0}]}`))
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	rates, err := c.GetRates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rates.Update(context.Background()); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if v, _ := rates.GetRate("EUR"); v != 2.0 {
		t.Errorf("expected updated EUR rate, got %v", v)
	}
	if v, err := rates.GetRate("CNY"); err != nil || v != 7.0 {
		t.Errorf("expected new CNY rate, got %v %v", v, err)
	}
}

func TestRates_UpdateFailureKeepsTable(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_, _ = w.Write([]byte(`{"data":[{"code":"EUR","rate":1.0}]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"rates unavailable"}`))
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL)

	rates, err := c.GetRates(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = rates.Update(context.Background())
	if !errors.IsQuery(err) {
		t.Fatalf("expected QUERY_ERROR, got %v", err)
	}
	if v, _ := rates.GetRate("EUR"); v != 1.0 || rates.Len() != 1 {
		t.Error("table must be unchanged after a failed update")
	}
}

func TestRates_UpdateUnbound(t *testing.T) {
	err := NewRates(nil).Update(context.Background())
	if !errors.IsQuery(err) {
		t.Errorf("expected QUERY_ERROR, got %v", err)
	}
	if errors.IsRetryable(err) {
		t.Errorf("an unbound table never becomes bound, got retryable %v", err)
	}
}

func TestGetRates_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(error) bool
	}{
		{"object payload", `{"data":{"code":"EUR"}}`, errors.IsSerialization},
		{"service error", `{"status":"error","message":"Rates unavailable"}`, errors.IsService},
		{"not json", `rates`, errors.IsMalformed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, tc.body)
			c := newTestClient(t, srv.URL)

			rates, err := c.GetRates(context.Background())
			if rates != nil {
				t.Error("expected no table on failure")
			}
			if !errors.IsQuery(err) || !tc.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}
