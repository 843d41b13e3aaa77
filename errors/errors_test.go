package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(KindService, "invoice not found")
	if err.Kind != KindService {
		t.Errorf("expected kind %s, got %s", KindService, err.Kind)
	}
	if err.Op != OpNone {
		t.Errorf("expected unscoped error, got %s", err.Op)
	}
	if err.Message != "invoice not found" {
		t.Errorf("expected message 'invoice not found', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("SERVICE_ERROR should not be retryable")
	}
}

func TestAppError_Transport_Retryable(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Transport("GET", cause)
	if !err.Retryable {
		t.Error("TRANSPORT_FAILURE should be retryable")
	}
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if !strings.Contains(err.Message, "GET failed") {
		t.Errorf("expected message to name the method, got %q", err.Message)
	}
	if err.Details["method"] != "GET" {
		t.Errorf("expected method=GET detail, got %v", err.Details["method"])
	}
}

func TestAppError_Service_Code(t *testing.T) {
	err := Service("010207", "Invalid token")
	if !err.HasCode() {
		t.Fatal("expected code to be set")
	}
	if got := err.Error(); got != "SERVICE_ERROR [010207]: Invalid token" {
		t.Errorf("unexpected Error(): %q", got)
	}

	noCode := Service("", "Error: not found")
	if noCode.HasCode() {
		t.Error("expected no code")
	}
	if got := noCode.Error(); got != "SERVICE_ERROR: Error: not found" {
		t.Errorf("unexpected Error(): %q", got)
	}
}

func TestAppError_Serialization(t *testing.T) {
	cause := fmt.Errorf("json: unsupported value: NaN")
	err := Serialization("Invoice", cause)
	if err.Kind != KindSerialization {
		t.Errorf("expected SERIALIZATION_FAILURE, got %s", err.Kind)
	}
	if err.Details["resource"] != "Invoice" {
		t.Errorf("expected resource=Invoice, got %v", err.Details["resource"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAppError_WithRetryable(t *testing.T) {
	err := Scope(OpConnection, New(KindTransport, "bad base url").WithRetryable(false))
	if IsRetryable(err) {
		t.Error("expected the override to survive Scope")
	}
	if !IsTransport(err) {
		t.Errorf("expected kind to be kept, got %s", KindOf(err))
	}
}

func TestScope_PreservesCodeAndMessage(t *testing.T) {
	base := Service("404", "Error: not found").WithStatus(404)
	err := Scope(OpQuery, base)

	appErr, ok := AsAppError(err)
	if !ok {
		t.Fatal("expected AppError")
	}
	if appErr.Op != OpQuery {
		t.Errorf("expected QUERY_ERROR, got %s", appErr.Op)
	}
	if appErr.Kind != KindService {
		t.Errorf("expected kind to be kept, got %s", appErr.Kind)
	}
	if appErr.Code != "404" || appErr.Message != "Error: not found" {
		t.Errorf("code/message not preserved: %q %q", appErr.Code, appErr.Message)
	}
	if appErr.HTTPStatus != 404 {
		t.Errorf("expected status 404, got %d", appErr.HTTPStatus)
	}
	if !stderrors.Is(err, base) {
		t.Error("scoped error should unwrap to the base error")
	}
}

func TestScope_OnlyOnce(t *testing.T) {
	first := Scope(OpCreation, Service("", "Error: bad price"))
	second := Scope(OpQuery, first)
	if second != first {
		t.Error("expected an already-scoped error to be returned unchanged")
	}
	if !IsCreation(second) {
		t.Error("expected the original operation class to survive")
	}
}

func TestScope_ForeignError(t *testing.T) {
	err := Scope(OpDelivery, fmt.Errorf("boom"))
	if !IsDelivery(err) {
		t.Error("expected DELIVERY_ERROR")
	}
	if !IsTransport(err) {
		t.Errorf("expected foreign errors to be normalized to TRANSPORT_FAILURE, got %s", KindOf(err))
	}
}

func TestScope_Nil(t *testing.T) {
	if Scope(OpQuery, nil) != nil {
		t.Error("expected nil")
	}
}

func TestClassificationHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"connection", Scope(OpConnection, New(KindTransport, "x")), IsConnection},
		{"creation", Scope(OpCreation, New(KindService, "x")), IsCreation},
		{"query", Scope(OpQuery, New(KindService, "x")), IsQuery},
		{"delivery", Scope(OpDelivery, New(KindService, "x")), IsDelivery},
		{"transport", New(KindTransport, "x"), IsTransport},
		{"malformed", New(KindMalformed, "x"), IsMalformed},
		{"service", New(KindService, "x"), IsService},
		{"serialization", New(KindSerialization, "x"), IsSerialization},
		{"wrapped", fmt.Errorf("outer: %w", Scope(OpQuery, New(KindMalformed, "x"))), IsQuery},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !tc.check(tc.err) {
				t.Errorf("classification failed for %v", tc.err)
			}
		})
	}

	if IsQuery(fmt.Errorf("plain")) {
		t.Error("plain errors have no operation class")
	}
	if KindOf(nil) != "" {
		t.Error("nil has no kind")
	}
}

func TestAppError_Error_Scoped(t *testing.T) {
	err := Scope(OpQuery, Service("", "Error: not found"))
	if got := err.Error(); got != "QUERY_ERROR: Error: not found" {
		t.Errorf("unexpected Error(): %q", got)
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := New(KindTransport, "x").WithDetails(map[string]any{"path": "rates", "method": "GET"})
	if err.Details["path"] != "rates" || err.Details["method"] != "GET" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestToEnvelope(t *testing.T) {
	env := Service("010207", "Invalid token").ToEnvelope()
	if env.Status != "error" || env.Code != "010207" || env.Message != "Invalid token" {
		t.Errorf("unexpected envelope: %+v", env)
	}
}

func TestOperation_String(t *testing.T) {
	if OpNone.String() != "UNSCOPED" {
		t.Errorf("unexpected %q", OpNone.String())
	}
	if OpDelivery.String() != "DELIVERY_ERROR" {
		t.Errorf("unexpected %q", OpDelivery.String())
	}
}
