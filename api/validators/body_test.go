package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

type samplePayload struct {
	Name        string `json:"name" validate:"required"`
	SKU         string `json:"sku" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Quantity    int    `json:"quantity" validate:"omitempty,min=0"`
}

func decodeRequest(t *testing.T, body string, dest any) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return DecodeJSONBody(req, dest)
}

func TestDecodeJSONBody_Valid(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"name":"Widget","sku":"WID-001","warehouse_id":"wh-1"}`, &payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "Widget" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBody_CollectsAllMissingFields(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{}`, &payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %T", err)
	}
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected code %s", typed.Code())
	}
	if got := typed.Message(); got != "Missing fields: name, sku, warehouse_id" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestDecodeJSONBody_SingleMissingField(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"name":"Widget","warehouse_id":"wh-1"}`, &payload)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := pkgerrors.As(err).Message(); got != "Missing fields: sku" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestDecodeJSONBody_MalformedJSON(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"name":`, &payload)
	if err == nil {
		t.Fatal("expected decode error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBody_RejectsUnknownFields(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"name":"Widget","sku":"WID-001","warehouse_id":"wh-1","bogus":true}`, &payload)
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDecodeJSONBody_NonRequiredFailure(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"name":"Widget","sku":"WID-001","warehouse_id":"wh-1","quantity":-1}`, &payload)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := pkgerrors.As(err).Message(); got != "quantity must be at least 0" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5", nil)
	got, err := ParseQueryInt(req, "limit", 25, 1, 100)
	if err != nil || got != 5 {
		t.Fatalf("expected 5, got %d (err %v)", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	got, err = ParseQueryInt(req, "limit", 25, 1, 100)
	if err != nil || got != 25 {
		t.Fatalf("expected default 25, got %d (err %v)", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=0", nil)
	if _, err := ParseQueryInt(req, "limit", 25, 1, 100); err == nil {
		t.Fatal("expected range error")
	}

	req = httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	if _, err := ParseQueryInt(req, "limit", 25, 1, 100); err == nil {
		t.Fatal("expected numeric error")
	}
}
