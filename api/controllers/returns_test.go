package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lumicart/storefront/internal/returns"
	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
)

type stubReturnsService struct {
	record *returns.ReturnRecord
	err    error

	created       *returns.Request
	customerEmail string
}

func (s *stubReturnsService) Create(_ context.Context, req returns.Request) (*returns.ReturnRecord, error) {
	s.created = &req
	return s.record, s.err
}

func (s *stubReturnsService) Get(context.Context, string) (*returns.ReturnRecord, error) {
	return s.record, s.err
}

func (s *stubReturnsService) ListByOrder(context.Context, string) ([]returns.ReturnRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []returns.ReturnRecord{*s.record}, nil
}

func (s *stubReturnsService) ListByCustomer(_ context.Context, email string) ([]returns.ReturnRecord, error) {
	s.customerEmail = email
	if s.err != nil {
		return nil, s.err
	}
	return []returns.ReturnRecord{*s.record}, nil
}

func newReturnsRouter(svc ReturnsService) chi.Router {
	logg := testLogger()
	r := chi.NewRouter()
	r.Post("/returns", ReturnCreate(svc, logg))
	r.Get("/returns", ReturnListMine(svc, logg))
	r.Get("/returns/{returnId}", ReturnDetail(svc, logg))
	r.Get("/orders/{orderId}/returns", ReturnListByOrder(svc, logg))
	return r
}

func requestedReturn() *returns.ReturnRecord {
	return &returns.ReturnRecord{ID: "ret-1", OrderID: "ord-1", Status: enums.ReturnStatusRequested}
}

const createReturnBody = `{
	"orderId": "ord-1",
	"returnReason": "damaged",
	"comments": "box arrived crushed",
	"returnItems": [{"orderItemId": 11, "quantity": 1, "reason": "damaged"}]
}`

func TestReturnCreate(t *testing.T) {
	t.Parallel()

	svc := &stubReturnsService{record: requestedReturn()}
	router := newReturnsRouter(svc)
	req := withProfile(httptest.NewRequest(http.MethodPost, "/returns", strings.NewReader(createReturnBody)), testProfile())
	resp := serve(t, router, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var record returns.ReturnRecord
	decodeData(t, resp, &record)
	if record.ID != "ret-1" || record.Status != enums.ReturnStatusRequested {
		t.Fatalf("unexpected record %+v", record)
	}
	if svc.created == nil || svc.created.OrderID != "ord-1" || len(svc.created.Items) != 1 {
		t.Fatalf("unexpected request forwarded %+v", svc.created)
	}
}

func TestReturnCreateRequiresAuth(t *testing.T) {
	t.Parallel()

	router := newReturnsRouter(&stubReturnsService{record: requestedReturn()})
	req := httptest.NewRequest(http.MethodPost, "/returns", strings.NewReader(createReturnBody))
	resp := serve(t, router, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestReturnCreateValidation(t *testing.T) {
	t.Parallel()

	router := newReturnsRouter(&stubReturnsService{record: requestedReturn()})
	for name, body := range map[string]string{
		"missing order":   `{"returnReason": "damaged", "returnItems": [{"orderItemId": 11, "quantity": 1, "reason": "damaged"}]}`,
		"no items":        `{"orderId": "ord-1", "returnReason": "damaged", "returnItems": []}`,
		"zero quantity":   `{"orderId": "ord-1", "returnReason": "damaged", "returnItems": [{"orderItemId": 11, "quantity": 0, "reason": "damaged"}]}`,
		"unknown field":   `{"orderId": "ord-1", "returnReason": "damaged", "bogus": true, "returnItems": [{"orderItemId": 11, "quantity": 1, "reason": "damaged"}]}`,
	} {
		req := withProfile(httptest.NewRequest(http.MethodPost, "/returns", strings.NewReader(body)), testProfile())
		resp := serve(t, router, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, resp.Code)
		}
		if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation code, got %s", name, code)
		}
	}
}

func TestReturnListMine(t *testing.T) {
	t.Parallel()

	svc := &stubReturnsService{record: requestedReturn()}
	router := newReturnsRouter(svc)
	req := withProfile(httptest.NewRequest(http.MethodGet, "/returns", nil), testProfile())
	resp := serve(t, router, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if svc.customerEmail != "ada@example.com" {
		t.Fatalf("expected lookup by token email, got %q", svc.customerEmail)
	}
}

func TestReturnListByOrder(t *testing.T) {
	t.Parallel()

	svc := &stubReturnsService{record: requestedReturn()}
	router := newReturnsRouter(svc)
	resp := serve(t, router, httptest.NewRequest(http.MethodGet, "/orders/ord-1/returns", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var records []returns.ReturnRecord
	decodeData(t, resp, &records)
	if len(records) != 1 || records[0].OrderID != "ord-1" {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestReturnDetailNotFound(t *testing.T) {
	t.Parallel()

	svc := &stubReturnsService{err: pkgerrors.New(pkgerrors.CodeNotFound, "return not found")}
	router := newReturnsRouter(svc)
	resp := serve(t, router, httptest.NewRequest(http.MethodGet, "/returns/missing", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
