package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lumicart/storefront/internal/prefs"
	"github.com/lumicart/storefront/pkg/enums"
	pkgerrors "github.com/lumicart/storefront/pkg/errors"
)

type stubPrefsService struct {
	stored prefs.Preferences
	setErr error

	lastSession string
}

func (s *stubPrefsService) Get(_ context.Context, sessionID string) prefs.Preferences {
	s.lastSession = sessionID
	return s.stored
}

func (s *stubPrefsService) Set(_ context.Context, sessionID string, p prefs.Preferences) error {
	s.lastSession = sessionID
	if s.setErr != nil {
		return s.setErr
	}
	s.stored = p
	return nil
}

func newPrefsRouter(svc PrefsService) chi.Router {
	logg := testLogger()
	r := chi.NewRouter()
	r.Get("/prefs", PrefsFetch(svc, logg))
	r.Put("/prefs", PrefsUpdate(svc, logg))
	return r
}

func TestPrefsFetch(t *testing.T) {
	t.Parallel()

	svc := &stubPrefsService{stored: prefs.Defaults()}
	router := newPrefsRouter(svc)
	req := withSession(httptest.NewRequest(http.MethodGet, "/prefs", nil), "sess-1")
	resp := serve(t, router, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if svc.lastSession != "sess-1" {
		t.Fatalf("expected session scoping, got %q", svc.lastSession)
	}
	var got prefs.Preferences
	decodeData(t, resp, &got)
	if got.ViewMode != enums.ViewModeGrid {
		t.Fatalf("expected grid default, got %+v", got)
	}
}

func TestPrefsUpdate(t *testing.T) {
	t.Parallel()

	svc := &stubPrefsService{stored: prefs.Defaults()}
	router := newPrefsRouter(svc)
	body := `{"viewMode": "list", "pageSize": 50}`
	req := withSession(httptest.NewRequest(http.MethodPut, "/prefs", strings.NewReader(body)), "sess-1")
	resp := serve(t, router, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.stored.ViewMode != enums.ViewModeList || svc.stored.PageSize != 50 {
		t.Fatalf("unexpected stored prefs %+v", svc.stored)
	}
}

func TestPrefsUpdateRejectsBadInput(t *testing.T) {
	t.Parallel()

	router := newPrefsRouter(&stubPrefsService{stored: prefs.Defaults()})
	for name, body := range map[string]string{
		"unknown mode":  `{"viewMode": "carousel"}`,
		"missing mode":  `{"pageSize": 10}`,
		"oversize page": `{"viewMode": "grid", "pageSize": 5000}`,
	} {
		req := withSession(httptest.NewRequest(http.MethodPut, "/prefs", strings.NewReader(body)), "sess-1")
		resp := serve(t, router, req)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, resp.Code)
		}
		if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation code, got %s", name, code)
		}
	}
}

func TestPrefsUpdateStorageFailure(t *testing.T) {
	t.Parallel()

	svc := &stubPrefsService{stored: prefs.Defaults(), setErr: pkgerrors.New(pkgerrors.CodeStorage, "redis down")}
	router := newPrefsRouter(svc)
	body := `{"viewMode": "list"}`
	req := withSession(httptest.NewRequest(http.MethodPut, "/prefs", strings.NewReader(body)), "sess-1")
	resp := serve(t, router, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
