package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumicart/storefront/api/middleware"
	"github.com/lumicart/storefront/internal/identity"
	"github.com/lumicart/storefront/pkg/logger"
	"github.com/lumicart/storefront/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "storefront-test", Output: io.Discard})
}

func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(middleware.WithSessionID(r.Context(), sessionID))
}

func withProfile(r *http.Request, profile identity.Profile) *http.Request {
	return r.WithContext(middleware.WithProfile(r.Context(), profile))
}

func testProfile() identity.Profile {
	return identity.Profile{Subject: "user-1", Name: "Ada Lovelace", Email: "ada@example.com"}
}

func serve(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
}

func jsonDecode(resp *httptest.ResponseRecorder, dest any) error {
	return json.Unmarshal(resp.Body.Bytes(), dest)
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	envelope := types.ErrorEnvelope{}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	return envelope.Error.Code
}
