package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"

	"github.com/ycl-dev/storefront/internal/common"
)

func newTestHandler(t *testing.T) (*Handler, *fakeQueries) {
	t.Helper()
	queries := newFakeQueries()
	svc, err := NewService(queries)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &Handler{Service: svc, Validate: validator.New()}, queries
}

func postRegister(handler *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) common.Response {
	t.Helper()
	var envelope common.Response
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func TestHandlerRegisterSuccess(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postRegister(handler, `{"name":"Alice","password":"Password1","roles":["User"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != common.StatusSuccess {
		t.Fatalf("unexpected envelope status: %s", envelope.Status)
	}
}

func TestHandlerRegisterAdminRole(t *testing.T) {
	handler, queries := newTestHandler(t)

	rec := postRegister(handler, `{"name":"Root","password":"Password1","roles":["Admin"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	stored, err := queries.GetUserByName(context.Background(), "Root")
	if err != nil {
		t.Fatalf("get stored user: %v", err)
	}
	if len(stored.Roles) != 1 || stored.Roles[0] != "Admin" {
		t.Fatalf("stored roles: %v", stored.Roles)
	}
}

func TestHandlerRegisterShortCredentials(t *testing.T) {
	handler, _ := newTestHandler(t)

	// No length rules apply, only presence.
	rec := postRegister(handler, `{"name":"test","password":"test","roles":["User"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestHandlerRegisterDuplicate(t *testing.T) {
	handler, _ := newTestHandler(t)

	if rec := postRegister(handler, `{"name":"Alice","password":"Password1","roles":["User"]}`); rec.Code != http.StatusOK {
		t.Fatalf("seed register failed: %d", rec.Code)
	}
	rec := postRegister(handler, `{"name":"Alice","password":"Password2","roles":["User"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != common.StatusAddUserFail {
		t.Fatalf("unexpected envelope status: %s", envelope.Status)
	}
}

func TestHandlerRegisterValidation(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postRegister(handler, `{"name":"Alice"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != common.StatusAddUserFail {
		t.Fatalf("unexpected envelope status: %s", envelope.Status)
	}
	if len(envelope.Errors) == 0 {
		t.Fatal("expected field errors in envelope")
	}
}

func TestHandlerRegisterMalformedBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postRegister(handler, `{`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Status != common.StatusAddUserFail {
		t.Fatalf("unexpected envelope status: %s", envelope.Status)
	}
}
