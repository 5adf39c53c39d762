package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"acme-ice-cream/flavors/internal/constants"
	"acme-ice-cream/flavors/internal/db"
	"acme-ice-cream/flavors/internal/models/dtos/responses"
	"acme-ice-cream/flavors/internal/models/entities"
	"acme-ice-cream/flavors/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
)

// Mock FlavorService
type mockFlavorService struct {
	strict     bool
	createFunc func(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error)
	listFunc   func(ctx context.Context) ([]entities.Flavor, error)
	getFunc    func(ctx context.Context, id string) ([]entities.Flavor, error)
	updateFunc func(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error)
	deleteFunc func(ctx context.Context, id string) error
}

func (m *mockFlavorService) CreateFlavor(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error) {
	return m.createFunc(ctx, in)
}

func (m *mockFlavorService) ListFlavors(ctx context.Context) ([]entities.Flavor, error) {
	return m.listFunc(ctx)
}

func (m *mockFlavorService) GetFlavor(ctx context.Context, id string) ([]entities.Flavor, error) {
	return m.getFunc(ctx, id)
}

func (m *mockFlavorService) UpdateFlavor(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error) {
	return m.updateFunc(ctx, id, in)
}

func (m *mockFlavorService) DeleteFlavor(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockFlavorService) Strict() bool {
	return m.strict
}

func serveWithID(h http.HandlerFunc, method, target, id string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if id != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateFlavorHandler_Success(t *testing.T) {
	now := time.Now().UTC()
	var got entities.FlavorInput
	svc := &mockFlavorService{
		createFunc: func(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error) {
			got = in
			return &entities.Flavor{ID: 4, Name: in.Name, IsFavorite: *in.IsFavorite == "true", CreatedAt: now, UpdatedAt: now}, nil
		},
	}

	rr := serveWithID(CreateFlavorHandler(svc), "POST", "/api/flavors", "", []byte(`{"name":"Mint","is_favorite":true}`))

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}
	if got.Name == nil || *got.Name != "Mint" || got.IsFavorite == nil || *got.IsFavorite != "true" {
		t.Errorf("Service received unexpected input: %+v", got)
	}

	var flavor entities.Flavor
	if err := json.NewDecoder(rr.Body).Decode(&flavor); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if flavor.ID != 4 || *flavor.Name != "Mint" || !flavor.IsFavorite {
		t.Errorf("Unexpected body: %+v", flavor)
	}
}

func TestCreateFlavorHandler_EmptyBodyUsesDefaults(t *testing.T) {
	var got entities.FlavorInput
	svc := &mockFlavorService{
		createFunc: func(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error) {
			got = in
			return &entities.Flavor{ID: 5}, nil
		},
	}

	rr := serveWithID(CreateFlavorHandler(svc), "POST", "/api/flavors", "", nil)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}
	if got.Name != nil || got.IsFavorite != nil {
		t.Errorf("Expected absent fields, got %+v", got)
	}
}

func TestCreateFlavorHandler_InvalidJSON(t *testing.T) {
	for _, strict := range []bool{false, true} {
		svc := &mockFlavorService{strict: strict}

		for _, body := range []string{"invalid json", `{"name":`, `"Mint"`, `5`, `null`} {
			rr := serveWithID(CreateFlavorHandler(svc), "POST", "/api/flavors", "", []byte(body))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("strict=%v body %q: expected status 400, got %d", strict, body, rr.Code)
				continue
			}
			var resp responses.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Message != constants.MsgInvalidJSON {
				t.Errorf("strict=%v body %q: unexpected message %q", strict, body, resp.Message)
			}
		}
	}
}

func TestCreateFlavorHandler_PermissivePassesValuesAsText(t *testing.T) {
	tests := []struct {
		body     string
		wantName *string
		wantFav  *string
	}{
		{`{"name":"Mint","is_favorite":"true"}`, strPtr("Mint"), strPtr("true")},
		{`{"name":42,"is_favorite":true}`, strPtr("42"), strPtr("true")},
		{`{"name":"Mint","is_favorite":"yes"}`, strPtr("Mint"), strPtr("yes")},
		{`{"name":null,"is_favorite":0}`, nil, strPtr("0")},
		{`{"name":{"a": 1}}`, strPtr(`{"a":1}`), nil},
		{`[]`, nil, nil},
		{`["Mint"]`, nil, nil},
	}

	for _, tt := range tests {
		var got entities.FlavorInput
		svc := &mockFlavorService{
			createFunc: func(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error) {
				got = in
				return &entities.Flavor{ID: 4}, nil
			},
		}

		rr := serveWithID(CreateFlavorHandler(svc), "POST", "/api/flavors", "", []byte(tt.body))

		if rr.Code != http.StatusCreated {
			t.Errorf("Body %s: expected status 201, got %d", tt.body, rr.Code)
			continue
		}
		if !equalText(got.Name, tt.wantName) || !equalText(got.IsFavorite, tt.wantFav) {
			t.Errorf("Body %s: service received name=%v is_favorite=%v", tt.body, deref(got.Name), deref(got.IsFavorite))
		}
	}
}

func TestCreateFlavorHandler_StrictRejectsWrongTypes(t *testing.T) {
	tests := []struct {
		body  string
		field string
	}{
		{`{"name":"Mint","is_favorite":"true"}`, "is_favorite"},
		{`{"name":42}`, "name"},
	}

	for _, tt := range tests {
		called := false
		svc := &mockFlavorService{
			strict: true,
			createFunc: func(ctx context.Context, in entities.FlavorInput) (*entities.Flavor, error) {
				called = true
				return &entities.Flavor{}, nil
			},
		}

		rr := serveWithID(CreateFlavorHandler(svc), "POST", "/api/flavors", "", []byte(tt.body))

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Body %s: expected status 400, got %d", tt.body, rr.Code)
			continue
		}
		if called {
			t.Errorf("Body %s: service should not be called", tt.body)
		}
		var resp responses.ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !strings.Contains(resp.Message, tt.field) {
			t.Errorf("Body %s: expected message naming %s, got %q", tt.body, tt.field, resp.Message)
		}
	}

	svc := &mockFlavorService{strict: true}
	rr := serveWithID(CreateFlavorHandler(svc), "POST", "/api/flavors", "", []byte(`[]`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected array body to be rejected in strict mode, got %d", rr.Code)
	}
}

func strPtr(s string) *string {
	return &s
}

func equalText(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestListFlavorsHandler_EmptyIsArray(t *testing.T) {
	svc := &mockFlavorService{
		listFunc: func(ctx context.Context) ([]entities.Flavor, error) {
			return []entities.Flavor{}, nil
		},
	}

	rr := serveWithID(ListFlavorsHandler(svc), "GET", "/api/flavors", "", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if body := bytes.TrimSpace(rr.Body.Bytes()); string(body) != "[]" {
		t.Errorf("Expected [], got %s", body)
	}
}

func TestGetFlavorHandler_PassesIDAndReturnsArray(t *testing.T) {
	var gotID string
	svc := &mockFlavorService{
		getFunc: func(ctx context.Context, id string) ([]entities.Flavor, error) {
			gotID = id
			return []entities.Flavor{}, nil
		},
	}

	rr := serveWithID(GetFlavorHandler(svc), "GET", "/api/flavors/42", "42", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotID != "42" {
		t.Errorf("Expected id 42, got %q", gotID)
	}
	if body := bytes.TrimSpace(rr.Body.Bytes()); string(body) != "[]" {
		t.Errorf("Expected [], got %s", body)
	}
}

func TestGetFlavorHandler_DatabaseErrorPermissive(t *testing.T) {
	svc := &mockFlavorService{
		getFunc: func(ctx context.Context, id string) ([]entities.Flavor, error) {
			return nil, db.Wrap("flavor_get", &pq.Error{Code: "22P02", Message: "invalid input syntax for type integer"})
		},
	}

	rr := serveWithID(GetFlavorHandler(svc), "GET", "/api/flavors/abc", "abc", nil)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}
	var resp responses.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "error" || resp.Message != constants.MsgDatabaseError {
		t.Errorf("Unexpected error body: %+v", resp)
	}
	if strings.Contains(rr.Body.String(), "22P02") || strings.Contains(rr.Body.String(), "invalid input syntax") {
		t.Errorf("Driver text leaked to the client: %s", rr.Body.String())
	}
}

func TestGetFlavorHandler_DatabaseErrorStrict(t *testing.T) {
	svc := &mockFlavorService{
		strict: true,
		getFunc: func(ctx context.Context, id string) ([]entities.Flavor, error) {
			return nil, db.Wrap("flavor_get", &pq.Error{Code: "22003", Message: "value out of range"})
		},
	}

	rr := serveWithID(GetFlavorHandler(svc), "GET", "/api/flavors/1", "1", nil)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestGetFlavorHandler_ConnectionErrorStrictIs500(t *testing.T) {
	svc := &mockFlavorService{
		strict: true,
		getFunc: func(ctx context.Context, id string) ([]entities.Flavor, error) {
			return nil, db.Wrap("flavor_get", errors.New("connection refused"))
		},
	}

	rr := serveWithID(GetFlavorHandler(svc), "GET", "/api/flavors/1", "1", nil)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}
}

func TestGetFlavorHandler_ValidationError(t *testing.T) {
	svc := &mockFlavorService{
		strict: true,
		getFunc: func(ctx context.Context, id string) ([]entities.Flavor, error) {
			return nil, &services.ValidationError{Field: "id", Message: "bad"}
		},
	}

	rr := serveWithID(GetFlavorHandler(svc), "GET", "/api/flavors/x", "x", nil)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
}

func TestUpdateFlavorHandler_MissPermissive(t *testing.T) {
	svc := &mockFlavorService{
		updateFunc: func(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error) {
			return nil, nil
		},
	}

	rr := serveWithID(UpdateFlavorHandler(svc), "PUT", "/api/flavors/99", "99", []byte(`{"name":"Ghost"}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", rr.Body.String())
	}
}

func TestUpdateFlavorHandler_MissStrict(t *testing.T) {
	svc := &mockFlavorService{
		strict: true,
		updateFunc: func(ctx context.Context, id string, in entities.FlavorInput) (*entities.Flavor, error) {
			return nil, services.ErrFlavorNotFound
		},
	}

	rr := serveWithID(UpdateFlavorHandler(svc), "PUT", "/api/flavors/99", "99", []byte(`{"name":"Ghost"}`))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rr.Code)
	}
}

func TestDeleteFlavorHandler_NoContent(t *testing.T) {
	svc := &mockFlavorService{
		deleteFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}

	rr := serveWithID(DeleteFlavorHandler(svc), "DELETE", "/api/flavors/3", "3", nil)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", rr.Body.String())
	}
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func TestHealthCheckHandler(t *testing.T) {
	up := HealthInfo{UpSince: time.Now().Add(-time.Minute), DBClient: "gorm", StrictMode: true}

	rr := httptest.NewRecorder()
	HealthCheckHandler(fakePinger{}, up).ServeHTTP(rr, httptest.NewRequest("GET", "/healthCheck", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	HealthCheckHandler(fakePinger{err: errors.New("down")}, up).ServeHTTP(rr, httptest.NewRequest("GET", "/healthCheck", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rr.Code)
	}
	var resp entities.HealthCheckResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Services["database"].Status != "down" {
		t.Errorf("Expected database down, got %+v", resp.Services)
	}
	if resp.DBClient != "gorm" || !resp.StrictMode {
		t.Errorf("Expected client and mode in report, got %+v", resp)
	}
}
