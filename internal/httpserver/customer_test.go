package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invoicewizard/internal/domain"
)

func authedRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func TestListCustomers(t *testing.T) {
	email := "billing@acme.example"
	deps := testDeps()
	stub := &stubCustomerService{customers: []domain.Customer{
		{ID: "c1", Name: "Acme Sdn Bhd", Email: &email},
		{ID: "c2", Name: "Borneo Traders"},
	}}
	deps.CustomerSvc = stub
	router := testRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/customers", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Customers []domain.Customer `json:"customers"`
		Total     int               `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Customers) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if stub.lastUser != "u1" {
		t.Fatalf("expected current user forwarded, got %q", stub.lastUser)
	}
}

func TestCreateCustomer(t *testing.T) {
	deps := testDeps()
	stub := &stubCustomerService{customer: &domain.Customer{ID: "c1", Name: "Acme Sdn Bhd"}}
	deps.CustomerSvc = stub
	router := testRouter(t, deps)

	body := `{"name":"Acme Sdn Bhd","email":"billing@acme.example"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/customers", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastInput.Name != "Acme Sdn Bhd" || stub.lastInput.Email != "billing@acme.example" {
		t.Fatalf("unexpected input forwarded: %+v", stub.lastInput)
	}
}

func TestCreateCustomerValidationError(t *testing.T) {
	deps := testDeps()
	deps.CustomerSvc = &stubCustomerService{err: fmt.Errorf("%w: customer name is required", domain.ErrInvalid)}
	router := testRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/customers", `{"name":""}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "customer name is required") {
		t.Fatalf("expected validation message in body, got %s", rec.Body.String())
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	deps := testDeps()
	deps.CustomerSvc = &stubCustomerService{err: domain.ErrNotFound}
	router := testRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/customers/missing", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateCustomer(t *testing.T) {
	deps := testDeps()
	stub := &stubCustomerService{customer: &domain.Customer{ID: "c1", Name: "Acme Bhd"}}
	deps.CustomerSvc = stub
	router := testRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/customers/c1", `{"name":"Acme Bhd"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastID != "c1" {
		t.Fatalf("expected path id forwarded, got %q", stub.lastID)
	}
}

func TestDeleteCustomer(t *testing.T) {
	deps := testDeps()
	stub := &stubCustomerService{}
	deps.CustomerSvc = stub
	router := testRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/customers/c1", ""))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if stub.lastID != "c1" {
		t.Fatalf("expected path id forwarded, got %q", stub.lastID)
	}
}
