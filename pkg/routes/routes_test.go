package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/privacypoint/privacypoint/pkg/routes"
)

func handlerReturning(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

func TestRegisterFlatGroup(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/api",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/documents", Handler: handlerReturning(http.StatusOK)},
			{Method: "POST", Pattern: "/documents", Handler: handlerReturning(http.StatusAccepted)},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/documents", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/documents", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("POST = %d, want 202", rec.Code)
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/documents",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{id}/status", Handler: handlerReturning(http.StatusOK)},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/documents/abc/status", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("nested route = %d, want 200", rec.Code)
	}
}

func TestMethodMismatch(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/api",
		Routes: []routes.Route{
			{Method: "DELETE", Pattern: "/documents/{id}", Handler: handlerReturning(http.StatusNoContent)},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/documents/abc", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("mismatched method = %d, want 405", rec.Code)
	}
}
