package keepalive

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlerRoutes(t *testing.T) {
	h := Handler()

	cases := []struct {
		path string
		code int
	}{
		{"/", http.StatusOK},
		{"/health", http.StatusOK},
		{"/ping", http.StatusOK},
		{"/metrics", http.StatusNotFound},
		{"/healthz", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != tc.code {
			t.Fatalf("GET %s = %d, want %d", tc.path, rec.Code, tc.code)
		}
		if tc.code == http.StatusOK && rec.Body.String() != "OK" {
			t.Fatalf("GET %s body = %q, want OK", tc.path, rec.Body.String())
		}
	}
}
