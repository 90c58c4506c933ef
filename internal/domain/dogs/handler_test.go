package dogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dogs-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func newTestHandler(repo *fakeRepo) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(repo), logger.Nop())
	return r
}

func serve(t *testing.T, h http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec.Code, out
}

func TestCreate_RejectsFalsyFields(t *testing.T) {
	bodies := []string{
		``,
		`{}`,
		`{"name":"Rex"}`,
		`{"weight":40}`,
		`{"name":"","weight":40}`,
		`{"name":"Rex","weight":0}`,
		`{"name":null,"weight":40}`,
		`{"name":"Rex","weight":null}`,
	}

	for _, body := range bodies {
		for _, route := range []struct{ method, path string }{
			{http.MethodPost, "/api/dogs"},
			{http.MethodPut, "/api/dogs/1"},
		} {
			repo := newFakeRepo()
			repo.byID[1] = Dog{ID: 1, Name: "Rex", Weight: 40}

			st, out := serve(t, newTestHandler(repo), route.method, route.path, body)

			if st != http.StatusBadRequest {
				t.Fatalf("%s %s %q: expected 400, got %d", route.method, route.path, body, st)
			}
			if out["message"] != "new dogs need name and weight" {
				t.Fatalf("%s %q: unexpected message %v", route.method, body, out["message"])
			}
			if repo.calls["create"] != 0 || repo.calls["update"] != 0 {
				t.Fatalf("%s %q: store must not be called, calls=%v", route.method, body, repo.calls)
			}
		}
	}
}

func TestCreate_InvalidJSON(t *testing.T) {
	bodies := []string{
		`{"name":`,
		`{"name":5,"weight":40}`,
		`{"name":"Rex","weight":"heavy"}`,
		`[]`,
		`{"name":"Rex","weight":40} garbage`,
		`{"name":"Rex","weight":40}{"x":1}`,
		`{"name":"Rex","weight":40}}`,
	}
	for _, body := range bodies {
		repo := newFakeRepo()
		st, out := serve(t, newTestHandler(repo), http.MethodPost, "/api/dogs", body)

		if st != http.StatusBadRequest || out["message"] != "invalid json" {
			t.Fatalf("%q: expected 400 invalid json, got %d %v", body, st, out)
		}
		if repo.calls["create"] != 0 {
			t.Fatalf("%q: store must not be called", body)
		}
	}
}

func TestCreate_ReturnsCreatedRecord(t *testing.T) {
	repo := newFakeRepo()
	st, out := serve(t, newTestHandler(repo), http.MethodPost, "/api/dogs", `{"name":"Rex","weight":40}`)

	if st != http.StatusCreated {
		t.Fatalf("expected 201, got %d", st)
	}
	if out["id"] != float64(1) || out["name"] != "Rex" || out["weight"] != float64(40) {
		t.Fatalf("unexpected body %v", out)
	}
	if repo.calls["create"] != 1 {
		t.Fatalf("expected exactly one create call, got %d", repo.calls["create"])
	}
}

func TestCreate_AcceptsTrailingWhitespace(t *testing.T) {
	repo := newFakeRepo()
	st, _ := serve(t, newTestHandler(repo), http.MethodPost, "/api/dogs", "{\"name\":\"Rex\",\"weight\":40}\n  ")

	if st != http.StatusCreated || repo.calls["create"] != 1 {
		t.Fatalf("expected 201 and one create, got %d calls=%v", st, repo.calls)
	}
}

func TestCreate_BodyTooLarge(t *testing.T) {
	repo := newFakeRepo()
	body := `{"name":"` + strings.Repeat("x", maxBodyBytes) + `","weight":40}`
	st, out := serve(t, newTestHandler(repo), http.MethodPost, "/api/dogs", body)

	if st != http.StatusRequestEntityTooLarge || out["message"] != "request body too large" {
		t.Fatalf("expected 413, got %d %v", st, out)
	}
	if repo.calls["create"] != 0 {
		t.Fatalf("store must not be called, calls=%v", repo.calls)
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]int64{
		"1":    1,
		"42":   42,
		"+1":   0,
		"-1":   0,
		" 1":   0,
		"1.5":  0,
		"abc":  0,
		"":     0,
		"0x10": 0,
	}
	for raw, want := range cases {
		if got := parseID(raw); got != want {
			t.Fatalf("parseID(%q) = %d, want %d", raw, got, want)
		}
	}

	if got := parseID("99999999999999999999"); got != 0 {
		t.Fatalf("overflowing id must be rejected, got %d", got)
	}
}

func TestGet_NotFoundMessages(t *testing.T) {
	repo := newFakeRepo()
	h := newTestHandler(repo)

	st, out := serve(t, h, http.MethodGet, "/api/dogs/999", "")
	if st != http.StatusNotFound || out["message"] != "no dog with id 999" {
		t.Fatalf("expected 404 no dog with id 999, got %d %v", st, out)
	}

	st, out = serve(t, h, http.MethodGet, "/api/dogs/abc", "")
	if st != http.StatusNotFound || out["message"] != "no dog with id abc" {
		t.Fatalf("expected 404 for non numeric id, got %d %v", st, out)
	}

	st, out = serve(t, h, http.MethodGet, "/api/dogs/+1", "")
	if st != http.StatusNotFound || out["message"] != "no dog with id +1" {
		t.Fatalf("expected 404 for signed id, got %d %v", st, out)
	}
	if repo.calls["find_by_id"] != 1 {
		t.Fatalf("non numeric id must not reach the store, calls=%v", repo.calls)
	}
}

func TestGet_Found(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[3] = Dog{ID: 3, Name: "Fido", Weight: 12.5}

	st, out := serve(t, newTestHandler(repo), http.MethodGet, "/api/dogs/3", "")
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d", st)
	}
	if out["name"] != "Fido" || out["weight"] != 12.5 {
		t.Fatalf("unexpected body %v", out)
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/dogs", nil)
	rec := httptest.NewRecorder()
	newTestHandler(newFakeRepo()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func TestUpdate_MissingAndFound(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = Dog{ID: 1, Name: "Rex", Weight: 40}
	h := newTestHandler(repo)

	st, out := serve(t, h, http.MethodPut, "/api/dogs/1", `{"name":"Rex","weight":42}`)
	if st != http.StatusOK || out["weight"] != float64(42) || out["id"] != float64(1) {
		t.Fatalf("expected 200 updated dog, got %d %v", st, out)
	}

	st, out = serve(t, h, http.MethodPut, "/api/dogs/77", `{"name":"Ghost","weight":1}`)
	if st != http.StatusNotFound || out["message"] != "no dog with id 77" {
		t.Fatalf("expected 404 for missing dog, got %d %v", st, out)
	}
}

func TestDelete_Idempotence(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = Dog{ID: 1, Name: "Rex", Weight: 40}
	h := newTestHandler(repo)

	st, out := serve(t, h, http.MethodDelete, "/api/dogs/1", "")
	if st != http.StatusOK || out["name"] != "Rex" {
		t.Fatalf("expected 200 with deleted dog, got %d %v", st, out)
	}

	st, out = serve(t, h, http.MethodDelete, "/api/dogs/1", "")
	if st != http.StatusNotFound || out["message"] != "dog with id 1 does not exist" {
		t.Fatalf("expected 404 on repeated delete, got %d %v", st, out)
	}

	st, _ = serve(t, h, http.MethodGet, "/api/dogs/1", "")
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
}

func TestStoreFailures_Map500(t *testing.T) {
	routes := []struct{ method, path, body string }{
		{http.MethodGet, "/api/dogs", ""},
		{http.MethodGet, "/api/dogs/1", ""},
		{http.MethodPost, "/api/dogs", `{"name":"Rex","weight":40}`},
		{http.MethodPut, "/api/dogs/1", `{"name":"Rex","weight":40}`},
		{http.MethodDelete, "/api/dogs/1", ""},
	}

	for _, rt := range routes {
		repo := newFakeRepo()
		repo.err = errors.New("connection reset")

		st, out := serve(t, newTestHandler(repo), rt.method, rt.path, rt.body)

		if st != http.StatusInternalServerError {
			t.Fatalf("%s %s: expected 500, got %d", rt.method, rt.path, st)
		}
		if out["message"] != "connection reset" || out["customMessage"] != "something went wrong" {
			t.Fatalf("%s %s: unexpected body %v", rt.method, rt.path, out)
		}
	}
}
