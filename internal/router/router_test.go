package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"dogs-api/internal/adapters/storage/sqlite"
	"dogs-api/internal/platform/httpclient"
	"dogs-api/internal/platform/metrics"
	"dogs-api/internal/router"
)

func newClient(t *testing.T, opts router.Options) (*httptest.Server, *httpclient.Client) {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)

	c, err := httpclient.New(ts.URL, 0)
	if err != nil {
		t.Fatalf("httpclient.New: %v", err)
	}
	return ts, c
}

func TestHTTP_EndToEnd_CRUD(t *testing.T) {
	ctx := context.Background()
	_, c := newClient(t, router.Options{})

	// 1) saludo
	msg, err := c.Hello(ctx)
	if err != nil || msg != "hey there" {
		t.Fatalf("expected hey there, got %q err=%v", msg, err)
	}

	// 2) lista vacía
	all, err := c.ListDogs(ctx)
	if err != nil {
		t.Fatalf("list dogs: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty list, got %#v", all)
	}

	// 3) crear
	rex, err := c.CreateDog(ctx, httpclient.DogInput{Name: "Rex", Weight: 40})
	if err != nil {
		t.Fatalf("create dog: %v", err)
	}
	if rex != (httpclient.Dog{ID: 1, Name: "Rex", Weight: 40}) {
		t.Fatalf("unexpected created dog %#v", rex)
	}

	// 4) round trip
	got, err := c.GetDog(ctx, rex.ID)
	if err != nil {
		t.Fatalf("get dog: %v", err)
	}
	if got != rex {
		t.Fatalf("expected %#v, got %#v", rex, got)
	}

	// 5) update
	upd, err := c.UpdateDog(ctx, rex.ID, httpclient.DogInput{Name: "Rex", Weight: 38})
	if err != nil {
		t.Fatalf("update dog: %v", err)
	}
	if upd.Weight != 38 || upd.ID != rex.ID {
		t.Fatalf("unexpected updated dog %#v", upd)
	}

	// 6) delete y luego 404
	del, err := c.DeleteDog(ctx, rex.ID)
	if err != nil {
		t.Fatalf("delete dog: %v", err)
	}
	if del != upd {
		t.Fatalf("expected deleted %#v, got %#v", upd, del)
	}
	if _, err := c.GetDog(ctx, rex.ID); httpclient.StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
	if _, err := c.DeleteDog(ctx, rex.ID); httpclient.StatusCode(err) != http.StatusNotFound {
		t.Fatalf("expected 404 on repeated delete, got %v", err)
	}
}

func TestHTTP_NotFoundExample(t *testing.T) {
	ts, _ := newClient(t, router.Options{})

	st, body := doReq(t, ts.URL, http.MethodGet, "/api/dogs/999", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", st)
	}
	if strings.TrimSpace(string(body)) != `{"message":"no dog with id 999"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestHTTP_CreateRequiresNameAndWeight(t *testing.T) {
	ts, c := newClient(t, router.Options{})

	st, body := doReq(t, ts.URL, http.MethodPost, "/api/dogs", map[string]any{"name": "Rex", "weight": 0})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, body)
	}
	if strings.TrimSpace(string(body)) != `{"message":"new dogs need name and weight"}` {
		t.Fatalf("unexpected body %s", body)
	}

	all, err := c.ListDogs(context.Background())
	if err != nil || len(all) != 0 {
		t.Fatalf("expected nothing stored, got %#v err=%v", all, err)
	}
}

func TestHTTP_SQLiteBackedRouter(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "dogs.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, c := newClient(t, router.Options{Repo: sqlite.NewDogsRepo(db)})

	created, err := c.CreateDog(ctx, httpclient.DogInput{Name: "Luna", Weight: 22.5})
	if err != nil {
		t.Fatalf("create dog: %v", err)
	}
	got, err := c.GetDog(ctx, created.ID)
	if err != nil || got != created {
		t.Fatalf("expected %#v, got %#v err=%v", created, got, err)
	}
}

func TestHTTP_OperationalEndpoints(t *testing.T) {
	m := metrics.NewManager()
	ts, _ := newClient(t, router.Options{Metrics: m, EnableSwagger: true})

	st, body := doReq(t, ts.URL, http.MethodGet, "/health", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok from /health, got %d %s", st, body)
	}

	// genera al menos una muestra
	_, _ = doReq(t, ts.URL, http.MethodGet, "/api/dogs", nil)

	st, body = doReq(t, ts.URL, http.MethodGet, "/metrics", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "dogs_api_http_requests_total") {
		t.Fatalf("expected metrics exposition, got %d", st)
	}

	st, body = doReq(t, ts.URL, http.MethodGet, "/swagger/doc.json", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/api/dogs/{id}") {
		t.Fatalf("expected swagger doc, got %d", st)
	}

	st, body = doReq(t, ts.URL, http.MethodGet, "/nope", nil)
	if st != http.StatusNotFound || strings.TrimSpace(string(body)) != `{"message":"not found"}` {
		t.Fatalf("expected json 404, got %d %s", st, body)
	}
}

func TestHTTP_OptionalEndpointsDisabled(t *testing.T) {
	ts, _ := newClient(t, router.Options{})

	for _, path := range []string{"/metrics", "/swagger/doc.json"} {
		st, _ := doReq(t, ts.URL, http.MethodGet, path, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s when disabled, got %d", path, st)
		}
	}
}

func TestHTTP_RequestIDHeader(t *testing.T) {
	ts, _ := newClient(t, router.Options{})

	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	if res.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
