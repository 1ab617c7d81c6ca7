package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/idilsaglam/localtodo/internal/logging"
	"github.com/idilsaglam/localtodo/internal/model"
	"github.com/idilsaglam/localtodo/internal/persist"
	"github.com/idilsaglam/localtodo/internal/storage/memory"
)

func newTestServer(t *testing.T, stored string) *httptest.Server {
	t.Helper()
	st := memory.New()
	if stored != "" {
		if err := st.Set(context.Background(), persist.DefaultKey, stored); err != nil {
			t.Fatal(err)
		}
	}
	s := New(persist.New(st, ""), st, logging.Discard(), []string{"http://localhost:*"})
	ts := httptest.NewServer(s.RegisterRoutes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type: got %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode
}

func TestListTodos(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stored     string
		wantStatus int
		want       []model.Todo
	}{
		{"absent", "", http.StatusOK, []model.Todo{}},
		{"one item", `[{"id":1,"name":"milk","isCompleted":false}]`, http.StatusOK, []model.Todo{{ID: 1, Name: "milk"}}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ts := newTestServer(t, tt.stored)
			var got []model.Todo
			if code := getJSON(t, ts.URL+"/api/todos", &got); code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", code, tt.wantStatus)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("body: got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestListTodos_Malformed(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, `not json`)
	var body map[string]string
	if code := getJSON(t, ts.URL+"/api/todos", &body); code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", code)
	}
	if body["error"] == "" {
		t.Fatalf("expected error message, got %#v", body)
	}
}

func TestGetTodo(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, `[{"id":1,"name":"milk","isCompleted":false},{"id":4,"name":"eggs","isCompleted":true}]`)

	var got model.Todo
	if code := getJSON(t, ts.URL+"/api/todos/4", &got); code != http.StatusOK {
		t.Fatalf("status: got %d", code)
	}
	if got != (model.Todo{ID: 4, Name: "eggs", IsCompleted: true}) {
		t.Fatalf("body: got %#v", got)
	}

	var body map[string]string
	if code := getJSON(t, ts.URL+"/api/todos/2", &body); code != http.StatusNotFound {
		t.Fatalf("missing id: status %d", code)
	}
	if code := getJSON(t, ts.URL+"/api/todos/abc", &body); code != http.StatusBadRequest {
		t.Fatalf("bad id: status %d", code)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, "")
	var body map[string]string
	if code := getJSON(t, ts.URL+"/health", &body); code != http.StatusOK {
		t.Fatalf("status: got %d", code)
	}
	if body["status"] != "up" || body["key"] != "todoList" {
		t.Fatalf("body: %#v", body)
	}
}

func TestReadOnly(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, "")
	resp, err := http.Post(ts.URL+"/api/todos", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("POST status: got %d, want 405", resp.StatusCode)
	}
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	st := memory.New()
	srv := New(persist.New(st, ""), st, logging.Discard(), nil).HTTPServer("127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ListenAndServe(ctx, srv, logging.Discard()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatalf("server did not stop")
	}
}
