package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperr "github.com/toldot/toldot/pkg/errors"
)

func testClient() *Client {
	c := NewClient()
	c.Delay = time.Millisecond
	return c
}

func TestClientGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "toldot-test" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{"name":"rashi"}`))
	}))
	defer srv.Close()

	c := testClient()
	c.UserAgent = "toldot-test"
	var got struct{ Name string }
	if err := c.GetJSON(context.Background(), srv.URL, &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "rashi" {
		t.Errorf("Name = %q, want rashi", got.Name)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var got []int
	if err := testClient().GetJSON(context.Background(), srv.URL, &got); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClientErrorCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   apperr.Code
		calls  int32
	}{
		{"not found", http.StatusNotFound, "", apperr.ErrCodeNotFound, 1},
		{"bad request", http.StatusBadRequest, "", apperr.ErrCodeInvalidInput, 1},
		{"server error", http.StatusInternalServerError, "", apperr.ErrCodeNetwork, 3},
		{"throttled", http.StatusTooManyRequests, "", apperr.ErrCodeRateLimited, 3},
		{"bad json", http.StatusOK, "{", apperr.ErrCodeInvalidFormat, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			var v any
			err := testClient().GetJSON(context.Background(), srv.URL, &v)
			if !apperr.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
			if calls.Load() != tt.calls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.calls)
			}
		})
	}
}

func TestClientContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var v any
	if err := testClient().GetJSON(ctx, srv.URL, &v); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestLimiter(t *testing.T) {
	l := NewLimiter(1, 1)
	if !l.Allow("http://a.example/x") {
		t.Error("first request should be allowed")
	}
	if l.Allow("http://a.example/y") {
		t.Error("second immediate request to the same host should be limited")
	}
	if !l.Allow("http://b.example/") {
		t.Error("other hosts have their own budget")
	}

	unlimited := NewLimiter(0, 0)
	for range 20 {
		if !unlimited.Allow("http://a.example/") {
			t.Fatal("zero rate should not limit")
		}
	}
}
