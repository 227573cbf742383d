package hub_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/nyxhub/content-sync/internal/config"
	"github.com/nyxhub/content-sync/internal/domain"
	"github.com/nyxhub/content-sync/internal/hub"
)

func newClient(baseURL string) *hub.HTTPClient {
	return hub.NewHTTPClient(
		baseURL,
		config.Credentials{Username: "api_sync", Password: "secret"},
		100,
		zap.NewNop(),
	)
}

func TestValidateStore_TrueOnValidBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		user, pass, ok := r.BasicAuth()
		if !ok || user != "api_sync" || pass != "secret" {
			t.Errorf("missing or wrong basic auth: %q/%q", user, pass)
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"valid": true})
	}))
	defer srv.Close()

	ok, err := newClient(srv.URL).ValidateStore(context.Background(), "group-1", "store-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected valid store")
	}
	if gotPath != "/api/nyx-sync/validate-store" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotBody["group_key"] != "group-1" || gotBody["store_name"] != "store-1" {
		t.Fatalf("unexpected request body %v", gotBody)
	}
}

func TestValidateStore_FalseOnInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"valid": false})
	}))
	defer srv.Close()

	ok, err := newClient(srv.URL).ValidateStore(context.Background(), "g", "s")
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
}

func TestValidateStore_FalseOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately: all requests now fail to connect

	ok, err := newClient(srv.URL).ValidateStore(context.Background(), "g", "s")
	if err != nil || ok {
		t.Fatalf("transport errors must become (false, nil), got (%v, %v)", ok, err)
	}
}

func TestValidateStore_FalseOnUnparseableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	ok, err := newClient(srv.URL).ValidateStore(context.Background(), "g", "s")
	if err != nil || ok {
		t.Fatalf("expected (false, nil), got (%v, %v)", ok, err)
	}
}

func TestUploadContent_StatusCriteria(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusBadRequest, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		ok, err := newClient(srv.URL).UploadContent(context.Background(),
			"g", "s", "content_type_article", "# Article\n", map[string]any{"total_nodes": 1})
		srv.Close()

		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", tt.status, err)
		}
		if ok != tt.want {
			t.Fatalf("status %d: expected ok=%v, got %v", tt.status, tt.want, ok)
		}
	}
}

func TestUploadContent_SendsDocumentAndMetadata(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).UploadContent(context.Background(),
		"g", "s", "content_type_article", "# Article\n", map[string]any{"triggered_by": 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["content_id"] != "content_type_article" {
		t.Fatalf("unexpected content_id %v", gotBody["content_id"])
	}
	if gotBody["markdown"] != "# Article\n" {
		t.Fatalf("unexpected markdown %v", gotBody["markdown"])
	}
	meta := gotBody["metadata"].(map[string]any)
	if meta["triggered_by"] != float64(5) {
		t.Fatalf("unexpected metadata %v", meta)
	}
}

func TestDeleteContent_StatusCriteria(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusNoContent, true},
		{http.StatusNotFound, false},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		ok, err := newClient(srv.URL).DeleteContent(context.Background(), "g", "s", "content_type_article")
		srv.Close()

		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", tt.status, err)
		}
		if ok != tt.want {
			t.Fatalf("status %d: expected ok=%v, got %v", tt.status, tt.want, ok)
		}
	}
}

func TestBackpressureStatusesRaiseSuspend(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := newClient(srv.URL).UploadContent(context.Background(),
			"g", "s", "id", "body", nil)
		srv.Close()

		if !errors.Is(err, domain.ErrSuspended) {
			t.Fatalf("status %d: expected ErrSuspended, got %v", status, err)
		}
	}
}
