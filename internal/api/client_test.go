package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticTokens struct {
	token       string
	invalidated bool
}

func (s *staticTokens) Token() string { return s.token }
func (s *staticTokens) Invalidate()   { s.invalidated = true }

func TestClient_AttachesHeaders(t *testing.T) {
	var got http.Header
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	tokens := &staticTokens{token: "jwt-abc"}
	client := NewClient(Config{
		BaseURL:   server.URL + "/api/",
		ClientKey: "client-key-1",
		Tokens:    tokens,
	})

	var out map[string]bool
	err := client.post(context.Background(), "/cart", map[string]int{"productSizeId": 3, "quantity": 2}, &out)
	assert.NoError(t, err)
	assert.True(t, out["ok"])
	assert.Equal(t, "Bearer jwt-abc", got.Get("Authorization"))
	assert.Equal(t, "client-key-1", got.Get("X-Client-Key"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, float64(2), gotBody["quantity"])
}

func TestClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Tokens: &staticTokens{}})
	err := client.get(context.Background(), "/products", nil, &map[string]any{})
	assert.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	query := url.Values{}
	query.Set("page", "2")
	query.Add("styles", "RACING")
	query.Add("styles", "JACKET")
	err := client.get(context.Background(), "/products", query, &map[string]any{})
	assert.NoError(t, err)
	assert.Equal(t, "2", gotQuery.Get("page"))
	assert.Equal(t, []string{"RACING", "JACKET"}, gotQuery["styles"])
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"quantity exceeds available stock","error":"stock"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.post(context.Background(), "/cart", map[string]int{"quantity": 99}, nil)
	assert.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "quantity exceeds available stock", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "quantity exceeds available stock")
}

func TestClient_NonJSONErrorKeepsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.get(context.Background(), "/products", nil, nil)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}

func TestClient_UnauthorizedInvalidatesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	defer server.Close()

	tokens := &staticTokens{token: "stale"}
	client := NewClient(Config{BaseURL: server.URL, Tokens: tokens})
	err := client.get(context.Background(), "/cart", nil, nil)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.True(t, tokens.invalidated)
}

func TestClient_ForbiddenLeavesTokenAlone(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"admin access required"}`))
	}))
	defer server.Close()

	tokens := &staticTokens{token: "user"}
	client := NewClient(Config{BaseURL: server.URL, Tokens: tokens})
	err := client.get(context.Background(), "/admin/products", nil, nil)
	assert.Error(t, err)
	assert.False(t, tokens.invalidated)
}

func TestClient_DeleteSendsNoBody(t *testing.T) {
	var gotMethod string
	var gotLen int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotLen = r.ContentLength
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"removed"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.delete(context.Background(), "/cart/7")
	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.LessOrEqual(t, gotLen, int64(0))
}
