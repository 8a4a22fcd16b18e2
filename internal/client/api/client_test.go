package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req["username"] != "admin" || req["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid username or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Invalid token"}`))
			return
		}
		var req map[string]float64
		_ = json.NewDecoder(r.Body).Decode(&req)
		class := 0
		if req["petal_length"] > 2.5 {
			class = 1
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"predicted_class": class})
	})
	mux.HandleFunc("GET /predictions", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") == "99" {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"Database error"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":2,"sepal_length":5.1,"sepal_width":3.5,"petal_length":1.4,"petal_width":0.2,"predicted_class":0,"created_at":"2025-05-01T08:30:00Z"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_LoginPredictList(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	_, err := c.Predict(ctx, 1, 2, 3, 4)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	require.NoError(t, c.Login(ctx, "admin", "secret"))
	assert.True(t, c.LoggedIn())

	class, err := c.Predict(ctx, 5.9, 3.0, 4.2, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 1, class)

	items, err := c.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, time.Date(2025, 5, 1, 8, 30, 0, 0, time.UTC), items[0].CreatedAt.UTC())

	c.Logout()
	assert.False(t, c.LoggedIn())
}

func TestClient_Errors(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	err := c.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Invalid username or password", se.Detail)

	require.NoError(t, c.Login(ctx, "admin", "secret"))
	_, err = c.List(ctx, 99, 0)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.Status)
	assert.Equal(t, "Database error", se.Detail)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	err := c.Login(context.Background(), "admin", "secret")
	assert.ErrorIs(t, err, ErrUnavailable)
}
