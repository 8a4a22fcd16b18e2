// Package api is a small HTTP client for the prediction service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Prediction is one record as returned by GET /predictions.
type Prediction struct {
	ID             int64     `json:"id"`
	SepalLength    float64   `json:"sepal_length"`
	SepalWidth     float64   `json:"sepal_width"`
	PetalLength    float64   `json:"petal_length"`
	PetalWidth     float64   `json:"petal_width"`
	PredictedClass *int      `json:"predicted_class"`
	CreatedAt      time.Time `json:"created_at"`
}

// Client talks to one server and remembers the last access token.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) LoggedIn() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

func (c *Client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	req := map[string]string{"username": username, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", req, &resp, false); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = resp.AccessToken
	c.mu.Unlock()
	return nil
}

// Predict returns the class for the four iris measurements.
func (c *Client) Predict(ctx context.Context, sepalLength, sepalWidth, petalLength, petalWidth float64) (int, error) {
	req := map[string]float64{
		"sepal_length": sepalLength,
		"sepal_width":  sepalWidth,
		"petal_length": petalLength,
		"petal_width":  petalWidth,
	}
	var resp struct {
		PredictedClass int `json:"predicted_class"`
	}
	if err := c.do(ctx, http.MethodPost, "/predict", req, &resp, true); err != nil {
		return 0, err
	}
	return resp.PredictedClass, nil
}

// List returns stored predictions, newest first.
func (c *Client) List(ctx context.Context, limit, offset int) ([]Prediction, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var resp []Prediction
	if err := c.do(ctx, http.MethodGet, "/predictions?"+q.Encode(), nil, &resp, true); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, auth bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		c.mu.RLock()
		token := c.token
		c.mu.RUnlock()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		serr := &StatusError{Status: resp.StatusCode, Detail: e.Detail}
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", ErrUnauthorized, serr)
		}
		return serr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
