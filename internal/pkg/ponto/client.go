package ponto

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	"golang.org/x/time/rate"
)

// Vendor operations, posted as JSON to {BaseURL}/{operation}
const (
	opListPunches   = "ListarMarcacoes"
	opListEmployees = "ListarFuncionarios"
)

// maxErrorBody bounds how much of a failed response is kept in APIError.Message.
const maxErrorBody = 512

// Client talks to the Ponto time-clock vendor API.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	limiter  *rate.Limiter
	loc      *time.Location
}

// NewClient builds a client from the vendor configuration. Timestamps in the
// dd/mm/yyyy form are read in loc.
func NewClient(cfg config.PontoConfig, loc *time.Location) *Client {
	if loc == nil {
		loc = time.UTC
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(limit, 1),
		loc:      loc,
	}
}

// APIError represents a non-2xx answer from the vendor API
type APIError struct {
	StatusCode int
	Operation  string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ponto API error [%d] %s: %s", e.StatusCode, e.Operation, e.Message)
}

// envelope is the {"d": ...} wrapper every vendor response comes in.
type envelope[T any] struct {
	D T `json:"d"`
}

// call posts body to the vendor operation and decodes the unwrapped envelope into out.
func call[T any](ctx context.Context, c *Client, operation string, body any) (T, error) {
	var zero T

	if err := c.limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("ponto %s: %w", operation, err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("ponto %s: encode request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+operation, bytes.NewReader(payload))
	if err != nil {
		return zero, fmt.Errorf("ponto %s: build request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("ponto %s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return zero, &APIError{StatusCode: resp.StatusCode, Operation: operation, Message: string(bytes.TrimSpace(msg))}
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return zero, fmt.Errorf("ponto %s: decode response: %w", operation, err)
	}
	return env.D, nil
}
