package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"transactions-dashboard/internal/config"
	"transactions-dashboard/internal/dto"
	apperrors "transactions-dashboard/internal/errors"
	"transactions-dashboard/internal/models"
)

const transactionsAPIService = "transactions_api"

var ErrMalformedResponse = errors.New("malformed transactions api response")

// UpstreamError is a non-2xx answer from the transactions API
type UpstreamError struct {
	Operation  string
	StatusCode int
	Code       string
	Message    string
	Details    []string
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("transactions api %s failed (%d %s): %s", e.Operation, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("transactions api %s failed (%d): %s", e.Operation, e.StatusCode, e.Message)
}

// IsClientError reports whether the API rejected the request itself
func (e *UpstreamError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// AuthTransport attaches a freshly minted service token to every request.
// A nil token service sends requests unauthenticated.
type AuthTransport struct {
	tokens TokenServiceInterface
	base   http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if t.tokens != nil {
		token, _, err := t.tokens.GenerateServiceToken()
		if err != nil {
			return nil, fmt.Errorf("mint service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return t.base.RoundTrip(req)
}

// TransactionsClient talks to the transactions REST API
type TransactionsClient struct {
	config  *config.TransactionsAPIConfig
	client  *http.Client
	breaker CircuitBreakerInterface
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

// NewTransactionsClient creates a client for the API at cfg.BaseURL
func NewTransactionsClient(
	cfg *config.TransactionsAPIConfig,
	tokens TokenServiceInterface,
	breaker CircuitBreakerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionsClientInterface {

	transport := &AuthTransport{
		tokens: tokens,
		base:   http.DefaultTransport,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	return &TransactionsClient{
		config:  cfg,
		client:  client,
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

// ListTransactions fetches every transaction, in the order the API returns them
func (s *TransactionsClient) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	req, err := s.buildRequest(ctx, http.MethodGet, "/transactions", nil)
	if err != nil {
		return nil, err
	}

	resp, body, err := s.do(req, "list")
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.StatusCode) {
		return nil, s.upstreamError("list", resp.StatusCode, body)
	}

	var payload dto.ListTransactionsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode transactions: %v", ErrMalformedResponse, err)
	}

	if payload.Transactions == nil {
		payload.Transactions = []models.Transaction{}
	}

	return payload.Transactions, nil
}

// CreateTransaction posts input unchanged and returns the stored record
func (s *TransactionsClient) CreateTransaction(ctx context.Context, input models.TransactionInput) (*models.Transaction, error) {
	req, err := s.buildRequest(ctx, http.MethodPost, "/transactions", input)
	if err != nil {
		return nil, err
	}

	resp, body, err := s.do(req, "create")
	if err != nil {
		return nil, err
	}

	if !isSuccess(resp.StatusCode) {
		return nil, s.upstreamError("create", resp.StatusCode, body)
	}

	var payload struct {
		Transaction *models.Transaction `json:"transaction"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode transaction: %v", ErrMalformedResponse, err)
	}
	if payload.Transaction == nil {
		return nil, fmt.Errorf("%w: missing transaction", ErrMalformedResponse)
	}

	return payload.Transaction, nil
}

func (s *TransactionsClient) buildRequest(
	ctx context.Context,
	method, path string,
	body any,
) (*http.Request, error) {

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.config.BaseURL+path, buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return req, nil
}

func (s *TransactionsClient) do(req *http.Request, operation string) (*http.Response, []byte, error) {
	if s.breaker.IsOpen() {
		s.recordRequest(operation, "circuit_open")
		return nil, nil, ErrCircuitBreakerOpen
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.metrics.RecordProcessingTime(operation, time.Since(start))

	if err != nil {
		s.breaker.RecordFailure()
		s.recordRequest(operation, "error")
		s.logger.Error(
			"transactions api request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"consecutive_failures", s.breaker.GetFailureCount(),
			"error", err,
		)
		return nil, nil, fmt.Errorf("%s transactions: %w", operation, err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()

	if err != nil {
		s.breaker.RecordFailure()
		s.recordRequest(operation, "error")
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		s.breaker.RecordFailure()
		s.logger.Warn(
			"transactions api server error",
			"method", req.Method,
			"status", resp.StatusCode,
			"consecutive_failures", s.breaker.GetFailureCount(),
		)
	} else {
		s.breaker.RecordSuccess()
	}
	s.recordRequest(operation, strconv.Itoa(resp.StatusCode))

	return resp, body, nil
}

func (s *TransactionsClient) recordRequest(operation, status string) {
	s.metrics.IncrementCounter(MetricUpstreamRequest, map[string]string{
		"operation": operation,
		"status":    status,
	})
	s.metrics.RecordGauge(MetricCircuitBreakerState, float64(s.breaker.GetState()), map[string]string{
		"service": transactionsAPIService,
	})
}

func (s *TransactionsClient) upstreamError(operation string, status int, body []byte) error {
	upstreamErr := &UpstreamError{
		Operation:  operation,
		StatusCode: status,
	}

	var errResp apperrors.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code != "" {
		upstreamErr.Code = errResp.Error.Code
		upstreamErr.Message = errResp.Error.Message
		upstreamErr.Details = errResp.Error.Details
	} else {
		upstreamErr.Message = http.StatusText(status)
		if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
			upstreamErr.Message = text
		}
	}

	s.logger.Error(
		"transactions api error",
		"operation", operation,
		"status", status,
		"code", upstreamErr.Code,
		"message", upstreamErr.Message,
	)

	return upstreamErr
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
