// Package gateway calls the monitoring API over JSON-RPC.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/monitoring-admin-api/internal/models"
	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

const maxResponseBytes = 32 << 20

// Gateway is the read boundary the list pages depend on.
type Gateway interface {
	Query(ctx context.Context, entity Entity, criteria Criteria, dest interface{}) error
}

// Observer receives call timings.
type Observer interface {
	ObserveGatewayCall(method, outcome string, duration time.Duration)
}

// Config configures the client.
type Config struct {
	URL      string
	APIToken string
	Timeout  time.Duration
}

// Client is a JSON-RPC 2.0 client for the monitoring API. Calls are never retried.
type Client struct {
	url      string
	token    string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
	nextID   atomic.Int64
}

// NewClient builds a client. A nil httpClient gets one with the configured timeout.
func NewClient(cfg Config, httpClient *http.Client, observer Observer, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{url: cfg.URL, token: cfg.APIToken, http: httpClient, logger: logger, observer: observer}
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	ID      int64       `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

// RemoteError is an error reported by the monitoring API itself, as opposed to a
// transport failure.
type RemoteError struct {
	Method  string
	Code    int
	Message string
	Data    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, strings.TrimSpace(e.Message+" "+e.Data))
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
	ID      int64           `json:"id"`
}

// Query runs "<entity>.get" and decodes the result into dest.
func (c *Client) Query(ctx context.Context, entity Entity, criteria Criteria, dest interface{}) error {
	return c.call(ctx, string(entity)+".get", criteria.Params(), true, dest)
}

// Login checks user credentials and returns the user data of the new API session.
func (c *Client) Login(ctx context.Context, username, password string) (*models.APILoginUser, error) {
	params := map[string]interface{}{
		"username": username,
		"password": password,
		"userData": true,
	}
	var user models.APILoginUser
	if err := c.call(ctx, "user.login", params, false, &user); err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) {
			message := remote.Data
			if message == "" {
				message = appErrors.ErrInvalidCredentials.Message
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidCredentials.Code, appErrors.ErrInvalidCredentials.Status, message)
		}
		return nil, err
	}
	return &user, nil
}

// Logout ends an API session opened by Login.
func (c *Client) Logout(ctx context.Context, sessionID string) error {
	var ok bool
	return c.callAs(ctx, "user.logout", map[string]interface{}{}, sessionID, &ok)
}

func (c *Client) call(ctx context.Context, method string, params interface{}, authenticated bool, dest interface{}) error {
	token := ""
	if authenticated {
		token = c.token
	}
	return c.callAs(ctx, method, params, token, dest)
}

func (c *Client) callAs(ctx context.Context, method string, params interface{}, token string, dest interface{}) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		if c.observer != nil {
			c.observer.ObserveGatewayCall(method, outcome, time.Since(start))
		}
	}()

	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", Method: method, Params: params, ID: c.nextID.Add(1)})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode API request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "failed to build API request")
	}
	req.Header.Set("Content-Type", "application/json-rpc")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api call", zap.String("method", method))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api call failed", zap.String("method", method), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "monitoring API is unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "failed to read API response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("api call rejected", zap.String("method", method), zap.Int("status_code", resp.StatusCode))
		return appErrors.Wrap(fmt.Errorf("http status %d", resp.StatusCode), appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "monitoring API returned an error status")
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "malformed API response")
	}
	if rpcResp.Error != nil {
		c.logger.Warn("api call returned error",
			zap.String("method", method),
			zap.Int("code", rpcResp.Error.Code),
			zap.String("message", rpcResp.Error.Message),
			zap.String("data", rpcResp.Error.Data),
		)
		return &appErrors.Error{
			Code:    appErrors.ErrGateway.Code,
			Status:  appErrors.ErrGateway.Status,
			Message: strings.TrimSpace(rpcResp.Error.Message + " " + rpcResp.Error.Data),
			Err: &RemoteError{
				Method:  method,
				Code:    rpcResp.Error.Code,
				Message: rpcResp.Error.Message,
				Data:    rpcResp.Error.Data,
			},
		}
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, "unexpected API result")
	}
	return nil
}
