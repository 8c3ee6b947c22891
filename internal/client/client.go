package client

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
	"sync/atomic"
	"time"

	"github.com/gamehorizon/gamehorizon/internal/api/request"
	"github.com/gamehorizon/gamehorizon/internal/dependencies/clock"
	"github.com/gamehorizon/gamehorizon/internal/model"
)

// DefaultTimeout bounds a single round trip to the store
const DefaultTimeout = 30 * time.Second

// Client talks to the record store over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      clock.Clock
	bust       atomic.Int64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock sets the clock used for cache-busting parameters
func WithClock(clk clock.Clock) Option {
	return func(c *Client) {
		c.clock = clk
	}
}

// New creates a client for the store at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		clock:      clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the store URL the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

// ListGames fetches the whole collection, bypassing caches
func (c *Client) ListGames(ctx context.Context) ([]model.Game, error) {
	query := url.Values{"_": {c.cacheBuster()}}

	var body []request.GameRequest
	if err := c.do(ctx, OpList, http.MethodGet, "/games?"+query.Encode(), nil, &body); err != nil {
		return nil, err
	}

	games := make([]model.Game, len(body))
	for i, g := range body {
		games[i] = g.ToModel()
	}
	return games, nil
}

// GetGame fetches a single game
func (c *Client) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var body request.GameRequest
	if err := c.do(ctx, OpGet, http.MethodGet, "/games/"+id.String(), nil, &body); err != nil {
		return nil, c.notFound(err, OpGet, id)
	}
	game := body.ToModel()
	return &game, nil
}

// CreateGame posts a game without an id and returns the stored record
func (c *Client) CreateGame(ctx context.Context, game model.Game) (model.Game, error) {
	game.ID = 0

	var body request.GameRequest
	if err := c.do(ctx, OpCreate, http.MethodPost, "/games", game, &body); err != nil {
		return model.Game{}, err
	}
	return body.ToModel(), nil
}

// UpdateGame replaces the stored record with the same id
func (c *Client) UpdateGame(ctx context.Context, game model.Game) (model.Game, error) {
	if game.ID.IsZero() {
		return model.Game{}, &NetworkError{Op: OpUpdate, Err: model.ErrInvalidID}
	}

	var body request.GameRequest
	if err := c.do(ctx, OpUpdate, http.MethodPut, "/games/"+game.ID.String(), game, &body); err != nil {
		return model.Game{}, c.notFound(err, OpUpdate, game.ID)
	}
	return body.ToModel(), nil
}

// DeleteGame removes a game
func (c *Client) DeleteGame(ctx context.Context, id model.GameID) error {
	if err := c.do(ctx, OpDelete, http.MethodDelete, "/games/"+id.String(), nil, nil); err != nil {
		return c.notFound(err, OpDelete, id)
	}
	return nil
}

// Health checks that the store is up
func (c *Client) Health(ctx context.Context) (string, error) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, OpHealth, http.MethodGet, "/health", nil, &body); err != nil {
		return "", err
	}
	return body.Status, nil
}

// cacheBuster returns a value that differs on every call, even with a frozen clock
func (c *Client) cacheBuster() string {
	return strconv.FormatInt(c.clock.Now().UnixNano(), 10) + "-" + strconv.FormatInt(c.bust.Add(1), 10)
}

func (c *Client) notFound(err error, op string, id model.GameID) error {
	if ne, ok := err.(*NetworkError); ok && ne.Status == http.StatusNotFound {
		return &NotFoundError{Op: op, ID: id}
	}
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ne := &NetworkError{Op: op, Status: resp.StatusCode}
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil && eb.Error.Code != "" {
			ne.Code = eb.Error.Code
			ne.Message = eb.Error.Message
		}
		return ne
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("failed to parse response: %w", err)}
		}
	}

	return nil
}
