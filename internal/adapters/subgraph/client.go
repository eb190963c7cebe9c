package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Protocol identifica el despliegue indexado del protocolo.
type Protocol int

const (
	Mainnet Protocol = iota
	Optimism
	Arbitrum
	Polygon
	Perpetual
)

var protocolNames = map[Protocol]string{
	Mainnet:   "mainnet",
	Optimism:  "optimism",
	Arbitrum:  "arbitrum",
	Polygon:   "polygon",
	Perpetual: "perpetual",
}

// DefaultEndpoints son los subgraphs públicos por protocolo.
var DefaultEndpoints = map[Protocol]string{
	Mainnet:   "https://api.thegraph.com/subgraphs/name/uniswap/uniswap-v3",
	Optimism:  "https://api.thegraph.com/subgraphs/name/ianlapham/optimism-post-regenesis",
	Arbitrum:  "https://api.thegraph.com/subgraphs/name/ianlapham/arbitrum-minimal",
	Polygon:   "https://api.thegraph.com/subgraphs/name/ianlapham/uniswap-v3-polygon",
	Perpetual: "https://api.thegraph.com/subgraphs/name/perpetual-protocol/perpetual-v2-optimism",
}

// String devuelve el nombre usado en config y flags.
func (p Protocol) String() string {
	if n, ok := protocolNames[p]; ok {
		return n
	}
	return fmt.Sprintf("protocol(%d)", int(p))
}

// ParseProtocol acepta el nombre ("arbitrum") o el índice ("2").
func ParseProtocol(s string) (Protocol, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Mainnet, nil
	}
	for p, n := range protocolNames {
		if n == s || fmt.Sprint(int(p)) == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown protocol %q", s)
}

const (
	// The Graph gateway: ~1000 queries/min por API key, usamos el 60%.
	defaultRatePerSec = 10

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Options configura el Client. Los campos vacíos usan defaults.
type Options struct {
	Endpoint   string // si está vacío se usa DefaultEndpoints[Protocol]
	Protocol   Protocol
	APIKey     string
	Timeout    time.Duration
	RatePerSec float64
}

// Client es el cliente GraphQL del subgraph con rate limiting y retries.
type Client struct {
	http     *http.Client
	endpoint string
	apiKey   string
	limiter  *rate.Limiter
}

// NewClient crea un Client para el protocolo y endpoint dados.
func NewClient(opts Options) *Client {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoints[opts.Protocol]
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = defaultRatePerSec
	}
	return &Client{
		http:     &http.Client{Timeout: opts.Timeout},
		endpoint: endpoint,
		apiKey:   opts.APIKey,
		limiter:  rate.NewLimiter(rate.Limit(opts.RatePerSec), 5),
	}
}

// Endpoint devuelve la URL efectiva del subgraph.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// query ejecuta una query GraphQL y decodifica `data` en out.
func (c *Client) query(ctx context.Context, q string, vars map[string]any, out any) error {
	var resp graphQLResponse
	if err := c.post(ctx, graphQLRequest{Query: q, Variables: vars}, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		msgs := make([]string, len(resp.Errors))
		for i, e := range resp.Errors {
			msgs[i] = e.Message
		}
		return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return errors.New("graphql: empty data")
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// post hace un POST JSON con rate limiting y retries.
func (c *Client) post(ctx context.Context, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	return c.doWithRetry(ctx, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
		return c.http.Do(req)
	}, out)
}

// doWithRetry ejecuta la función con backoff exponencial.
func (c *Client) doWithRetry(ctx context.Context, fn func() (*http.Response, error), out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		resp, err := fn()
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			slog.Warn("rate limited by subgraph", "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("server error %d after %d retries", resp.StatusCode, maxRetries)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
