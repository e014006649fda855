// Package numista imports catalog reference data from the Numista v3 API.
package numista

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
)

const DefaultBaseURL = "https://api.numista.com/api/v3"

// ErrBudgetExhausted is returned once the client has spent its allowance
// of API requests. Numista enforces a daily quota per key, so the client
// tracks its own budget and stops before the server starts rejecting.
var ErrBudgetExhausted = errors.New("numista request budget exhausted")

type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	maxRequests int

	mu   sync.Mutex
	used int
}

func NewClient(apiKey string, maxRequests int, timeout time.Duration) *Client {
	return &Client{
		baseURL:     DefaultBaseURL,
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: timeout},
		maxRequests: maxRequests,
	}
}

// WithBaseURL points the client at a different endpoint, for tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// RequestsUsed reports how much of the budget has been spent.
func (c *Client) RequestsUsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

type SearchResult struct {
	Count int          `json:"count"`
	Types []SearchType `json:"types"`
}

type SearchType struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	MinYear int    `json:"min_year"`
	MaxYear int    `json:"max_year"`
	Issuer  struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"issuer"`
}

type Type struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	MinYear int    `json:"min_year"`
	MaxYear int    `json:"max_year"`
	Value   struct {
		Text     string `json:"text"`
		Currency struct {
			Name string `json:"name"`
		} `json:"currency"`
	} `json:"value"`
	Composition struct {
		Text string `json:"text"`
	} `json:"composition"`
	Weight  *float64 `json:"weight"`
	Size    *float64 `json:"size"`
	Obverse struct {
		Picture string `json:"picture"`
	} `json:"obverse"`
	Reverse struct {
		Picture string `json:"picture"`
	} `json:"reverse"`
	Comments string `json:"comments"`
}

// SearchTypes queries the catalog, one page at a time. Pages start at 1.
func (c *Client) SearchTypes(ctx context.Context, query string, page, count int) (*SearchResult, error) {
	if count <= 0 {
		count = 50
	}
	if page <= 0 {
		page = 1
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("count", strconv.Itoa(count))

	var result SearchResult
	if err := c.getJSON(ctx, "/types?"+q.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetType fetches the full record of one catalog type.
func (c *Client) GetType(ctx context.Context, id int) (*Type, error) {
	var result Type
	if err := c.getJSON(ctx, fmt.Sprintf("/types/%d", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ToCatalogCoin converts an imported type to the local catalog shape.
// The ruler is assigned by the caller, which knows where in the local
// hierarchy the import lands.
func (t *Type) ToCatalogCoin(rulerID string) *models.CatalogCoin {
	return &models.CatalogCoin{
		ID:           fmt.Sprintf("numista-%d", t.ID),
		RulerID:      rulerID,
		Name:         t.Title,
		Year:         t.MinYear,
		Denomination: t.Value.Text,
		Currency:     t.Value.Currency.Name,
		Metal:        t.Composition.Text,
		Weight:       t.Weight,
		Diameter:     t.Size,
		ObverseImage: t.Obverse.Picture,
		ReverseImage: t.Reverse.Picture,
		Description:  t.Comments,
	}
}

func (c *Client) spendRequest() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxRequests > 0 && c.used >= c.maxRequests {
		return ErrBudgetExhausted
	}
	c.used++
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.spendRequest(); err != nil {
		return err
	}

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Numista-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return retry.RetryableError(fmt.Errorf("numista rate limited: %s", resp.Status))
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("numista server error: %s", resp.Status))
		case resp.StatusCode != http.StatusOK:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("numista request failed: %s: %s", resp.Status, body)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode numista response: %w", err)
		}
		return nil
	})
}
