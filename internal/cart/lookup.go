package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

var (
	ErrLookupNotFound    = errors.New("lookup: not found")
	ErrLookupBadStatus   = errors.New("lookup: bad status")
	ErrLookupUnavailable = errors.New("lookup: unavailable")
)

// Lookup fetches product metadata and the current stock limit. Both calls
// are read-only and made fresh on every mutation; nothing is cached, so a
// stale stock read is impossible.
type Lookup interface {
	FetchProduct(ctx context.Context, productID int) (Product, error)
	FetchStock(ctx context.Context, productID int) (Stock, error)
}

// StockClient talks to the stock service over HTTP.
type StockClient struct {
	BaseURL string
	Client  *http.Client
}

func NewStockClient(baseURL string) *StockClient {
	return &StockClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 3 * time.Second},
	}
}

// FetchProduct returns the catalog record for a product. The record's amount
// field is stock-service noise and is ignored by the store; the purchase
// limit comes from FetchStock.
func (c *StockClient) FetchProduct(ctx context.Context, productID int) (Product, error) {
	var p Product
	if err := c.getJSON(ctx, fmt.Sprintf("%s/products/%d", c.BaseURL, productID), &p); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *StockClient) FetchStock(ctx context.Context, productID int) (Stock, error) {
	var st Stock
	if err := c.getJSON(ctx, fmt.Sprintf("%s/stock/%d", c.BaseURL, productID), &st); err != nil {
		return Stock{}, err
	}
	return st, nil
}

func (c *StockClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrLookupUnavailable
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return ErrLookupUnavailable
		}
		return ErrLookupUnavailable
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrLookupNotFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status=%d", ErrLookupBadStatus, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
