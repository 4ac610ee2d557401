package listview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/crmdesk/customer-registry/internal/model"
)

// ErrSuperseded is returned when a list response arrives after a newer fetch
// has already been applied. The caller must discard the result.
var ErrSuperseded = errors.New("list response superseded by a newer fetch")

// ListResult is the body of the list endpoint.
type ListResult struct {
	Data  []model.Customer `json:"data"`
	Total int              `json:"total"`
}

// Client issues view requests against the registry API. Each list fetch is
// tagged with a monotonically increasing sequence number; a response that
// lost the race against a later fetch is rejected with ErrSuperseded, so a
// slow response for an old filter can never overwrite a newer view.
type Client struct {
	baseURL  string
	httpc    *http.Client
	pageSize int

	seq     atomic.Uint64
	applied atomic.Uint64
}

// NewClient constructs a client for the API rooted at baseURL
// (e.g. "http://localhost:5000/api").
func NewClient(baseURL string, pageSize int) *Client {
	return &Client{
		baseURL:  baseURL,
		httpc:    &http.Client{Timeout: 10 * time.Second},
		pageSize: pageSize,
	}
}

// FetchList fetches the page of customers described by s.
func (c *Client) FetchList(ctx context.Context, s State) (*ListResult, error) {
	seq := c.seq.Add(1)

	q := url.Values{}
	q.Set("page", strconv.Itoa(s.Page))
	q.Set("limit", strconv.Itoa(c.pageSize))
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.City != "" {
		q.Set("city", s.City)
	}

	var res ListResult
	if err := c.getJSON(ctx, "/customers?"+q.Encode(), &res); err != nil {
		return nil, err
	}

	// apply only if no later fetch finished first
	for {
		cur := c.applied.Load()
		if seq <= cur {
			return nil, ErrSuperseded
		}
		if c.applied.CompareAndSwap(cur, seq) {
			return &res, nil
		}
	}
}

// Cities fetches the distinct city values used to populate the filter control.
func (c *Client) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	if err := c.getJSON(ctx, "/customers/cities", &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// GetCustomer fetches one customer with its addresses, used when the detail
// view re-fetches the parent after an address mutation.
func (c *Client) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	if err := c.getJSON(ctx, fmt.Sprintf("/customers/%d", id), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		if decErr := json.NewDecoder(resp.Body).Decode(&body); decErr == nil && body.Error != "" {
			return fmt.Errorf("registry api: %s (status %d)", body.Error, resp.StatusCode)
		}
		return fmt.Errorf("registry api: unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
