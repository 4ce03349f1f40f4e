package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Upstream responses are small (a few hundred bytes of packed RGB);
// anything past this is garbage.
const maxBody = 64 << 10

// StatusError reports a non-2xx response from the forecast endpoint.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("forecast endpoint returned status %d", e.Status)
}

// Client fetches the packed forecast payload. All request parameters
// come from the lamp settings; the button press counter is sampled at
// request time through ButtonCount.
type Client struct {
	BaseURL   string
	Latitude  string
	Longitude string
	ColorMap  string
	Extra     string
	Interval  int // minutes, advisory for the server
	Slots     int

	ClientID  string // MAC as hex
	BuildDate string
	UserAgent string

	// ButtonCount feeds the buttoncount query parameter. May be nil.
	ButtonCount func() int

	HTTP *http.Client
}

// NewClient returns a Client with a bounded-timeout HTTP client. The
// upstream firmware left the timeout at the library default; here it is
// explicit and configurable.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		BaseURL:   baseURL,
		UserAgent: "weatherlampd/0.1.0",
		HTTP:      &http.Client{Timeout: timeout},
	}
}

// Fetch performs one GET against the forecast endpoint and returns the
// raw payload bytes.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("lat", c.Latitude)
	q.Set("lon", c.Longitude)
	q.Set("colormap", c.ColorMap)
	q.Set("interval", strconv.Itoa(c.Interval))
	q.Set("slots", strconv.Itoa(c.Slots))
	q.Set("client", c.ClientID)
	if c.ButtonCount != nil {
		q.Set("buttoncount", strconv.Itoa(c.ButtonCount()))
	}
	if c.Extra != "" {
		q.Set("extra", c.Extra)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Client-Id", c.ClientID)
	req.Header.Set("X-Build-Date", c.BuildDate)
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read forecast body: %w", err)
	}
	return body, nil
}
