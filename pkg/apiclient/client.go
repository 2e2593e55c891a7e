package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

var (
	ErrTimeout = errors.New("backend timeout")
	ErrNetwork = errors.New("backend unreachable")
	// ErrAborted is returned when the caller cancelled the request. The
	// backend may already have acted on it.
	ErrAborted = errors.New("backend call aborted")
)

// ObserveFunc receives the outcome of every call: "ok", "http_error",
// "timeout", "aborted", "network" or "error".
type ObserveFunc func(operation, outcome string, elapsed time.Duration)

// Client talks JSON and multipart to the reservation backend.
type Client struct {
	baseURL string
	ua      string
	http    *http.Client
	observe ObserveFunc
}

func NewClient(baseURL string, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// SetObserver installs a hook called after every request.
func (c *Client) SetObserver(fn ObserveFunc) {
	c.observe = fn
}

// GetJSON issues GET path?query and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return c.do(ctx, op, http.MethodGet, target, nil, "", nil, out)
}

// PostJSON sends body as JSON and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, op, path string, body any, header http.Header, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s request error: %w", op, err)
	}
	return c.do(ctx, op, http.MethodPost, path, bytes.NewReader(payload), "application/json", header, out)
}

// PostMultipart sends form as multipart/form-data and decodes the response
// into out.
func (c *Client) PostMultipart(ctx context.Context, op, path string, form *Multipart, header http.Header, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return fmt.Errorf("%s request error: %w", op, err)
	}
	return c.do(ctx, op, http.MethodPost, path, body, contentType, header, out)
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, header http.Header, out any) (err error) {
	start := time.Now()
	outcome := "ok"
	defer func() {
		if c.observe != nil {
			c.observe(op, outcome, time.Since(start))
		}
	}()

	if strings.TrimSpace(c.baseURL) == "" {
		outcome = "error"
		return fmt.Errorf("%s config error: base_url is empty", op)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		outcome = "error"
		return fmt.Errorf("%s request error: %w", op, err)
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		err = classifyRequestError(ctx, op, err)
		switch {
		case errors.Is(err, ErrTimeout):
			outcome = "timeout"
		case errors.Is(err, ErrAborted):
			outcome = "aborted"
		case errors.Is(err, ErrNetwork):
			outcome = "network"
		default:
			outcome = "error"
		}
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		outcome = "error"
		return fmt.Errorf("%s read error: status=%d: %w", op, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_error"
		return newError(op, resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		outcome = "error"
		return fmt.Errorf("%s decode error: %w", op, err)
	}

	return nil
}

func classifyRequestError(ctx context.Context, op string, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("%s: %w: %w", op, ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s: %w: %w", op, ErrAborted, err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrNetwork, err)
	}
	return fmt.Errorf("%s request error: %w", op, err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// a connection dropped mid-exchange leaves the outcome unknown
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
