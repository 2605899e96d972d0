package visitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sender delivers a payload to the collection endpoint.
type Sender interface {
	Send(ctx context.Context, p Payload) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, p Payload) error

func (f SenderFunc) Send(ctx context.Context, p Payload) error {
	return f(ctx, p)
}

type clientIPKey struct{}

// WithClientIP records the visitor's address on ctx. HTTPSender forwards it so the
// collection endpoint stamps the visitor rather than the site itself.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the visitor address stored by WithClientIP.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// HTTPSender posts payloads as JSON to a fixed endpoint.
type HTTPSender struct {
	Endpoint string
	Client   *http.Client
}

func NewHTTPSender(endpoint string) *HTTPSender {
	return &HTTPSender{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *HTTPSender) Send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal visitor payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build visitor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}
	if ip := ClientIP(ctx); ip != "" {
		req.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post visitor payload: %w", err)
	}
	defer resp.Body.Close()
	// The response is ignored; drain it so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("post visitor payload: status %d", resp.StatusCode)
	}
	return nil
}
