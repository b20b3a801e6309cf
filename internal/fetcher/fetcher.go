package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"newsdesk/internal/logger"
	"newsdesk/internal/metrics"
)

const (
	maxBodySize = 2 << 20
	userAgent   = "newsdesk/1.0"
)

// Client выполняет GET-запросы к одному внешнему API и декодирует JSON.
type Client struct {
	name    string
	http    *http.Client
	metrics *metrics.Metrics
}

// New создаёт клиента. name используется в логах и метках метрик,
// m может быть nil.
func New(name string, httpClient *http.Client, m *metrics.Metrics) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{name: name, http: httpClient, metrics: m}
}

func (c *Client) Name() string {
	return c.name
}

// GetJSON загружает url и декодирует тело в v. Любой сбой возвращается
// как *Error с соответствующим Kind.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.ObserveUpstream(c.name, KindOf(err).String(), time.Since(start))
	}()

	log := logger.Log.WithFields(logger.Fields{"upstream": c.name, "url": redact(rawURL)})
	log.Debug("Fetching upstream JSON")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return c.fail(KindTransport, rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(KindTransport, rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return c.fail(KindTransport, rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// тело ошибки всё равно пытаемся разобрать: NewsAPI кладёт туда причину
		_ = json.Unmarshal(body, v)
		return &Error{
			Kind:       KindStatus,
			Upstream:   c.name,
			URL:        redact(rawURL),
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return c.fail(KindDecode, rawURL, err)
	}
	return nil
}

func (c *Client) fail(kind Kind, rawURL string, err error) *Error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = redact(ue.URL)
	}
	return &Error{Kind: kind, Upstream: c.name, URL: redact(rawURL), Err: err}
}

var secretParams = []string{"apiKey", "apikey", "api_key"}

// redact скрывает ключи API в URL перед логированием.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = q.Encode()
	return u.String()
}
