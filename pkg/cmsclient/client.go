package cmsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrNotFound          = errors.New("cms resource not found")
	ErrUnexpectedStatus  = errors.New("unexpected cms response status")
	ErrDecodeResponse    = errors.New("unable decode cms response")
	ErrInvalidCMSBaseURL = errors.New("invalid cms base url")
)

type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimRight(config.BaseURL, "/"))
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, errors.Join(ErrInvalidCMSBaseURL, fmt.Errorf("url: %q", config.BaseURL), err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		token:   config.Token,
		http:    &http.Client{Timeout: config.Timeout},
		logger:  logger.Named("cms"),
	}, nil
}

func (c *Client) endpointURL(endpoint string, query *Query) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + endpoint
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, endpoint string, query *Query, out any) error {
	target := c.endpointURL(endpoint, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("cms request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("cms request",
		zap.String("endpoint", endpoint),
		zap.String("query", req.URL.RawQuery),
		zap.Int("status", resp.StatusCode),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errors.Join(ErrNotFound, fmt.Errorf("endpoint: %s", endpoint))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Join(ErrUnexpectedStatus, fmt.Errorf("endpoint: %s status: %d body: %s", endpoint, resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecodeResponse, err)
	}
	return nil
}

func list[T any](ctx context.Context, c *Client, endpoint string, query *Query) (Envelope[T], error) {
	var envelope Envelope[T]
	if err := c.get(ctx, endpoint, query, &envelope); err != nil {
		return Envelope[T]{}, err
	}
	return envelope, nil
}

// listAll walks every page of a collection.
func listAll[T any](ctx context.Context, c *Client, endpoint string, query *Query) ([]T, error) {
	if query == nil {
		query = NewQuery()
	}
	var result []T
	for page := 1; ; page++ {
		envelope, err := list[T](ctx, c, endpoint, query.Page(page, MAX_PAGE_SIZE))
		if err != nil {
			return nil, err
		}
		result = append(result, envelope.Data...)
		if page >= envelope.Meta.Pagination.PageCount {
			return result, nil
		}
	}
}

func (c *Client) Posts(ctx context.Context, endpoint string, query *Query) (Envelope[PostRecord], error) {
	return list[PostRecord](ctx, c, endpoint, query)
}

func (c *Client) FAQSections(ctx context.Context, query *Query) ([]FAQSectionRecord, error) {
	return listAll[FAQSectionRecord](ctx, c, ENDPOINT_FAQ, query)
}

func (c *Client) Directory(ctx context.Context, endpoint string, query *Query) ([]DirectoryRecord, error) {
	return listAll[DirectoryRecord](ctx, c, endpoint, query)
}

func (c *Client) LegalSections(ctx context.Context, endpoint string, query *Query) ([]LegalSectionRecord, error) {
	return listAll[LegalSectionRecord](ctx, c, endpoint, query)
}
