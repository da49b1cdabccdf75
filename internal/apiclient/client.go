// Package apiclient is a typed client for the /api surface of the verse server.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taiwoajasa245/quran-verse-api/internal/prayer"
	"github.com/taiwoajasa245/quran-verse-api/internal/tafsir"
	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
	"github.com/taiwoajasa245/quran-verse-api/pkg/response"
)

// APIError is a non-2xx answer carrying the server's {message, error} body.
type APIError struct {
	Status  int
	Message string
	Detail  string
	err     error
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.err
}

type Client struct {
	http *upstream.Client
}

// New builds a client for baseURL. Requests are not retried; the user decides.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{http: upstream.NewClient(upstream.Config{
		Name:       "verse-api",
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Timeout:    timeout,
		MaxRetries: 0,
		UserAgent:  "versectl/1.0",
	}, log)}
}

func (c *Client) RandomVerse(ctx context.Context, reciter string) (*verse.Verse, error) {
	var v verse.Verse
	if err := c.get(ctx, "/api/verses/random", reciterQuery(reciter), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) VerseByAddress(ctx context.Context, addr verse.Address, reciter string) (*verse.Verse, error) {
	var v verse.Verse
	path := fmt.Sprintf("/api/verses/%d/%d", addr.Surah, addr.Verse)
	if err := c.get(ctx, path, reciterQuery(reciter), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// History is the server-wide feed of recent fetches, not the local history.
func (c *Client) History(ctx context.Context, limit int) ([]verse.Verse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var verses []verse.Verse
	if err := c.get(ctx, "/api/verses/history", q, &verses); err != nil {
		return nil, err
	}
	return verses, nil
}

func (c *Client) Reciters(ctx context.Context) ([]verse.Reciter, error) {
	var reciters []verse.Reciter
	if err := c.get(ctx, "/api/verses/reciters", nil, &reciters); err != nil {
		return nil, err
	}
	return reciters, nil
}

func (c *Client) PrayerTimes(ctx context.Context, city, country string, method int) (*prayer.Times, error) {
	q := url.Values{}
	if city != "" {
		q.Set("city", city)
	}
	if country != "" {
		q.Set("country", country)
	}
	if method > 0 {
		q.Set("method", strconv.Itoa(method))
	}

	var times prayer.Times
	if err := c.get(ctx, "/api/prayer-times", q, &times); err != nil {
		return nil, err
	}
	return &times, nil
}

func (c *Client) Tafsirs(ctx context.Context) ([]tafsir.Book, error) {
	var books []tafsir.Book
	if err := c.get(ctx, "/api/tafsir", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (c *Client) Tafsir(ctx context.Context, tafsirID int, addr verse.Address) (*tafsir.Entry, error) {
	var e tafsir.Entry
	path := fmt.Sprintf("/api/tafsir/%d/%d/%d", tafsirID, addr.Surah, addr.Verse)
	if err := c.get(ctx, path, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	err := c.http.GetJSON(ctx, path, q, out)
	if err == nil {
		return nil
	}

	var statusErr *upstream.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	apiErr := &APIError{Status: statusErr.Code, Message: "request failed", err: err}
	var body response.ErrorResponse
	if json.Unmarshal([]byte(statusErr.Body), &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
		if detail, ok := body.Error.(string); ok {
			apiErr.Detail = detail
		}
	}
	return apiErr
}

func reciterQuery(reciter string) url.Values {
	if reciter == "" {
		return nil
	}
	return url.Values{"reciter": {reciter}}
}
