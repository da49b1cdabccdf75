// Package prayer proxies daily prayer times from api.aladhan.com.
package prayer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
)

// DefaultMethod is the Islamic Society of North America calculation.
const DefaultMethod = 2

type Query struct {
	City    string
	Country string
	Method  int
	Date    time.Time
}

type timingsData struct {
	Timings map[string]string `json:"timings"`
	Date    struct {
		Readable string `json:"readable"`
		Hijri    struct {
			Date string `json:"date"`
		} `json:"hijri"`
	} `json:"date"`
	Meta struct {
		Timezone string `json:"timezone"`
	} `json:"meta"`
}

type envelope struct {
	Code   int         `json:"code"`
	Status string      `json:"status"`
	Data   timingsData `json:"data"`
}

type Client struct {
	http *upstream.Client
}

func NewClient(uc *upstream.Client) *Client {
	return &Client{http: uc}
}

// TimingsByCity calls /timingsByCity/{DD-MM-YYYY}.
func (c *Client) TimingsByCity(ctx context.Context, q Query) (*Times, error) {
	params := url.Values{}
	params.Set("city", q.City)
	params.Set("country", q.Country)
	params.Set("method", strconv.Itoa(q.Method))

	var env envelope
	if err := c.http.GetJSON(ctx, "/timingsByCity/"+q.Date.Format("02-01-2006"), params, &env); err != nil {
		return nil, err
	}
	if env.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: timings for %s: code %d", upstream.ErrUpstreamMalformed, q.City, env.Code)
	}
	if len(env.Data.Timings) == 0 {
		return nil, fmt.Errorf("%w: timings for %s: empty", upstream.ErrUpstreamMalformed, q.City)
	}

	return &Times{
		City:     q.City,
		Country:  q.Country,
		Method:   q.Method,
		Date:     env.Data.Date.Readable,
		Hijri:    env.Data.Date.Hijri.Date,
		Timezone: env.Data.Meta.Timezone,
		Timings:  env.Data.Timings,
	}, nil
}
