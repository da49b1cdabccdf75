// Package alquran talks to the api.alquran.cloud verse and edition endpoints.
package alquran

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
)

const (
	TextEdition        = "quran-simple"
	TranslationEdition = "en.asad"
)

type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

type Edition struct {
	Identifier  string `json:"identifier"`
	Language    string `json:"language"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
	Format      string `json:"format"`
	Type        string `json:"type"`
}

// Ayah is one edition's rendering of a verse.
type Ayah struct {
	Number        int     `json:"number"`
	Text          string  `json:"text"`
	NumberInSurah int     `json:"numberInSurah"`
	Audio         string  `json:"audio,omitempty"`
	Surah         Surah   `json:"surah"`
	Edition       Edition `json:"edition"`
}

type envelope[T any] struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   T      `json:"data"`
}

type Client struct {
	http *upstream.Client
}

func NewClient(uc *upstream.Client) *Client {
	return &Client{http: uc}
}

// Ayah fetches ref (a flattened ayah number or "surah:verse") in every edition
// given, in the same order.
func (c *Client) Ayah(ctx context.Context, ref string, editions ...string) ([]Ayah, error) {
	path := fmt.Sprintf("/ayah/%s/editions/%s", ref, strings.Join(editions, ","))

	var env envelope[[]Ayah]
	if err := c.http.GetJSON(ctx, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: ayah %s: code %d", upstream.ErrUpstreamMalformed, ref, env.Code)
	}
	if len(env.Data) != len(editions) {
		return nil, fmt.Errorf("%w: ayah %s: got %d editions, want %d",
			upstream.ErrUpstreamMalformed, ref, len(env.Data), len(editions))
	}

	return env.Data, nil
}

// AudioEditions lists verse-by-verse Arabic recitations.
func (c *Client) AudioEditions(ctx context.Context) ([]Edition, error) {
	query := url.Values{
		"format":   {"audio"},
		"language": {"ar"},
		"type":     {"versebyverse"},
	}

	var env envelope[[]Edition]
	if err := c.http.GetJSON(ctx, "/edition", query, &env); err != nil {
		return nil, err
	}
	if env.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: edition list: code %d", upstream.ErrUpstreamMalformed, env.Code)
	}

	return env.Data, nil
}
