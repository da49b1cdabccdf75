// Package tafsir proxies commentary from api.quran-tafseer.com.
package tafsir

import (
	"context"
	"fmt"

	"github.com/taiwoajasa245/quran-verse-api/internal/upstream"
)

// Book is one available commentary.
type Book struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Author   string `json:"author"`
	BookName string `json:"book_name"`
}

// Entry is a commentary on a single verse.
type Entry struct {
	TafseerID   int    `json:"tafseer_id"`
	TafseerName string `json:"tafseer_name"`
	AyahURL     string `json:"ayah_url"`
	AyahNumber  int    `json:"ayah_number"`
	Text        string `json:"text"`
}

type Client struct {
	http *upstream.Client
}

func NewClient(uc *upstream.Client) *Client {
	return &Client{http: uc}
}

func (c *Client) Books(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.http.GetJSON(ctx, "/tafseer/", nil, &books); err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: empty tafseer list", upstream.ErrUpstreamMalformed)
	}
	return books, nil
}

func (c *Client) Entry(ctx context.Context, tafsirID, surah, verse int) (*Entry, error) {
	var e Entry
	path := fmt.Sprintf("/tafseer/%d/%d/%d", tafsirID, surah, verse)
	if err := c.http.GetJSON(ctx, path, nil, &e); err != nil {
		return nil, err
	}
	if e.Text == "" {
		return nil, fmt.Errorf("%w: tafseer %d for %d:%d has no text", upstream.ErrUpstreamMalformed, tafsirID, surah, verse)
	}
	return &e, nil
}
