package verse

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taiwoajasa245/quran-verse-api/internal/database"
)

// ErrPersistence wraps every failure of the verse store.
var ErrPersistence = errors.New("verse store failure")

// Repository is the append-only log of fetched verses.
type Repository interface {
	Save(ctx context.Context, v *Verse) error
	Recent(ctx context.Context, limit int) ([]Verse, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(dbService database.Service) Repository {
	return &repository{db: dbService.Pool()}
}

// Save appends v and fills in its ID. A zero RetrievedAt takes the insert time.
func (r *repository) Save(ctx context.Context, v *Verse) error {
	query := `
		INSERT INTO verses (
			number_in_surah, text, translation, audio_url,
			surah_number, surah_name, surah_english_name, retrieved_at
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, COALESCE($8, NOW()))
		RETURNING id, retrieved_at
	`

	var retrievedAt interface{}
	if !v.RetrievedAt.IsZero() {
		retrievedAt = v.RetrievedAt
	}

	err := r.db.QueryRow(ctx, query,
		v.Number,
		v.Text,
		v.Translation,
		v.AudioURL,
		v.Surah.Number,
		v.Surah.Name,
		v.Surah.EnglishName,
		retrievedAt,
	).Scan(&v.ID, &v.RetrievedAt)
	if err != nil {
		return fmt.Errorf("%w: save verse %s: %v", ErrPersistence, v.Address(), err)
	}

	return nil
}

// Recent returns the latest limit records, newest first.
func (r *repository) Recent(ctx context.Context, limit int) ([]Verse, error) {
	query := `
		SELECT id, number_in_surah, text, translation, COALESCE(audio_url, ''),
		       surah_number, surah_name, surah_english_name, retrieved_at
		FROM verses
		ORDER BY retrieved_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: query history: %v", ErrPersistence, err)
	}
	defer rows.Close()

	verses := make([]Verse, 0, limit)
	for rows.Next() {
		var v Verse
		if err := rows.Scan(
			&v.ID,
			&v.Number,
			&v.Text,
			&v.Translation,
			&v.AudioURL,
			&v.Surah.Number,
			&v.Surah.Name,
			&v.Surah.EnglishName,
			&v.RetrievedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan history: %v", ErrPersistence, err)
		}
		verses = append(verses, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read history: %v", ErrPersistence, err)
	}

	return verses, nil
}
