package verse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// TotalAyahs is the number of verse addresses in the canonical text.
	TotalAyahs = 6236
	SurahCount = 114

	DefaultHistoryLimit = 30
)

type Surah struct {
	Number      int    `json:"number"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
}

// Verse is one fetched verse. Every fetch is stored as a new record, so ID
// identifies a view rather than a verse.
type Verse struct {
	ID          int64     `json:"id,omitempty"`
	Number      int       `json:"number"` // position within the surah
	Text        string    `json:"text"`
	Translation string    `json:"translation"`
	AudioURL    string    `json:"audioUrl,omitempty"`
	Surah       Surah     `json:"surah"`
	RetrievedAt time.Time `json:"retrievedAt"`
}

func (v Verse) Address() Address {
	return Address{Surah: v.Surah.Number, Verse: v.Number}
}

type Reciter struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
}

// Address locates a verse as surah:verse.
type Address struct {
	Surah int `json:"surah"`
	Verse int `json:"verse"`
}

var ErrInvalidAddress = errors.New("invalid verse address")

func (a Address) String() string {
	return fmt.Sprintf("%d:%d", a.Surah, a.Verse)
}

// Validate checks the surah range and that the verse is positive. The upper
// bound of the verse is left to the provider.
func (a Address) Validate() error {
	if a.Surah < 1 || a.Surah > SurahCount {
		return fmt.Errorf("%w: surah %d out of range 1..%d", ErrInvalidAddress, a.Surah, SurahCount)
	}
	if a.Verse < 1 {
		return fmt.Errorf("%w: verse %d must be positive", ErrInvalidAddress, a.Verse)
	}
	return nil
}

// ParseAddress parses "surah:verse".
func ParseAddress(s string) (Address, error) {
	surahPart, versePart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Address{}, fmt.Errorf("%w: %q is not surah:verse", ErrInvalidAddress, s)
	}
	return ParseAddressParts(surahPart, versePart)
}

func ParseAddressParts(surah, verse string) (Address, error) {
	s, err := strconv.Atoi(surah)
	if err != nil {
		return Address{}, fmt.Errorf("%w: surah %q is not a number", ErrInvalidAddress, surah)
	}
	v, err := strconv.Atoi(verse)
	if err != nil {
		return Address{}, fmt.Errorf("%w: verse %q is not a number", ErrInvalidAddress, verse)
	}

	addr := Address{Surah: s, Verse: v}
	if err := addr.Validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}
