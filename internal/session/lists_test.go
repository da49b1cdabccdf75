package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/quran-verse-api/internal/verse"
)

func testVerse(surah, number int) verse.Verse {
	return verse.Verse{
		Number:      number,
		Text:        fmt.Sprintf("نص %d:%d", surah, number),
		Translation: fmt.Sprintf("translation %d:%d", surah, number),
		Surah:       verse.Surah{Number: surah, Name: "سورة", EnglishName: fmt.Sprintf("Surah-%d", surah)},
	}
}

func entry(surah, number int) HistoryEntry {
	return HistoryEntry{Verse: testVerse(surah, number), ViewedAt: time.Now()}
}

func addresses(history []HistoryEntry) []verse.Address {
	out := make([]verse.Address, len(history))
	for i, h := range history {
		out[i] = h.Address()
	}
	return out
}

func TestInsertHistoryMovesRepeatToFront(t *testing.T) {
	var h []HistoryEntry
	h = InsertHistory(h, entry(1, 1))
	h = InsertHistory(h, entry(2, 255))
	h = InsertHistory(h, entry(1, 1))

	assert.Equal(t, []verse.Address{{Surah: 1, Verse: 1}, {Surah: 2, Verse: 255}}, addresses(h))
}

func TestInsertHistoryMatchesOnAddressOnly(t *testing.T) {
	withAudio := entry(1, 1)
	withAudio.AudioURL = "https://cdn.islamic.network/quran/audio/128/ar.alafasy/1.mp3"
	withAudio.Translation = "different"

	h := InsertHistory([]HistoryEntry{entry(1, 1)}, withAudio)
	require.Len(t, h, 1)
	assert.Equal(t, "different", h[0].Translation)
}

func TestInsertHistoryCapacity(t *testing.T) {
	var h []HistoryEntry
	for i := 1; i <= 60; i++ {
		h = InsertHistory(h, entry(2, i))
	}

	require.Len(t, h, HistoryCapacity)
	assert.Equal(t, 60, h[0].Number)
	assert.Equal(t, 11, h[HistoryCapacity-1].Number)
}

func TestInsertHistoryDoesNotModifyInput(t *testing.T) {
	in := []HistoryEntry{entry(1, 1), entry(1, 2)}
	_ = InsertHistory(in, entry(1, 2))
	assert.Equal(t, []verse.Address{{Surah: 1, Verse: 1}, {Surah: 1, Verse: 2}}, addresses(in))
}

func TestRemoveHistory(t *testing.T) {
	h := []HistoryEntry{entry(1, 1), entry(1, 2)}

	out, removed := RemoveHistory(h, verse.Address{Surah: 1, Verse: 2})
	assert.True(t, removed)
	assert.Len(t, out, 1)

	_, removed = RemoveHistory(out, verse.Address{Surah: 9, Verse: 9})
	assert.False(t, removed)
}

func TestToggleFavoriteIsSelfInverse(t *testing.T) {
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	start := []Favorite{{Verse: testVerse(1, 1), Date: now}, {Verse: testVerse(36, 58), Date: now}}

	added, isFav := ToggleFavorite(start, testVerse(2, 5), now)
	assert.True(t, isFav)
	assert.Len(t, added, 3)
	assert.Len(t, start, 2)

	back, isFav := ToggleFavorite(added, testVerse(2, 5), now)
	assert.False(t, isFav)
	assert.ElementsMatch(t, start, back)
}

func TestToggleFavoriteRemovesByAddress(t *testing.T) {
	now := time.Now()
	stored := testVerse(2, 5)
	stored.AudioURL = "https://cdn.islamic.network/quran/audio/128/ar.husary/12.mp3"

	out, isFav := ToggleFavorite([]Favorite{{Verse: stored, Date: now}}, testVerse(2, 5), now)
	assert.False(t, isFav)
	assert.Empty(t, out)
}

func TestIsFavorite(t *testing.T) {
	favorites := []Favorite{{Verse: testVerse(112, 1)}}
	assert.True(t, IsFavorite(favorites, verse.Address{Surah: 112, Verse: 1}))
	assert.False(t, IsFavorite(favorites, verse.Address{Surah: 112, Verse: 2}))
}
