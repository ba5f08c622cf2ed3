package models

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePost() Post {
	return Post{
		ID:        "8863",
		Title:     "My YC app: Dropbox",
		Author:    "pg",
		URL:       "https://example.com/article",
		Timestamp: "1175714200",
	}
}

func TestContentHash_Deterministic(t *testing.T) {
	a := samplePost()
	b := samplePost()
	assert.Equal(t, a.ContentHash(), b.ContentHash())
	assert.Len(t, a.ContentHash(), 16)
}

func TestContentHash_SensitiveToEachField(t *testing.T) {
	base := samplePost()
	variants := []Post{
		{ID: "8864", Title: base.Title, Author: base.Author, URL: base.URL, Timestamp: base.Timestamp},
		{ID: base.ID, Title: "Other title", Author: base.Author, URL: base.URL, Timestamp: base.Timestamp},
		{ID: base.ID, Title: base.Title, Author: "dang", URL: base.URL, Timestamp: base.Timestamp},
		{ID: base.ID, Title: base.Title, Author: base.Author, URL: "", Timestamp: base.Timestamp},
		{ID: base.ID, Title: base.Title, Author: base.Author, URL: base.URL, Timestamp: "1175714201"},
	}
	for i, v := range variants {
		assert.NotEqual(t, base.ContentHash(), v.ContentHash(), "variant %d", i)
	}
}

func TestContentHash_FieldBoundaries(t *testing.T) {
	a := Post{ID: "1", Title: "ab", Author: "c"}
	b := Post{ID: "1", Title: "a", Author: "bc"}
	assert.NotEqual(t, a.ContentHash(), b.ContentHash())
}

func TestContentHash_RandomizedUniqueness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[string]Post, 10000)
	for i := 0; i < 10000; i++ {
		p := Post{
			ID:        fmt.Sprintf("%d", rng.Int63()),
			Title:     fmt.Sprintf("title-%d", rng.Int63()),
			Author:    fmt.Sprintf("user-%d", rng.Intn(1_000_000)),
			URL:       fmt.Sprintf("https://example.com/%d", rng.Int63()),
			Timestamp: fmt.Sprintf("%d", rng.Int63n(2_000_000_000)),
		}
		h := p.ContentHash()
		if prev, dup := seen[h]; dup {
			t.Fatalf("collision between %+v and %+v", prev, p)
		}
		seen[h] = p
	}
}

func TestToRecord_Valid(t *testing.T) {
	p := samplePost()
	rec, err := p.ToRecord()
	require.NoError(t, err)
	assert.Equal(t, p.ContentHash(), rec.Hash)
	assert.Equal(t, int64(8863), rec.PostID)
	assert.Equal(t, int64(1175714200), rec.Timestamp)
	assert.Equal(t, p, rec.ToPost())
}

func TestToRecord_RejectsMalformedNumbers(t *testing.T) {
	p := samplePost()
	p.ID = "not-a-number"
	_, err := p.ToRecord()
	assert.Error(t, err)

	p = samplePost()
	p.Timestamp = "yesterday"
	_, err = p.ToRecord()
	assert.Error(t, err)
}
