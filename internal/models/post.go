package models

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Post is the wire form of one feed item: every field travels as text
// because the HTMX form round-trips it through hidden inputs.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
}

// SavePostRequest is the save payload. ID and Timestamp must be numeric so
// the persistence path never parses blind.
type SavePostRequest struct {
	ID        string `json:"id" form:"id" validate:"required,numeric"`
	Title     string `json:"title" form:"title" validate:"required"`
	Author    string `json:"author" form:"author" validate:"required"`
	URL       string `json:"url" form:"url"`
	Timestamp string `json:"timestamp" form:"timestamp" validate:"required,numeric"`
}

func (r SavePostRequest) ToPost() Post {
	return Post{
		ID:        r.ID,
		Title:     r.Title,
		Author:    r.Author,
		URL:       r.URL,
		Timestamp: r.Timestamp,
	}
}

// fieldSep keeps adjacent fields from running together in the canonical
// encoding, so "ab"+"c" and "a"+"bc" hash differently.
const fieldSep = "\x1f"

// ContentHash is the content fingerprint of the post: a deterministic digest
// of the item fields only, so the same item saved by two users maps to the
// same record. Fixed-width 16-char hex.
func (p Post) ContentHash() string {
	h := xxhash.New()
	for _, field := range []string{p.ID, p.Title, p.Author, p.URL, p.Timestamp} {
		h.WriteString(field)
		h.WriteString(fieldSep)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// SavedPostRecord is a content-addressed row in the posts table. Hash is the
// primary key; identical content maps to one row no matter who saves it.
type SavedPostRecord struct {
	Hash      string `json:"hash" gorm:"primaryKey"`
	PostID    int64  `json:"post_id" gorm:"index"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Author    string `json:"author"`
	Timestamp int64  `json:"timestamp"`
}

// TableName keeps the table name the schema uses.
func (SavedPostRecord) TableName() string {
	return "posts"
}

// ToRecord builds the content-addressed row for a post. Fails on non-numeric
// id or timestamp rather than assuming well-formed input.
func (p Post) ToRecord() (*SavedPostRecord, error) {
	postID, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid post id %q: %w", p.ID, err)
	}
	ts, err := strconv.ParseInt(p.Timestamp, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid post timestamp %q: %w", p.Timestamp, err)
	}
	return &SavedPostRecord{
		Hash:      p.ContentHash(),
		PostID:    postID,
		Title:     p.Title,
		URL:       p.URL,
		Author:    p.Author,
		Timestamp: ts,
	}, nil
}

// ToPost maps a stored row back to the wire form.
func (r SavedPostRecord) ToPost() Post {
	return Post{
		ID:        strconv.FormatInt(r.PostID, 10),
		Title:     r.Title,
		Author:    r.Author,
		URL:       r.URL,
		Timestamp: strconv.FormatInt(r.Timestamp, 10),
	}
}
