package user

import (
	"encoding/json"
	"time"
)

// User is the stored shape. FavoriteBook holds the raw serialized blob; the
// service layer owns converting it to and from a Book.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Password     string    `json:"-"` // never expose the hash
	FavoriteBook string    `json:"favoriteBook,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Book is the structured form of the favorite-book field, shaped after an
// OpenLibrary search document.
type Book struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
}

// Profile is the read shape of a user: the favorite-book blob expanded into
// its structured form.
type Profile struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FavoriteBook *Book     `json:"favoriteBook,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EncodeBook serializes a book into the flat text form stored on the record.
func EncodeBook(book *Book) (string, error) {
	if book == nil {
		return "", nil
	}
	blob, err := json.Marshal(book)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}

// DecodeBook expands a stored blob back into a Book. An empty blob decodes
// to nil rather than a zero-valued book.
func DecodeBook(blob string) (*Book, error) {
	if blob == "" {
		return nil, nil
	}
	var book Book
	if err := json.Unmarshal([]byte(blob), &book); err != nil {
		return nil, err
	}
	return &book, nil
}
