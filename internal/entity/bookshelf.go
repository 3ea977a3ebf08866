package entity

import "time"

// Reading statuses for a bookshelf entry.
const (
	StatusToRead    = "to_read"
	StatusReading   = "reading"
	StatusRead      = "read"
	StatusAbandoned = "abandoned"
)

// ReadingStatuses lists every valid bookshelf status.
var ReadingStatuses = []string{StatusToRead, StatusReading, StatusRead, StatusAbandoned}

// ValidStatus reports whether s is one of the fixed reading statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusToRead, StatusReading, StatusRead, StatusAbandoned:
		return true
	default:
		return false
	}
}

// BookshelfEntry links one user and one book. At most one entry exists per
// (user, book) pair.
type BookshelfEntry struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	BookID         string    `json:"book_id"`
	Status         string    `json:"status"`
	PersonalRating *int      `json:"personal_rating,omitempty"`
	Review         string    `json:"review,omitempty"`
	DateAdded      time.Time `json:"date_added"`
}

// BookshelfItem is a bookshelf entry joined with its book, the shape the API
// returns.
type BookshelfItem struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Status    string    `json:"status"`
	AddedDate time.Time `json:"added_date"`
}
