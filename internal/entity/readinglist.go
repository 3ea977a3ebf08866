package entity

import "time"

// ReadingList is a named, user-owned collection of books. A user owns at most
// three lists and list names are unique per user.
type ReadingList struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadingListBook is a list member joined with its book.
type ReadingListBook struct {
	ID     string `json:"id"`
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
