package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"libraryapi/internal/entity"
)

// BookshelfView is the API shape for a user's bookshelf: always the full
// shelf, never a single entry.
type BookshelfView struct {
	Username  string                 `json:"username"`
	Bookshelf []entity.BookshelfItem `json:"bookshelf"`
}

type Bookshelf struct {
	users UserRepository
	books BookRepository
	shelf BookshelfRepository
}

func NewBookshelf(users UserRepository, books BookRepository, shelf BookshelfRepository) *Bookshelf {
	return &Bookshelf{users: users, books: books, shelf: shelf}
}

// Add creates a bookshelf entry for (user, book). A second entry for the same
// pair is rejected with a conflict.
func (s *Bookshelf) Add(ctx context.Context, username, bookID, status string) (BookshelfView, error) {
	if strings.TrimSpace(username) == "" {
		return BookshelfView{}, Validation("You must provide a non-empty username.")
	}
	if strings.TrimSpace(status) == "" {
		return BookshelfView{}, Validation("Status cannot be blank or whitespace.")
	}
	if !entity.ValidStatus(status) {
		return BookshelfView{}, Validationf("Invalid status: %s", status)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return BookshelfView{}, NotFound("User not found.")
		}
		return BookshelfView{}, fromStore(err)
	}
	book, err := s.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return BookshelfView{}, NotFound("Book not found.")
		}
		return BookshelfView{}, fromStore(err)
	}

	_, err = s.shelf.GetByUserAndBook(ctx, user.ID, book.ID)
	if err == nil {
		return BookshelfView{}, Conflict("Book already in user's bookshelf.")
	}
	if !errors.Is(err, ErrNotFound) {
		return BookshelfView{}, fromStore(err)
	}

	entry := entity.BookshelfEntry{
		UserID:    user.ID,
		BookID:    book.ID,
		Status:    status,
		DateAdded: time.Now().UTC(),
	}
	if err := s.shelf.Create(ctx, &entry); err != nil {
		return BookshelfView{}, fromStore(err)
	}
	return s.view(ctx, user)
}

// Get returns the user's full bookshelf.
func (s *Bookshelf) Get(ctx context.Context, username string) (BookshelfView, error) {
	if strings.TrimSpace(username) == "" {
		return BookshelfView{}, Validation("You must provide a non-empty username.")
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return BookshelfView{}, NotFound("User not found.")
		}
		return BookshelfView{}, fromStore(err)
	}
	return s.view(ctx, user)
}

// UpdateStatus mutates the status of an existing (user, book) entry in place
// and returns the refreshed full shelf.
func (s *Bookshelf) UpdateStatus(ctx context.Context, username, bookID, newStatus string) (BookshelfView, error) {
	if strings.TrimSpace(username) == "" {
		return BookshelfView{}, Validation("You must provide a non-empty username.")
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return BookshelfView{}, NotFound("User not found.")
		}
		return BookshelfView{}, fromStore(err)
	}

	entry, err := s.shelf.GetByUserAndBook(ctx, user.ID, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return BookshelfView{}, NotFound("Book not found in user's bookshelf.")
		}
		return BookshelfView{}, fromStore(err)
	}
	if !entity.ValidStatus(newStatus) {
		return BookshelfView{}, Validationf("Invalid status: %s", newStatus)
	}

	if err := s.shelf.UpdateStatus(ctx, entry.ID, newStatus); err != nil {
		return BookshelfView{}, fromStore(err)
	}
	return s.view(ctx, user)
}

func (s *Bookshelf) view(ctx context.Context, user entity.User) (BookshelfView, error) {
	items, err := s.shelf.ListByUser(ctx, user.ID)
	if err != nil {
		return BookshelfView{}, fromStore(err)
	}
	if items == nil {
		items = []entity.BookshelfItem{}
	}
	return BookshelfView{Username: user.Username, Bookshelf: items}, nil
}
