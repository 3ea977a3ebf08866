package usecase

import (
	"context"

	"libraryapi/internal/entity"
	"libraryapi/internal/platform/openlibrary"
)

// UserRepository is the persistence contract for users. Implementations map
// pgx.ErrNoRows to ErrNotFound and unique violations to classified conflicts.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (entity.User, error)
	GetByUsername(ctx context.Context, username string) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetByUsernameAndEmail(ctx context.Context, username, email string) (entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
}

type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (entity.Book, error)
	FindByISBNOrTitle(ctx context.Context, isbn, title string) (entity.Book, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]entity.Book, error)
	Search(ctx context.Context, title, author string) ([]entity.Book, error)
}

type BookshelfRepository interface {
	Create(ctx context.Context, e *entity.BookshelfEntry) error
	GetByUserAndBook(ctx context.Context, userID, bookID string) (entity.BookshelfEntry, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByUser(ctx context.Context, userID string) ([]entity.BookshelfItem, error)
}

type ReadingListRepository interface {
	Create(ctx context.Context, l *entity.ReadingList) error
	GetByUserAndName(ctx context.Context, userID, name string) (entity.ReadingList, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]entity.ReadingList, error)
	ListBooks(ctx context.Context, listID string) ([]entity.ReadingListBook, error)
	AddBook(ctx context.Context, listID, bookID string) error
	Delete(ctx context.Context, listID string) error
}

// ExternalSearcher is the cache-backed OpenLibrary lookup consumed by book
// search.
type ExternalSearcher interface {
	Get(ctx context.Context, query, author string, limit int) (*openlibrary.SearchResult, error)
}
