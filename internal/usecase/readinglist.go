package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"libraryapi/internal/entity"
)

// MaxReadingLists caps how many lists a single user may own at once.
const MaxReadingLists = 3

// ReadingListView is the API shape for a reading list with its member books.
type ReadingListView struct {
	ID       string                   `json:"id"`
	Username string                   `json:"username"`
	Name     string                   `json:"reading_list_name"`
	Books    []entity.ReadingListBook `json:"books"`
}

type ReadingLists struct {
	users UserRepository
	books BookRepository
	lists ReadingListRepository
}

func NewReadingLists(users UserRepository, books BookRepository, lists ReadingListRepository) *ReadingLists {
	return &ReadingLists{users: users, books: books, lists: lists}
}

// Create adds an empty named list for the user. The cap is checked before the
// per-user name uniqueness so a full shelf of lists always reports the cap.
func (r *ReadingLists) Create(ctx context.Context, username, name string) (ReadingListView, error) {
	if strings.TrimSpace(username) == "" {
		return ReadingListView{}, Validation("You must provide a non-empty username.")
	}
	if strings.TrimSpace(name) == "" {
		return ReadingListView{}, Validation("You must provide a non-empty reading list name.")
	}

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReadingListView{}, NotFound("User not found.")
		}
		return ReadingListView{}, fromStore(err)
	}

	count, err := r.lists.CountByUser(ctx, user.ID)
	if err != nil {
		return ReadingListView{}, fromStore(err)
	}
	if count >= MaxReadingLists {
		return ReadingListView{}, Conflict("User can have 3 reading lists simultaneously.")
	}

	_, err = r.lists.GetByUserAndName(ctx, user.ID, name)
	if err == nil {
		return ReadingListView{}, Conflict("Reading list with this name already exists.")
	}
	if !errors.Is(err, ErrNotFound) {
		return ReadingListView{}, fromStore(err)
	}

	now := time.Now().UTC()
	list := entity.ReadingList{
		UserID:    user.ID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.lists.Create(ctx, &list); err != nil {
		return ReadingListView{}, fromStore(err)
	}
	return ReadingListView{
		ID:       list.ID,
		Username: user.Username,
		Name:     list.Name,
		Books:    []entity.ReadingListBook{},
	}, nil
}

// Get returns every list the user owns, each with its member books.
func (r *ReadingLists) Get(ctx context.Context, username string) ([]ReadingListView, error) {
	if strings.TrimSpace(username) == "" {
		return nil, Validation("You must provide a non-empty username.")
	}
	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NotFound("User not found.")
		}
		return nil, fromStore(err)
	}

	lists, err := r.lists.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fromStore(err)
	}

	views := make([]ReadingListView, 0, len(lists))
	for _, list := range lists {
		books, err := r.lists.ListBooks(ctx, list.ID)
		if err != nil {
			return nil, fromStore(err)
		}
		if books == nil {
			books = []entity.ReadingListBook{}
		}
		views = append(views, ReadingListView{
			ID:       list.ID,
			Username: user.Username,
			Name:     list.Name,
			Books:    books,
		})
	}
	return views, nil
}

// AddBook records a book's membership in a named list, stamping when it was
// added. Duplicate memberships are rejected by the store's primary key.
func (r *ReadingLists) AddBook(ctx context.Context, username, name, bookID string) (ReadingListView, error) {
	if strings.TrimSpace(username) == "" {
		return ReadingListView{}, Validation("You must provide a non-empty username.")
	}
	if strings.TrimSpace(name) == "" {
		return ReadingListView{}, Validation("You must provide a non-empty reading list name.")
	}

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReadingListView{}, NotFound("User not found.")
		}
		return ReadingListView{}, fromStore(err)
	}
	list, err := r.lists.GetByUserAndName(ctx, user.ID, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReadingListView{}, NotFound("Reading list not found.")
		}
		return ReadingListView{}, fromStore(err)
	}
	book, err := r.books.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReadingListView{}, NotFound("Book not found.")
		}
		return ReadingListView{}, fromStore(err)
	}

	if err := r.lists.AddBook(ctx, list.ID, book.ID); err != nil {
		return ReadingListView{}, fromStore(err)
	}

	books, err := r.lists.ListBooks(ctx, list.ID)
	if err != nil {
		return ReadingListView{}, fromStore(err)
	}
	return ReadingListView{
		ID:       list.ID,
		Username: user.Username,
		Name:     list.Name,
		Books:    books,
	}, nil
}

// Delete removes the list and its membership rows, returning the pre-deletion
// contents.
func (r *ReadingLists) Delete(ctx context.Context, username, name string) (ReadingListView, error) {
	if strings.TrimSpace(username) == "" {
		return ReadingListView{}, Validation("You must provide a non-empty username.")
	}
	if strings.TrimSpace(name) == "" {
		return ReadingListView{}, Validation("You must provide a non-empty reading list name.")
	}

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReadingListView{}, NotFound("User not found.")
		}
		return ReadingListView{}, fromStore(err)
	}
	list, err := r.lists.GetByUserAndName(ctx, user.ID, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ReadingListView{}, NotFound("Reading list not found.")
		}
		return ReadingListView{}, fromStore(err)
	}

	books, err := r.lists.ListBooks(ctx, list.ID)
	if err != nil {
		return ReadingListView{}, fromStore(err)
	}
	if books == nil {
		books = []entity.ReadingListBook{}
	}

	if err := r.lists.Delete(ctx, list.ID); err != nil {
		return ReadingListView{}, fromStore(err)
	}
	return ReadingListView{
		ID:       list.ID,
		Username: user.Username,
		Name:     list.Name,
		Books:    books,
	}, nil
}
