package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/platform/openlibrary"
)

// BookInput is the validated payload for creating a catalog book.
type BookInput struct {
	Title         string
	Author        string
	ISBN          string
	Genre         string
	Description   string
	PublishedDate *time.Time
}

// ExternalBook is one OpenLibrary search result flattened into the catalog
// shape.
type ExternalBook struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	Genre         string `json:"genre"`
	PublishedDate int    `json:"published_date"`
}

// SearchResult combines the local catalog matches with the optional external
// augmentation.
type SearchResult struct {
	Local    []entity.Book  `json:"local"`
	External []ExternalBook `json:"external"`
}

type Books struct {
	repo     BookRepository
	external ExternalSearcher
}

func NewBooks(repo BookRepository, external ExternalSearcher) *Books {
	return &Books{repo: repo, external: external}
}

// Create validates every field and rejects books sharing an ISBN or a title
// with an existing one.
func (b *Books) Create(ctx context.Context, in BookInput) (entity.Book, error) {
	fields := []struct {
		label, value string
	}{
		{"Title", in.Title},
		{"Author", in.Author},
		{"Isbn", in.ISBN},
		{"Genre", in.Genre},
		{"Description", in.Description},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return entity.Book{}, Validationf("%s cannot be empty or whitespace.", f.label)
		}
	}

	_, err := b.repo.FindByISBNOrTitle(ctx, in.ISBN, in.Title)
	if err == nil {
		return entity.Book{}, Conflictf("Book with ISBN '%s' or title '%s' already exists", in.ISBN, in.Title)
	}
	if !errors.Is(err, ErrNotFound) {
		return entity.Book{}, fromStore(err)
	}

	now := time.Now().UTC()
	book := entity.Book{
		Title:         in.Title,
		Author:        in.Author,
		ISBN:          in.ISBN,
		Genre:         in.Genre,
		Description:   in.Description,
		PublishedDate: in.PublishedDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := b.repo.Create(ctx, &book); err != nil {
		return entity.Book{}, fromStore(err)
	}
	return book, nil
}

// Delete removes the book and its associations, returning the removed
// snapshot.
func (b *Books) Delete(ctx context.Context, id string) (entity.Book, error) {
	book, err := b.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return entity.Book{}, NotFound("Book not found.")
		}
		return entity.Book{}, fromStore(err)
	}
	if err := b.repo.Delete(ctx, id); err != nil {
		return entity.Book{}, fromStore(err)
	}
	return book, nil
}

// List returns one fixed-size page of books, 1-indexed.
func (b *Books) List(ctx context.Context, page int) ([]entity.Book, error) {
	if page < 1 {
		return nil, Validation("Page must be greater than 0.")
	}
	books, err := b.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fromStore(err)
	}
	return books, nil
}

// Search filters the local catalog by exact title/author match and, when
// external is set, augments the result through the cache-backed OpenLibrary
// lookup.
func (b *Books) Search(ctx context.Context, title, author string, limit int, external bool) (SearchResult, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" && author == "" {
		return SearchResult{}, Validation("You must provide at least a non-empty title or author.")
	}
	if limit < 1 || limit > 20 {
		return SearchResult{}, Validation("Limit must be between 1 and 20.")
	}

	local, err := b.repo.Search(ctx, title, author)
	if err != nil {
		return SearchResult{}, fromStore(err)
	}

	result := SearchResult{
		Local:    local,
		External: []ExternalBook{},
	}
	if result.Local == nil {
		result.Local = []entity.Book{}
	}

	if external {
		query := title
		if query == "" {
			query = author
		}
		res, err := b.external.Get(ctx, query, author, limit)
		if err != nil {
			return SearchResult{}, classifyExternal(err)
		}
		for _, doc := range res.Docs {
			eb := ExternalBook{
				Title:         doc.Title,
				Author:        strings.Join(doc.AuthorNames, ", "),
				Genre:         strings.Join(doc.Subjects, ", "),
				PublishedDate: doc.FirstPublishYear,
			}
			if len(doc.ISBN) > 0 {
				eb.ISBN = doc.ISBN[0]
			}
			result.External = append(result.External, eb)
		}
	}

	if len(result.Local) == 0 && !external {
		return SearchResult{}, NotFound("No data found locally.")
	}
	return result, nil
}

// classifyExternal maps OpenLibrary client failures onto the error taxonomy.
// Already-classified errors pass through untouched.
func classifyExternal(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, openlibrary.ErrRateLimited):
		return RateLimited("OpenLibrary rate limit exceeded.")
	case errors.Is(err, openlibrary.ErrUnavailable):
		return Unavailable("OpenLibrary is unavailable.")
	case errors.Is(err, openlibrary.ErrUpstream):
		return Upstream(fmt.Sprintf("OpenLibrary search failed: %v", err))
	default:
		return &Error{Kind: KindInternal, Message: fmt.Sprintf("OpenLibrary search failed: %v", err), cause: err}
	}
}
