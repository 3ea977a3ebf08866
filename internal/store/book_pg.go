package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

const bookColumns = `id, title, author, isbn, COALESCE(genre, ''), COALESCE(description, ''), published_date, public_rating, created_at, updated_at`

func (r *BookPG) Create(ctx context.Context, book *entity.Book) error {
	const query = `
	INSERT INTO books (id, title, author, isbn, genre, description, published_date, created_at, updated_at)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		book.Title, book.Author, book.ISBN, book.Genre, book.Description,
		book.PublishedDate, book.CreatedAt, book.UpdatedAt,
	).Scan(&book.ID)
	return mapError(err)
}

func (r *BookPG) GetByID(ctx context.Context, id string) (entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1 LIMIT 1`
	return r.scanOne(ctx, query, id)
}

func (r *BookPG) FindByISBNOrTitle(ctx context.Context, isbn, title string) (entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1 OR title = $2 LIMIT 1`
	return r.scanOne(ctx, query, isbn, title)
}

// Delete removes the book and cascade-detaches bookshelf entries and reading
// list memberships in a single transaction.
func (r *BookPG) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookshelves WHERE book_id = $1`, id); err != nil {
		return mapError(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM reading_list_books WHERE book_id = $1`, id); err != nil {
		return mapError(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *BookPG) List(ctx context.Context, limit, offset int) ([]entity.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	return r.scanMany(ctx, query, limit, offset)
}

// Search filters by exact title or author match: when both are given either
// match qualifies, mirroring the search endpoint semantics.
func (r *BookPG) Search(ctx context.Context, title, author string) ([]entity.Book, error) {
	const query = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE ($1 <> '' AND title = $1) OR ($2 <> '' AND author = $2)
	ORDER BY title ASC
	`
	return r.scanMany(ctx, query, title, author)
}

func (r *BookPG) scanOne(ctx context.Context, query string, args ...any) (entity.Book, error) {
	var b entity.Book
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Genre, &b.Description,
		&b.PublishedDate, &b.PublicRating, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return entity.Book{}, mapError(err)
	}
	return b, nil
}

func (r *BookPG) scanMany(ctx context.Context, query string, args ...any) ([]entity.Book, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Genre, &b.Description,
			&b.PublishedDate, &b.PublicRating, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
