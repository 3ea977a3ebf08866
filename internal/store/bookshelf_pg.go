package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type BookshelfPG struct {
	db *pgxpool.Pool
}

func NewBookshelfPG(db *pgxpool.Pool) *BookshelfPG {
	return &BookshelfPG{db: db}
}

func (r *BookshelfPG) Create(ctx context.Context, entry *entity.BookshelfEntry) error {
	const query = `
	INSERT INTO bookshelves (id, user_id, book_id, status, personal_rating, review, date_added)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, NULLIF($5, ''), $6)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		entry.UserID, entry.BookID, entry.Status, entry.PersonalRating, entry.Review, entry.DateAdded,
	).Scan(&entry.ID)
	return mapError(err)
}

func (r *BookshelfPG) GetByUserAndBook(ctx context.Context, userID, bookID string) (entity.BookshelfEntry, error) {
	const query = `
	SELECT id, user_id, book_id, status, personal_rating, COALESCE(review, ''), date_added
	FROM bookshelves
	WHERE user_id = $1 AND book_id = $2
	LIMIT 1
	`
	var e entity.BookshelfEntry
	err := r.db.QueryRow(ctx, query, userID, bookID).Scan(
		&e.ID, &e.UserID, &e.BookID, &e.Status, &e.PersonalRating, &e.Review, &e.DateAdded,
	)
	if err != nil {
		return entity.BookshelfEntry{}, mapError(err)
	}
	return e, nil
}

func (r *BookshelfPG) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookshelves SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *BookshelfPG) ListByUser(ctx context.Context, userID string) ([]entity.BookshelfItem, error) {
	const query = `
	SELECT bs.id, b.id, b.title, b.author, bs.status, bs.date_added
	FROM bookshelves bs
	JOIN books b ON b.id = bs.book_id
	WHERE bs.user_id = $1
	ORDER BY bs.date_added ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var items []entity.BookshelfItem
	for rows.Next() {
		var item entity.BookshelfItem
		if err := rows.Scan(&item.ID, &item.BookID, &item.Title, &item.Author, &item.Status, &item.AddedDate); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
