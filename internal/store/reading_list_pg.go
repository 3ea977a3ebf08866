package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type ReadingListPG struct {
	db *pgxpool.Pool
}

func NewReadingListPG(db *pgxpool.Pool) *ReadingListPG {
	return &ReadingListPG{db: db}
}

func (r *ReadingListPG) Create(ctx context.Context, list *entity.ReadingList) error {
	const query = `
	INSERT INTO reading_lists (id, user_id, list_name, created_at, updated_at)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		list.UserID, list.Name, list.CreatedAt, list.UpdatedAt,
	).Scan(&list.ID)
	return mapError(err)
}

func (r *ReadingListPG) GetByUserAndName(ctx context.Context, userID, name string) (entity.ReadingList, error) {
	const query = `
	SELECT id, user_id, list_name, created_at, updated_at
	FROM reading_lists
	WHERE user_id = $1 AND list_name = $2
	LIMIT 1
	`
	var l entity.ReadingList
	err := r.db.QueryRow(ctx, query, userID, name).Scan(
		&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return entity.ReadingList{}, mapError(err)
	}
	return l, nil
}

func (r *ReadingListPG) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reading_lists WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func (r *ReadingListPG) ListByUser(ctx context.Context, userID string) ([]entity.ReadingList, error) {
	const query = `
	SELECT id, user_id, list_name, created_at, updated_at
	FROM reading_lists
	WHERE user_id = $1
	ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var lists []entity.ReadingList
	for rows.Next() {
		var l entity.ReadingList
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *ReadingListPG) ListBooks(ctx context.Context, listID string) ([]entity.ReadingListBook, error) {
	const query = `
	SELECT b.id, b.id, b.title, b.author
	FROM reading_list_books rlb
	JOIN books b ON b.id = rlb.book_id
	WHERE rlb.reading_list_id = $1
	ORDER BY rlb.date_added ASC
	`
	rows, err := r.db.Query(ctx, query, listID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var books []entity.ReadingListBook
	for rows.Next() {
		var b entity.ReadingListBook
		if err := rows.Scan(&b.ID, &b.BookID, &b.Title, &b.Author); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// AddBook records membership. The composite primary key rejects duplicates;
// mapError turns that into the conflict the API reports.
func (r *ReadingListPG) AddBook(ctx context.Context, listID, bookID string) error {
	const query = `
	INSERT INTO reading_list_books (reading_list_id, book_id, date_added)
	VALUES ($1, $2, NOW())
	`
	_, err := r.db.Exec(ctx, query, listID, bookID)
	return mapError(err)
}

// Delete removes the list together with its membership rows in one
// transaction.
func (r *ReadingListPG) Delete(ctx context.Context, listID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reading_list_books WHERE reading_list_id = $1`, listID); err != nil {
		return mapError(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM reading_lists WHERE id = $1`, listID)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return tx.Commit(ctx)
}
