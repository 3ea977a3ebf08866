// Package store implements the persistence contracts from internal/usecase on
// top of Postgres via pgx.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"libraryapi/internal/usecase"
)

// uniqueViolation is the Postgres class 23 code for unique constraint
// violations.
const uniqueViolation = "23505"

// conflictMessages maps constraint names to API-visible conflict details.
// The usecase layer pre-checks uniqueness for friendly messages, but that
// check is racy under concurrent requests; the constraint at commit time is
// the final arbiter and must surface the same error kind.
var conflictMessages = map[string]string{
	"users_username_key":                  "Username already exists.",
	"users_email_key":                     "Email already exists.",
	"books_isbn_key":                      "Book with this ISBN already exists.",
	"bookshelves_user_id_book_id_key":     "Book already in user's bookshelf.",
	"reading_lists_user_id_list_name_key": "Reading list with this name already exists.",
	"reading_list_books_pkey":             "Book already in reading list.",
}

// mapError folds pgx failures into the usecase error vocabulary: no rows
// becomes ErrNotFound, unique violations become classified conflicts, and
// everything else passes through for the usecase layer to wrap as internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if msg, ok := conflictMessages[pgErr.ConstraintName]; ok {
			return usecase.Conflict(msg)
		}
		return usecase.Conflict("Resource already exists.")
	}
	return err
}
