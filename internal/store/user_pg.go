package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

const userColumns = `id, username, email, COALESCE(hashed_password, ''), created_at, updated_at`

func (r *UserPG) Create(ctx context.Context, user *entity.User) error {
	const query = `
	INSERT INTO users (id, username, email, hashed_password, created_at, updated_at)
	VALUES (gen_random_uuid(), $1, $2, NULLIF($3, ''), $4, $5)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		user.Username, user.Email, user.HashedPassword, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	return mapError(err)
}

func (r *UserPG) GetByID(ctx context.Context, id string) (entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	return r.scanOne(ctx, query, id)
}

func (r *UserPG) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1 LIMIT 1`
	return r.scanOne(ctx, query, username)
}

func (r *UserPG) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(ctx, query, email)
}

func (r *UserPG) GetByUsernameAndEmail(ctx context.Context, username, email string) (entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND email = $2 LIMIT 1`
	return r.scanOne(ctx, query, username, email)
}

func (r *UserPG) Update(ctx context.Context, user *entity.User) error {
	const query = `
	UPDATE users
	SET username = $2, email = $3, updated_at = $4
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, user.ID, user.Username, user.Email, user.UpdatedAt)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

// Delete removes the user and cascade-detaches their bookshelf entries and
// reading lists in a single transaction.
func (r *UserPG) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM bookshelves WHERE user_id = $1`, id); err != nil {
		return mapError(err)
	}
	if _, err := tx.Exec(ctx, `
		DELETE FROM reading_list_books
		WHERE reading_list_id IN (SELECT id FROM reading_lists WHERE user_id = $1)`, id); err != nil {
		return mapError(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM reading_lists WHERE user_id = $1`, id); err != nil {
		return mapError(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *UserPG) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserPG) scanOne(ctx context.Context, query string, args ...any) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return entity.User{}, mapError(err)
	}
	return u, nil
}
