package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"libraryapi/internal/auth"
	"libraryapi/internal/entity"
)

// Users gatekeeps every user mutation against business rules before the store
// is touched.
type Users struct {
	repo UserRepository
}

func NewUsers(repo UserRepository) *Users {
	return &Users{repo: repo}
}

// Register creates a credentialed user. Username and email uniqueness are
// checked independently so the conflict message distinguishes which collided.
func (u *Users) Register(ctx context.Context, username, email, password string) (entity.User, error) {
	if strings.TrimSpace(username) == "" {
		return entity.User{}, Validation("Username cannot be empty.")
	}
	if strings.TrimSpace(email) == "" {
		return entity.User{}, Validation("Email cannot be empty.")
	}
	if strings.TrimSpace(password) == "" {
		return entity.User{}, Validation("Password cannot be empty.")
	}
	if !strings.Contains(email, "@") {
		return entity.User{}, Validation("Email must contain '@'.")
	}

	usernameTaken, err := u.exists(ctx, func() error {
		_, err := u.repo.GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		return entity.User{}, err
	}
	emailTaken, err := u.exists(ctx, func() error {
		_, err := u.repo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		return entity.User{}, err
	}
	switch {
	case usernameTaken && emailTaken:
		return entity.User{}, Conflict("Username and email already exist.")
	case usernameTaken:
		return entity.User{}, Conflict("Username already exists.")
	case emailTaken:
		return entity.User{}, Conflict("Email already exists.")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return entity.User{}, Internalf("password hash failed: %v", err)
	}

	now := time.Now().UTC()
	user := entity.User{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := u.repo.Create(ctx, &user); err != nil {
		return entity.User{}, fromStore(err)
	}
	return user, nil
}

// Authenticate verifies a username/password pair for the token endpoint.
// Failures deliberately do not reveal which half was wrong.
func (u *Users) Authenticate(ctx context.Context, username, password string) (entity.User, error) {
	if strings.TrimSpace(username) == "" {
		return entity.User{}, Validation("Username cannot be empty or whitespace.")
	}
	if strings.TrimSpace(password) == "" {
		return entity.User{}, Validation("Password cannot be empty or whitespace.")
	}

	user, err := u.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return entity.User{}, Validation("Incorrect username or password")
		}
		return entity.User{}, fromStore(err)
	}
	if !auth.VerifyPassword(user.HashedPassword, password) {
		return entity.User{}, Validation("Incorrect username or password")
	}
	return user, nil
}

// Update overwrites username and email. Collision checks only fire when the
// candidate value differs from the current one.
func (u *Users) Update(ctx context.Context, id, username, email string) (entity.User, error) {
	if strings.TrimSpace(username) == "" {
		return entity.User{}, Validation("Username cannot be empty or whitespace.")
	}
	if strings.TrimSpace(email) == "" {
		return entity.User{}, Validation("Email cannot be empty or whitespace.")
	}

	user, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return entity.User{}, NotFound("User not found.")
		}
		return entity.User{}, fromStore(err)
	}

	if username != user.Username {
		taken, err := u.exists(ctx, func() error {
			_, err := u.repo.GetByUsername(ctx, username)
			return err
		})
		if err != nil {
			return entity.User{}, err
		}
		if taken {
			return entity.User{}, Conflict("Username already exists.")
		}
	}
	if email != user.Email {
		taken, err := u.exists(ctx, func() error {
			_, err := u.repo.GetByEmail(ctx, email)
			return err
		})
		if err != nil {
			return entity.User{}, err
		}
		if taken {
			return entity.User{}, Conflict("Email already exists.")
		}
	}

	user.Username = username
	user.Email = email
	user.UpdatedAt = time.Now().UTC()
	if err := u.repo.Update(ctx, &user); err != nil {
		return entity.User{}, fromStore(err)
	}
	return user, nil
}

// Find looks a user up by username and/or email. Precedence: both given (AND
// match) > username only > email only.
func (u *Users) Find(ctx context.Context, username, email string) (entity.User, error) {
	return u.findBySelectors(ctx, username, email)
}

// Delete removes the selected user together with their bookshelf entries and
// reading lists, and returns the removed snapshot.
func (u *Users) Delete(ctx context.Context, username, email string) (entity.User, error) {
	user, err := u.findBySelectors(ctx, username, email)
	if err != nil {
		return entity.User{}, err
	}
	if err := u.repo.Delete(ctx, user.ID); err != nil {
		return entity.User{}, fromStore(err)
	}
	return user, nil
}

const pageSize = 20

// List returns one fixed-size page of users, 1-indexed.
func (u *Users) List(ctx context.Context, page int) ([]entity.User, error) {
	if page < 1 {
		return nil, Validation("Page must be greater than 0.")
	}
	users, err := u.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fromStore(err)
	}
	return users, nil
}

func (u *Users) findBySelectors(ctx context.Context, username, email string) (entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" && email == "" {
		return entity.User{}, Validation("You must provide a non-empty username or email.")
	}

	var (
		user entity.User
		err  error
	)
	switch {
	case username != "" && email != "":
		user, err = u.repo.GetByUsernameAndEmail(ctx, username, email)
	case username != "":
		user, err = u.repo.GetByUsername(ctx, username)
	default:
		user, err = u.repo.GetByEmail(ctx, email)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return entity.User{}, NotFound("User not found.")
		}
		return entity.User{}, fromStore(err)
	}
	return user, nil
}

// exists runs a lookup and folds its outcome into found/not-found, surfacing
// unexpected store failures as internal errors.
func (u *Users) exists(ctx context.Context, lookup func() error) (bool, error) {
	err := lookup()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, fromStore(err)
}
