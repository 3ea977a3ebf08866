package usecase_test

import (
	"context"
	"testing"

	"libraryapi/internal/auth"
	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestUsers_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUsers(mockRepo)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "alice").Return(entity.User{}, usecase.ErrNotFound)
		mockRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(entity.User{}, usecase.ErrNotFound)
		mockRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		user, err := uc.Register(ctx, "alice", "alice@example.com", "secret123")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, user.HashedPassword)
		assert.NotEqual(t, "secret123", user.HashedPassword)
	})

	t.Run("error - blank username", func(t *testing.T) {
		_, err := uc.Register(ctx, "   ", "alice@example.com", "secret123")

		assert.Error(t, err)
		assert.Equal(t, "Username cannot be empty.", err.Error())
		assert.True(t, usecase.IsKind(err, usecase.KindValidation))
	})

	t.Run("error - email without at sign", func(t *testing.T) {
		_, err := uc.Register(ctx, "alice", "not-an-email", "secret123")

		assert.Error(t, err)
		assert.Equal(t, "Email must contain '@'.", err.Error())
	})

	t.Run("error - username taken", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "alice").Return(entity.User{Username: "alice"}, nil)
		mockRepo.EXPECT().GetByEmail(ctx, "new@example.com").Return(entity.User{}, usecase.ErrNotFound)

		_, err := uc.Register(ctx, "alice", "new@example.com", "secret123")

		assert.Error(t, err)
		assert.Equal(t, "Username already exists.", err.Error())
		assert.True(t, usecase.IsKind(err, usecase.KindConflict))
	})

	t.Run("error - email taken", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "newuser").Return(entity.User{}, usecase.ErrNotFound)
		mockRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(entity.User{Email: "alice@example.com"}, nil)

		_, err := uc.Register(ctx, "newuser", "alice@example.com", "secret123")

		assert.Error(t, err)
		assert.Equal(t, "Email already exists.", err.Error())
	})

	t.Run("error - username and email taken", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "alice").Return(entity.User{Username: "alice"}, nil)
		mockRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(entity.User{Email: "alice@example.com"}, nil)

		_, err := uc.Register(ctx, "alice", "alice@example.com", "secret123")

		assert.Error(t, err)
		assert.Equal(t, "Username and email already exist.", err.Error())
		assert.True(t, usecase.IsKind(err, usecase.KindConflict))
	})
}

func TestUsers_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUsers(mockRepo)
	ctx := context.Background()

	hash, _ := auth.HashPassword("correct-password")
	stored := entity.User{ID: "u1", Username: "alice", HashedPassword: hash}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "alice").Return(stored, nil)

		user, err := uc.Authenticate(ctx, "alice", "correct-password")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("error - wrong password", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "alice").Return(stored, nil)

		_, err := uc.Authenticate(ctx, "alice", "wrong-password")

		assert.Error(t, err)
		assert.Equal(t, "Incorrect username or password", err.Error())
		assert.True(t, usecase.IsKind(err, usecase.KindValidation))
	})

	t.Run("error - unknown user reports same message", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "ghost").Return(entity.User{}, usecase.ErrNotFound)

		_, err := uc.Authenticate(ctx, "ghost", "whatever")

		assert.Error(t, err)
		assert.Equal(t, "Incorrect username or password", err.Error())
	})

	t.Run("error - blank username", func(t *testing.T) {
		_, err := uc.Authenticate(ctx, " ", "pw")

		assert.Error(t, err)
		assert.Equal(t, "Username cannot be empty or whitespace.", err.Error())
	})
}

func TestUsers_Find(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUsers(mockRepo)
	ctx := context.Background()

	stored := entity.User{ID: "u1", Username: "alice", Email: "alice@example.com"}

	t.Run("both selectors use combined lookup", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsernameAndEmail(ctx, "alice", "alice@example.com").Return(stored, nil)

		user, err := uc.Find(ctx, "alice", "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
	})

	t.Run("username only", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "alice").Return(stored, nil)

		_, err := uc.Find(ctx, "alice", "")

		assert.NoError(t, err)
	})

	t.Run("email only", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(stored, nil)

		_, err := uc.Find(ctx, "", "alice@example.com")

		assert.NoError(t, err)
	})

	t.Run("error - both blank", func(t *testing.T) {
		_, err := uc.Find(ctx, "  ", "")

		assert.Error(t, err)
		assert.Equal(t, "You must provide a non-empty username or email.", err.Error())
	})

	t.Run("error - not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "ghost").Return(entity.User{}, usecase.ErrNotFound)

		_, err := uc.Find(ctx, "ghost", "")

		assert.Error(t, err)
		assert.Equal(t, "User not found.", err.Error())
		assert.True(t, usecase.IsKind(err, usecase.KindNotFound))
	})
}

func TestUsers_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUsers(mockRepo)
	ctx := context.Background()

	stored := entity.User{ID: "u1", Username: "alice", Email: "alice@example.com"}

	t.Run("success - unchanged fields skip collision checks", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(ctx, "u1").Return(stored, nil)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		user, err := uc.Update(ctx, "u1", "alice", "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("success - new username checked", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(ctx, "u1").Return(stored, nil)
		mockRepo.EXPECT().GetByUsername(ctx, "alice2").Return(entity.User{}, usecase.ErrNotFound)
		mockRepo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		user, err := uc.Update(ctx, "u1", "alice2", "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "alice2", user.Username)
	})

	t.Run("error - new username taken", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(ctx, "u1").Return(stored, nil)
		mockRepo.EXPECT().GetByUsername(ctx, "bob").Return(entity.User{Username: "bob"}, nil)

		_, err := uc.Update(ctx, "u1", "bob", "alice@example.com")

		assert.Error(t, err)
		assert.Equal(t, "Username already exists.", err.Error())
	})

	t.Run("error - user not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(ctx, "missing").Return(entity.User{}, usecase.ErrNotFound)

		_, err := uc.Update(ctx, "missing", "alice", "alice@example.com")

		assert.Error(t, err)
		assert.Equal(t, "User not found.", err.Error())
	})
}

func TestUsers_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUsers(mockRepo)
	ctx := context.Background()

	stored := entity.User{ID: "u1", Username: "alice", Email: "alice@example.com"}

	t.Run("success - returns removed snapshot", func(t *testing.T) {
		mockRepo.EXPECT().GetByUsername(ctx, "alice").Return(stored, nil)
		mockRepo.EXPECT().Delete(ctx, "u1").Return(nil)

		user, err := uc.Delete(ctx, "alice", "")

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("error - not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(entity.User{}, usecase.ErrNotFound)

		_, err := uc.Delete(ctx, "", "ghost@example.com")

		assert.Error(t, err)
		assert.True(t, usecase.IsKind(err, usecase.KindNotFound))
	})
}

func TestUsers_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	uc := usecase.NewUsers(mockRepo)
	ctx := context.Background()

	t.Run("page 2 offsets by page size", func(t *testing.T) {
		mockRepo.EXPECT().List(ctx, 20, 20).Return([]entity.User{}, nil)

		_, err := uc.List(ctx, 2)

		assert.NoError(t, err)
	})

	t.Run("error - page below 1", func(t *testing.T) {
		_, err := uc.List(ctx, 0)

		assert.Error(t, err)
		assert.Equal(t, "Page must be greater than 0.", err.Error())
	})
}
