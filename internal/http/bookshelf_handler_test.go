package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"libraryapi/internal/entity"
	"libraryapi/internal/store/mocks"
	"libraryapi/internal/testutil"
	"libraryapi/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func newBookshelfHandler(ctrl *gomock.Controller) (*BookshelfHandler, *mocks.MockUserRepository, *mocks.MockBookRepository, *mocks.MockBookshelfRepository) {
	mockUsers := mocks.NewMockUserRepository(ctrl)
	mockBooks := mocks.NewMockBookRepository(ctrl)
	mockShelf := mocks.NewMockBookshelfRepository(ctrl)
	handler := NewBookshelfHandler(usecase.NewBookshelf(mockUsers, mockBooks, mockShelf))
	return handler, mockUsers, mockBooks, mockShelf
}

func TestBookshelfHandler_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler, mockUsers, mockBooks, mockShelf := newBookshelfHandler(ctrl)

	user := entity.User{ID: "u1", Username: "alice"}
	book := entity.Book{ID: "b1", Title: "Dune", Author: "Frank Herbert"}

	t.Run("success - explicit status", func(t *testing.T) {
		mockUsers.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
		mockBooks.EXPECT().GetByID(gomock.Any(), "b1").Return(book, nil)
		mockShelf.EXPECT().GetByUserAndBook(gomock.Any(), "u1", "b1").Return(entity.BookshelfEntry{}, usecase.ErrNotFound)
		mockShelf.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		mockShelf.EXPECT().ListByUser(gomock.Any(), "u1").Return([]entity.BookshelfItem{
			{ID: "e1", BookID: "b1", Title: "Dune", Author: "Frank Herbert", Status: entity.StatusReading},
		}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users/bookshelf?username=alice&book_id=b1&status=reading", nil)
		handler.Add(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"bookshelf"`)
		assert.Contains(t, w.Body.String(), "Dune")
	})

	t.Run("success - status defaults to to_read", func(t *testing.T) {
		mockUsers.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
		mockBooks.EXPECT().GetByID(gomock.Any(), "b1").Return(book, nil)
		mockShelf.EXPECT().GetByUserAndBook(gomock.Any(), "u1", "b1").Return(entity.BookshelfEntry{}, usecase.ErrNotFound)
		mockShelf.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, e *entity.BookshelfEntry) error {
				assert.Equal(t, entity.StatusToRead, e.Status)
				return nil
			})
		mockShelf.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users/bookshelf?username=alice&book_id=b1", nil)
		handler.Add(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad request - blank status param", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users/bookshelf?username=alice&book_id=b1&status=", nil)
		handler.Add(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad request - invalid status", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users/bookshelf?username=alice&book_id=b1&status=devoured", nil)
		handler.Add(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, "Invalid status: devoured", testutil.ErrorMessage(resp.Body))
	})

	t.Run("bad request - duplicate entry", func(t *testing.T) {
		mockUsers.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
		mockBooks.EXPECT().GetByID(gomock.Any(), "b1").Return(book, nil)
		mockShelf.EXPECT().GetByUserAndBook(gomock.Any(), "u1", "b1").Return(entity.BookshelfEntry{ID: "e1"}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/users/bookshelf?username=alice&book_id=b1", nil)
		handler.Add(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, "Book already in user's bookshelf.", testutil.ErrorMessage(resp.Body))
	})
}

func TestBookshelfHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler, mockUsers, _, mockShelf := newBookshelfHandler(ctrl)

	t.Run("success - empty shelf is an empty array", func(t *testing.T) {
		mockUsers.EXPECT().GetByUsername(gomock.Any(), "alice").Return(entity.User{ID: "u1", Username: "alice"}, nil)
		mockShelf.EXPECT().ListByUser(gomock.Any(), "u1").Return(nil, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/bookshelf?username=alice", nil)
		handler.Get(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"bookshelf":[]`)
	})

	t.Run("not found - unknown user", func(t *testing.T) {
		mockUsers.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(entity.User{}, usecase.ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/users/bookshelf?username=ghost", nil)
		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookshelfHandler_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	handler, mockUsers, _, mockShelf := newBookshelfHandler(ctrl)

	user := entity.User{ID: "u1", Username: "alice"}
	entry := entity.BookshelfEntry{ID: "e1", UserID: "u1", BookID: "b1", Status: entity.StatusToRead}

	newStatusBody := func(status string) *bytes.Reader {
		body, _ := json.Marshal(map[string]string{"new_status": status})
		return bytes.NewReader(body)
	}

	t.Run("success", func(t *testing.T) {
		mockUsers.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
		mockShelf.EXPECT().GetByUserAndBook(gomock.Any(), "u1", "b1").Return(entry, nil)
		mockShelf.EXPECT().UpdateStatus(gomock.Any(), "e1", entity.StatusRead).Return(nil)
		mockShelf.EXPECT().ListByUser(gomock.Any(), "u1").Return([]entity.BookshelfItem{
			{ID: "e1", BookID: "b1", Status: entity.StatusRead},
		}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/users/bookshelf?username=alice&book_id=b1", newStatusBody("read"))
		r.Header.Set("Content-Type", "application/json")
		handler.UpdateStatus(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"read"`)
	})

	t.Run("not found - book not on shelf", func(t *testing.T) {
		mockUsers.EXPECT().GetByUsername(gomock.Any(), "alice").Return(user, nil)
		mockShelf.EXPECT().GetByUserAndBook(gomock.Any(), "u1", "b9").Return(entity.BookshelfEntry{}, usecase.ErrNotFound)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/users/bookshelf?username=alice&book_id=b9", newStatusBody("read"))
		r.Header.Set("Content-Type", "application/json")
		handler.UpdateStatus(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, "Book not found in user's bookshelf.", testutil.ErrorMessage(resp.Body))
	})

	t.Run("bad request - missing new_status", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPut, "/users/bookshelf?username=alice&book_id=b1", bytes.NewReader([]byte(`{}`)))
		r.Header.Set("Content-Type", "application/json")
		handler.UpdateStatus(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
