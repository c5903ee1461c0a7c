package user

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/globalcounseling/counseling-api/internal/api"
	"github.com/globalcounseling/counseling-api/internal/types"
)

// MockUserService is a mock implementation of the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUsers(ctx context.Context) ([]types.UserAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.UserAccount), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id string) (*types.UserAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, params *types.CreateUserRequest) (*types.UserAccount, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, params *types.UpdateUserRequest) (*types.UserAccount, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAccount), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestHandler(service UserService) *UserHandlerImpl {
	return NewUserHandlerImpl(service, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateUser(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockUserService)
		user := &types.UserAccount{ID: "user-1", Name: "Jane Doe", Email: "jane@example.com", Role: "user"}
		mockService.On("CreateUser", mock.Anything, mock.MatchedBy(func(p *types.CreateUserRequest) bool {
			return p.Email == "jane@example.com"
		})).Return(user, nil).Once()

		handler := newTestHandler(mockService)

		body := bytes.NewBufferString(`{"name":"Jane Doe","email":"jane@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/users", body)
		rr := httptest.NewRecorder()
		handler.CreateUser(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateEmailReturns409", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("CreateUser", mock.Anything, mock.Anything).Return(nil, api.ErrConflict).Once()

		handler := newTestHandler(mockService)

		body := bytes.NewBufferString(`{"name":"Jane Doe","email":"jane@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/users", body)
		rr := httptest.NewRecorder()
		handler.CreateUser(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidEmailReturns400", func(t *testing.T) {
		handler := newTestHandler(new(MockUserService))

		body := bytes.NewBufferString(`{"name":"Jane Doe","email":"not-an-email"}`)
		req := httptest.NewRequest(http.MethodPost, "/users", body)
		rr := httptest.NewRecorder()
		handler.CreateUser(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "email")
	})
}

func TestGetUser(t *testing.T) {
	const userID = "d290f1ee-6c54-4b01-90e6-d701748f0851"

	t.Run("InvalidIDReturns400", func(t *testing.T) {
		handler := newTestHandler(new(MockUserService))

		req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		req = withURLParam(req, "id", "abc")
		rr := httptest.NewRecorder()
		handler.GetUser(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("MissingReturns404", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("GetUser", mock.Anything, userID).Return(nil, api.ErrNotFound).Once()

		handler := newTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/users/"+userID, nil)
		req = withURLParam(req, "id", userID)
		rr := httptest.NewRecorder()
		handler.GetUser(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockService.AssertExpectations(t)
	})
}
