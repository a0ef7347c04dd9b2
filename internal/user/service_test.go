package user

import (
	"database/sql"
	"testing"

	"postboard/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(tx *sql.Tx, user *User) error {
	args := m.Called(tx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(db *sql.DB, id string) (*User, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(db *sql.DB, username string) (*User, error) {
	args := m.Called(db, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) Update(tx *sql.Tx, user *User) error {
	args := m.Called(tx, user)
	return args.Error(0)
}

// MockPublisher is a mock implementation of events.PublisherInterface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(event string, payload interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func TestVerifyCredentials_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, new(MockPublisher))

	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)

	stored := &User{ID: "user-1", Username: "testuser", Password: hashed}
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(stored, nil)

	user, err := service.VerifyCredentials("testuser", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestVerifyCredentials_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, new(MockPublisher))

	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)

	stored := &User{ID: "user-1", Username: "testuser", Password: hashed}
	mockRepo.On("GetByUsername", mock.Anything, "testuser").Return(stored, nil)

	_, err = service.VerifyCredentials("testuser", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyCredentials_UnknownUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, new(MockPublisher))

	mockRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, ErrNotFound)

	// An unknown username and a wrong password are indistinguishable
	_, err := service.VerifyCredentials("ghost", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGet_ExpandsFavoriteBook(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, new(MockPublisher))

	stored := &User{
		ID:           "user-1",
		Username:     "testuser",
		Password:     "hash",
		FavoriteBook: `{"key":"1","title":"New Book","author_name":["Author"],"first_publish_year":2024}`,
	}
	mockRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

	profile, err := service.Get("user-1")
	require.NoError(t, err)

	require.NotNil(t, profile.FavoriteBook)
	assert.Equal(t, "New Book", profile.FavoriteBook.Title)
	assert.Equal(t, []string{"Author"}, profile.FavoriteBook.AuthorName)
	assert.Equal(t, 2024, profile.FavoriteBook.FirstPublishYear)
}

func TestGet_NoFavoriteBook(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, new(MockPublisher))

	stored := &User{ID: "user-1", Username: "testuser", Password: "hash"}
	mockRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

	profile, err := service.Get("user-1")
	require.NoError(t, err)
	assert.Nil(t, profile.FavoriteBook)
}

func TestGet_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, new(MockPublisher))

	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, ErrNotFound)

	_, err := service.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_CorruptBlob(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, nil, new(MockPublisher))

	stored := &User{ID: "user-1", Username: "testuser", FavoriteBook: "not json"}
	mockRepo.On("GetByID", mock.Anything, "user-1").Return(stored, nil)

	_, err := service.Get("user-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
