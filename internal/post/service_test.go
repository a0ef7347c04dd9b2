package post

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPostRepository is a mock implementation of PostRepositoryInterface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Find(db *sql.DB, id string) (*Post, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *MockPostRepository) All(db *sql.DB) ([]*Post, error) {
	args := m.Called(db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *MockPostRepository) Create(tx *sql.Tx, post *Post) error {
	args := m.Called(tx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(tx *sql.Tx, post *Post) error {
	args := m.Called(tx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(tx *sql.Tx, id string) error {
	args := m.Called(tx, id)
	return args.Error(0)
}

// MockListCache is a mock implementation of ListCache
type MockListCache struct {
	mock.Mock
}

func (m *MockListCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockListCache) Set(ctx context.Context, key string, data interface{}) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *MockListCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(keys)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of events.PublisherInterface
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event string, payload interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func TestGet_CacheHitSkipsStore(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockCache := new(MockListCache)
	service := NewPostService(mockRepo, nil, mockCache, new(MockEventPublisher))

	cached := &Post{ID: "1", Title: "Post 1", Content: "Content", AuthorID: "user-1"}
	blob, err := json.Marshal(cached)
	require.NoError(t, err)

	mockCache.On("Get", mock.Anything, "post:1").Return(blob, nil)

	p, err := service.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Post 1", p.Title)

	mockRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestGet_CacheMissFallsBackToStore(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockCache := new(MockListCache)
	service := NewPostService(mockRepo, nil, mockCache, new(MockEventPublisher))

	stored := &Post{ID: "1", Title: "Post 1", Content: "Content", AuthorID: "user-1"}

	mockCache.On("Get", mock.Anything, "post:1").Return(nil, nil)
	mockRepo.On("Find", mock.Anything, "1").Return(stored, nil)
	mockCache.On("Set", mock.Anything, "post:1", stored).Return(nil)

	p, err := service.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestGet_NotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockCache := new(MockListCache)
	service := NewPostService(mockRepo, nil, mockCache, new(MockEventPublisher))

	mockCache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	mockRepo.On("Find", mock.Anything, "999").Return(nil, ErrNotFound)

	_, err := service.Get("999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_CacheMiss(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockCache := new(MockListCache)
	service := NewPostService(mockRepo, nil, mockCache, new(MockEventPublisher))

	stored := []*Post{
		{ID: "1", Title: "Post 1"},
		{ID: "2", Title: "Post 2"},
	}

	mockCache.On("Get", mock.Anything, "posts:all").Return(nil, nil)
	mockRepo.On("All", mock.Anything).Return(stored, nil)
	mockCache.On("Set", mock.Anything, "posts:all", stored).Return(nil)

	posts, err := service.List()
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	mockRepo.AssertExpectations(t)
}
