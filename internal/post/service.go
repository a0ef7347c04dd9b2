package post

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"postboard/internal/auth"
	"postboard/internal/cache"
	"postboard/internal/events"
	"postboard/internal/observability"
	"postboard/internal/utils"
	"postboard/internal/validation"

	"github.com/sirupsen/logrus"
)

type PostServiceInterface interface {
	List() ([]*Post, error)
	Get(id string) (*Post, error)
	Create(authorID string, input validation.PostCreateInput) (*Post, error)
	Update(id string, input validation.PostUpdateInput) (*Post, error)
	Delete(id string) error
}

// ListCache is the subset of the cache layer the post service needs.
// Satisfied by cache.PostCache.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

type PostService struct {
	repo      PostRepositoryInterface
	db        *sql.DB
	cache     ListCache
	publisher events.PublisherInterface
}

func NewPostService(repo PostRepositoryInterface, db *sql.DB, postCache ListCache, publisher events.PublisherInterface) PostServiceInterface {
	return &PostService{
		repo:      repo,
		db:        db,
		cache:     postCache,
		publisher: publisher,
	}
}

func (s *PostService) List() ([]*Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cacheKey := cache.PostsKey()
	cachedData, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cachedData != nil {
		var posts []*Post
		if json.Unmarshal(cachedData, &posts) == nil {
			observability.IncCacheHit("posts")
			return posts, nil
		}
	}
	observability.IncCacheMiss("posts")

	posts, err := s.repo.All(s.db)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, posts); err != nil {
		logrus.WithError(err).Warn("Failed to cache post listing")
	}

	return posts, nil
}

func (s *PostService) Get(id string) (*Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cacheKey := cache.PostKey(id)
	cachedData, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cachedData != nil {
		var p Post
		if json.Unmarshal(cachedData, &p) == nil {
			observability.IncCacheHit("posts")
			return &p, nil
		}
	}
	observability.IncCacheMiss("posts")

	p, err := s.repo.Find(s.db, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, p); err != nil {
		logrus.WithError(err).Warn("Failed to cache post")
	}

	return p, nil
}

// Create persists a new post owned by authorID. The author always comes
// from the caller's resolved session; any authorId in the input was already
// discarded upstream.
func (s *PostService) Create(authorID string, input validation.PostCreateInput) (*Post, error) {
	now := time.Now().UTC()
	p := &Post{
		ID:        auth.NewID(),
		Title:     input.Title,
		Content:   input.Content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.repo.Create(tx, p)
	}); err != nil {
		return nil, err
	}

	s.evict(p.ID)

	if err := s.publisher.Publish(events.PostCreated, map[string]string{
		"postId":   p.ID,
		"authorId": p.AuthorID,
	}); err != nil {
		logrus.WithError(err).Warn("Failed to publish post.created event")
	}

	return p, nil
}

// Update finds the existing post first, merges the partial input onto it
// and replaces the row.
func (s *PostService) Update(id string, input validation.PostUpdateInput) (*Post, error) {
	p, err := s.repo.Find(s.db, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Content != nil {
		p.Content = *input.Content
	}
	p.UpdatedAt = time.Now().UTC()

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.repo.Update(tx, p)
	}); err != nil {
		return nil, err
	}

	s.evict(id)
	return p, nil
}

func (s *PostService) Delete(id string) error {
	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.repo.Delete(tx, id)
	}); err != nil {
		return err
	}

	s.evict(id)
	return nil
}

// evict drops the single-post entry and the listing so readers never see a
// stale copy after a write.
func (s *PostService) evict(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.cache.Delete(ctx, cache.PostKey(id), cache.PostsKey()); err != nil {
		logrus.WithError(err).Warn("Failed to evict post cache entries")
	}
}
