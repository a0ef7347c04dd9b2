package user

import (
	"database/sql"
	"errors"
	"time"

	"postboard/internal/auth"
	"postboard/internal/events"
	"postboard/internal/utils"
	"postboard/internal/validation"

	"github.com/sirupsen/logrus"
)

// ErrInvalidCredentials is returned on login when the username is unknown or
// the password does not match. Callers must not reveal which.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserServiceInterface interface {
	Register(input validation.RegisterInput) (*User, error)
	VerifyCredentials(username, password string) (*User, error)
	Get(id string) (*Profile, error)
	Update(id string, input validation.UserUpdateInput) (*User, error)
}

type UserService struct {
	repo      UserRepositoryInterface
	db        *sql.DB
	publisher events.PublisherInterface
}

func NewUserService(repo UserRepositoryInterface, db *sql.DB, publisher events.PublisherInterface) UserServiceInterface {
	return &UserService{
		repo:      repo,
		db:        db,
		publisher: publisher,
	}
}

// Register creates a user with a hashed password. A taken username surfaces
// as an opaque error; the route boundary turns it into a generic 500.
func (s *UserService) Register(input validation.RegisterInput) (*User, error) {
	existing, err := s.repo.GetByUsername(s.db, input.Username)
	if err == nil && existing != nil {
		return nil, errors.New("username already exists")
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &User{
		ID:        auth.NewID(),
		Username:  input.Username,
		Password:  hashed,
		CreatedAt: time.Now().UTC(),
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.repo.Create(tx, user)
	}); err != nil {
		return nil, err
	}

	// The record is committed at this point; a broker outage must not fail
	// the registration.
	if err := s.publisher.Publish(events.UserRegistered, map[string]string{
		"userId":   user.ID,
		"username": user.Username,
	}); err != nil {
		logrus.WithError(err).Warn("Failed to publish user.registered event")
	}

	return user, nil
}

// VerifyCredentials resolves a username/password pair to the stored user.
func (s *UserService) VerifyCredentials(username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(s.db, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Get retrieves a user and expands the favorite-book blob into its
// structured form.
func (s *UserService) Get(id string) (*Profile, error) {
	user, err := s.repo.GetByID(s.db, id)
	if err != nil {
		return nil, err
	}

	book, err := DecodeBook(user.FavoriteBook)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("Stored favorite book blob is not valid JSON")
		return nil, err
	}

	return &Profile{
		ID:           user.ID,
		Username:     user.Username,
		FavoriteBook: book,
		CreatedAt:    user.CreatedAt,
	}, nil
}

// Update merges the partial input onto the existing record, serializing the
// favorite book back into its storage form, and replaces the row. The
// returned record still carries the serialized blob.
func (s *UserService) Update(id string, input validation.UserUpdateInput) (*User, error) {
	user, err := s.repo.GetByID(s.db, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Password != nil {
		hashed, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if input.FavoriteBook != nil {
		blob, err := EncodeBook(&Book{
			Key:              input.FavoriteBook.Key,
			Title:            input.FavoriteBook.Title,
			AuthorName:       input.FavoriteBook.AuthorName,
			FirstPublishYear: input.FavoriteBook.FirstPublishYear,
		})
		if err != nil {
			return nil, err
		}
		user.FavoriteBook = blob
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		return s.repo.Update(tx, user)
	}); err != nil {
		return nil, err
	}

	return user, nil
}
