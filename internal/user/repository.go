package user

import (
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no user matches the given identifier.
var ErrNotFound = errors.New("user not found")

type UserRepository struct{}

type UserRepositoryInterface interface {
	Create(tx *sql.Tx, user *User) error
	GetByID(db *sql.DB, id string) (*User, error)
	GetByUsername(db *sql.DB, username string) (*User, error)
	Update(tx *sql.Tx, user *User) error
}

func NewUserRepository() UserRepositoryInterface {
	return &UserRepository{}
}

func (r *UserRepository) Create(tx *sql.Tx, user *User) error {
	query := `
		INSERT INTO users (id, username, password, favorite_book, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(
		query,
		user.ID,
		user.Username,
		user.Password,
		user.FavoriteBook,
		user.CreatedAt,
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to create user")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User created successfully")

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(db *sql.DB, id string) (*User, error) {
	query := `
		SELECT id, username, password, favorite_book, created_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.FavoriteBook,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.WithField("user_id", id).Warn("User not found")
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get user by ID")
		return nil, err
	}

	return user, nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(db *sql.DB, username string) (*User, error) {
	query := `
		SELECT id, username, password, favorite_book, created_at
		FROM users
		WHERE username = $1
	`

	user := &User{}
	err := db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.FavoriteBook,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get user by username")
		return nil, err
	}

	return user, nil
}

// Update replaces the stored row with the given record. The caller merges
// partial input onto the existing record first; no merging happens here.
func (r *UserRepository) Update(tx *sql.Tx, user *User) error {
	query := `
		UPDATE users
		SET username = $1, password = $2, favorite_book = $3
		WHERE id = $4
	`

	result, err := tx.Exec(query, user.Username, user.Password, user.FavoriteBook, user.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to update user")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	logrus.WithField("user_id", user.ID).Info("User updated successfully")
	return nil
}
