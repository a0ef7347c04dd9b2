package session

import (
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no session matches the given token.
var ErrNotFound = errors.New("session not found")

type SessionRepository struct{}

type SessionRepositoryInterface interface {
	Create(db *sql.DB, session *Session) error
	FindByToken(db *sql.DB, token string) (*Session, error)
	DeleteByToken(db *sql.DB, token string) error
}

func NewSessionRepository() SessionRepositoryInterface {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(db *sql.DB, session *Session) error {
	query := `
		INSERT INTO sessions (id, user_id, token, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := db.Exec(query, session.ID, session.UserID, session.Token, session.CreatedAt)
	if err != nil {
		logrus.WithError(err).Error("Failed to create session")
		return err
	}

	logrus.WithField("user_id", session.UserID).Info("Session created")
	return nil
}

// FindByToken resolves a bearer token to its session row.
func (r *SessionRepository) FindByToken(db *sql.DB, token string) (*Session, error) {
	query := `
		SELECT id, user_id, token, created_at
		FROM sessions
		WHERE token = $1
	`

	s := &Session{}
	err := db.QueryRow(query, token).Scan(&s.ID, &s.UserID, &s.Token, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to find session by token")
		return nil, err
	}

	return s, nil
}

// DeleteByToken removes the session matching the token. Deleting a token
// that matches nothing is not an error.
func (r *SessionRepository) DeleteByToken(db *sql.DB, token string) error {
	query := `
		DELETE FROM sessions
		WHERE token = $1
	`

	if _, err := db.Exec(query, token); err != nil {
		logrus.WithError(err).Error("Failed to delete session")
		return err
	}

	return nil
}
