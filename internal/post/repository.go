package post

import (
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when no post matches the given identifier.
var ErrNotFound = errors.New("post not found")

type PostRepository struct{}

type PostRepositoryInterface interface {
	Find(db *sql.DB, id string) (*Post, error)
	All(db *sql.DB) ([]*Post, error)
	Create(tx *sql.Tx, post *Post) error
	Update(tx *sql.Tx, post *Post) error
	Delete(tx *sql.Tx, id string) error
}

func NewPostRepository() PostRepositoryInterface {
	return &PostRepository{}
}

func (r *PostRepository) Find(db *sql.DB, id string) (*Post, error) {
	query := `
		SELECT id, title, content, author_id, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	p := &Post{}
	err := db.QueryRow(query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.AuthorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		logrus.WithError(err).Error("Failed to find post")
		return nil, err
	}

	return p, nil
}

func (r *PostRepository) All(db *sql.DB) ([]*Post, error) {
	query := `
		SELECT id, title, content, author_id, created_at, updated_at
		FROM posts
		ORDER BY created_at
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		p := &Post{}
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Content,
			&p.AuthorID,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			logrus.Error("Error scanning post row: ", err)
			continue
		}
		posts = append(posts, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) Create(tx *sql.Tx, post *Post) error {
	query := `
		INSERT INTO posts (id, title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(
		query,
		post.ID,
		post.Title,
		post.Content,
		post.AuthorID,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		logrus.WithError(err).Error("Failed to create post")
		return err
	}

	return nil
}

// Update replaces the stored row. Partial payloads are merged by the caller
// before this is invoked.
func (r *PostRepository) Update(tx *sql.Tx, post *Post) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := tx.Exec(query, post.Title, post.Content, post.UpdatedAt, post.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to update post")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostRepository) Delete(tx *sql.Tx, id string) error {
	query := `
		DELETE FROM posts
		WHERE id = $1
	`

	result, err := tx.Exec(query, id)
	if err != nil {
		logrus.WithError(err).Error("Failed to delete post")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	logrus.WithField("post_id", id).Info("Post deleted")
	return nil
}
