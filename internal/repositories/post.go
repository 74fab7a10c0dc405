package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/monkeymesh/monkeymesh/internal/logger"
	"github.com/monkeymesh/monkeymesh/internal/models"
)

type PostReadRepository struct {
	db *sqlx.DB
}

func NewPostReadRepository(db *sqlx.DB) *PostReadRepository {
	return &PostReadRepository{db: db}
}

// GetAll returns every post for the shared feed, newest first.
func (r *PostReadRepository) GetAll(ctx context.Context) ([]models.PostDB, error) {
	const query = `
		SELECT id, username, content, image, profile_pic, created_at
		FROM posts
		ORDER BY id DESC
	`

	var posts []models.PostDB
	err := r.db.SelectContext(ctx, &posts, query)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

// GetByUsername returns every post authored by the given user in insertion order.
func (r *PostReadRepository) GetByUsername(ctx context.Context, username string) ([]models.PostDB, error) {
	const query = `
		SELECT id, username, content, image, profile_pic, created_at
		FROM posts
		WHERE username = $1
		ORDER BY id
	`

	var posts []models.PostDB
	err := r.db.SelectContext(ctx, &posts, query, username)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

// CountByUsername returns the number of posts authored by the given user.
func (r *PostReadRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM posts
		WHERE username = $1
	`

	var count int64
	err := r.db.GetContext(ctx, &count, query, username)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"result", count,
		"error", err,
	)

	if err != nil {
		return 0, err
	}

	return count, nil
}

type PostWriteRepository struct {
	db *sqlx.DB
}

func NewPostWriteRepository(db *sqlx.DB) *PostWriteRepository {
	return &PostWriteRepository{db: db}
}

// Save appends a new post. Posts are immutable once written; there is no
// update or delete counterpart.
func (r *PostWriteRepository) Save(ctx context.Context, username, content string, image, profilePic *string) error {
	const query = `
		INSERT INTO posts (username, content, image, profile_pic, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	args := []any{username, content, image, profilePic}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}
