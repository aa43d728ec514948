package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"personalblog/internal/models"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

const selectPosts = `
	SELECT p.post_id, p.author_id, p.title, p.subtitle, p.body, p.img_url, p.created_at, p.updated_at,
		u.email AS author_email, u.surname AS author_surname
	FROM blog_posts p
	JOIN users u ON u.user_id = p.author_id
`

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO blog_posts
		(post_id, author_id, title, subtitle, body, img_url, created_at, updated_at)
		VALUES
		(:post_id, :author_id, :title, :subtitle, :body, :img_url, :created_at, :updated_at)
	`

	if post.PostID == "" {
		post.PostID = newID()
	}

	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("post titled %q: %w", post.Title, models.ErrConflict)
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := r.DB.Rebind(selectPosts + ` WHERE p.post_id = ?`)

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// GetAll returns every post in creation order.
func (r *PostRepositoryImpl) GetAll(ctx context.Context) ([]models.Post, error) {
	query := selectPosts + ` ORDER BY p.created_at, p.post_id`

	posts := []models.Post{}
	err := r.DB.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	query := r.DB.Rebind(selectPosts + ` WHERE p.author_id = ? ORDER BY p.created_at, p.post_id`)

	posts := []models.Post{}
	err := r.DB.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts of author %s: %w", authorID, err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE blog_posts SET
			title = :title,
			subtitle = :subtitle,
			body = :body,
			img_url = :img_url,
			author_id = :author_id,
			updated_at = :updated_at
		WHERE post_id = :post_id
	`

	post.UpdatedAt = time.Now().UTC()

	result, err := r.DB.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("post titled %q: %w", post.Title, models.ErrConflict)
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.PostID, models.ErrNotFound)
	}

	return nil
}

// Delete removes the post and its comments in one transaction.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM comments WHERE post_id = ?`), postID)
	if err != nil {
		return fmt.Errorf("failed to delete comments of post: %w", err)
	}

	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM blog_posts WHERE post_id = ?`), postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", postID, models.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post deletion: %w", err)
	}

	return nil
}
