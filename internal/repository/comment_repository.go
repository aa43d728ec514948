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

type commentRepository struct {
	db *sqlx.DB
}

const selectComments = `
	SELECT c.comment_id, c.post_id, c.author_id, c.content, c.created_at,
		u.email AS author_email, u.surname AS author_surname
	FROM comments c
	JOIN users u ON u.user_id = c.author_id
`

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, post_id, author_id, content, created_at)
		VALUES (:comment_id, :post_id, :author_id, :content, :created_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = newID()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	query := r.db.Rebind(selectComments + ` WHERE c.comment_id = ?`)

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %s: %w", commentID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// GetByPostID returns the comments of a post in the order they were written.
func (r *commentRepository) GetByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	query := r.db.Rebind(selectComments + ` WHERE c.post_id = ? ORDER BY c.created_at, c.comment_id`)

	comments := []models.Comment{}
	err := r.db.SelectContext(ctx, &comments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	query := r.db.Rebind(`DELETE FROM comments WHERE comment_id = ?`)

	result, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("comment %s: %w", commentID, models.ErrNotFound)
	}

	return nil
}
