package service

import (
	"context"
	"fmt"
	"strings"

	"personalblog/internal/models"
	"personalblog/internal/repository"
)

type CommentService interface {
	CreateComment(ctx context.Context, identity models.Identity, req models.CreateCommentInput) (*models.Comment, error)
	DeleteComment(ctx context.Context, identity models.Identity, postID, commentID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (c *commentService) CreateComment(ctx context.Context, identity models.Identity, req models.CreateCommentInput) (*models.Comment, error) {
	if identity.IsAnonymous() {
		return nil, models.ErrUnauthenticated
	}

	// the post must exist before anything is written
	if _, err := c.postRepo.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   req.PostID,
		AuthorID: identity.UserID(),
		Text:     strings.TrimSpace(req.Text),
	}

	if err := c.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.AuthorEmail = identity.Email()
	comment.AuthorSurname = identity.User().Surname

	return comment, nil
}

// DeleteComment lets the comment's author or the post's author remove it.
func (c *commentService) DeleteComment(ctx context.Context, identity models.Identity, postID, commentID string) error {
	if identity.IsAnonymous() {
		return models.ErrUnauthenticated
	}

	comment, err := c.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.PostID != postID {
		return fmt.Errorf("comment %s on post %s: %w", commentID, postID, models.ErrNotFound)
	}

	if comment.AuthorID != identity.UserID() {
		post, err := c.postRepo.GetByID(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != identity.UserID() {
			return fmt.Errorf("comment %s: %w", commentID, models.ErrUnauthorized)
		}
	}

	return c.commentRepo.Delete(ctx, commentID)
}
