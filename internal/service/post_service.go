package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"personalblog/internal/models"
	"personalblog/internal/repository"
	"personalblog/internal/storage"
)

var ErrStorageDisabled = errors.New("image uploads are not configured")

type PostService interface {
	CreatePost(ctx context.Context, identity models.Identity, req models.CreatePostInput) (*models.Post, error)
	EditPost(ctx context.Context, identity models.Identity, req models.EditPostInput) (*models.Post, error)
	DeletePost(ctx context.Context, identity models.Identity, postID string) error
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, []models.Comment, error)
	PostsByAuthor(ctx context.Context, userID string) (*models.User, []models.Post, error)
	UploadCover(ctx context.Context, identity models.Identity, fileName string, file io.Reader, size int64) (string, error)
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	storage     storage.Storage
}

// NewPostService builds the post service. store may be nil, which disables
// cover uploads.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	store storage.Storage,
) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		storage:     store,
	}
}

func (p *postService) CreatePost(ctx context.Context, identity models.Identity, req models.CreatePostInput) (*models.Post, error) {
	if identity.IsAnonymous() {
		return nil, models.ErrUnauthenticated
	}

	post := &models.Post{
		AuthorID: identity.UserID(),
		Title:    strings.TrimSpace(req.Title),
		Subtitle: strings.TrimSpace(req.Subtitle),
		Body:     req.Body,
		ImgURL:   strings.TrimSpace(req.ImgURL),
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		if req.CoverUploaded {
			p.deleteCover(ctx, post.ImgURL)
		}
		return nil, err
	}

	post.AuthorEmail = identity.Email()
	post.AuthorSurname = identity.User().Surname

	return post, nil
}

// EditPost overwrites the content of a post. The original author is kept
// whoever edits it. A replaced cover is removed from storage once the post
// points at the new one.
func (p *postService) EditPost(ctx context.Context, identity models.Identity, req models.EditPostInput) (*models.Post, error) {
	if identity.IsAnonymous() {
		return nil, models.ErrUnauthenticated
	}

	newURL := strings.TrimSpace(req.ImgURL)
	discardUpload := func() {
		if req.CoverUploaded {
			p.deleteCover(ctx, newURL)
		}
	}

	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		discardUpload()
		return nil, err
	}

	oldURL := post.ImgURL

	post.Title = strings.TrimSpace(req.Title)
	post.Subtitle = strings.TrimSpace(req.Subtitle)
	post.Body = req.Body
	post.ImgURL = newURL

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		discardUpload()
		return nil, err
	}

	if oldURL != newURL {
		p.deleteCover(ctx, oldURL)
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, identity models.Identity, postID string) error {
	if identity.IsAnonymous() {
		return models.ErrUnauthenticated
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	p.deleteCover(ctx, post.ImgURL)

	return nil
}

// deleteCover removes a cover stored in our bucket. Failures are only logged;
// the post write it follows has already been decided.
func (p *postService) deleteCover(ctx context.Context, imgURL string) {
	if p.storage == nil || imgURL == "" {
		return
	}

	objectName, ok := p.storage.ObjectName(imgURL)
	if !ok {
		return
	}

	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		log.Printf("Warning: failed to delete cover %s: %v", objectName, err)
	}
}

func (p *postService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, []models.Comment, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	comments, err := p.commentRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	return post, comments, nil
}

func (p *postService) PostsByAuthor(ctx context.Context, userID string) (*models.User, []models.Post, error) {
	user, err := p.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	posts, err := p.postRepo.GetByAuthorID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return user, posts, nil
}

func (p *postService) UploadCover(ctx context.Context, identity models.Identity, fileName string, file io.Reader, size int64) (string, error) {
	if identity.IsAnonymous() {
		return "", models.ErrUnauthenticated
	}

	if p.storage == nil {
		return "", ErrStorageDisabled
	}

	imageURL, err := p.storage.UploadImage(ctx, fileName, file, size)
	if err != nil {
		return "", fmt.Errorf("cover upload failed: %w", err)
	}

	return imageURL, nil
}
