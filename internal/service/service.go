package service

import (
	"personalblog/internal/config"
	"personalblog/internal/mail"
	"personalblog/internal/repository"
	"personalblog/internal/storage"
)

type Service struct {
	Auth    AuthService
	Post    PostService
	Comment CommentService
	Contact ContactService
	Stats   StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, db HealthChecker, store storage.Storage, sender mail.Sender) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, rep.Session, cfg),
		Post:    NewPostService(rep.Post, rep.Comment, rep.User, store),
		Comment: NewCommentService(rep.Comment, rep.Post),
		Contact: NewContactService(sender),
		Stats:   NewStatsService(rep.Stats, db),
	}
}
