package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"personalblog/internal/config"
	"personalblog/internal/models"
	"personalblog/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, req models.LoginInput) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	SessionUser(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	now         func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user and logs them in.
func (s *authService) Register(ctx context.Context, req models.RegisterInput) (*models.User, string, error) {
	user := &models.User{
		Email:   normalizeEmail(req.Email),
		Surname: strings.TrimSpace(req.Surname),
	}

	err := s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("registration failed: %w", err)
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, req models.LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, normalizeEmail(req.Email), req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("authentication failed: %w", err)
	}

	if n, err := s.sessionRepo.DeleteExpired(ctx, s.now()); err != nil {
		log.Printf("Failed to purge expired sessions: %v", err)
	} else if n > 0 {
		log.Printf("Purged %d expired sessions", n)
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		// nothing to revoke
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	return nil
}

// SessionUser resolves a session token to its user. Any invalid, expired or
// revoked token yields ErrUnauthenticated.
func (s *authService) SessionUser(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnauthenticated, err)
	}

	session, err := s.sessionRepo.GetValid(ctx, claims.ID, s.now())
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("session revoked or expired: %w", models.ErrUnauthenticated)
		}
		return nil, err
	}

	if session.UserID != claims.Subject {
		return nil, fmt.Errorf("session does not match token: %w", models.ErrUnauthenticated)
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("session user gone: %w", models.ErrUnauthenticated)
		}
		return nil, err
	}

	return user, nil
}

func (s *authService) startSession(ctx context.Context, user *models.User) (string, error) {
	now := s.now().UTC()
	session := &models.Session{
		UserID:    user.UserID,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
		CreatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.signToken(session)
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *authService) signToken(session *models.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.SessionID,
		Subject:   session.UserID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) parseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	if !token.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, errors.New("invalid session token")
	}

	return claims, nil
}
