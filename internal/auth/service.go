package auth

import (
	"context"
	"errors"
	"time"

	"taskboard/db"
	"taskboard/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials = errors.New("username and password required")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service implements registration, login and token verification
type Service struct {
	users     db.UserRepository
	tokens    *TokenService
	dbManager *db.DBManager
}

// NewService creates a new auth service
func NewService(users db.UserRepository, tokens *TokenService, dbManager *db.DBManager) *Service {
	return &Service{users: users, tokens: tokens, dbManager: dbManager}
}

// Register creates a new user with a bcrypt-hashed password and returns its id
func (s *Service) Register(ctx context.Context, username, password string) (int, error) {
	if username == "" || password == "" {
		return 0, ErrMissingCredentials
	}

	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return 0, ErrUserExists
	}
	if !errors.Is(err, db.ErrNotFound) {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := &models.User{
		Username:  username,
		Password:  string(hash),
		CreatedAt: time.Now(),
	}

	created, err := s.dbManager.CreateUser(s.users, ctx, user)
	if err != nil {
		// The unique constraint closes the race between the existence
		// check above and the insert.
		if errors.Is(err, db.ErrDuplicate) {
			return 0, ErrUserExists
		}
		return 0, err
	}

	return created.ID, nil
}

// Login checks credentials and issues a signed token. Unknown usernames and
// wrong passwords produce the same error so usernames cannot be enumerated.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(user)
}

// Verify validates a token and returns its claims
func (s *Service) Verify(tokenString string) (*Claims, error) {
	return s.tokens.Verify(tokenString)
}
