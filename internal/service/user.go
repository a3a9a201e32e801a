package service

import (
	"context"
	"fmt"

	"github.com/moverq1337/hr-core/internal/auth"
	"github.com/moverq1337/hr-core/internal/models"
	"github.com/moverq1337/hr-core/internal/storage"
)

// UserService — регистрация и вход.
type UserService struct {
	store *storage.Store
	auth  *auth.Manager
}

func NewUserService(store *storage.Store, authManager *auth.Manager) *UserService {
	return &UserService{store: store, auth: authManager}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         "USER",
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	log.WithField("username", username).Info("Пользователь зарегистрирован")
	return user, nil
}

// Login проверяет пароль и выпускает токен.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return "", nil, fmt.Errorf("неверные учетные данные")
	}
	if !s.auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, fmt.Errorf("неверные учетные данные")
	}
	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}
