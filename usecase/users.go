package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService struct {
	UsersRepo *repository.UsersRepo
}

// CreateUser registers a new account. Emails are lower-cased here so JWT
// email claims and collaborator entries line up exactly.
func (svc *UserService) CreateUser(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)

	if existing, err := svc.UsersRepo.FindUserByUsername(ctx, user.Username); err != nil {
		return err
	} else if existing != nil {
		return ErrUsernameTaken
	}

	if existing, err := svc.UsersRepo.FindUserByEmail(ctx, user.Email); err != nil {
		return err
	} else if existing != nil {
		return ErrEmailTaken
	}

	hashed, err := services.HashPassword(user.Password)
	if err != nil {
		return err
	}

	user.UserID = utils.GenerateID()
	user.Password = hashed
	user.CreatedAt = time.Now()

	return svc.UsersRepo.AddUser(ctx, user)
}

// Authenticate verifies username/password and returns the stored user.
func (svc *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := svc.UsersRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	match, err := services.VerifyPassword(user.Password, password)
	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
