package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"stayhub/internal/auth"
	"stayhub/internal/config"
	"stayhub/internal/mailer"
	"stayhub/internal/models"
	"stayhub/internal/repository"
)

type RegisterRequest struct {
	Email       string
	Username    string
	Name        string
	Description string
	Password    string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	UserByToken(ctx context.Context, token string) (*models.User, error)
	UpdatePassword(ctx context.Context, caller *models.User, previous, next string) (*models.User, error)
	RecoverPassword(ctx context.Context, email string) error
}

type authService struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, mail mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		mail:     mail,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}
	if err := s.checkUsernameFree(ctx, req.Username); err != nil {
		return nil, err
	}

	salt, err := auth.NewSalt()
	if err != nil {
		return nil, err
	}
	token, err := auth.NewToken(auth.SignUpTokenBytes)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email: req.Email,
		Token: token,
		Salt:  salt,
		Hash:  auth.HashPassword(req.Password, salt),
		Account: models.Account{
			Username:    strings.TrimSpace(req.Username),
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
		},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, NotFound("Email not found")
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, user.Salt, user.Hash) {
		return nil, BadRequest("Wrong password")
	}

	return user, nil
}

// UserByToken is the authorization gate: it resolves the presented token to
// the owning account or rejects the request.
func (s *authService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, Unauthorized("User unauthorized")
	}

	user, err := s.userRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return nil, Unauthorized("User unauthorized")
		}
		return nil, err
	}

	return user, nil
}

// UpdatePassword rotates the salt, the digest and the session token in one
// write. The old token stops working once the patch is applied.
func (s *authService) UpdatePassword(ctx context.Context, caller *models.User, previous, next string) (*models.User, error) {
	if !auth.VerifyPassword(previous, caller.Salt, caller.Hash) {
		return nil, Unauthorized("Wrong previous password")
	}
	if auth.HashPassword(next, caller.Salt) == caller.Hash {
		return nil, Unauthorized("Previous password and new password must be different")
	}

	salt, err := auth.NewToken(auth.ResetTokenBytes)
	if err != nil {
		return nil, err
	}
	token, err := auth.NewToken(auth.ResetTokenBytes)
	if err != nil {
		return nil, err
	}

	patch := map[string]interface{}{
		"salt":  salt,
		"hash":  auth.HashPassword(next, salt),
		"token": token,
	}
	if err := s.userRepo.Update(ctx, caller.ID, patch); err != nil {
		return nil, err
	}

	caller.Salt = salt
	caller.Hash = patch["hash"].(string)
	caller.Token = token
	return caller, nil
}

// RecoverPassword sends the reset link. Delivery failures are logged and
// swallowed: the caller always sees success once the account lookup passed.
func (s *authService) RecoverPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNoDocument) {
			return NotFound("User not found")
		}
		return err
	}

	resetLink := fmt.Sprintf("%s/change_password?token=%s", s.cfg.ResetLinkBase, user.Token)
	if err := s.mail.SendPasswordReset(ctx, user.Email, resetLink); err != nil {
		log.Printf("recovery email to %s failed: %v", user.Email, err)
	}

	return nil
}

func (s *authService) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return BadRequest("Email already used")
	}
	if !errors.Is(err, repository.ErrNoDocument) {
		return err
	}
	return nil
}

func (s *authService) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return BadRequest("Username already used")
	}
	if !errors.Is(err, repository.ErrNoDocument) {
		return err
	}
	return nil
}
