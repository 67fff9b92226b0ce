package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/jasperjas06/live-sub000/internal/models"
	"github.com/jasperjas06/live-sub000/internal/repository"
)

// UserService handles back-office account management
type UserService struct {
	repo     repository.UserRepository
	auditSvc *AuditService
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepository, auditSvc *AuditService) *UserService {
	return &UserService{repo: repo, auditSvc: auditSvc}
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// Create registers a new account with a hashed password
func (s *UserService) Create(ctx context.Context, user *models.User, password string) error {
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if user.Role == "" {
		user.Role = models.RoleStaff
	}
	return s.repo.Create(ctx, user)
}

func (s *UserService) Update(ctx context.Context, user *models.User) error {
	return s.repo.Update(ctx, user)
}

// ChangePassword verifies the current password before setting a new one
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ErrNotFound
	}
	if !user.CheckPassword(current) {
		return ErrInvalidPassword
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.repo.Update(ctx, user)
}

func (s *UserService) SoftDelete(ctx context.Context, id uint) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *UserService) Restore(ctx context.Context, id uint) error {
	return s.repo.Restore(ctx, id)
}

// GenerateRecoveryCode creates a 6-digit recovery code valid for 15 minutes
func (s *UserService) GenerateRecoveryCode(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrNotFound
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	if err := s.repo.SetRecoveryCode(ctx, user.ID, code, time.Now()); err != nil {
		return "", err
	}
	return code, nil
}

// ResetPassword consumes a recovery code and sets a new password
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return ErrNotFound
	}

	if user.RecoveryCode == nil || *user.RecoveryCode != code {
		return ErrUnauthorized
	}
	if user.RecoveryCodeSentAt == nil || time.Since(*user.RecoveryCodeSentAt) > 15*time.Minute {
		return ErrTokenExpired
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.RecoveryCode = nil
	user.RecoveryCodeSentAt = nil
	return s.repo.Update(ctx, user)
}
