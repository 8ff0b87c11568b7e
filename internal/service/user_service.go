package service

import (
	"context"
	"errors"
	"time"

	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// maxFailedLogins is the attempt count at which an account locks
const maxFailedLogins = 5

// DTOs for request validation
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	IsLocked *bool  `json:"is_locked"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type LoginResponse struct {
	Token              string        `json:"token"`
	MustChangePassword bool          `json:"must_change_password"`
	User               *UserResponse `json:"user"`
}

// UserResponse returns a User without exposing sensitive data
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Username           string    `json:"username"`
	Role               string    `json:"role"`
	IsLocked           bool      `json:"is_locked"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          string    `json:"created_at"`
	UpdatedAt          string    `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	GetUserByID(ctx context.Context, id string) (*UserResponse, error)
	ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Helper: parse model to standard json API response
func mapToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:                 user.ID,
		Username:           user.Username,
		Role:               user.Role,
		IsLocked:           user.IsLocked,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          user.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if !model.ValidRole(req.Role) {
		return nil, apperror.Validation("invalid role: must be admin, verifier, or employee")
	}

	if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
		return nil, apperror.Conflict("username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Persistence(err, "failed to check username uniqueness")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Persistence(err, "failed to hash password")
	}

	user := &model.User{
		Username:           req.Username,
		Password:           string(hashedPassword),
		Role:               req.Role,
		MustChangePassword: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.Persistence(err, "failed to create user")
	}

	return mapToUserResponse(user), nil
}

// Login verifies credentials and issues a signed JWT. Five consecutive wrong
// passwords lock the account until an admin clears the flag.
func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.Validation("invalid username or password")
	}

	if user.IsLocked {
		return nil, apperror.Conflict("account is locked, contact an administrator")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		user.FailedAttempts++
		if user.FailedAttempts >= maxFailedLogins {
			user.IsLocked = true
		}
		if saveErr := s.repo.Update(ctx, user); saveErr != nil {
			return nil, apperror.Persistence(saveErr, "failed to record login attempt")
		}
		return nil, apperror.Validation("invalid username or password")
	}

	if user.FailedAttempts != 0 {
		user.FailedAttempts = 0
		if saveErr := s.repo.Update(ctx, user); saveErr != nil {
			return nil, apperror.Persistence(saveErr, "failed to reset login attempts")
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, apperror.Persistence(err, "failed to sign token")
	}

	return &LoginResponse{
		Token:              tokenString,
		MustChangePassword: user.MustChangePassword,
		User:               mapToUserResponse(user),
	}, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return apperror.NotFound("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return apperror.Validation("current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Persistence(err, "failed to hash password")
	}

	user.Password = string(hashed)
	user.MustChangePassword = false
	if err := s.repo.Update(ctx, user); err != nil {
		return apperror.Persistence(err, "failed to update password")
	}
	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("user not found")
	}
	return mapToUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]UserResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, apperror.Persistence(err, "failed to list users")
	}

	var responses []UserResponse
	for _, u := range users {
		responses = append(responses, *mapToUserResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("user not found")
	}

	if req.Role != "" {
		if !model.ValidRole(req.Role) {
			return nil, apperror.Validation("invalid role: must be admin, verifier, or employee")
		}
		user.Role = req.Role
	}

	if req.Username != "" && req.Username != user.Username {
		if _, err := s.repo.GetByUsername(ctx, req.Username); err == nil {
			return nil, apperror.Conflict("username already exists")
		}
		user.Username = req.Username
	}

	if req.IsLocked != nil {
		user.IsLocked = *req.IsLocked
		if !*req.IsLocked {
			user.FailedAttempts = 0
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperror.Persistence(err, "failed to update user")
	}

	return mapToUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return apperror.NotFound("user not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Persistence(err, "failed to delete user")
	}
	return nil
}
