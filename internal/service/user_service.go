package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"canteen-service/internal/entity"
	"canteen-service/internal/repository"
)

// UserService handles accounts and login for students and owners.
type UserService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
}

func NewUserService(userRepo repository.UserRepository, jwtSecret []byte) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// JwtCustomClaims are the token claims issued at login. Owners carry
// their shop id.
type JwtCustomClaims struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	ShopID *int   `json:"shop_id,omitempty"`
	jwt.RegisteredClaims
}

// Login authenticates by email and password and issues a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetUserByCredentials(ctx, email, hashPassword(password))
	if err != nil {
		return nil, "", err
	}

	claims := &JwtCustomClaims{
		Name:   user.FirstName,
		Email:  user.Email,
		Role:   user.Role,
		ShopID: user.ShopID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tkn.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Signup registers a student account.
func (s *UserService) Signup(ctx context.Context, signup *entity.UserSignup) (*entity.User, error) {
	if signup.Email == "" || signup.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user := &entity.User{
		Email:     signup.Email,
		Password:  hashPassword(signup.Password),
		Role:      "student",
		FirstName: signup.FirstName,
		LastName:  signup.LastName,
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	return created, nil
}

// UpdateUser applies a partial profile update.
func (s *UserService) UpdateUser(ctx context.Context, id int, update *entity.UserUpdate) (*entity.User, error) {
	return s.userRepo.UpdateUser(ctx, id, update)
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
