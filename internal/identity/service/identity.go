package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	identityerrors "fleetrent/internal/identity/errors"
	"fleetrent/internal/identity/repository"
	"fleetrent/pkg/config"
	apperrors "fleetrent/pkg/errors"
	"fleetrent/pkg/model"
	"fleetrent/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type IdentityService interface {
	Register(ctx context.Context, registration *model.Registration) (*model.User, error)
	Login(ctx context.Context, credentials *model.Credentials) (string, error)
	VerifyToken(token string) (*model.Claims, error)
}

type identityService struct {
	repo     repository.UserRepository
	validate *validator.Validate
	cfg      *config.Config
}

func NewIdentityService(repo repository.UserRepository, cfg *config.Config) IdentityService {
	return &identityService{
		repo:     repo,
		validate: validator.New(),
		cfg:      cfg,
	}
}

func (s *identityService) Register(ctx context.Context, registration *model.Registration) (*model.User, error) {
	registration.Email = sanitizer.NormalizeEmail(registration.Email)
	registration.FullName = sanitizer.Normalize(registration.FullName)

	if err := s.validate.Struct(registration); err != nil {
		s.cfg.Log.Warn("Registration validation failed", "error", err)
		return nil, apperrors.Validation("Registration validation failed", translate(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Email:        registration.Email,
		FullName:     registration.FullName,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, identityerrors.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("A user with this email already exists")
		}
		s.cfg.Log.Error("Failed to create user", "email", user.Email, "error", err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.cfg.Log.Info("User registered successfully", "id", user.ID, "email", user.Email)
	return user, nil
}

func (s *identityService) Login(ctx context.Context, credentials *model.Credentials) (string, error) {
	credentials.Email = sanitizer.NormalizeEmail(credentials.Email)

	if err := s.validate.Struct(credentials); err != nil {
		return "", apperrors.Validation("Login validation failed", translate(err))
	}

	user, err := s.repo.FindByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, identityerrors.ErrNotFound) {
			// Same error as a wrong password so the response does not leak
			// which emails are registered.
			return "", apperrors.Unauthorized("Invalid email or password")
		}
		return "", apperrors.Internal("Failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		return "", apperrors.Unauthorized("Invalid email or password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.cfg.Log.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", apperrors.Internal("Failed to generate token", err)
	}

	s.cfg.Log.Info("User logged in", "user_id", user.ID)
	return token, nil
}

func (s *identityService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     now.Add(s.cfg.JWTExpiry).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyToken validates an HS256 token and returns its claims.
func (s *identityService) VerifyToken(tokenString string) (*model.Claims, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, identityerrors.ErrExpiredToken
		}
		return nil, identityerrors.ErrInvalidToken
	}

	if !token.Valid {
		return nil, identityerrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, identityerrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, identityerrors.ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, identityerrors.ErrInvalidToken
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, identityerrors.ErrInvalidToken
	}

	return &model.Claims{
		UserID: userID,
		Email:  email,
		Exp:    int64(exp),
	}, nil
}

func translate(err error) map[string]any {
	details := make(map[string]any)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fieldErr := range validationErrs {
			switch fieldErr.Tag() {
			case "required":
				details[fieldErr.Field()] = fmt.Sprintf("%s is required", fieldErr.Field())
			case "email":
				details[fieldErr.Field()] = fmt.Sprintf("%s must be a valid email address", fieldErr.Field())
			case "min":
				details[fieldErr.Field()] = fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
			case "max":
				details[fieldErr.Field()] = fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
			default:
				details[fieldErr.Field()] = fieldErr.Error()
			}
		}
		return details
	}

	details["error"] = err.Error()
	return details
}
