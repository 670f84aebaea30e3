package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/Axolotls/config"
	"github.com/lshigami/Axolotls/internal/apperr"
	"github.com/lshigami/Axolotls/internal/dto"
	"github.com/lshigami/Axolotls/internal/model"
	"github.com/lshigami/Axolotls/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	log.Info().Str("username", req.Username).Str("email", req.Email).Msg("Registering new user")

	existing, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, apperr.Internal(err, "failed to look up username")
	}
	if existing != nil {
		log.Warn().Str("username", req.Username).Msg("Registration failed: username already exists")
		return nil, apperr.Conflict("username already exists")
	}

	existing, err = s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperr.Internal(err, "failed to look up email")
	}
	if existing != nil {
		log.Warn().Str("email", req.Email).Msg("Registration failed: email already exists")
		return nil, apperr.Conflict("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err, "failed to hash password")
	}

	user := model.User{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, apperr.Internal(err, "failed to create user")
	}

	log.Info().Str("userID", user.ID).Str("username", user.Username).Msg("User registered successfully")
	return s.buildAuthResponse(&user)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	log.Info().Str("usernameOrEmail", req.UsernameOrEmail).Msg("Login attempt")

	user, err := s.userRepo.FindByUsername(req.UsernameOrEmail)
	if err != nil {
		return nil, apperr.Internal(err, "failed to look up user")
	}
	if user == nil {
		user, err = s.userRepo.FindByEmail(req.UsernameOrEmail)
		if err != nil {
			return nil, apperr.Internal(err, "failed to look up user")
		}
	}
	if user == nil {
		log.Warn().Str("usernameOrEmail", req.UsernameOrEmail).Msg("Login failed: user not found")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("userID", user.ID).Msg("Login failed: invalid password")
		return nil, apperr.Unauthorized("invalid credentials")
	}

	log.Info().Str("userID", user.ID).Str("username", user.Username).Msg("User logged in successfully")
	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	accessToken, err := s.signToken(user, time.Duration(s.cfg.JWT.AccessTTLMinutes)*time.Minute)
	if err != nil {
		return nil, apperr.Internal(err, "failed to sign access token")
	}
	refreshToken, err := s.signToken(user, time.Duration(s.cfg.JWT.RefreshTTLHours)*time.Hour)
	if err != nil {
		return nil, apperr.Internal(err, "failed to sign refresh token")
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Email:    user.Email,
		},
	}, nil
}

func (s *authService) signToken(user *model.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}
