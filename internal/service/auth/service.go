package auth

import (
	"context"

	"github.com/jwalitptl/medarchive-api/internal/email"
	"github.com/jwalitptl/medarchive-api/internal/model"
	"github.com/jwalitptl/medarchive-api/internal/repository"
	pkgauth "github.com/jwalitptl/medarchive-api/pkg/auth"
	apperrors "github.com/jwalitptl/medarchive-api/pkg/errors"
	"github.com/jwalitptl/medarchive-api/pkg/logger"
	"github.com/jwalitptl/medarchive-api/pkg/security"
)

type Service struct {
	userRepo repository.UserRepository
	hasher   security.Hasher
	jwtSvc   pkgauth.JWTService
	emailSvc email.Service
	logger   *logger.Logger
}

func NewService(userRepo repository.UserRepository, hasher security.Hasher,
	jwtSvc pkgauth.JWTService, emailSvc email.Service, logger *logger.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		jwtSvc:   jwtSvc,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid credentials", nil)
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	token, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		Email:       user.Email,
		Role:        user.Role,
		UserID:      user.ID,
	}, nil
}

// Register creates a new user. Duplicate email fails with Conflict; the
// unique constraint in the store backs the check against races.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("email already registered", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	user := &model.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		DateOfBirth:  req.DateOfBirth,
		Gender:       req.Gender,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendWelcome(user.Email, user.FirstName); err != nil {
		s.logger.Warn("failed to send welcome email", "email", user.Email, "error", err.Error())
	}

	return user, nil
}

// Logout denylists the presented token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.jwtSvc.RevokeToken(ctx, token); err != nil {
		return apperrors.Unauthorized("invalid token", err)
	}
	return nil
}
