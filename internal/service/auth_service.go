package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/model"
	"club-nexus/backend/internal/repository"
	"club-nexus/backend/pkg/apperrors"
	"club-nexus/backend/pkg/jwt"
)

// ── auth business errors ──

var (
	ErrInvalidCredentials = apperrors.Validation(errors.New("invalid username or password"))
	ErrAccountDisabled    = apperrors.Permission(errors.New("account disabled"))
	ErrWrongPassword      = apperrors.Validation(errors.New("old password does not match"))
)

// AuthService owns login, token refresh and password changes.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	perm   PermissionService
	logger *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, perm PermissionService, logger *zap.Logger) AuthService {
	return &authService{repo: repo, jwtMgr: jwtMgr, perm: perm, logger: logger}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("loading user for login failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	access, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Username, user.IsSuperuser)
	if err != nil {
		s.logger.Error("issuing access token failed", zap.Error(err))
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Username, user.IsSuperuser)
	if err != nil {
		s.logger.Error("issuing refresh token failed", zap.Error(err))
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         s.toUserResponse(ctx, user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, apperrors.Validation(err)
	}
	if claims.TokenType != "refresh" {
		return nil, apperrors.Validation(jwt.ErrTokenInvalid)
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	access, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Username, user.IsSuperuser)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Username, user.IsSuperuser)
	if err != nil {
		return nil, err
	}

	return &dto.RefreshResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.toUserResponse(ctx, user), nil
}

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hashing password failed", zap.Error(err))
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("updating password failed", zap.Error(err))
		return err
	}

	return nil
}

func (s *authService) toUserResponse(ctx context.Context, user *model.User) *dto.UserResponse {
	caps := s.perm.Resolve(ctx, user)

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Name)
	}

	resp := &dto.UserResponse{
		ID:          user.UserID,
		Username:    user.Username,
		Email:       user.Email,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		Roles:       roles,
		Permissions: caps.List(),
	}
	if user.Profile != nil {
		resp.Profile = &dto.ProfileResponse{
			FullName: user.Profile.FullName,
			Position: user.Profile.Position,
		}
	}
	return resp
}
