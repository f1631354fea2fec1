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
)

// ── user business errors ──

var (
	ErrUserNotFound   = apperrors.NotFound(errors.New("user not found"))
	ErrUsernameExists = apperrors.Conflict(errors.New("username already taken"))
	ErrEmailExists    = apperrors.Conflict(errors.New("email already registered"))
)

// UserService owns user administration and member profiles.
type UserService interface {
	Create(ctx context.Context, actor *Actor, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByID(ctx context.Context, actor *Actor, id string) (*dto.UserResponse, error)
	List(ctx context.Context, actor *Actor, offset, limit int) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, actor *Actor, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actor *Actor, id string) error
	AssignRoles(ctx context.Context, actor *Actor, id string, req *dto.AssignRolesRequest) (*dto.UserResponse, error)
	// UpdateProfile edits a member profile. Users may edit their own;
	// team managers may edit anyone's.
	UpdateProfile(ctx context.Context, actor *Actor, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	perm   PermissionService
	audit  AuditService
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, perm PermissionService, audit AuditService, logger *zap.Logger) UserService {
	return &userService{repo: repo, perm: perm, audit: audit, logger: logger}
}

func (s *userService) Create(ctx context.Context, actor *Actor, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !actor.Can(CapManageUsers) {
		return nil, ErrPermissionDenied
	}

	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hashing password failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("creating user failed", zap.Error(err))
		return nil, err
	}

	if len(req.RoleIDs) > 0 {
		roles, err := s.repo.Role.GetByIDs(ctx, req.RoleIDs)
		if err != nil {
			return nil, err
		}
		if err := s.repo.User.SetRoles(ctx, user, roles); err != nil {
			s.logger.Error("assigning roles failed", zap.Error(err))
			return nil, err
		}
		user.Roles = roles
	}

	s.audit.Record(ctx, actor, "user.create", user.UserID, user.Username)
	return s.toUserResponse(ctx, user), nil
}

func (s *userService) GetByID(ctx context.Context, actor *Actor, id string) (*dto.UserResponse, error) {
	if !actor.Can(CapManageUsers) && (actor == nil || actor.UserID != id) {
		return nil, ErrPermissionDenied
	}
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toUserResponse(ctx, user), nil
}

func (s *userService) List(ctx context.Context, actor *Actor, offset, limit int) ([]dto.UserResponse, int64, error) {
	if !actor.Can(CapManageUsers) {
		return nil, 0, ErrPermissionDenied
	}

	users, total, err := s.repo.User.List(ctx, offset, limit)
	if err != nil {
		s.logger.Error("listing users failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *s.toUserResponse(ctx, &users[i]))
	}
	return result, total, nil
}

func (s *userService) Update(ctx context.Context, actor *Actor, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !actor.Can(CapManageUsers) {
		return nil, ErrPermissionDenied
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.repo.User.GetByEmail(ctx, *req.Email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("updating user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "user.update", user.UserID, user.Username)
	return s.toUserResponse(ctx, user), nil
}

func (s *userService) Delete(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageUsers) {
		return ErrPermissionDenied
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("deleting user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, actor, "user.delete", id, user.Username)
	return nil
}

func (s *userService) AssignRoles(ctx context.Context, actor *Actor, id string, req *dto.AssignRolesRequest) (*dto.UserResponse, error) {
	if !actor.Can(CapManageUsers) {
		return nil, ErrPermissionDenied
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := s.repo.Role.GetByIDs(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(req.RoleIDs) {
		return nil, ErrRoleNotFound
	}

	if err := s.repo.User.SetRoles(ctx, user, roles); err != nil {
		s.logger.Error("replacing roles failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	user.Roles = roles

	s.audit.Record(ctx, actor, "user.assign_roles", user.UserID, user.Username)
	return s.toUserResponse(ctx, user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, actor *Actor, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	self := actor != nil && actor.UserID == userID
	if !self && !actor.Can(CapManageTeam) {
		return nil, ErrPermissionDenied
	}

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = &model.MemberProfile{UserID: userID}
		if err := s.repo.Profile.Create(ctx, profile); err != nil {
			s.logger.Error("creating profile failed", zap.Error(err))
			return nil, err
		}
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Position != nil {
		// Only team managers may change the position label: it can grant
		// capabilities through a linked role.
		if !actor.Can(CapManageTeam) {
			return nil, ErrPermissionDenied
		}
		profile.Position = *req.Position
	}

	if err := s.repo.Profile.Update(ctx, profile); err != nil {
		s.logger.Error("updating profile failed", zap.Error(err))
		return nil, err
	}

	user.Profile = profile
	return s.toUserResponse(ctx, user), nil
}

// ── helpers ──

func (s *userService) getUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("loading user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *userService) toUserResponse(ctx context.Context, user *model.User) *dto.UserResponse {
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
