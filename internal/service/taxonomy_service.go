package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/model"
	"club-nexus/backend/internal/repository"
	"club-nexus/backend/pkg/apperrors"
)

// ── taxonomy business errors ──

var (
	ErrRoleNotFound     = apperrors.NotFound(errors.New("role not found"))
	ErrRoleNameExists   = apperrors.Conflict(errors.New("role name already exists"))
	ErrSigNotFound      = apperrors.NotFound(errors.New("sig not found"))
	ErrSigNameExists    = apperrors.Conflict(errors.New("sig name already exists"))
	ErrPositionNotFound = apperrors.NotFound(errors.New("team position not found"))
)

// TaxonomyService owns roles, sigs and team positions. Role and position
// administration requires security management since both can grant
// capabilities; sigs only require team management.
type TaxonomyService interface {
	CreateRole(ctx context.Context, actor *Actor, req *dto.CreateRoleRequest) (*model.Role, error)
	ListRoles(ctx context.Context, actor *Actor) ([]model.Role, error)
	UpdateRole(ctx context.Context, actor *Actor, id string, req *dto.UpdateRoleRequest) (*model.Role, error)
	DeleteRole(ctx context.Context, actor *Actor, id string) error

	CreateSig(ctx context.Context, actor *Actor, req *dto.CreateSigRequest) (*model.Sig, error)
	ListSigs(ctx context.Context) ([]model.Sig, error)
	UpdateSig(ctx context.Context, actor *Actor, id string, req *dto.UpdateSigRequest) (*model.Sig, error)
	DeleteSig(ctx context.Context, actor *Actor, id string) error

	CreatePosition(ctx context.Context, actor *Actor, req *dto.CreatePositionRequest) (*model.TeamPosition, error)
	ListPositions(ctx context.Context) ([]model.TeamPosition, error)
	UpdatePosition(ctx context.Context, actor *Actor, id string, req *dto.UpdatePositionRequest) (*model.TeamPosition, error)
	DeletePosition(ctx context.Context, actor *Actor, id string) error
}

type taxonomyService struct {
	repo   *repository.Repository
	audit  AuditService
	logger *zap.Logger
}

// NewTaxonomyService creates a TaxonomyService.
func NewTaxonomyService(repo *repository.Repository, audit AuditService, logger *zap.Logger) TaxonomyService {
	return &taxonomyService{repo: repo, audit: audit, logger: logger}
}

// ── roles ──

func (s *taxonomyService) CreateRole(ctx context.Context, actor *Actor, req *dto.CreateRoleRequest) (*model.Role, error) {
	if !actor.Can(CapManageSecurity) {
		return nil, ErrPermissionDenied
	}

	if _, err := s.repo.Role.GetByName(ctx, req.Name); err == nil {
		return nil, ErrRoleNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &model.Role{
		Name:                   req.Name,
		CanManageUsers:         req.CanManageUsers,
		CanManageProjects:      req.CanManageProjects,
		CanManageEvents:        req.CanManageEvents,
		CanManageTeam:          req.CanManageTeam,
		CanManageGallery:       req.CanManageGallery,
		CanManageAnnouncements: req.CanManageAnnouncements,
		CanManageSecurity:      req.CanManageSecurity,
		CanManageMessages:      req.CanManageMessages,
		CanManageSponsorship:   req.CanManageSponsorship,
		CanManageForms:         req.CanManageForms,
	}
	if err := s.repo.Role.Create(ctx, role); err != nil {
		s.logger.Error("creating role failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "role.create", role.RoleID, role.Name)
	return role, nil
}

func (s *taxonomyService) ListRoles(ctx context.Context, actor *Actor) ([]model.Role, error) {
	if !actor.Can(CapManageSecurity) && !actor.Can(CapManageUsers) {
		return nil, ErrPermissionDenied
	}
	return s.repo.Role.List(ctx)
}

func (s *taxonomyService) UpdateRole(ctx context.Context, actor *Actor, id string, req *dto.UpdateRoleRequest) (*model.Role, error) {
	if !actor.Can(CapManageSecurity) {
		return nil, ErrPermissionDenied
	}

	role, err := s.repo.Role.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != role.Name {
		if _, err := s.repo.Role.GetByName(ctx, *req.Name); err == nil {
			return nil, ErrRoleNameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		role.Name = *req.Name
	}
	setIf := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setIf(&role.CanManageUsers, req.CanManageUsers)
	setIf(&role.CanManageProjects, req.CanManageProjects)
	setIf(&role.CanManageEvents, req.CanManageEvents)
	setIf(&role.CanManageTeam, req.CanManageTeam)
	setIf(&role.CanManageGallery, req.CanManageGallery)
	setIf(&role.CanManageAnnouncements, req.CanManageAnnouncements)
	setIf(&role.CanManageSecurity, req.CanManageSecurity)
	setIf(&role.CanManageMessages, req.CanManageMessages)
	setIf(&role.CanManageSponsorship, req.CanManageSponsorship)
	setIf(&role.CanManageForms, req.CanManageForms)

	if err := s.repo.Role.Update(ctx, role); err != nil {
		s.logger.Error("updating role failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "role.update", role.RoleID, role.Name)
	return role, nil
}

func (s *taxonomyService) DeleteRole(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageSecurity) {
		return ErrPermissionDenied
	}

	role, err := s.repo.Role.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	if err := s.repo.Role.Delete(ctx, id); err != nil {
		s.logger.Error("deleting role failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, actor, "role.delete", id, role.Name)
	return nil
}

// ── sigs ──

func (s *taxonomyService) CreateSig(ctx context.Context, actor *Actor, req *dto.CreateSigRequest) (*model.Sig, error) {
	if !actor.Can(CapManageTeam) {
		return nil, ErrPermissionDenied
	}

	sig := &model.Sig{Name: req.Name, Description: req.Description}
	if err := s.repo.Sig.Create(ctx, sig); err != nil {
		s.logger.Error("creating sig failed", zap.Error(err))
		return nil, ErrSigNameExists
	}

	s.audit.Record(ctx, actor, "sig.create", sig.SigID, sig.Name)
	return sig, nil
}

func (s *taxonomyService) ListSigs(ctx context.Context) ([]model.Sig, error) {
	return s.repo.Sig.List(ctx)
}

func (s *taxonomyService) UpdateSig(ctx context.Context, actor *Actor, id string, req *dto.UpdateSigRequest) (*model.Sig, error) {
	if !actor.Can(CapManageTeam) {
		return nil, ErrPermissionDenied
	}

	sig, err := s.repo.Sig.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSigNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		sig.Name = *req.Name
	}
	if req.Description != nil {
		sig.Description = *req.Description
	}

	if err := s.repo.Sig.Update(ctx, sig); err != nil {
		s.logger.Error("updating sig failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return sig, nil
}

func (s *taxonomyService) DeleteSig(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageTeam) {
		return ErrPermissionDenied
	}

	if _, err := s.repo.Sig.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSigNotFound
		}
		return err
	}

	return s.repo.Sig.Delete(ctx, id)
}

// ── team positions ──

func (s *taxonomyService) CreatePosition(ctx context.Context, actor *Actor, req *dto.CreatePositionRequest) (*model.TeamPosition, error) {
	if !actor.Can(CapManageSecurity) {
		return nil, ErrPermissionDenied
	}

	if req.RoleID != nil {
		if _, err := s.repo.Role.GetByID(ctx, *req.RoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoleNotFound
			}
			return nil, err
		}
	}

	pos := &model.TeamPosition{
		Name:   req.Name,
		RoleID: req.RoleID,
		Order:  req.Order,
	}
	if err := s.repo.TeamPosition.Create(ctx, pos); err != nil {
		s.logger.Error("creating position failed", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "position.create", pos.PositionID, pos.Name)
	return pos, nil
}

func (s *taxonomyService) ListPositions(ctx context.Context) ([]model.TeamPosition, error) {
	return s.repo.TeamPosition.List(ctx)
}

func (s *taxonomyService) UpdatePosition(ctx context.Context, actor *Actor, id string, req *dto.UpdatePositionRequest) (*model.TeamPosition, error) {
	if !actor.Can(CapManageSecurity) {
		return nil, ErrPermissionDenied
	}

	pos, err := s.repo.TeamPosition.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		pos.Name = *req.Name
	}
	if req.RoleID != nil {
		if *req.RoleID == "" {
			pos.RoleID = nil
			pos.RoleLink = nil
		} else {
			if _, err := s.repo.Role.GetByID(ctx, *req.RoleID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrRoleNotFound
				}
				return nil, err
			}
			pos.RoleID = req.RoleID
		}
	}
	if req.Order != nil {
		pos.Order = *req.Order
	}

	if err := s.repo.TeamPosition.Update(ctx, pos); err != nil {
		s.logger.Error("updating position failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, actor, "position.update", pos.PositionID, pos.Name)
	return pos, nil
}

func (s *taxonomyService) DeletePosition(ctx context.Context, actor *Actor, id string) error {
	if !actor.Can(CapManageSecurity) {
		return ErrPermissionDenied
	}

	if _, err := s.repo.TeamPosition.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPositionNotFound
		}
		return err
	}

	return s.repo.TeamPosition.Delete(ctx, id)
}
