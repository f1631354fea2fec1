package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
	"club-nexus/backend/internal/repository"
)

// Capability tokens. Roles grant them directly; can_manage_everything is
// also granted virtually, by the WEB_LEAD role name and by
// can_manage_security.
const (
	CapManageUsers         = "can_manage_users"
	CapManageProjects      = "can_manage_projects"
	CapManageEvents        = "can_manage_events"
	CapManageTeam          = "can_manage_team"
	CapManageGallery       = "can_manage_gallery"
	CapManageAnnouncements = "can_manage_announcements"
	CapManageSecurity      = "can_manage_security"
	CapManageMessages      = "can_manage_messages"
	CapManageSponsorship   = "can_manage_sponsorship"
	CapManageForms         = "can_manage_forms"
	CapManageEverything    = "can_manage_everything"
)

// CapabilitySet is a resolved set of capability tokens.
type CapabilitySet map[string]struct{}

// Has reports whether the exact token is present.
func (s CapabilitySet) Has(cap string) bool {
	_, ok := s[cap]
	return ok
}

// Allows reports whether the token or the blanket can_manage_everything is
// present. Permission checks fail closed: an empty set allows nothing.
func (s CapabilitySet) Allows(cap string) bool {
	return s.Has(cap) || s.Has(CapManageEverything)
}

// List returns the tokens in sorted order, for API responses.
func (s CapabilitySet) List() []string {
	out := make([]string, 0, len(s))
	for cap := range s {
		out = append(out, cap)
	}
	sort.Strings(out)
	return out
}

// PermissionService aggregates a user's effective capabilities from direct
// role assignments, the role linked to the profile position, and the
// virtual escalation rules.
type PermissionService interface {
	// Resolve computes the capability set for a user. The user's Roles and
	// Profile associations must be loaded. Resolution never fails: lookup
	// errors during position matching are logged and contribute nothing.
	Resolve(ctx context.Context, user *model.User) CapabilitySet
	// ResolveByID loads the user and resolves their capabilities.
	ResolveByID(ctx context.Context, userID string) (CapabilitySet, error)
}

type permissionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPermissionService creates a PermissionService.
func NewPermissionService(repo *repository.Repository, logger *zap.Logger) PermissionService {
	return &permissionService{repo: repo, logger: logger}
}

func (s *permissionService) Resolve(ctx context.Context, user *model.User) CapabilitySet {
	caps := make(CapabilitySet)

	// 1. Directly-assigned roles.
	for i := range user.Roles {
		addRoleCaps(&user.Roles[i], caps)
	}

	// 2. Role linked to the profile's position label.
	s.addPositionCaps(ctx, user, caps)

	// 3. Virtual escalation: security management implies everything.
	if caps.Has(CapManageSecurity) {
		caps[CapManageEverything] = struct{}{}
	}

	return caps
}

func (s *permissionService) ResolveByID(ctx context.Context, userID string) (CapabilitySet, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("loading user for permission resolution failed",
			zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.Resolve(ctx, user), nil
}

// addPositionCaps resolves the profile's free-text position label against
// team positions by case-insensitive name match (oldest position wins on
// duplicate names) and merges the linked role's capabilities. "No profile",
// "no match" and "lookup failed" all contribute nothing, but are logged as
// distinct outcomes.
func (s *permissionService) addPositionCaps(ctx context.Context, user *model.User, caps CapabilitySet) {
	if user.Profile == nil || user.Profile.Position == "" {
		return
	}

	pos, err := s.repo.TeamPosition.FindByNameFold(ctx, user.Profile.Position)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("profile position has no matching team position",
				zap.String("user_id", user.UserID),
				zap.String("position", user.Profile.Position))
		} else {
			s.logger.Warn("position lookup failed, resolving without it",
				zap.String("user_id", user.UserID), zap.Error(err))
		}
		return
	}

	if pos.RoleLink == nil {
		return
	}
	addRoleCaps(pos.RoleLink, caps)
}

func addRoleCaps(role *model.Role, caps CapabilitySet) {
	grants := []struct {
		enabled bool
		token   string
	}{
		{role.CanManageUsers, CapManageUsers},
		{role.CanManageProjects, CapManageProjects},
		{role.CanManageEvents, CapManageEvents},
		{role.CanManageTeam, CapManageTeam},
		{role.CanManageGallery, CapManageGallery},
		{role.CanManageAnnouncements, CapManageAnnouncements},
		{role.CanManageSecurity, CapManageSecurity},
		{role.CanManageMessages, CapManageMessages},
		{role.CanManageSponsorship, CapManageSponsorship},
		{role.CanManageForms, CapManageForms},
	}
	for _, g := range grants {
		if g.enabled {
			caps[g.token] = struct{}{}
		}
	}

	if role.Name == model.RoleWebLead {
		caps[CapManageEverything] = struct{}{}
	}
}
