package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"club-nexus/backend/internal/model"
	"club-nexus/backend/internal/repository"
)

// newMockRepository builds a Repository backed entirely by in-memory mocks.
// The returned mocks struct exposes each typed mock for seeding.
func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		user:        newMockUserRepo(),
		role:        newMockRoleRepo(),
		sig:         newMockSigRepo(),
		position:    newMockTeamPositionRepo(),
		profile:     newMockMemberProfileRepo(),
		event:       newMockEventRepo(),
		drive:       newMockDriveRepo(),
		timeline:    newMockTimelineRepo(),
		assignment:  newMockAssignmentRepo(),
		application: newMockApplicationRepo(),
		panel:       newMockPanelRepo(),
		slot:        newMockSlotRepo(),
		audit:       newMockAuditRepo(),
	}
	repo := &repository.Repository{
		User:         m.user,
		Role:         m.role,
		Sig:          m.sig,
		TeamPosition: m.position,
		Profile:      m.profile,
		Event:        m.event,
		Drive:        m.drive,
		Timeline:     m.timeline,
		Assignment:   m.assignment,
		Application:  m.application,
		Panel:        m.panel,
		Slot:         m.slot,
		AuditLog:     m.audit,
	}
	return repo, m
}

type mocks struct {
	user        *mockUserRepo
	role        *mockRoleRepo
	sig         *mockSigRepo
	position    *mockTeamPositionRepo
	profile     *mockMemberProfileRepo
	event       *mockEventRepo
	drive       *mockDriveRepo
	timeline    *mockTimelineRepo
	assignment  *mockAssignmentRepo
	application *mockApplicationRepo
	panel       *mockPanelRepo
	slot        *mockSlotRepo
	audit       *mockAuditRepo
}

// ── mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockUserRepo) SetRoles(_ context.Context, user *model.User, roles []model.Role) error {
	user.Roles = roles
	m.users[user.UserID] = user
	return nil
}

// ── mock RoleRepository ──

type mockRoleRepo struct {
	roles map[string]*model.Role
	seq   int
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[string]*model.Role)}
}

func (m *mockRoleRepo) Create(_ context.Context, role *model.Role) error {
	if role.RoleID == "" {
		m.seq++
		role.RoleID = fmt.Sprintf("role-%03d", m.seq)
	}
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) GetByID(_ context.Context, id string) (*model.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) GetByIDs(_ context.Context, ids []string) ([]model.Role, error) {
	var result []model.Role
	for _, id := range ids {
		if r, ok := m.roles[id]; ok {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.roles {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoleRepo) Update(_ context.Context, role *model.Role) error {
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) Delete(_ context.Context, id string) error {
	delete(m.roles, id)
	return nil
}

// ── mock SigRepository ──

type mockSigRepo struct {
	sigs map[string]*model.Sig
	seq  int
}

func newMockSigRepo() *mockSigRepo {
	return &mockSigRepo{sigs: make(map[string]*model.Sig)}
}

func (m *mockSigRepo) Create(_ context.Context, sig *model.Sig) error {
	if sig.SigID == "" {
		m.seq++
		sig.SigID = fmt.Sprintf("sig-%03d", m.seq)
	}
	m.sigs[sig.SigID] = sig
	return nil
}

func (m *mockSigRepo) GetByID(_ context.Context, id string) (*model.Sig, error) {
	if s, ok := m.sigs[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSigRepo) List(_ context.Context) ([]model.Sig, error) {
	var result []model.Sig
	for _, s := range m.sigs {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSigRepo) Update(_ context.Context, sig *model.Sig) error {
	m.sigs[sig.SigID] = sig
	return nil
}

func (m *mockSigRepo) Delete(_ context.Context, id string) error {
	delete(m.sigs, id)
	return nil
}

// ── mock TeamPositionRepository ──

// mockTeamPositionRepo keeps insertion order so FindByNameFold resolves
// duplicated names to the oldest position, matching the SQL tie-break.
type mockTeamPositionRepo struct {
	positions []*model.TeamPosition
	seq       int
}

func newMockTeamPositionRepo() *mockTeamPositionRepo {
	return &mockTeamPositionRepo{}
}

func (m *mockTeamPositionRepo) Create(_ context.Context, pos *model.TeamPosition) error {
	if pos.PositionID == "" {
		m.seq++
		pos.PositionID = fmt.Sprintf("pos-%03d", m.seq)
	}
	m.positions = append(m.positions, pos)
	return nil
}

func (m *mockTeamPositionRepo) GetByID(_ context.Context, id string) (*model.TeamPosition, error) {
	for _, p := range m.positions {
		if p.PositionID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamPositionRepo) FindByNameFold(_ context.Context, name string) (*model.TeamPosition, error) {
	for _, p := range m.positions {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeamPositionRepo) List(_ context.Context) ([]model.TeamPosition, error) {
	var result []model.TeamPosition
	for _, p := range m.positions {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockTeamPositionRepo) Update(_ context.Context, pos *model.TeamPosition) error {
	for i, p := range m.positions {
		if p.PositionID == pos.PositionID {
			m.positions[i] = pos
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTeamPositionRepo) Delete(_ context.Context, id string) error {
	for i, p := range m.positions {
		if p.PositionID == id {
			m.positions = append(m.positions[:i], m.positions[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── mock MemberProfileRepository ──

type mockMemberProfileRepo struct {
	profiles map[string]*model.MemberProfile // keyed by user ID
	seq      int
}

func newMockMemberProfileRepo() *mockMemberProfileRepo {
	return &mockMemberProfileRepo{profiles: make(map[string]*model.MemberProfile)}
}

func (m *mockMemberProfileRepo) Create(_ context.Context, profile *model.MemberProfile) error {
	if profile.ProfileID == "" {
		m.seq++
		profile.ProfileID = fmt.Sprintf("prof-%03d", m.seq)
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockMemberProfileRepo) GetByUserID(_ context.Context, userID string) (*model.MemberProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberProfileRepo) Update(_ context.Context, profile *model.MemberProfile) error {
	m.profiles[profile.UserID] = profile
	return nil
}

// ── mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
	seq    int
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		m.seq++
		event.EventID = fmt.Sprintf("event-%03d", m.seq)
	}
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context, filter repository.EventFilter) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		if matchesEventFilter(e, filter) {
			result = append(result, *e)
		}
	}
	return result, nil
}

// matchesEventFilter mirrors the SQL the real repository builds.
func matchesEventFilter(e *model.Event, f repository.EventFilter) bool {
	base := true
	if f.PublishedOnly && e.Visibility != model.EventVisibilityPublished {
		base = false
	}
	if f.ExcludePersonal && e.Scope == model.EventScopePersonal {
		base = false
	}
	if f.ExcludePersonalNotLedBy != "" && e.Scope == model.EventScopePersonal {
		if e.LeadID == nil || *e.LeadID != f.ExcludePersonalNotLedBy {
			base = false
		}
	}
	if base {
		return true
	}
	return f.IncludeLedBy != "" && e.LeadID != nil && *e.LeadID == f.IncludeLedBy
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	m.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) SetVolunteers(_ context.Context, event *model.Event, volunteers []model.User) error {
	event.Volunteers = volunteers
	m.events[event.EventID] = event
	return nil
}

// ── mock RecruitmentDriveRepository ──

type mockDriveRepo struct {
	drives map[string]*model.RecruitmentDrive
	seq    int
}

func newMockDriveRepo() *mockDriveRepo {
	return &mockDriveRepo{drives: make(map[string]*model.RecruitmentDrive)}
}

func (m *mockDriveRepo) Create(_ context.Context, drive *model.RecruitmentDrive) error {
	if drive.DriveID == "" {
		m.seq++
		drive.DriveID = fmt.Sprintf("drive-%03d", m.seq)
	}
	m.drives[drive.DriveID] = drive
	return nil
}

func (m *mockDriveRepo) GetByID(_ context.Context, id string) (*model.RecruitmentDrive, error) {
	if d, ok := m.drives[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriveRepo) GetActivePublic(_ context.Context) (*model.RecruitmentDrive, error) {
	for _, d := range m.drives {
		if d.IsActive && d.IsPublic {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriveRepo) List(_ context.Context) ([]model.RecruitmentDrive, error) {
	var result []model.RecruitmentDrive
	for _, d := range m.drives {
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDriveRepo) Update(_ context.Context, drive *model.RecruitmentDrive) error {
	m.drives[drive.DriveID] = drive
	return nil
}

func (m *mockDriveRepo) Delete(_ context.Context, id string) error {
	delete(m.drives, id)
	return nil
}

func (m *mockDriveRepo) ClearActiveExcept(_ context.Context, id string) error {
	for _, d := range m.drives {
		if d.DriveID != id {
			d.IsActive = false
		}
	}
	return nil
}

// ── mock TimelineEventRepository ──

type mockTimelineRepo struct {
	events map[string]*model.TimelineEvent
	seq    int
}

func newMockTimelineRepo() *mockTimelineRepo {
	return &mockTimelineRepo{events: make(map[string]*model.TimelineEvent)}
}

func (m *mockTimelineRepo) Create(_ context.Context, te *model.TimelineEvent) error {
	if te.TimelineEventID == "" {
		m.seq++
		te.TimelineEventID = fmt.Sprintf("tl-%03d", m.seq)
	}
	m.events[te.TimelineEventID] = te
	return nil
}

func (m *mockTimelineRepo) GetByID(_ context.Context, id string) (*model.TimelineEvent, error) {
	if te, ok := m.events[id]; ok {
		return te, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimelineRepo) ListByDrive(_ context.Context, driveID string) ([]model.TimelineEvent, error) {
	var result []model.TimelineEvent
	for _, te := range m.events {
		if te.DriveID == driveID {
			result = append(result, *te)
		}
	}
	return result, nil
}

func (m *mockTimelineRepo) Update(_ context.Context, te *model.TimelineEvent) error {
	m.events[te.TimelineEventID] = te
	return nil
}

func (m *mockTimelineRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

// ── mock RecruitmentAssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.RecruitmentAssignment
	seq         int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.RecruitmentAssignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.RecruitmentAssignment) error {
	if a.AssignmentID == "" {
		m.seq++
		a.AssignmentID = fmt.Sprintf("asg-%03d", m.seq)
	}
	m.assignments[a.AssignmentID] = a
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.RecruitmentAssignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByDrive(_ context.Context, driveID string) ([]model.RecruitmentAssignment, error) {
	var result []model.RecruitmentAssignment
	for _, a := range m.assignments {
		if a.DriveID == driveID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.RecruitmentAssignment) error {
	m.assignments[a.AssignmentID] = a
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

// ── mock RecruitmentApplicationRepository ──

type mockApplicationRepo struct {
	apps map[string]*model.RecruitmentApplication
	seq  int
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[string]*model.RecruitmentApplication)}
}

func (m *mockApplicationRepo) GetByID(_ context.Context, id string) (*model.RecruitmentApplication, error) {
	if a, ok := m.apps[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) GetByDriveAndIdentifier(_ context.Context, driveID, identifier string) (*model.RecruitmentApplication, error) {
	for _, a := range m.apps {
		if a.DriveID == driveID && a.Identifier == identifier {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockApplicationRepo) GetOrCreate(ctx context.Context, driveID, identifier string) (*model.RecruitmentApplication, error) {
	if a, err := m.GetByDriveAndIdentifier(ctx, driveID, identifier); err == nil {
		return a, nil
	}
	m.seq++
	a := &model.RecruitmentApplication{
		ApplicationID: fmt.Sprintf("app-%03d", m.seq),
		DriveID:       driveID,
		Identifier:    identifier,
		Status:        model.StatusApplied,
	}
	m.apps[a.ApplicationID] = a
	return a, nil
}

func (m *mockApplicationRepo) ListByDrive(_ context.Context, driveID string) ([]model.RecruitmentApplication, error) {
	var result []model.RecruitmentApplication
	for _, a := range m.apps {
		if a.DriveID == driveID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) Update(_ context.Context, app *model.RecruitmentApplication) error {
	m.apps[app.ApplicationID] = app
	return nil
}

func (m *mockApplicationRepo) Delete(_ context.Context, id string) error {
	delete(m.apps, id)
	return nil
}

// ── mock InterviewPanelRepository ──

type mockPanelRepo struct {
	panels map[string]*model.InterviewPanel
	seq    int
}

func newMockPanelRepo() *mockPanelRepo {
	return &mockPanelRepo{panels: make(map[string]*model.InterviewPanel)}
}

func (m *mockPanelRepo) Create(_ context.Context, panel *model.InterviewPanel) error {
	if panel.PanelID == "" {
		m.seq++
		panel.PanelID = fmt.Sprintf("panel-%03d", m.seq)
	}
	m.panels[panel.PanelID] = panel
	return nil
}

func (m *mockPanelRepo) GetByID(_ context.Context, id string) (*model.InterviewPanel, error) {
	if p, ok := m.panels[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPanelRepo) ListByDrive(_ context.Context, driveID string) ([]model.InterviewPanel, error) {
	var result []model.InterviewPanel
	for _, p := range m.panels {
		if p.DriveID == driveID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPanelRepo) Update(_ context.Context, panel *model.InterviewPanel) error {
	m.panels[panel.PanelID] = panel
	return nil
}

func (m *mockPanelRepo) Delete(_ context.Context, id string) error {
	delete(m.panels, id)
	return nil
}

func (m *mockPanelRepo) SetMembers(_ context.Context, panel *model.InterviewPanel, members []model.User) error {
	panel.Members = members
	m.panels[panel.PanelID] = panel
	return nil
}

// ── mock InterviewSlotRepository ──

type mockSlotRepo struct {
	slots map[string]*model.InterviewSlot
	seq   int
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[string]*model.InterviewSlot)}
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.InterviewSlot) error {
	if slot.SlotID == "" {
		m.seq++
		slot.SlotID = fmt.Sprintf("slot-%03d", m.seq)
	}
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) GetByID(_ context.Context, id string) (*model.InterviewSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) ListByPanel(_ context.Context, panelID string) ([]model.InterviewSlot, error) {
	var result []model.InterviewSlot
	for _, s := range m.slots {
		if s.PanelID == panelID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) HasOverlap(_ context.Context, panelID string, start, end time.Time) (bool, error) {
	for _, s := range m.slots {
		if s.PanelID == panelID && s.StartTime.Before(end) && s.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSlotRepo) ExistsForApplication(_ context.Context, applicationID string) (bool, error) {
	for _, s := range m.slots {
		if s.ApplicationID == applicationID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSlotRepo) Update(_ context.Context, slot *model.InterviewSlot) error {
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

// ── mock AuditLogRepository ──

type mockAuditRepo struct {
	entries []model.AuditLog
	seq     int
}

func newMockAuditRepo() *mockAuditRepo {
	return &mockAuditRepo{}
}

func (m *mockAuditRepo) Create(_ context.Context, entry *model.AuditLog) error {
	if entry.LogID == "" {
		m.seq++
		entry.LogID = fmt.Sprintf("log-%03d", m.seq)
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, offset, limit int) ([]model.AuditLog, int64, error) {
	total := int64(len(m.entries))
	if offset >= len(m.entries) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(m.entries) {
		end = len(m.entries)
	}
	return m.entries[offset:end], total, nil
}
