package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"club-nexus/backend/internal/dto"
	"club-nexus/backend/internal/model"
)

// ── test helpers ──

func setupTestRecruitmentService() (RecruitmentService, *mocks) {
	repo, m := newMockRepository()
	logger := zap.NewNop()
	audit := NewAuditService(repo, logger)
	svc := NewRecruitmentService(repo, audit, logger)
	return svc, m
}

func formsAdmin() *Actor {
	return &Actor{UserID: "admin-001", Caps: CapabilitySet{CapManageForms: {}}}
}

func seedApplication(m *mocks, app *model.RecruitmentApplication) {
	m.application.apps[app.ApplicationID] = app
}

func seedDrive(m *mocks, id string, active, public bool) {
	m.drive.drives[id] = &model.RecruitmentDrive{
		DriveID:  id,
		Title:    "drive " + id,
		IsActive: active,
		IsPublic: public,
	}
}

// ── drive tests ──

func TestRecruitmentService_CreateDrive_DefaultsPublic(t *testing.T) {
	svc, m := setupTestRecruitmentService()

	drive, err := svc.CreateDrive(context.Background(), formsAdmin(), &dto.CreateDriveRequest{Title: "Winter 2026"})
	if err != nil {
		t.Fatalf("CreateDrive should succeed: %v", err)
	}
	if !drive.IsPublic {
		t.Error("new drives should default to public")
	}
	if drive.IsActive {
		t.Error("new drives should not be active")
	}
	if _, ok := m.drive.drives[drive.DriveID]; !ok {
		t.Error("drive should be persisted")
	}
}

func TestRecruitmentService_CreateDrive_PermissionDenied(t *testing.T) {
	svc, _ := setupTestRecruitmentService()

	actor := &Actor{UserID: "user-001", Caps: CapabilitySet{}}
	_, err := svc.CreateDrive(context.Background(), actor, &dto.CreateDriveRequest{Title: "Nope"})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got: %v", err)
	}
}

func TestRecruitmentService_ActivateDrive_ClearsOthers(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)
	seedDrive(m, "drive-002", false, true)

	drive, err := svc.ActivateDrive(context.Background(), formsAdmin(), "drive-002")
	if err != nil {
		t.Fatalf("ActivateDrive should succeed: %v", err)
	}
	if !drive.IsActive {
		t.Error("drive-002 should be active")
	}
	if m.drive.drives["drive-001"].IsActive {
		t.Error("drive-001 should have been deactivated")
	}
	if !m.drive.drives["drive-002"].IsActive {
		t.Error("drive-002 should be active in the store")
	}
}

func TestRecruitmentService_ActivateDrive_NotFound(t *testing.T) {
	svc, _ := setupTestRecruitmentService()

	_, err := svc.ActivateDrive(context.Background(), formsAdmin(), "nonexistent")
	if !errors.Is(err, ErrDriveNotFound) {
		t.Errorf("expected ErrDriveNotFound, got: %v", err)
	}
}

func TestRecruitmentService_DeactivateDrive(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)

	drive, err := svc.DeactivateDrive(context.Background(), formsAdmin(), "drive-001")
	if err != nil {
		t.Fatalf("DeactivateDrive should succeed: %v", err)
	}
	if drive.IsActive {
		t.Error("drive should be inactive")
	}
}

func TestRecruitmentService_ActivePublicDrive(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, false)
	seedDrive(m, "drive-002", true, true)

	drive, err := svc.ActivePublicDrive(context.Background())
	if err != nil {
		t.Fatalf("ActivePublicDrive should succeed: %v", err)
	}
	if drive.DriveID != "drive-002" {
		t.Errorf("expected the active public drive, got %s", drive.DriveID)
	}
}

func TestRecruitmentService_ActivePublicDrive_NoneActive(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", false, true)

	_, err := svc.ActivePublicDrive(context.Background())
	if !errors.Is(err, ErrNoActiveDrive) {
		t.Errorf("expected ErrNoActiveDrive, got: %v", err)
	}
}

func TestRecruitmentService_UpdateDrive_CannotTouchActive(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", false, true)

	newTitle := "Renamed"
	drive, err := svc.UpdateDrive(context.Background(), formsAdmin(), "drive-001", &dto.UpdateDriveRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateDrive should succeed: %v", err)
	}
	if drive.Title != "Renamed" {
		t.Errorf("expected title Renamed, got %s", drive.Title)
	}
	if drive.IsActive {
		t.Error("update must not flip the active flag")
	}
}

// ── timeline tests ──

func TestRecruitmentService_CreateTimelineEvent(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)

	te, err := svc.CreateTimelineEvent(context.Background(), formsAdmin(), &dto.CreateTimelineEventRequest{
		DriveID: "drive-001",
		Title:   "Applications open",
		Date:    time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Order:   1,
	})
	if err != nil {
		t.Fatalf("CreateTimelineEvent should succeed: %v", err)
	}
	if te.OriginalDate != nil {
		t.Error("a fresh timeline event has no original date")
	}
}

func TestRecruitmentService_CreateTimelineEvent_UnknownDrive(t *testing.T) {
	svc, _ := setupTestRecruitmentService()

	_, err := svc.CreateTimelineEvent(context.Background(), formsAdmin(), &dto.CreateTimelineEventRequest{
		DriveID: "nonexistent",
		Title:   "Applications open",
		Date:    time.Now(),
	})
	if !errors.Is(err, ErrDriveNotFound) {
		t.Errorf("expected ErrDriveNotFound, got: %v", err)
	}
}

func TestRecruitmentService_UpdateTimelineEvent_OriginalDateSetOnce(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	first := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	m.timeline.events["tl-001"] = &model.TimelineEvent{
		TimelineEventID: "tl-001",
		DriveID:         "drive-001",
		Title:           "Interviews",
		Date:            first,
	}

	second := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	te, err := svc.UpdateTimelineEvent(context.Background(), formsAdmin(), "tl-001", &dto.UpdateTimelineEventRequest{Date: &second})
	if err != nil {
		t.Fatalf("first reschedule should succeed: %v", err)
	}
	if te.OriginalDate == nil || !te.OriginalDate.Equal(first) {
		t.Fatalf("original date should record the first date, got %v", te.OriginalDate)
	}

	third := time.Date(2026, 1, 25, 0, 0, 0, 0, time.UTC)
	te, err = svc.UpdateTimelineEvent(context.Background(), formsAdmin(), "tl-001", &dto.UpdateTimelineEventRequest{Date: &third})
	if err != nil {
		t.Fatalf("second reschedule should succeed: %v", err)
	}
	if !te.OriginalDate.Equal(first) {
		t.Errorf("original date must not move on later reschedules, got %v", te.OriginalDate)
	}
	if !te.Date.Equal(third) {
		t.Errorf("date should track the latest reschedule, got %v", te.Date)
	}
}

func TestRecruitmentService_UpdateTimelineEvent_SameDateNoOriginal(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	date := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	m.timeline.events["tl-001"] = &model.TimelineEvent{
		TimelineEventID: "tl-001",
		DriveID:         "drive-001",
		Title:           "Interviews",
		Date:            date,
	}

	te, err := svc.UpdateTimelineEvent(context.Background(), formsAdmin(), "tl-001", &dto.UpdateTimelineEventRequest{Date: &date})
	if err != nil {
		t.Fatalf("UpdateTimelineEvent should succeed: %v", err)
	}
	if te.OriginalDate != nil {
		t.Error("writing the same date is not a reschedule")
	}
}

// ── assignment tests ──

func TestRecruitmentService_CreateAssignment_NeedsBody(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)

	_, err := svc.CreateAssignment(context.Background(), formsAdmin(), &dto.CreateAssignmentRequest{
		DriveID: "drive-001",
		Title:   "Task",
	})
	if !errors.Is(err, ErrAssignmentNeedsBody) {
		t.Errorf("expected ErrAssignmentNeedsBody, got: %v", err)
	}
}

func TestRecruitmentService_CreateAssignment_WithLink(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)
	m.sig.sigs["sig-001"] = &model.Sig{SigID: "sig-001", Name: "AI"}

	sigID := "sig-001"
	a, err := svc.CreateAssignment(context.Background(), formsAdmin(), &dto.CreateAssignmentRequest{
		DriveID:      "drive-001",
		SigID:        &sigID,
		Title:        "Task",
		ExternalLink: "https://example.org/task",
	})
	if err != nil {
		t.Fatalf("CreateAssignment should succeed: %v", err)
	}
	if a.SigID == nil || *a.SigID != "sig-001" {
		t.Error("assignment should carry its sig")
	}
}

func TestRecruitmentService_CreateAssignment_UnknownSig(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)

	sigID := "ghost"
	_, err := svc.CreateAssignment(context.Background(), formsAdmin(), &dto.CreateAssignmentRequest{
		DriveID:      "drive-001",
		SigID:        &sigID,
		Title:        "Task",
		ExternalLink: "https://example.org/task",
	})
	if !errors.Is(err, ErrSigNotFound) {
		t.Errorf("expected ErrSigNotFound, got: %v", err)
	}
}

// ── SubmitAssessment tests ──

func TestRecruitmentService_SubmitAssessment_CreatesApplication(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)

	app, err := svc.SubmitAssessment(context.Background(), &dto.SubmitAssessmentRequest{
		DriveID:       "drive-001",
		Identifier:    "  cand-42  ",
		CandidateName: "Dana",
		SolutionLink:  "https://example.org/solution",
	})
	if err != nil {
		t.Fatalf("SubmitAssessment should succeed: %v", err)
	}
	if app.Identifier != "cand-42" {
		t.Errorf("identifier should be trimmed, got %q", app.Identifier)
	}
	if app.Status != model.StatusAssessmentCompleted {
		t.Errorf("fresh submission should land at ASSESSMENT_COMPLETED, got %s", app.Status)
	}
	if app.AssessmentSubmittedAt == nil {
		t.Error("submission timestamp should be set")
	}
}

func TestRecruitmentService_SubmitAssessment_UpsertsExisting(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-42",
		CandidateName: "Dana",
		SolutionLink:  "https://example.org/v1",
		Status:        model.StatusApplied,
	})

	app, err := svc.SubmitAssessment(context.Background(), &dto.SubmitAssessmentRequest{
		DriveID:      "drive-001",
		Identifier:   "cand-42",
		SolutionLink: "https://example.org/v2",
	})
	if err != nil {
		t.Fatalf("SubmitAssessment should succeed: %v", err)
	}
	if app.ApplicationID != "app-001" {
		t.Errorf("resubmission should reuse the existing application, got %s", app.ApplicationID)
	}
	if app.SolutionLink != "https://example.org/v2" {
		t.Errorf("resubmission should replace the link, got %s", app.SolutionLink)
	}
	if app.CandidateName != "Dana" {
		t.Errorf("empty optional fields should leave earlier values, got %q", app.CandidateName)
	}
	if len(m.application.apps) != 1 {
		t.Errorf("no duplicate application should be created, have %d", len(m.application.apps))
	}
}

func TestRecruitmentService_SubmitAssessment_NoRegressFromLaterStage(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-42",
		Status:        model.StatusInterviewScheduled,
	})

	app, err := svc.SubmitAssessment(context.Background(), &dto.SubmitAssessmentRequest{
		DriveID:      "drive-001",
		Identifier:   "cand-42",
		SolutionLink: "https://example.org/late",
	})
	if err != nil {
		t.Fatalf("SubmitAssessment should succeed: %v", err)
	}
	if app.Status != model.StatusInterviewScheduled {
		t.Errorf("late resubmission must not regress the status, got %s", app.Status)
	}
}

func TestRecruitmentService_SubmitAssessment_Validation(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)

	cases := []struct {
		name string
		req  *dto.SubmitAssessmentRequest
		want error
	}{
		{"missing body", &dto.SubmitAssessmentRequest{DriveID: "drive-001", Identifier: "cand-1"}, ErrSubmissionNeedsBody},
		{"unknown drive", &dto.SubmitAssessmentRequest{DriveID: "ghost", Identifier: "cand-1", SolutionLink: "x"}, ErrDriveNotFound},
		{"unknown sig", &dto.SubmitAssessmentRequest{DriveID: "drive-001", Identifier: "cand-1", SigID: "ghost", SolutionLink: "x"}, ErrSigNotFound},
	}
	for _, tc := range cases {
		if _, err := svc.SubmitAssessment(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRecruitmentService_SubmitAssessment_BlankIdentifier(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedDrive(m, "drive-001", true, true)

	_, err := svc.SubmitAssessment(context.Background(), &dto.SubmitAssessmentRequest{
		DriveID:      "drive-001",
		Identifier:   "   ",
		SolutionLink: "https://example.org/solution",
	})
	if err == nil {
		t.Fatal("blank identifier should be rejected")
	}
}

// ── application admin tests ──

func TestRecruitmentService_UpdateApplication_ForwardTransition(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-1",
		Status:        model.StatusAssessmentCompleted,
	})

	status := string(model.StatusInterviewScheduled)
	app, err := svc.UpdateApplication(context.Background(), formsAdmin(), "app-001", &dto.UpdateApplicationRequest{Status: &status})
	if err != nil {
		t.Fatalf("forward transition should succeed: %v", err)
	}
	if app.Status != model.StatusInterviewScheduled {
		t.Errorf("expected INTERVIEW_SCHEDULED, got %s", app.Status)
	}
}

func TestRecruitmentService_UpdateApplication_BackwardTransitionRejected(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-1",
		Status:        model.StatusInterviewScheduled,
	})

	status := string(model.StatusApplied)
	_, err := svc.UpdateApplication(context.Background(), formsAdmin(), "app-001", &dto.UpdateApplicationRequest{Status: &status})
	if !errors.Is(err, ErrBadStatusTransition) {
		t.Errorf("expected ErrBadStatusTransition, got: %v", err)
	}
}

func TestRecruitmentService_UpdateApplication_TerminalStatusFrozen(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-1",
		Status:        model.StatusRejected,
	})

	status := string(model.StatusSelected)
	_, err := svc.UpdateApplication(context.Background(), formsAdmin(), "app-001", &dto.UpdateApplicationRequest{Status: &status})
	if !errors.Is(err, ErrBadStatusTransition) {
		t.Errorf("terminal statuses must not change, got: %v", err)
	}
}

func TestRecruitmentService_UpdateApplication_UnknownStatus(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-1",
		Status:        model.StatusApplied,
	})

	status := "TELEPORTED"
	_, err := svc.UpdateApplication(context.Background(), formsAdmin(), "app-001", &dto.UpdateApplicationRequest{Status: &status})
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got: %v", err)
	}
}

func TestRecruitmentService_UpdateApplication_ClearSig(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	sigID := "sig-001"
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-1",
		SigID:         &sigID,
		Status:        model.StatusApplied,
	})

	empty := ""
	app, err := svc.UpdateApplication(context.Background(), formsAdmin(), "app-001", &dto.UpdateApplicationRequest{SigID: &empty})
	if err != nil {
		t.Fatalf("UpdateApplication should succeed: %v", err)
	}
	if app.SigID != nil {
		t.Error("empty sig id should clear the association")
	}
}

func TestRecruitmentService_ListApplications_UnknownDrive(t *testing.T) {
	svc, _ := setupTestRecruitmentService()

	_, err := svc.ListApplications(context.Background(), formsAdmin(), "nonexistent")
	if !errors.Is(err, ErrDriveNotFound) {
		t.Errorf("expected ErrDriveNotFound, got: %v", err)
	}
}

func TestRecruitmentService_DeleteApplication(t *testing.T) {
	svc, m := setupTestRecruitmentService()
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-1",
		Status:        model.StatusApplied,
	})

	if err := svc.DeleteApplication(context.Background(), formsAdmin(), "app-001"); err != nil {
		t.Fatalf("DeleteApplication should succeed: %v", err)
	}
	if _, ok := m.application.apps["app-001"]; ok {
		t.Error("application should be deleted")
	}
}
