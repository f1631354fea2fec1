package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"club-nexus/backend/internal/model"
)

// ── test helpers ──

func setupTestExportService() (ExportService, *mocks) {
	repo, m := newMockRepository()
	logger := zap.NewNop()
	svc := NewExportService(repo, logger)
	return svc, m
}

// ── ExportApplications tests ──

func TestExportService_ExportApplications_UnknownDrive(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportApplications(context.Background(), formsAdmin(), "nonexistent")
	if !errors.Is(err, ErrDriveNotFound) {
		t.Errorf("expected ErrDriveNotFound, got: %v", err)
	}
}

func TestExportService_ExportApplications_NoApplications(t *testing.T) {
	svc, m := setupTestExportService()
	seedDrive(m, "drive-001", true, true)

	_, _, err := svc.ExportApplications(context.Background(), formsAdmin(), "drive-001")
	if !errors.Is(err, ErrExportNoApplications) {
		t.Errorf("expected ErrExportNoApplications, got: %v", err)
	}
}

func TestExportService_ExportApplications_PermissionDenied(t *testing.T) {
	svc, m := setupTestExportService()
	seedDrive(m, "drive-001", true, true)

	actor := &Actor{UserID: "user-001", Caps: CapabilitySet{}}
	_, _, err := svc.ExportApplications(context.Background(), actor, "drive-001")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got: %v", err)
	}
}

func TestExportService_ExportApplications_Success(t *testing.T) {
	svc, m := setupTestExportService()
	seedDrive(m, "drive-001", true, true)
	score := 8.5
	seedApplication(m, &model.RecruitmentApplication{
		ApplicationID: "app-001",
		DriveID:       "drive-001",
		Identifier:    "cand-1",
		CandidateName: "Dana",
		Status:        model.StatusAssessmentCompleted,
		OAScore:       &score,
		Sig:           &model.Sig{SigID: "sig-001", Name: "AI"},
	})

	buf, filename, err := svc.ExportApplications(context.Background(), formsAdmin(), "drive-001")
	if err != nil {
		t.Fatalf("ExportApplications should succeed: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Fatal("workbook buffer should not be empty")
	}
	if filename != "applications_drive-001.xlsx" {
		t.Errorf("unexpected filename: %s", filename)
	}
	// xlsx files are zip archives.
	if !strings.HasPrefix(buf.String(), "PK") {
		t.Error("workbook should be a zip archive")
	}
}
