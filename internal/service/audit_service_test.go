package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func setupTestAuditService() (AuditService, *mocks) {
	repo, m := newMockRepository()
	svc := NewAuditService(repo, zap.NewNop())
	return svc, m
}

func TestAuditService_Record_CapturesActor(t *testing.T) {
	svc, m := setupTestAuditService()

	svc.Record(context.Background(), &Actor{UserID: "admin-001"}, "role.create", "role-001", "Events Admin")

	if len(m.audit.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.audit.entries))
	}
	entry := m.audit.entries[0]
	if entry.ActorID == nil || *entry.ActorID != "admin-001" {
		t.Error("entry should record the acting user")
	}
	if entry.Action != "role.create" || entry.Target != "role-001" {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestAuditService_Record_NilActor(t *testing.T) {
	svc, m := setupTestAuditService()

	svc.Record(context.Background(), nil, "drive.activate", "drive-001", "")

	if len(m.audit.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.audit.entries))
	}
	if m.audit.entries[0].ActorID != nil {
		t.Error("system actions carry no actor")
	}
}

func TestAuditService_List_SuperuserOnly(t *testing.T) {
	svc, _ := setupTestAuditService()
	svc.Record(context.Background(), nil, "x", "y", "")

	admin := &Actor{UserID: "root", IsSuperuser: true}
	entries, total, err := svc.List(context.Background(), admin, 0, 10)
	if err != nil {
		t.Fatalf("superusers may list the audit log: %v", err)
	}
	if total != 1 || len(entries) != 1 {
		t.Errorf("expected 1 entry, got total=%d len=%d", total, len(entries))
	}

	manager := &Actor{UserID: "mgr", Caps: CapabilitySet{CapManageEverything: {}}}
	if _, _, err := svc.List(context.Background(), manager, 0, 10); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("capability holders are not superusers, got: %v", err)
	}
}
