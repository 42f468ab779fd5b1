package service

import (
	"context"
	"errors"
	"testing"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

func TestIssueService_Create_DefaultPriority(t *testing.T) {
	svc := NewIssueService(newStubIssueRepo(), newStubProfileRepo(), testLogger())

	created, err := svc.Create(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, ports.CreateIssueInput{
		Category:    domain.CategoryMaintenance,
		Title:       "Lift stuck",
		Description: "Lift in tower A is stuck between floors",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != domain.IssueOpen {
		t.Fatalf("new issue should be open, got %s", created.Status)
	}
	if created.Priority != domain.PriorityMedium {
		t.Fatalf("priority should default to medium, got %s", created.Priority)
	}
	if created.ReportedBy != "res_1" {
		t.Fatalf("reported_by = %s", created.ReportedBy)
	}
}

func TestIssueService_Create_SOSForcesHigh(t *testing.T) {
	svc := NewIssueService(newStubIssueRepo(), newStubProfileRepo(), testLogger())

	created, err := svc.Create(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, ports.CreateIssueInput{
		Category:    domain.CategorySecurity,
		Title:       "Intruder",
		Description: "Unknown person on the roof",
		Priority:    domain.PriorityLow,
		IsSOS:       true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Priority != domain.PriorityHigh {
		t.Fatalf("SOS report must be high priority, got %s", created.Priority)
	}
	if !created.IsSOS {
		t.Fatalf("is_sos not set")
	}
}

func TestIssueService_Create_Validation(t *testing.T) {
	svc := NewIssueService(newStubIssueRepo(), newStubProfileRepo(), testLogger())
	actor := domain.Actor{ID: "res_1", Role: domain.RoleResident}

	cases := []ports.CreateIssueInput{
		{Category: domain.CategoryMaintenance, Description: "no title"},
		{Category: domain.CategoryMaintenance, Title: "no description"},
		{Category: "plumbing", Title: "x", Description: "y"},
		{Category: domain.CategoryMaintenance, Title: "x", Description: "y", Priority: "urgent"},
	}
	for i, input := range cases {
		if _, err := svc.Create(context.Background(), actor, input); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestIssueService_Transition(t *testing.T) {
	issues := newStubIssueRepo()
	svc := NewIssueService(issues, newStubProfileRepo(), testLogger())
	admin := domain.Actor{ID: "adm_1", Role: domain.RoleAdmin}
	reporter := domain.Actor{ID: "res_1", Role: domain.RoleResident}

	created, err := svc.Create(context.Background(), reporter, ports.CreateIssueInput{
		Category:    domain.CategoryMaintenance,
		Title:       "Leak",
		Description: "Water leaking in the basement",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Reporters cannot drive the lifecycle.
	if _, err := svc.Transition(context.Background(), reporter, created.ID, domain.IssueInProgress); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for reporter, got %v", err)
	}

	inProgress, err := svc.Transition(context.Background(), admin, created.ID, domain.IssueInProgress)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if inProgress.Status != domain.IssueInProgress {
		t.Fatalf("status = %s, want in_progress", inProgress.Status)
	}
	if !inProgress.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updated_at not advanced")
	}

	resolved, err := svc.Transition(context.Background(), admin, created.ID, domain.IssueResolved)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if resolved.Status != domain.IssueResolved {
		t.Fatalf("status = %s, want resolved", resolved.Status)
	}

	// Resolved is terminal.
	if _, err := svc.Transition(context.Background(), admin, created.ID, domain.IssueOpen); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition after resolve, got %v", err)
	}
	if _, err := svc.Transition(context.Background(), admin, created.ID, "escalated"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}

func TestIssueService_SetSOS(t *testing.T) {
	issues := newStubIssueRepo()
	svc := NewIssueService(issues, newStubProfileRepo(), testLogger())
	admin := domain.Actor{ID: "adm_1", Role: domain.RoleAdmin}

	created, err := svc.Create(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, ports.CreateIssueInput{
		Category:    domain.CategorySecurity,
		Title:       "Broken gate",
		Description: "Side gate lock is broken",
		Priority:    domain.PriorityLow,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.SetSOS(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, created.ID, true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin toggle, got %v", err)
	}

	raised, err := svc.SetSOS(context.Background(), admin, created.ID, true)
	if err != nil {
		t.Fatalf("SetSOS returned error: %v", err)
	}
	if !raised.IsSOS {
		t.Fatalf("sos flag not set")
	}
	// Toggling never rewrites the stored priority.
	if raised.Priority != domain.PriorityLow {
		t.Fatalf("toggle must not touch priority, got %s", raised.Priority)
	}

	if _, err := svc.Transition(context.Background(), admin, created.ID, domain.IssueResolved); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// The flag freezes once resolved.
	if _, err := svc.SetSOS(context.Background(), admin, created.ID, false); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on resolved issue, got %v", err)
	}
}

func TestIssueService_List_FiltersAndRefs(t *testing.T) {
	issues := newStubIssueRepo()
	profiles := newStubProfileRepo()
	seedResident(t, profiles, "res_1", "A-101")
	svc := NewIssueService(issues, profiles, testLogger())
	reporter := domain.Actor{ID: "res_1", Role: domain.RoleResident}

	if _, err := svc.Create(context.Background(), reporter, ports.CreateIssueInput{
		Category: domain.CategoryMaintenance, Title: "Leak", Description: "x",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), reporter, ports.CreateIssueInput{
		Category: domain.CategoryHousekeeping, Title: "Litter", Description: "x",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := svc.List(context.Background(), ports.IssueFilter{Category: domain.CategoryMaintenance})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 maintenance issue, got %d", len(items))
	}
	if items[0].Reporter == nil || items[0].Reporter.ID != "res_1" {
		t.Fatalf("reporter ref not attached: %+v", items[0].Reporter)
	}

	if _, err := svc.List(context.Background(), ports.IssueFilter{Status: "escalated"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}
