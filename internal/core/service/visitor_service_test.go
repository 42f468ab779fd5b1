package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/societyhub/community-api/internal/core/domain"
	"github.com/societyhub/community-api/internal/core/ports"
)

func seedResident(t *testing.T, profiles *stubProfileRepo, id, flat string) *domain.Profile {
	t.Helper()
	return profiles.add(&domain.Profile{
		ID:         id,
		Email:      id + "@example.com",
		FullName:   "Resident " + id,
		FlatNumber: flat,
		Role:       domain.RoleResident,
	})
}

func TestVisitorService_Create_BySecurity(t *testing.T) {
	visitors := newStubVisitorRepo()
	profiles := newStubProfileRepo()
	cache := newStubStatsCache()
	seedResident(t, profiles, "res_1", "A-101")
	svc := NewVisitorService(visitors, profiles, cache, testLogger())

	guard := domain.Actor{ID: "sec_1", Role: domain.RoleSecurity}
	created, err := svc.Create(context.Background(), guard, ports.CreateVisitorInput{
		VisitorName:  "Ravi Kumar",
		VisitorPhone: "9876500000",
		ResidentID:   "res_1",
		Purpose:      "delivery",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != domain.VisitorPending {
		t.Fatalf("new visitor should be pending, got %s", created.Status)
	}
	// Flat number falls back to the visited resident's.
	if created.FlatNumber != "A-101" {
		t.Fatalf("expected flat number A-101, got %s", created.FlatNumber)
	}
	if created.AddedBy != "sec_1" {
		t.Fatalf("added_by = %s", created.AddedBy)
	}
	if created.CheckInTime.IsZero() {
		t.Fatalf("check_in_time not stamped")
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "res_1" {
		t.Fatalf("expected stats invalidation for res_1, got %v", cache.invalidated)
	}
}

func TestVisitorService_Create_ResidentForbidden(t *testing.T) {
	svc := NewVisitorService(newStubVisitorRepo(), newStubProfileRepo(), nil, testLogger())

	_, err := svc.Create(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, ports.CreateVisitorInput{
		VisitorName:  "Ravi Kumar",
		VisitorPhone: "9876500000",
		FlatNumber:   "A-101",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVisitorService_Create_MissingFlat(t *testing.T) {
	svc := NewVisitorService(newStubVisitorRepo(), newStubProfileRepo(), nil, testLogger())

	_, err := svc.Create(context.Background(), domain.Actor{ID: "sec_1", Role: domain.RoleSecurity}, ports.CreateVisitorInput{
		VisitorName:  "Ravi Kumar",
		VisitorPhone: "9876500000",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestVisitorService_Approve_ByOwner(t *testing.T) {
	visitors := newStubVisitorRepo()
	profiles := newStubProfileRepo()
	cache := newStubStatsCache()
	seedResident(t, profiles, "res_1", "A-101")
	svc := NewVisitorService(visitors, profiles, cache, testLogger())

	created, err := svc.Create(context.Background(), domain.Actor{ID: "sec_1", Role: domain.RoleSecurity}, ports.CreateVisitorInput{
		VisitorName:  "Ravi Kumar",
		VisitorPhone: "9876500000",
		ResidentID:   "res_1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Approve(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, created.ID)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if updated.Status != domain.VisitorApproved {
		t.Fatalf("status = %s, want approved", updated.Status)
	}
	if updated.CheckOutTime != nil {
		t.Fatalf("check_out_time must stay empty until checkout")
	}
}

func TestVisitorService_Approve_WrongResident(t *testing.T) {
	visitors := newStubVisitorRepo()
	profiles := newStubProfileRepo()
	seedResident(t, profiles, "res_1", "A-101")
	svc := NewVisitorService(visitors, profiles, nil, testLogger())

	created, err := svc.Create(context.Background(), domain.Actor{ID: "sec_1", Role: domain.RoleSecurity}, ports.CreateVisitorInput{
		VisitorName:  "Ravi Kumar",
		VisitorPhone: "9876500000",
		ResidentID:   "res_1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Approve(context.Background(), domain.Actor{ID: "res_2", Role: domain.RoleResident}, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestVisitorService_CheckOut_StampsTime(t *testing.T) {
	visitors := newStubVisitorRepo()
	profiles := newStubProfileRepo()
	seedResident(t, profiles, "res_1", "A-101")
	svc := NewVisitorService(visitors, profiles, nil, testLogger())

	created, err := svc.Create(context.Background(), domain.Actor{ID: "sec_1", Role: domain.RoleSecurity}, ports.CreateVisitorInput{
		VisitorName:  "Ravi Kumar",
		VisitorPhone: "9876500000",
		ResidentID:   "res_1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Check out before approval is unreachable.
	if _, err := svc.CheckOut(context.Background(), domain.Actor{ID: "sec_1", Role: domain.RoleSecurity}, created.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.Approve(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, created.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	before := time.Now().UTC()
	updated, err := svc.CheckOut(context.Background(), domain.Actor{ID: "sec_1", Role: domain.RoleSecurity}, created.ID)
	if err != nil {
		t.Fatalf("CheckOut returned error: %v", err)
	}
	if updated.Status != domain.VisitorCheckedOut {
		t.Fatalf("status = %s, want checked_out", updated.Status)
	}
	if updated.CheckOutTime == nil || updated.CheckOutTime.Before(before) {
		t.Fatalf("check_out_time not stamped with the transition")
	}
}

func TestVisitorService_List_ResidentScoped(t *testing.T) {
	visitors := newStubVisitorRepo()
	profiles := newStubProfileRepo()
	seedResident(t, profiles, "res_1", "A-101")
	seedResident(t, profiles, "res_2", "B-202")
	svc := NewVisitorService(visitors, profiles, nil, testLogger())

	guard := domain.Actor{ID: "sec_1", Role: domain.RoleSecurity}
	for _, residentID := range []string{"res_1", "res_1", "res_2"} {
		if _, err := svc.Create(context.Background(), guard, ports.CreateVisitorInput{
			VisitorName:  "Visitor",
			VisitorPhone: "9876500000",
			ResidentID:   residentID,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	own, err := svc.List(context.Background(), domain.Actor{ID: "res_1", Role: domain.RoleResident}, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("resident should see 2 entries, got %d", len(own))
	}
	for _, item := range own {
		if item.Visitor.ResidentID != "res_1" {
			t.Fatalf("leaked entry for %s", item.Visitor.ResidentID)
		}
		if item.Resident == nil || item.Resident.FlatNumber != "A-101" {
			t.Fatalf("resident ref not attached: %+v", item.Resident)
		}
	}

	all, err := svc.List(context.Background(), guard, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("security should see all 3 entries, got %d", len(all))
	}

	if _, err := svc.List(context.Background(), guard, "vanished"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}
}
