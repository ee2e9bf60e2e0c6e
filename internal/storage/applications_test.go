package storage

import (
	"errors"
	"testing"

	"apptrack/internal/tracker"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreate(t *testing.T, s *Store, company, role string) tracker.Record {
	t.Helper()
	rec, err := s.CreateApplication(tracker.Record{
		Company: company,
		Role:    role,
		Type:    tracker.TypeJob,
		Status:  tracker.StatusSaved,
	})
	if err != nil {
		t.Fatalf("CreateApplication(%q, %q) failed: %v", company, role, err)
	}
	return rec
}

func TestCreateApplication_AssignsIDAndTimestamps(t *testing.T) {
	s := openTestStore(t)

	rec := mustCreate(t, s, "Acme", "Engineer")

	if rec.ID == "" {
		t.Fatal("stored record has no id")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
	if !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("created_at = %v, updated_at = %v; want equal on create", rec.CreatedAt, rec.UpdatedAt)
	}

	got, err := s.GetApplication(rec.ID)
	if err != nil {
		t.Fatalf("GetApplication(%q) failed: %v", rec.ID, err)
	}
	if got.Company != "Acme" || got.Role != "Engineer" {
		t.Errorf("stored record = %+v, want company Acme role Engineer", got)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("round-tripped created_at = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestUpdateApplication_MergesOnlyPatchedFields(t *testing.T) {
	s := openTestStore(t)
	rec := mustCreate(t, s, "Acme", "Engineer")

	status := tracker.StatusOffer
	updated, err := s.UpdateApplication(rec.ID, tracker.Patch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateApplication failed: %v", err)
	}

	if updated.Status != tracker.StatusOffer {
		t.Errorf("status = %q, want %q", updated.Status, tracker.StatusOffer)
	}
	if updated.Company != "Acme" || updated.Role != "Engineer" {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("created_at changed on update: %v != %v", updated.CreatedAt, rec.CreatedAt)
	}
	if !updated.UpdatedAt.After(rec.UpdatedAt) {
		t.Errorf("updated_at did not strictly increase: %v <= %v", updated.UpdatedAt, rec.UpdatedAt)
	}
}

func TestUpdateApplication_UnknownID(t *testing.T) {
	s := openTestStore(t)

	notes := "hello"
	_, err := s.UpdateApplication("missing", tracker.Patch{Notes: &notes})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteApplication(t *testing.T) {
	s := openTestStore(t)
	rec := mustCreate(t, s, "Acme", "Engineer")

	if err := s.DeleteApplication(rec.ID); err != nil {
		t.Fatalf("DeleteApplication failed: %v", err)
	}

	list, err := s.ListApplications()
	if err != nil {
		t.Fatalf("ListApplications failed: %v", err)
	}
	for _, r := range list {
		if r.ID == rec.ID {
			t.Fatalf("record %s still listed after delete", rec.ID)
		}
	}

	if err := s.DeleteApplication(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestListApplications_OrderedByUpdatedAtDesc(t *testing.T) {
	s := openTestStore(t)

	a := mustCreate(t, s, "Alpha", "Engineer")
	mustCreate(t, s, "Beta", "Engineer")
	mustCreate(t, s, "Gamma", "Engineer")

	// Touch the oldest record so it moves to the front.
	notes := "followed up"
	if _, err := s.UpdateApplication(a.ID, tracker.Patch{Notes: &notes}); err != nil {
		t.Fatalf("UpdateApplication failed: %v", err)
	}

	list, err := s.ListApplications()
	if err != nil {
		t.Fatalf("ListApplications failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	if list[0].ID != a.ID {
		t.Errorf("list[0].ID = %s, want the freshly updated record %s", list[0].ID, a.ID)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].UpdatedAt.Before(list[i].UpdatedAt) {
			t.Errorf("list not sorted at %d: %v < %v", i, list[i-1].UpdatedAt, list[i].UpdatedAt)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migrate pass failed: %v", err)
	}
}
