package appointmentRepo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"clinicbook/models"
)

func testAppointment(id, date, slot string) models.Appointment {
	return models.Appointment{
		ID:          id,
		Service:     "Dental Cleaning",
		PatientName: "Sarah Johnson",
		Phone:       "0791234567",
		Email:       "sarah.j@example.com",
		Date:        date,
		Time:        slot,
		Dentist:     "Dr. Sarah Ahmed",
	}
}

func TestJSONBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	backend := NewJSONBackend(path)
	ctx := context.Background()

	store, err := NewStore(ctx, backend)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if len(store.All()) != 0 {
		t.Fatal("missing snapshot file should mean an empty store")
	}

	a := testAppointment("a1", "2026-03-03", "09:00")
	b := testAppointment("b2", "2026-03-03", "10:00")
	if err := store.Put(ctx, a); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put(ctx, b); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// A fresh store over the same file sees the same records with ids intact.
	reloaded, err := NewStore(ctx, NewJSONBackend(path))
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, ok := reloaded.Get("a1")
	if !ok {
		t.Fatal("a1 missing after reload")
	}
	if got.ID != "a1" || got.Time != "09:00" {
		t.Errorf("reloaded record wrong: %+v", got)
	}
	if len(reloaded.All()) != 2 {
		t.Errorf("expected 2 records after reload, got %d", len(reloaded.All()))
	}
}

func TestStore_AllSortedAndByDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	store, err := NewStore(context.Background(), NewJSONBackend(path))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	ctx := context.Background()

	store.Put(ctx, testAppointment("c", "2026-03-04", "09:00"))
	store.Put(ctx, testAppointment("b", "2026-03-03", "14:00"))
	store.Put(ctx, testAppointment("a", "2026-03-03", "09:00"))

	all := store.All()
	wantOrder := []string{"a", "b", "c"}
	for i, id := range wantOrder {
		if all[i].ID != id {
			t.Fatalf("order wrong: got %v", all)
		}
	}

	byDate := store.ByDate("2026-03-03")
	if len(byDate) != 2 {
		t.Errorf("ByDate returned %d records, want 2", len(byDate))
	}
}

func TestStore_DeleteUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	store, err := NewStore(context.Background(), NewJSONBackend(path))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Delete(context.Background(), "ghost"); err == nil {
		t.Error("deleting an unknown id should fail")
	}
}

// failingBackend loads fine but refuses every save.
type failingBackend struct{}

func (failingBackend) Load(context.Context) (map[string]models.Appointment, error) {
	return map[string]models.Appointment{
		"a1": testAppointment("a1", "2026-03-03", "09:00"),
	}, nil
}

func (failingBackend) Save(context.Context, map[string]models.Appointment) error {
	return errors.New("disk full")
}

func TestStore_FailedSaveLeavesMemoryUntouched(t *testing.T) {
	store, err := NewStore(context.Background(), failingBackend{})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, testAppointment("b2", "2026-03-03", "10:00")); err == nil {
		t.Fatal("Put should surface the backend error")
	}
	if _, ok := store.Get("b2"); ok {
		t.Error("failed Put must not land in memory")
	}

	if err := store.Delete(ctx, "a1"); err == nil {
		t.Fatal("Delete should surface the backend error")
	}
	if _, ok := store.Get("a1"); !ok {
		t.Error("failed Delete must not remove the record")
	}
}
