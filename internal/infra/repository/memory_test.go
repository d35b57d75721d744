package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/photo-studio/internal/domain/studio"
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestMemoryRepository_ClientCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepositoryWithClock(fixedClock())

	created, err := repo.CreateClient(ctx, studio.Client{ID: "ignored", Name: "Bruna", Email: "b@x.com", Phone: "11999999999"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.ID == "ignored" {
		t.Errorf("store must assign the id, got %q", created.ID)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps = %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	if _, err := repo.CreateClient(ctx, studio.Client{Name: "Ana"}); err != nil {
		t.Fatal(err)
	}

	list, err := repo.ListClients(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Name != "Ana" || list[1].Name != "Bruna" {
		t.Errorf("clients must be ordered by name: %+v", list)
	}

	newName := "Bruna Lima"
	updated, err := repo.UpdateClient(ctx, created.ID, studio.ClientPatch{Name: &newName})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != newName || updated.Email != "b@x.com" {
		t.Errorf("updated = %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("update must refresh updated_at")
	}

	if err := repo.DeleteClient(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetClient(ctx, created.ID); !errors.Is(err, studio.ErrNotFound) {
		t.Errorf("GetClient after delete = %v", err)
	}
	if err := repo.DeleteClient(ctx, created.ID); !errors.Is(err, studio.ErrNotFound) {
		t.Errorf("second delete = %v", err)
	}
}

func TestMemoryRepository_Sessions(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	mk := func(clientID, date string) *studio.Session {
		s, err := repo.CreateSession(ctx, studio.Session{ClientID: clientID, Date: date, Time: "10:00"})
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
	late := mk("c1", "2024-05-01")
	early := mk("c2", "2024-01-10")
	mid := mk("c1", "2024-03-01")

	all, err := repo.ListSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].ID != early.ID || all[1].ID != mid.ID || all[2].ID != late.ID {
		t.Errorf("sessions must be ordered by date: %+v", all)
	}

	byClient, err := repo.ListSessionsByClient(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(byClient) != 2 || byClient[0].ID != mid.ID {
		t.Errorf("by client = %+v", byClient)
	}

	st := studio.StatusConfirmado
	got, err := repo.UpdateSession(ctx, mid.ID, studio.SessionPatch{Status: &st})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != studio.StatusConfirmado || got.Date != "2024-03-01" {
		t.Errorf("updated = %+v", got)
	}

	if _, err := repo.UpdateSession(ctx, "missing", studio.SessionPatch{Status: &st}); !errors.Is(err, studio.ErrNotFound) {
		t.Errorf("update missing = %v", err)
	}

	bad := "31/12/2024"
	if _, err := repo.UpdateSession(ctx, mid.ID, studio.SessionPatch{Date: &bad}); err == nil {
		t.Error("invalid date must be rejected")
	}
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryRepository()
	if _, err := repo.ListClients(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ListClients = %v", err)
	}
	if err := repo.DeleteSession(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("DeleteSession = %v", err)
	}
}

func TestMemoryRepository_StoresCalendarDates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepositoryWithClock(fixedClock())

	created, err := repo.CreateSession(ctx, studio.Session{ClientID: "c1", Date: "2024-03-20T10:00:00Z", Time: "10:00"})
	if err != nil {
		t.Fatal(err)
	}
	if created.Date != "2024-03-20" {
		t.Errorf("created date = %q, want 2024-03-20", created.Date)
	}

	stored, err := repo.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Date != "2024-03-20" {
		t.Errorf("stored date = %q", stored.Date)
	}

	next := "2024-04-02T23:30:00-03:00"
	updated, err := repo.UpdateSession(ctx, created.ID, studio.SessionPatch{Date: &next})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Date != "2024-04-02" {
		t.Errorf("updated date = %q, want 2024-04-02", updated.Date)
	}

	bad := "amanhã"
	if _, err := repo.UpdateSession(ctx, created.ID, studio.SessionPatch{Date: &bad}); err == nil {
		t.Error("invalid date must be rejected")
	}
}
