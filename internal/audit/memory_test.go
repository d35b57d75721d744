package audit

import (
	"context"
	"testing"
	"time"
)

func TestMemorySink_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySink(0)
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_ = s.Write(ctx, Event{Action: "session_created", Entity: "session", EntityID: StringPtr("s"), At: base.Add(time.Duration(i) * time.Hour)})
	}
	_ = s.Write(ctx, Event{Action: "client_created", Entity: "client", EntityID: StringPtr("c1"), At: base})

	logs, total, err := s.List(ctx, Query{Entity: "session", Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(logs) != 2 {
		t.Fatalf("total=%d len=%d", total, len(logs))
	}
	if !logs[0].CreatedAt.After(logs[1].CreatedAt) {
		t.Error("newest first")
	}

	logs, _, _ = s.List(ctx, Query{Entity: "session", Limit: 2, Page: 3})
	if len(logs) != 1 {
		t.Errorf("last page len = %d", len(logs))
	}

	logs, total, _ = s.List(ctx, Query{EntityID: "c1"})
	if total != 1 || logs[0].Action != "client_created" {
		t.Errorf("entity id filter = %+v", logs)
	}

	_, total, _ = s.List(ctx, Query{From: base.Add(3 * time.Hour)})
	if total != 2 {
		t.Errorf("from filter total = %d", total)
	}
}

func TestMemorySink_Capacity(t *testing.T) {
	ctx := context.Background()
	s := NewMemorySink(3)
	for i := 0; i < 5; i++ {
		_ = s.Write(ctx, Event{Action: "x"})
	}

	logs, total, _ := s.List(ctx, Query{})
	if total != 3 || logs[0].ID != 5 || logs[2].ID != 3 {
		t.Errorf("kept = %+v", logs)
	}
}

func TestQuery_Normalize(t *testing.T) {
	q := Query{Page: -1, Limit: 1000}.Normalize()
	if q.Page != 1 || q.Limit != DefaultPageSize || q.Offset() != 0 {
		t.Errorf("normalized = %+v", q)
	}
}
