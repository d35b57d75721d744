package audit

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/photo-studio/internal/models"
)

const defaultMemoryCapacity = 1000

// MemorySink guarda os últimos eventos em memória (DATA_BACKEND=memory).
type MemorySink struct {
	mu       sync.RWMutex
	capacity int
	rows     []models.AuditLog
	nextID   uint
}

func NewMemorySink(capacity int) *MemorySink {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemorySink{capacity: capacity}
}

func (s *MemorySink) Write(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	row := toRow(ev)
	row.ID = s.nextID

	s.rows = append(s.rows, *row)
	if len(s.rows) > s.capacity {
		s.rows = append([]models.AuditLog(nil), s.rows[len(s.rows)-s.capacity:]...)
	}
	return nil
}

func (s *MemorySink) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	q = q.Normalize()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.AuditLog, 0)
	for i := len(s.rows) - 1; i >= 0; i-- {
		if matches(s.rows[i], q) {
			matched = append(matched, s.rows[i])
		}
	}

	total := int64(len(matched))
	start := q.Offset()
	if start >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matches(row models.AuditLog, q Query) bool {
	if q.Action != "" && row.Action != q.Action {
		return false
	}
	if q.Entity != "" && row.Entity != q.Entity {
		return false
	}
	if q.EntityID != "" && (row.EntityID == nil || *row.EntityID != q.EntityID) {
		return false
	}
	if !q.From.IsZero() && row.CreatedAt.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && !row.CreatedAt.Before(q.To) {
		return false
	}
	return true
}

var (
	_ Sink   = (*MemorySink)(nil)
	_ Reader = (*MemorySink)(nil)
)
