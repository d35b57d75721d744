package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/photo-studio/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Query filtra a listagem de logs. Campos vazios não filtram.
type Query struct {
	Action   string
	Entity   string
	EntityID string
	From     time.Time
	To       time.Time
	Page     int
	Limit    int
}

// Normalize aplica os limites de paginação.
func (q Query) Normalize() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 || q.Limit > MaxPageSize {
		q.Limit = DefaultPageSize
	}
	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Reader lista logs do mais novo para o mais antigo.
type Reader interface {
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

func (s *GormSink) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	q = q.Normalize()

	db := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if q.EntityID != "" {
		db = db.Where("entity_id = ?", q.EntityID)
	}
	if !q.From.IsZero() {
		db = db.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		db = db.Where("created_at < ?", q.To)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := db.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var (
	_ Sink   = (*GormSink)(nil)
	_ Reader = (*GormSink)(nil)
)
